package score

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Kind tells a pitched note from a rest.
type Kind string

const (
	KindNote Kind = "note"
	KindRest Kind = "rest"
)

// Marker is a slur or beam hint stored on an event.
type Marker string

const (
	MarkerNone  Marker = ""
	MarkerStart Marker = "start"
	MarkerStop  Marker = "stop"
)

// DefaultOctave is used when a note arrives without an octave.
const DefaultOctave = 4

// DefaultDuration is a quarter note.
const DefaultDuration = 2.0

// Event is a single note or rest inside a measure.
//
// Pitch fields (Step, Alter, Octave, OctaveShift) only mean something on
// notes and are not written for rests. The notation name (xml_type on the
// wire) is derived from Duration every time it is read; it cannot be set.
// Beam is a hint only: beam groups are always derived by the notation package.
type Event struct {
	Kind        Kind
	Step        string
	Alter       int
	Octave      int
	OctaveShift int
	Duration    float64
	Dotted      int
	ExtendLine  int
	ReduceLine  int
	Slur        Marker
	Beam        Marker
	TieStart    bool
	TieStop     bool
	Stem        string
	Lyric       string
}

// NewNote creates a note with no alteration, shift, dots or markers.
func NewNote(step string, octave int, duration float64) Event {
	return Event{Kind: KindNote, Step: step, Octave: octave, Duration: duration}
}

// NewRest creates a rest of the given duration.
func NewRest(duration float64) Event {
	return Event{Kind: KindRest, Duration: duration}
}

func (e Event) IsNote() bool { return e.Kind != KindRest }
func (e Event) IsRest() bool { return e.Kind == KindRest }

// XMLType is the notation name of the event's duration.
func (e Event) XMLType() string {
	return DurationName(e.Duration)
}

// Beamable reports whether the event can join a beam group: a note that is
// an eighth or a sixteenth.
func (e Event) Beamable() bool {
	return e.IsNote() && (e.Duration == 1 || e.Duration == 0.5)
}

// QuarterLength is the event's length in quarter notes, dots included.
func (e Event) QuarterLength() float64 {
	return QuarterLength(e.Duration, e.Dotted)
}

// Ticks is the event's length at perQuarter ticks per quarter note.
func (e Event) Ticks(perQuarter int) int {
	return Ticks(e.Duration, e.Dotted, perQuarter)
}

// wireEvent is the JSON/YAML shape shared with the editor and the
// generation service.
type wireEvent struct {
	Type        Kind     `json:"type" yaml:"type"`
	Step        string   `json:"step,omitempty" yaml:"step,omitempty"`
	Alter       *int     `json:"alter,omitempty" yaml:"alter,omitempty"`
	Octave      *int     `json:"octave,omitempty" yaml:"octave,omitempty"`
	OctaveShift *int     `json:"octaveShift,omitempty" yaml:"octaveShift,omitempty"`
	Duration    *float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
	Dotted      int      `json:"dotted" yaml:"dotted,omitempty"`
	ExtendLine  int      `json:"extendLine,omitempty" yaml:"extendLine,omitempty"`
	ReduceLine  int      `json:"reduceLine,omitempty" yaml:"reduceLine,omitempty"`
	Slur        Marker   `json:"slur,omitempty" yaml:"slur,omitempty"`
	Beam        Marker   `json:"beam,omitempty" yaml:"beam,omitempty"`
	TieStart    bool     `json:"tie_start,omitempty" yaml:"tie_start,omitempty"`
	TieStop     bool     `json:"tie_stop,omitempty" yaml:"tie_stop,omitempty"`
	Stem        string   `json:"stem,omitempty" yaml:"stem,omitempty"`
	Lyric       string   `json:"lyric,omitempty" yaml:"lyric,omitempty"`
	XMLType     string   `json:"xml_type" yaml:"xml_type,omitempty"`
}

func (e Event) toWire() wireEvent {
	d := e.Duration
	w := wireEvent{
		Type:       e.Kind,
		Duration:   &d,
		Dotted:     e.Dotted,
		ExtendLine: e.ExtendLine,
		ReduceLine: e.ReduceLine,
		XMLType:    e.XMLType(),
	}
	if w.Type == "" {
		w.Type = KindNote
	}
	if e.IsRest() {
		return w
	}
	alter, octave, shift := e.Alter, e.Octave, e.OctaveShift
	w.Step = e.Step
	w.Alter = &alter
	w.Octave = &octave
	w.OctaveShift = &shift
	w.Slur = e.Slur
	w.Beam = e.Beam
	w.TieStart = e.TieStart
	w.TieStop = e.TieStop
	w.Stem = e.Stem
	w.Lyric = e.Lyric
	return w
}

// fromWire fills the event from its wire form. Any xml_type that came
// over the wire is discarded.
func (e *Event) fromWire(w wireEvent) {
	*e = Event{
		Kind:       w.Type,
		Duration:   DefaultDuration,
		Dotted:     w.Dotted,
		ExtendLine: w.ExtendLine,
		ReduceLine: w.ReduceLine,
	}
	if e.Kind == "" {
		e.Kind = KindNote
	}
	if w.Duration != nil {
		e.Duration = *w.Duration
	}
	if e.IsRest() {
		return
	}
	e.Step = w.Step
	e.Octave = DefaultOctave
	if w.Octave != nil {
		e.Octave = *w.Octave
	}
	if w.Alter != nil {
		e.Alter = *w.Alter
	}
	if w.OctaveShift != nil {
		e.OctaveShift = *w.OctaveShift
	}
	e.Slur = w.Slur
	e.Beam = w.Beam
	e.TieStart = w.TieStart
	e.TieStop = w.TieStop
	e.Stem = w.Stem
	e.Lyric = w.Lyric
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.toWire())
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.fromWire(w)
	return nil
}

func (e Event) MarshalYAML() (interface{}, error) {
	return e.toWire(), nil
}

func (e *Event) UnmarshalYAML(value *yaml.Node) error {
	var w wireEvent
	if err := value.Decode(&w); err != nil {
		return err
	}
	e.fromWire(w)
	return nil
}
