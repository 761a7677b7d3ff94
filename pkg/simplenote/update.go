package simplenote

import (
	"strings"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

// EventUpdate is a partial edit of one event. Nil fields are left alone.
type EventUpdate struct {
	Kind        *score.Kind   `json:"type,omitempty"`
	Step        *string       `json:"step,omitempty"`
	Alter       *int          `json:"alter,omitempty"`
	Octave      *int          `json:"octave,omitempty"`
	OctaveShift *int          `json:"octaveShift,omitempty"`
	Duration    *float64      `json:"duration,omitempty"`
	Dotted      *int          `json:"dotted,omitempty"`
	ExtendLine  *int          `json:"extendLine,omitempty"`
	ReduceLine  *int          `json:"reduceLine,omitempty"`
	Slur        *score.Marker `json:"slur,omitempty"`
	Beam        *score.Marker `json:"beam,omitempty"`
	TieStart    *bool         `json:"tie_start,omitempty"`
	TieStop     *bool         `json:"tie_stop,omitempty"`
	Stem        *string       `json:"stem,omitempty"`
	Lyric       *string       `json:"lyric,omitempty"`
}

// Apply writes the update into e. Under StyleStaff the jianpu line fields
// are ignored, under StyleJianpu the accidental and octave shift are.
// Turning a note into a rest clears its pitch and markers; turning a rest
// into a note gives it C in the default octave unless the update says
// otherwise.
func (u EventUpdate) Apply(e *score.Event, style Style) {
	if u.Kind != nil && *u.Kind != e.Kind {
		switch *u.Kind {
		case score.KindRest:
			*e = score.Event{
				Kind:       score.KindRest,
				Duration:   e.Duration,
				Dotted:     e.Dotted,
				ExtendLine: e.ExtendLine,
				ReduceLine: e.ReduceLine,
			}
		case score.KindNote:
			e.Kind = score.KindNote
			if e.Step == "" {
				e.Step = "C"
			}
			if e.Octave == 0 {
				e.Octave = score.DefaultOctave
			}
		}
	}

	if u.Duration != nil {
		e.Duration = *u.Duration
	}
	if u.Dotted != nil {
		e.Dotted = max(*u.Dotted, 0)
	}
	if style != StyleStaff {
		if u.ExtendLine != nil {
			e.ExtendLine = max(*u.ExtendLine, 0)
		}
		if u.ReduceLine != nil {
			e.ReduceLine = max(*u.ReduceLine, 0)
		}
	}
	if e.IsRest() {
		return
	}

	if u.Step != nil {
		e.Step = strings.ToUpper(strings.TrimSpace(*u.Step))
	}
	if u.Octave != nil {
		e.Octave = *u.Octave
	}
	if style != StyleJianpu {
		if u.Alter != nil {
			e.Alter = clampUnit(*u.Alter)
		}
		if u.OctaveShift != nil {
			e.OctaveShift = clampUnit(*u.OctaveShift)
		}
	}
	if u.Slur != nil {
		e.Slur = *u.Slur
	}
	if u.Beam != nil {
		e.Beam = *u.Beam
	}
	if u.TieStart != nil {
		e.TieStart = *u.TieStart
	}
	if u.TieStop != nil {
		e.TieStop = *u.TieStop
	}
	if u.Stem != nil {
		e.Stem = *u.Stem
	}
	if u.Lyric != nil {
		e.Lyric = *u.Lyric
	}
}

func clampUnit(v int) int {
	return min(max(v, -1), 1)
}
