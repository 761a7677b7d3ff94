package score

import (
	"strings"
	"time"
)

// Creators is the structured alternative to a single artist string.
type Creators struct {
	Composer   string `json:"composer,omitempty" yaml:"composer,omitempty"`
	Lyricist   string `json:"lyricist,omitempty" yaml:"lyricist,omitempty"`
	Translator string `json:"translator,omitempty" yaml:"translator,omitempty"`
}

// IsZero reports whether no creator is named.
func (c *Creators) IsZero() bool {
	return c == nil || (c.Composer == "" && c.Lyricist == "" && c.Translator == "")
}

// Metadata used for blank fields when a score is exported.
const (
	DefaultTitle  = "Untitled Song"
	DefaultArtist = "Unknown Artist"
)

// Score is a song: metadata plus an ordered list of measures.
type Score struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	Title     string    `json:"title" yaml:"title"`
	Artist    string    `json:"artist,omitempty" yaml:"artist,omitempty"`
	Creators  *Creators `json:"creators,omitempty" yaml:"creators,omitempty"`
	Rights    string    `json:"rights,omitempty" yaml:"rights,omitempty"`
	Measures  []Measure `json:"measures" yaml:"measures"`
	UpdatedAt time.Time `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"`
}

// New returns an unsaved score holding one empty measure.
func New() *Score {
	return &Score{Measures: []Measure{{}}}
}

// Clone returns a deep copy.
func (s *Score) Clone() Score {
	out := *s
	if s.Creators != nil {
		c := *s.Creators
		out.Creators = &c
	}
	out.Measures = make([]Measure, len(s.Measures))
	for i, m := range s.Measures {
		out.Measures[i] = m.Clone()
	}
	return out
}

// WithDefaults returns a copy whose blank title, and blank artist when no
// structured creators are set, are replaced by the given defaults.
func (s *Score) WithDefaults(title, artist string) Score {
	out := s.Clone()
	if strings.TrimSpace(out.Title) == "" {
		out.Title = title
	} else {
		out.Title = strings.TrimSpace(out.Title)
	}
	if strings.TrimSpace(out.Artist) == "" && out.Creators.IsZero() {
		out.Artist = artist
	}
	return out
}

// AddMeasure appends an empty measure.
func (s *Score) AddMeasure() {
	s.Measures = append(s.Measures, Measure{})
}

// DeleteMeasure removes the measure at i.
func (s *Score) DeleteMeasure(i int) bool {
	if i < 0 || i >= len(s.Measures) {
		return false
	}
	s.Measures = append(s.Measures[:i], s.Measures[i+1:]...)
	return true
}

// AppendEvent adds e to the end of the last measure, creating a measure
// first when the score has none.
func (s *Score) AppendEvent(e Event) {
	if len(s.Measures) == 0 {
		s.AddMeasure()
	}
	last := len(s.Measures) - 1
	s.Measures[last] = append(s.Measures[last], e)
}

// InsertEvent places e at index ni of measure mi.
func (s *Score) InsertEvent(mi, ni int, e Event) bool {
	if mi < 0 || mi >= len(s.Measures) {
		return false
	}
	return s.Measures[mi].Insert(ni, e)
}

// DeleteEvent removes the event at index ni of measure mi.
func (s *Score) DeleteEvent(mi, ni int) bool {
	if mi < 0 || mi >= len(s.Measures) {
		return false
	}
	return s.Measures[mi].Remove(ni)
}

// EventAt returns a pointer to the event for in-place updates.
func (s *Score) EventAt(mi, ni int) (*Event, bool) {
	if mi < 0 || mi >= len(s.Measures) {
		return nil, false
	}
	m := s.Measures[mi]
	if ni < 0 || ni >= len(m) {
		return nil, false
	}
	return &m[ni], true
}

// EventCount is the number of events across all measures.
func (s *Score) EventCount() int {
	n := 0
	for _, m := range s.Measures {
		n += len(m)
	}
	return n
}
