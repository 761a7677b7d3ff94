// Package export turns a score into the payload sent to the generation
// service and names the file formats that service produces.
package export

import "github.com/himanishpuri/SimpleNote/pkg/simplenote/score"

const (
	DefaultSystemBreak = 4
	DefaultTempo       = 120
)

// Options control the per-measure layout hints.
type Options struct {
	// SystemBreak starts a new system every SystemBreak measures. Zero or a
	// negative value breaks only before the first measure.
	SystemBreak int
	// Tempo is the bpm written on every measure.
	Tempo int
}

// DefaultOptions match what the editor has always sent.
func DefaultOptions() Options {
	return Options{SystemBreak: DefaultSystemBreak, Tempo: DefaultTempo}
}

// MeasureRecord is one measure on the wire.
type MeasureRecord struct {
	Number    int           `json:"number"`
	BPM       int           `json:"bpm"`
	NewSystem bool          `json:"new_system"`
	Notes     score.Measure `json:"notes"`
}

// Payload is the request body of POST /generate.
type Payload struct {
	Title    string          `json:"title"`
	Artist   string          `json:"artist,omitempty"`
	Creators *score.Creators `json:"creators,omitempty"`
	Rights   string          `json:"rights,omitempty"`
	Measures []MeasureRecord `json:"measures"`
}

// Build assembles the payload for s. It never modifies s, and the returned
// payload shares no memory with it, so later edits to the score do not
// reach a payload that is already in flight.
//
// Measure i (0-based) gets number i+1, the configured tempo and
// new_system = i%SystemBreak == 0. Nothing is validated: measures that do
// not add up to a bar are passed through as they are.
func Build(s *score.Score, opts Options) Payload {
	p := Payload{
		Title:    s.Title,
		Artist:   s.Artist,
		Rights:   s.Rights,
		Measures: make([]MeasureRecord, len(s.Measures)),
	}
	if !s.Creators.IsZero() {
		c := *s.Creators
		p.Creators = &c
	}
	for i, m := range s.Measures {
		p.Measures[i] = MeasureRecord{
			Number:    i + 1,
			BPM:       opts.Tempo,
			NewSystem: newSystem(i, opts.SystemBreak),
			Notes:     m.Clone(),
		}
	}
	return p
}

func newSystem(i, every int) bool {
	if every <= 0 {
		return i == 0
	}
	return i%every == 0
}

// Tempo is the bpm of the first measure, or DefaultTempo when there is none
// or it is not positive.
func (p Payload) Tempo() int {
	if len(p.Measures) == 0 || p.Measures[0].BPM <= 0 {
		return DefaultTempo
	}
	return p.Measures[0].BPM
}

// Normalized returns a copy with what an external caller may have left out
// filled in: measure numbers, a positive bpm and non-nil note lists.
func (p Payload) Normalized() Payload {
	ms := make([]MeasureRecord, len(p.Measures))
	copy(ms, p.Measures)
	for i := range ms {
		m := &ms[i]
		if m.Number <= 0 {
			m.Number = i + 1
		}
		if m.BPM <= 0 {
			m.BPM = DefaultTempo
		}
		if m.Notes == nil {
			m.Notes = score.Measure{}
		}
	}
	p.Measures = ms
	return p
}
