package simplenote

import (
	"context"
	"fmt"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/notation"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

// Selection points at one event by measure and event index.
type Selection struct {
	Measure int `json:"measure"`
	Index   int `json:"index"`
}

// Session is one editor working on one score. It is not safe for
// concurrent use; every edit runs to completion before the next.
//
// The selection follows its event through inserts and deletes made via the
// session, and is cleared when that event or its measure is removed. Edits
// through a selection that no longer points at an event are no-ops and
// report false.
type Session struct {
	svc      Service
	style    Style
	score    *score.Score
	selected *Selection
}

func newSession(svc Service, style Style) *Session {
	return &Session{svc: svc, style: style, score: score.New()}
}

// Score is the score being edited. Callers must not keep it across edits.
func (s *Session) Score() *score.Score { return s.score }

func (s *Session) Style() Style { return s.style }

func (s *Session) SetStyle(style Style) { s.style = style }

// NewSong discards the current score and starts an unsaved one.
func (s *Session) NewSong() {
	s.score = score.New()
	s.selected = nil
}

// Open replaces the score being edited with a copy of sc.
func (s *Session) Open(sc *score.Score) {
	c := sc.Clone()
	if len(c.Measures) == 0 {
		c.Measures = []score.Measure{{}}
	}
	s.score = &c
	s.selected = nil
}

func (s *Session) SetTitle(title string)   { s.score.Title = title }
func (s *Session) SetArtist(artist string) { s.score.Artist = artist }
func (s *Session) SetRights(rights string) { s.score.Rights = rights }

// SetCreators sets the structured credits. Empty credits clear them.
func (s *Session) SetCreators(c score.Creators) {
	if c.IsZero() {
		s.score.Creators = nil
		return
	}
	s.score.Creators = &c
}

func (s *Session) AddMeasure() int {
	s.score.AddMeasure()
	return len(s.score.Measures) - 1
}

// DeleteMeasure removes measure i. A selection inside it is cleared and a
// selection in a later measure moves with its event.
func (s *Session) DeleteMeasure(i int) bool {
	if !s.score.DeleteMeasure(i) {
		return false
	}
	if sel := s.selected; sel != nil {
		switch {
		case sel.Measure == i:
			s.selected = nil
		case sel.Measure > i:
			sel.Measure--
		}
	}
	return true
}

// AppendNote adds a note to the last measure.
func (s *Session) AppendNote(step string, octave int, duration float64) Selection {
	return s.AppendEvent(score.NewNote(step, octave, duration))
}

// AppendRest adds a rest to the last measure.
func (s *Session) AppendRest(duration float64) Selection {
	return s.AppendEvent(score.NewRest(duration))
}

// AppendEvent adds e to the last measure, creating one if the score has
// none, and returns where it landed.
func (s *Session) AppendEvent(e score.Event) Selection {
	s.score.AppendEvent(e)
	mi := len(s.score.Measures) - 1
	return Selection{Measure: mi, Index: len(s.score.Measures[mi]) - 1}
}

// InsertEvent places e at index ni of measure mi. The selection keeps
// pointing at the same event.
func (s *Session) InsertEvent(mi, ni int, e score.Event) bool {
	if !s.score.InsertEvent(mi, ni, e) {
		return false
	}
	if sel := s.selected; sel != nil && sel.Measure == mi && sel.Index >= ni {
		sel.Index++
	}
	return true
}

// DeleteEvent removes event ni of measure mi. Deleting the selected event
// clears the selection; deleting an earlier one shifts it.
func (s *Session) DeleteEvent(mi, ni int) bool {
	if !s.score.DeleteEvent(mi, ni) {
		return false
	}
	if sel := s.selected; sel != nil && sel.Measure == mi {
		switch {
		case sel.Index == ni:
			s.selected = nil
		case sel.Index > ni:
			sel.Index--
		}
	}
	return true
}

// Select points the selection at an existing event.
func (s *Session) Select(mi, ni int) bool {
	if _, ok := s.score.EventAt(mi, ni); !ok {
		return false
	}
	s.selected = &Selection{Measure: mi, Index: ni}
	return true
}

func (s *Session) ClearSelection() { s.selected = nil }

// Selected returns the selected event, if the selection still points at one.
func (s *Session) Selected() (score.Event, bool) {
	e, ok := s.selectedEvent()
	if !ok {
		return score.Event{}, false
	}
	return *e, true
}

func (s *Session) Selection() (Selection, bool) {
	if s.selected == nil {
		return Selection{}, false
	}
	return *s.selected, true
}

func (s *Session) selectedEvent() (*score.Event, bool) {
	if s.selected == nil {
		return nil, false
	}
	return s.score.EventAt(s.selected.Measure, s.selected.Index)
}

// DeleteSelected removes the selected event and clears the selection.
func (s *Session) DeleteSelected() bool {
	if _, ok := s.selectedEvent(); !ok {
		return false
	}
	sel := *s.selected
	s.selected = nil
	return s.score.DeleteEvent(sel.Measure, sel.Index)
}

// UpdateSelected applies u to the selected event under the session style.
func (s *Session) UpdateSelected(u EventUpdate) bool {
	e, ok := s.selectedEvent()
	if !ok {
		return false
	}
	u.Apply(e, s.style)
	return true
}

// Layout derives beams and slurs for measure mi.
func (s *Session) Layout(mi int) (notation.Layout, bool) {
	if mi < 0 || mi >= len(s.score.Measures) {
		return notation.Layout{}, false
	}
	return notation.MeasureLayout(mi+1, s.score.Measures[mi]), true
}

func (s *Session) Layouts() []notation.Layout {
	return notation.ScoreLayout(s.score)
}

// Payload snapshots the score for export.
func (s *Session) Payload() export.Payload {
	return s.svc.Payload(s.score)
}

// Save stores the score, assigning an id the first time.
func (s *Session) Save(ctx context.Context) error {
	return s.svc.SaveSong(ctx, s.score)
}

// Load replaces the score being edited with the stored song id.
func (s *Session) Load(ctx context.Context, id string) error {
	sc, err := s.svc.GetSong(ctx, id)
	if err != nil {
		return fmt.Errorf("loading song %s: %w", id, err)
	}
	s.Open(sc)
	return nil
}

// Export generates a file for the current score. The score is read once;
// edits made while the request is in flight do not affect it.
func (s *Session) Export(ctx context.Context, format export.Format) (*ExportResult, error) {
	return s.svc.Export(ctx, s.score, format)
}
