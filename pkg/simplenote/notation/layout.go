package notation

import "github.com/himanishpuri/SimpleNote/pkg/simplenote/score"

// Layout is what a renderer needs to draw one measure. It is recomputed
// from the measure on every call and never stored.
type Layout struct {
	Number int           `json:"number"`
	Events score.Measure `json:"events"`
	Beams  []BeamGroup   `json:"beams"`
	Slurs  []SlurPair    `json:"slurs"`
}

// MeasureLayout derives the layout of the measure with the given 1-based number.
func MeasureLayout(number int, m score.Measure) Layout {
	return Layout{
		Number: number,
		Events: m.Clone(),
		Beams:  Beams(m),
		Slurs:  SlurPairs(m),
	}
}

// ScoreLayout derives the layout of every measure in s.
func ScoreLayout(s *score.Score) []Layout {
	out := make([]Layout, len(s.Measures))
	for i, m := range s.Measures {
		out[i] = MeasureLayout(i+1, m)
	}
	return out
}
