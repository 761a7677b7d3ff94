package notation

import (
	"iter"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

// BeamGroup is an inclusive, 0-based index range of events joined by a beam.
type BeamGroup struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len is the number of events under the beam.
func (g BeamGroup) Len() int { return g.End - g.Start + 1 }

// Contains reports whether index i lies under the beam.
func (g BeamGroup) Contains(i int) bool { return i >= g.Start && i <= g.End }

// BeamGroups yields the beam groups of a measure, left to right.
//
// A run of consecutive beamable events (eighth and sixteenth notes) becomes
// a group when it holds at least two events. A rest, a longer note or the
// end of the measure closes the run. The beam hints stored on the events are
// not consulted.
func BeamGroups(m score.Measure) iter.Seq[BeamGroup] {
	return func(yield func(BeamGroup) bool) {
		start := -1
		for i, e := range m {
			if e.Beamable() {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 && i-start >= 2 {
				if !yield(BeamGroup{Start: start, End: i - 1}) {
					return
				}
			}
			start = -1
		}
		if start >= 0 && len(m)-start >= 2 {
			yield(BeamGroup{Start: start, End: len(m) - 1})
		}
	}
}

// Beams collects BeamGroups into a slice. The result is never nil.
func Beams(m score.Measure) []BeamGroup {
	groups := make([]BeamGroup, 0)
	for g := range BeamGroups(m) {
		groups = append(groups, g)
	}
	return groups
}

// BeamState is a MusicXML <beam> value for one event.
type BeamState string

const (
	BeamNone     BeamState = ""
	BeamBegin    BeamState = "begin"
	BeamContinue BeamState = "continue"
	BeamEnd      BeamState = "end"
)

// BeamStates returns one state per event in m.
func BeamStates(m score.Measure) []BeamState {
	states := make([]BeamState, len(m))
	for g := range BeamGroups(m) {
		states[g.Start] = BeamBegin
		for i := g.Start + 1; i < g.End; i++ {
			states[i] = BeamContinue
		}
		states[g.End] = BeamEnd
	}
	return states
}
