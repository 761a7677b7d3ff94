package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

func note(step string, d float64) score.Event { return score.NewNote(step, 4, d) }

func slurred(step string, m score.Marker) score.Event {
	e := note(step, 2)
	e.Slur = m
	return e
}

func TestBeamGroupsStopsAtLongNote(t *testing.T) {
	m := score.Measure{note("C", 1), note("D", 1), note("E", 2)}
	assert.Equal(t, []BeamGroup{{Start: 0, End: 1}}, Beams(m))
}

func TestBeamGroupsRunAtMeasureEnd(t *testing.T) {
	m := score.Measure{note("C", 2), note("D", 0.5), note("E", 1), note("F", 0.5)}
	assert.Equal(t, []BeamGroup{{Start: 1, End: 3}}, Beams(m))
}

func TestBeamGroupsSplitByRest(t *testing.T) {
	m := score.Measure{
		note("C", 1), note("D", 1),
		score.NewRest(1),
		note("E", 1),
		score.NewRest(1),
		note("F", 0.5), note("G", 0.5),
	}
	assert.Equal(t, []BeamGroup{{Start: 0, End: 1}, {Start: 5, End: 6}}, Beams(m))
}

func TestBeamGroupsIgnoreHints(t *testing.T) {
	a, b := note("C", 2), note("D", 2)
	a.Beam = score.MarkerStart
	b.Beam = score.MarkerStop
	assert.Empty(t, Beams(score.Measure{a, b}))
}

func TestBeamGroupsNone(t *testing.T) {
	assert.Empty(t, Beams(score.Measure{note("C", 0.5)}))
	assert.Empty(t, Beams(nil))
	assert.NotNil(t, Beams(nil))
}

func TestBeamGroupsProperties(t *testing.T) {
	m := score.Measure{
		note("C", 1), note("D", 0.5), note("E", 4), note("F", 1),
		note("G", 1), score.NewRest(0.5), note("A", 0.5), note("B", 0.5), note("C", 1),
	}
	groups := Beams(m)
	require.Len(t, groups, 3)

	prevEnd := -1
	for _, g := range groups {
		assert.GreaterOrEqual(t, g.Len(), 2)
		assert.Greater(t, g.Start, prevEnd)
		for i := g.Start; i <= g.End; i++ {
			assert.True(t, m[i].Beamable(), "index %d", i)
		}
		prevEnd = g.End
	}
}

func TestBeamGroupsEarlyBreak(t *testing.T) {
	m := score.Measure{note("C", 1), note("D", 1), score.NewRest(2), note("E", 1), note("F", 1)}
	n := 0
	for range BeamGroups(m) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestBeamStates(t *testing.T) {
	m := score.Measure{note("C", 1), note("D", 1), note("E", 1), note("F", 2)}
	assert.Equal(t, []BeamState{BeamBegin, BeamContinue, BeamEnd, BeamNone}, BeamStates(m))
}

func TestSlurPairsBasic(t *testing.T) {
	m := score.Measure{slurred("C", score.MarkerStart), note("D", 2), slurred("E", score.MarkerStop)}
	assert.Equal(t, []SlurPair{{Start: 0, Stop: 2}}, SlurPairs(m))
}

func TestSlurPairsUnmatched(t *testing.T) {
	m := score.Measure{slurred("C", score.MarkerStop), slurred("D", score.MarkerStart), note("E", 2)}
	assert.Empty(t, SlurPairs(m))
	assert.NotNil(t, SlurPairs(m))
}

func TestSlurPairsStopUsedOnce(t *testing.T) {
	m := score.Measure{
		slurred("C", score.MarkerStart),
		slurred("D", score.MarkerStart),
		slurred("E", score.MarkerStop),
		slurred("F", score.MarkerStart),
		slurred("G", score.MarkerStop),
	}
	pairs := SlurPairs(m)
	assert.Equal(t, []SlurPair{{Start: 0, Stop: 2}, {Start: 3, Stop: 4}}, pairs)

	seen := map[int]bool{}
	for _, p := range pairs {
		assert.Less(t, p.Start, p.Stop)
		assert.Equal(t, score.MarkerStart, m[p.Start].Slur)
		assert.Equal(t, score.MarkerStop, m[p.Stop].Slur)
		assert.False(t, seen[p.Stop])
		seen[p.Stop] = true
	}
}

func TestSlurRoles(t *testing.T) {
	m := score.Measure{slurred("C", score.MarkerStart), note("D", 2), slurred("E", score.MarkerStop), slurred("F", score.MarkerStop)}
	roles := SlurRoles(m)
	assert.Equal(t, []SlurRole{{Start: true}, {}, {Stop: true}, {}}, roles)
}

func TestScoreLayout(t *testing.T) {
	s := score.New()
	s.AppendEvent(note("C", 1))
	s.AppendEvent(note("D", 1))
	s.AddMeasure()
	s.AppendEvent(slurred("E", score.MarkerStart))
	s.AppendEvent(slurred("F", score.MarkerStop))

	layouts := ScoreLayout(s)
	require.Len(t, layouts, 2)
	assert.Equal(t, 1, layouts[0].Number)
	assert.Equal(t, []BeamGroup{{0, 1}}, layouts[0].Beams)
	assert.Empty(t, layouts[0].Slurs)
	assert.Equal(t, []SlurPair{{0, 1}}, layouts[1].Slurs)

	layouts[1].Events[0].Step = "A"
	assert.Equal(t, "E", s.Measures[1][0].Step)
}
