package score

import (
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationName(t *testing.T) {
	cases := map[float64]string{
		0.5: "16th",
		1:   "eighth",
		2:   "quarter",
		4:   "half",
		8:   "whole",
		3:   "quarter",
		99:  "quarter",
		0:   "quarter",
		-1:  "quarter",
	}
	for d, want := range cases {
		assert.Equal(t, want, DurationName(d), "duration %v", d)
		assert.Equal(t, DurationName(d), DurationName(d), "duration %v should map the same way twice", d)
	}
}

func TestTicksWithDots(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(16, Ticks(2, 0, 16))
	assert.Equal(24, Ticks(2, 1, 16))
	assert.Equal(28, Ticks(2, 2, 16))
	assert.Equal(4, Ticks(0.5, 0, 16))
	assert.Equal(6, Ticks(0.5, 1, 16))
	assert.Equal(64, Ticks(8, 0, 16))
	assert.Equal(0, Ticks(-2, 0, 16))
	assert.Equal(MaxTicks, Ticks(1e15, 0, 16))
	assert.Equal(MaxTicks, Ticks(math.Inf(1), 0, 480))
	assert.Equal(MaxTicks, NewNote("C", 4, 1e15).Ticks(480))
}

func TestXMLTypeFollowsDuration(t *testing.T) {
	e := NewNote("C", 4, 1)
	assert.Equal(t, "eighth", e.XMLType())

	e.Duration = 4
	assert.Equal(t, "half", e.XMLType())

	e.Duration = 7
	assert.Equal(t, "quarter", e.XMLType())
}

func TestEventJSONIgnoresIncomingXMLType(t *testing.T) {
	var e Event
	err := json.Unmarshal([]byte(`{"type":"note","step":"E","duration":0.5,"xml_type":"whole"}`), &e)
	require.NoError(t, err)

	assert.Equal(t, "16th", e.XMLType())
	assert.Equal(t, DefaultOctave, e.Octave)

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"xml_type":"16th"`)
}

func TestRestJSONHasNoPitchFields(t *testing.T) {
	r := NewRest(4)
	r.Dotted = 1

	out, err := json.Marshal(r)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `"type":"rest"`)
	assert.Contains(t, s, `"xml_type":"half"`)
	for _, field := range []string{"step", "alter", "octave", "octaveShift", "slur"} {
		assert.NotContains(t, s, `"`+field+`"`)
	}
}

func TestEventJSONDefaults(t *testing.T) {
	var e Event
	require.NoError(t, json.Unmarshal([]byte(`{"step":"G"}`), &e))

	assert.Equal(t, KindNote, e.Kind)
	assert.Equal(t, 2.0, e.Duration)
	assert.Equal(t, 4, e.Octave)
}

func TestNoteJSONKeepsMarkers(t *testing.T) {
	n := NewNote("A", 5, 1)
	n.Alter = -1
	n.OctaveShift = 1
	n.Slur = MarkerStart
	n.ExtendLine = 2

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var back Event
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, n, back)
}

func TestMeasureInsertRemove(t *testing.T) {
	m := Measure{NewNote("C", 4, 2), NewNote("E", 4, 2)}

	assert.True(t, m.Insert(1, NewNote("D", 4, 2)))
	assert.Equal(t, []string{"C", "D", "E"}, steps(m))

	assert.True(t, m.Insert(3, NewRest(2)))
	assert.False(t, m.Insert(9, NewRest(2)))
	assert.False(t, m.Insert(-1, NewRest(2)))
	assert.Len(t, m, 4)

	assert.True(t, m.Remove(0))
	assert.False(t, m.Remove(5))
	assert.Equal(t, []string{"D", "E", ""}, steps(m))
	assert.Equal(t, 3.0, m.QuarterLength())
}

func TestScoreEditing(t *testing.T) {
	s := New()
	require.Len(t, s.Measures, 1)

	s.AppendEvent(NewNote("C", 4, 2))
	s.AddMeasure()
	s.AppendEvent(NewNote("D", 4, 2))
	assert.Len(t, s.Measures[0], 1)
	assert.Len(t, s.Measures[1], 1)

	assert.True(t, s.DeleteMeasure(0))
	assert.False(t, s.DeleteMeasure(3))
	require.Len(t, s.Measures, 1)
	assert.Equal(t, "D", s.Measures[0][0].Step)

	assert.True(t, s.DeleteMeasure(0))
	s.AppendEvent(NewRest(8))
	require.Len(t, s.Measures, 1)
	assert.True(t, s.Measures[0][0].IsRest())

	e, ok := s.EventAt(0, 0)
	require.True(t, ok)
	e.Duration = 4
	assert.Equal(t, 4.0, s.Measures[0][0].Duration)

	_, ok = s.EventAt(0, 1)
	assert.False(t, ok)
	assert.False(t, s.DeleteEvent(2, 0))
	assert.True(t, s.DeleteEvent(0, 0))
	assert.Equal(t, 0, s.EventCount())
}

func TestCloneIsDeep(t *testing.T) {
	s := New()
	s.Creators = &Creators{Composer: "someone"}
	s.AppendEvent(NewNote("C", 4, 2))

	c := s.Clone()
	c.Measures[0][0].Step = "B"
	c.Creators.Composer = "other"

	assert.Equal(t, "C", s.Measures[0][0].Step)
	assert.Equal(t, "someone", s.Creators.Composer)
}

func TestWithDefaults(t *testing.T) {
	s := &Score{Title: "  ", Measures: []Measure{{}}}
	d := s.WithDefaults("Untitled", "Unknown")
	assert.Equal(t, "Untitled", d.Title)
	assert.Equal(t, "Unknown", d.Artist)
	assert.Equal(t, "  ", s.Title)

	s = &Score{Title: " Song ", Creators: &Creators{Lyricist: "L"}}
	d = s.WithDefaults("Untitled", "Unknown")
	assert.Equal(t, "Song", d.Title)
	assert.Empty(t, d.Artist)
}

func TestPitchHelpers(t *testing.T) {
	assert.Equal(t, "1", PitchNumber("C"))
	assert.Equal(t, "7", PitchNumber("B"))
	assert.Equal(t, "?", PitchNumber("H"))

	n := NewNote("C", 4, 2)
	key, ok := n.MIDIKey()
	require.True(t, ok)
	assert.Equal(t, 60, key)

	n.Alter = 1
	n.OctaveShift = -1
	key, _ = n.MIDIKey()
	assert.Equal(t, 49, key)
	assert.Equal(t, "sharp", n.AccidentalName())

	_, ok = NewRest(2).MIDIKey()
	assert.False(t, ok)
}

func TestYAMLFileRoundTrip(t *testing.T) {
	const doc = `
title: Twinkle
artist: Traditional
measures:
  - - {step: C, duration: 2}
    - {step: C, duration: 2, slur: start}
    - {type: rest, duration: 4}
  - []
`
	s, err := Decode(strings.NewReader(doc), EncodingYAML)
	require.NoError(t, err)
	require.Len(t, s.Measures, 2)
	assert.Equal(t, MarkerStart, s.Measures[0][1].Slur)
	assert.True(t, s.Measures[0][2].IsRest())
	assert.Equal(t, "half", s.Measures[0][2].XMLType())

	path := filepath.Join(t.TempDir(), "twinkle.yaml")
	require.NoError(t, WriteFile(path, s))

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, normalize(s.Measures), normalize(back.Measures))
	assert.Equal(t, "Twinkle", back.Title)
}

func TestDecodeEmptyScoreGetsMeasure(t *testing.T) {
	s, err := Decode(strings.NewReader(`{"title":"x"}`), EncodingJSON)
	require.NoError(t, err)
	assert.Len(t, s.Measures, 1)
	assert.Equal(t, EncodingYAML, EncodingFor("a/b.YML"))
	assert.Equal(t, EncodingJSON, EncodingFor("a/b.txt"))
}

func steps(m Measure) []string {
	out := make([]string, len(m))
	for i, e := range m {
		out[i] = e.Step
	}
	return out
}

// normalize turns nil measures into empty ones so decoded YAML compares equal.
func normalize(ms []Measure) []Measure {
	for i := range ms {
		if ms[i] == nil {
			ms[i] = Measure{}
		}
	}
	return ms
}
