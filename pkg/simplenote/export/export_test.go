package export

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

func scoreWithMeasures(n int) *score.Score {
	s := &score.Score{Title: "Test"}
	for i := 0; i < n; i++ {
		s.Measures = append(s.Measures, score.Measure{score.NewNote("C", 4, 2)})
	}
	return s
}

func TestBuildSystemBreaks(t *testing.T) {
	p := Build(scoreWithMeasures(5), Options{SystemBreak: 4, Tempo: 120})

	flags := make([]bool, len(p.Measures))
	for i, m := range p.Measures {
		flags[i] = m.NewSystem
		assert.Equal(t, i+1, m.Number)
		assert.Equal(t, 120, m.BPM)
	}
	assert.Equal(t, []bool{true, false, false, false, true}, flags)
}

func TestBuildLengthAndNumbering(t *testing.T) {
	for _, k := range []int{1, 2, 3, 5, 7} {
		s := scoreWithMeasures(9)
		p := Build(s, Options{SystemBreak: k, Tempo: 90})
		require.Len(t, p.Measures, len(s.Measures))
		for i, m := range p.Measures {
			assert.Equal(t, i+1, m.Number)
			assert.Equal(t, i%k == 0, m.NewSystem, "k=%d i=%d", k, i)
		}
	}
}

func TestBuildNonPositiveBreak(t *testing.T) {
	p := Build(scoreWithMeasures(3), Options{SystemBreak: 0, Tempo: 60})
	assert.True(t, p.Measures[0].NewSystem)
	assert.False(t, p.Measures[1].NewSystem)
	assert.False(t, p.Measures[2].NewSystem)
}

func TestBuildDoesNotShareMemory(t *testing.T) {
	s := scoreWithMeasures(1)
	s.Creators = &score.Creators{Composer: "A"}
	p := Build(s, DefaultOptions())

	s.Measures[0][0].Step = "G"
	s.Creators.Composer = "B"

	assert.Equal(t, "C", p.Measures[0].Notes[0].Step)
	assert.Equal(t, "A", p.Creators.Composer)
}

func TestBuildEmptyScore(t *testing.T) {
	p := Build(&score.Score{Title: "Empty"}, DefaultOptions())
	assert.NotNil(t, p.Measures)
	assert.Empty(t, p.Measures)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Empty","measures":[]}`, string(data))
}

func TestPayloadJSONShape(t *testing.T) {
	s := &score.Score{
		Title:    "Song",
		Artist:   "Band",
		Rights:   "(c)",
		Measures: []score.Measure{{score.NewNote("E", 5, 1), score.NewRest(1)}, {}},
	}
	data, err := json.Marshal(Build(s, DefaultOptions()))
	require.NoError(t, err)

	var raw struct {
		Title    string `json:"title"`
		Artist   string `json:"artist"`
		Rights   string `json:"rights"`
		Measures []struct {
			Number    int              `json:"number"`
			BPM       int              `json:"bpm"`
			NewSystem bool             `json:"new_system"`
			Notes     []map[string]any `json:"notes"`
		} `json:"measures"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Band", raw.Artist)
	require.Len(t, raw.Measures, 2)
	assert.Equal(t, "eighth", raw.Measures[0].Notes[0]["xml_type"])
	assert.Equal(t, "rest", raw.Measures[0].Notes[1]["type"])
	assert.NotNil(t, raw.Measures[1].Notes)
}

func TestNormalize(t *testing.T) {
	raw := Payload{Measures: []MeasureRecord{{}, {Number: 7, BPM: 80}}}
	p := raw.Normalized()
	assert.Zero(t, raw.Measures[0].BPM)
	assert.Equal(t, 1, p.Measures[0].Number)
	assert.Equal(t, DefaultTempo, p.Measures[0].BPM)
	assert.NotNil(t, p.Measures[0].Notes)
	assert.Equal(t, 7, p.Measures[1].Number)
	assert.Equal(t, DefaultTempo, p.Tempo())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatMXL, f)

	f, err = ParseFormat("MusicXML")
	require.NoError(t, err)
	assert.Equal(t, FormatMusicXML, f)

	f, err = ParseFormat("midi")
	require.NoError(t, err)
	assert.Equal(t, FormatMIDI, f)
	assert.Equal(t, "audio/midi", f.ContentType())

	_, err = ParseFormat("pdf")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}
