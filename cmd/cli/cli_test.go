package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

const melody = `title: Ode
artist: Beethoven
measures:
  - - {step: E, duration: 1}
    - {step: E, duration: 1}
    - {step: F, duration: 1, slur: start}
    - {step: G, duration: 1, slur: stop}
    - {type: rest, duration: 4}
`

func writeScore(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(melody), 0o644))
	return path
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	a := writeScore(t, dir, "a.yaml")
	b := writeScore(t, dir, "nested/deep/b.json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	paths, err := expandInputs([]string{a}, filepath.Join(dir, DefaultScoreGlob))
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths)

	_, err = expandInputs(nil, filepath.Join(dir, "[unclosed"))
	assert.Error(t, err)
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	src := writeScore(t, dir, "ode to joy.yaml")
	out := filepath.Join(dir, "out")

	path, err := renderFile(src, export.FormatMusicXML, export.DefaultOptions(), out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "ode to joy.musicxml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "<score-partwise")
	assert.Contains(t, doc, "<work-title>Ode</work-title>")
	assert.Equal(t, 2, strings.Count(doc, `<beam number="1">begin</beam>`)+strings.Count(doc, `<beam number="1">end</beam>`))

	_, err = renderFile(filepath.Join(dir, "missing.yaml"), export.FormatMIDI, export.DefaultOptions(), out)
	assert.Error(t, err)
}

func TestWarnDurations(t *testing.T) {
	s := &score.Score{Measures: []score.Measure{
		{score.NewNote("C", 4, 2), score.NewNote("D", 4, 3)},
		{score.NewRest(8), score.NewRest(0.25)},
	}}

	var buf bytes.Buffer
	assert.Equal(t, 2, warnDurations(&buf, "odd.yaml", s))
	assert.Contains(t, buf.String(), "odd.yaml: measure 1, index 2: duration 3")
	assert.Contains(t, buf.String(), "measure 2, index 2: duration 0.25")

	buf.Reset()
	s, err := score.ReadFile(writeScore(t, t.TempDir(), "ode.yaml"))
	require.NoError(t, err)
	assert.Zero(t, warnDurations(&buf, "ode.yaml", s))
	assert.Empty(t, buf.String())
}

func TestBuildUpdate(t *testing.T) {
	cmd := &cobra.Command{}
	registerUpdateFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--step", "g", "--alter", "-1", "--slur", "none", "--tie-start"}))

	u, err := buildUpdate(cmd)
	require.NoError(t, err)
	require.NotNil(t, u.Step)
	require.NotNil(t, u.Alter)
	require.NotNil(t, u.Slur)
	require.NotNil(t, u.TieStart)
	assert.Equal(t, "g", *u.Step)
	assert.Equal(t, -1, *u.Alter)
	assert.Equal(t, score.MarkerNone, *u.Slur)
	assert.True(t, *u.TieStart)
	assert.Nil(t, u.Octave)
	assert.Nil(t, u.Duration)
	assert.Nil(t, u.Kind)

	bad := &cobra.Command{}
	registerUpdateFlags(bad)
	require.NoError(t, bad.ParseFlags([]string{"--slur", "sideways"}))
	_, err = buildUpdate(bad)
	assert.Error(t, err)
}

func TestPosition(t *testing.T) {
	n, err := position("3", "measure")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, arg := range []string{"0", "-1", "x"} {
		_, err := position(arg, "measure")
		assert.Error(t, err, arg)
	}
}

func TestScoreWatcherRendersOnWrite(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan string, 4)

	sw, err := newScoreWatcher(dir, DefaultScoreGlob, 20*time.Millisecond, func(path string) {
		changed <- path
	})
	require.NoError(t, err)
	defer sw.Close()

	ctx := t.Context()
	go sw.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	path := writeScore(t, dir, "song.yaml")

	select {
	case got := <-changed:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no render after writing a score file")
	}
}

func TestCommandsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "songs.sqlite3")
	out := filepath.Join(dir, "exports")

	run := func(args ...string) string {
		t.Helper()
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetErr(&buf)
		rootCmd.SetArgs(append([]string{"--quiet", "--db", db}, args...))
		require.NoError(t, rootCmd.Execute(), buf.String())
		return buf.String()
	}

	id := strings.TrimSpace(run("new", "--title", "Scale", "--artist", "Me"))
	require.NotEmpty(t, id)

	run("note", "add", id, "--step", "C", "--duration", "1")
	run("note", "add", id, "--step", "D", "--duration", "1")
	run("note", "rest", id, "--duration", "2")
	run("note", "update", id, "1", "1", "--slur", "start")

	var s score.Score
	require.NoError(t, json.Unmarshal([]byte(run("show", id, "--json")), &s))
	require.Len(t, s.Measures, 1)
	require.Len(t, s.Measures[0], 3)
	assert.Equal(t, score.MarkerStart, s.Measures[0][0].Slur)
	assert.True(t, s.Measures[0][2].IsRest())

	assert.Contains(t, run("list"), "Scale")

	run("--local", "--format", "musicxml", "--output", out, "export", id)
	data, err := os.ReadFile(filepath.Join(out, "Scale.musicxml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<work-title>Scale</work-title>")
}
