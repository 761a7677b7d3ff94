package simplenote

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

func newTestService(t *testing.T, opts ...Option) (*noteService, *memStore, *fakeGenerator) {
	t.Helper()
	store := newMemStore()
	gen := &fakeGenerator{body: []byte("generated")}
	base := []Option{
		WithStorage(store),
		WithGenerator(gen),
		WithLogger(quietLogger()),
		WithOutputDir(t.TempDir()),
	}
	svc, err := NewService(append(base, opts...)...)
	require.NoError(t, err)
	return svc.(*noteService), store, gen
}

func TestSaveSongAssignsIDAndTimestamp(t *testing.T) {
	svc, store, _ := newTestService(t)
	fixed := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	s := &score.Score{Title: "A"}
	require.NoError(t, svc.SaveSong(context.Background(), s))

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, fixed, s.UpdatedAt)
	assert.Len(t, s.Measures, 1)
	assert.Contains(t, store.songs, s.ID)

	id := s.ID
	s.Title = "B"
	require.NoError(t, svc.SaveSong(context.Background(), s))
	assert.Equal(t, id, s.ID)
	assert.Len(t, store.songs, 1)
	assert.Equal(t, "B", store.songs[id].Title)
}

func TestSaveSongLeavesScoreUntouchedOnStoreError(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.putErr = errBoom

	s := &score.Score{Title: "A"}
	err := svc.SaveSong(context.Background(), s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBoom))
	assert.Empty(t, s.ID)
	assert.True(t, s.UpdatedAt.IsZero())
	assert.Empty(t, s.Measures)
	assert.Empty(t, store.songs)

	store.putErr = nil
	require.NoError(t, svc.SaveSong(context.Background(), s))
	assert.NotEmpty(t, s.ID)
	assert.Contains(t, store.songs, s.ID)
}

func TestGetAndDeleteSong(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	s := &score.Score{Title: "Keep", Measures: []score.Measure{{score.NewNote("C", 4, 2)}}}
	require.NoError(t, svc.SaveSong(ctx, s))

	got, err := svc.GetSong(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep", got.Title)

	require.NoError(t, svc.DeleteSong(ctx, s.ID))
	_, err = svc.GetSong(ctx, s.ID)
	assert.True(t, errors.Is(err, ErrSongNotFound))
}

func TestListSongsTreatsStoreErrorAsEmpty(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.listErr = errBoom

	songs, err := svc.ListSongs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, songs)
	assert.Empty(t, songs)
}

func TestPayloadAppliesDefaultsAndOptions(t *testing.T) {
	svc, _, _ := newTestService(t, WithSystemBreak(2), WithTempo(72))

	s := &score.Score{Measures: []score.Measure{{}, {}, {}}}
	p := svc.Payload(s)

	assert.Equal(t, DefaultTitle, p.Title)
	assert.Equal(t, DefaultArtist, p.Artist)
	assert.Empty(t, s.Title)
	require.Len(t, p.Measures, 3)
	assert.Equal(t, []bool{true, false, true}, []bool{p.Measures[0].NewSystem, p.Measures[1].NewSystem, p.Measures[2].NewSystem})
	assert.Equal(t, 72, p.Measures[2].BPM)

	svc2, _, _ := newTestService(t, WithDefaults("Draft", "Anon"))
	assert.Equal(t, "Draft", svc2.Payload(&score.Score{}).Title)
}

func TestExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	svc, _, gen := newTestService(t, WithOutputDir(dir), WithFormat(export.FormatMusicXML))

	s := &score.Score{Title: "Ode/Joy", Measures: []score.Measure{{score.NewNote("E", 4, 2)}}}
	res, err := svc.Export(context.Background(), s, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Ode_Joy.musicxml"), res.Path)
	assert.Equal(t, export.FormatMusicXML, res.Format)
	assert.Equal(t, len("generated"), res.Size)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "generated", string(data))

	require.Len(t, gen.calls, 1)
	assert.Equal(t, export.FormatMusicXML, gen.formats[0])
	assert.Equal(t, "Ode/Joy", gen.calls[0].Title)
}

func TestExportFailureLeavesScoreUntouched(t *testing.T) {
	svc, _, gen := newTestService(t)
	gen.err = errBoom

	s := &score.Score{Title: "Fragile", Measures: []score.Measure{{score.NewNote("C", 4, 1)}}}
	before := s.Clone()

	_, err := svc.Export(context.Background(), s, export.FormatMXL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExportFailed))
	assert.True(t, errors.Is(err, errBoom))
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, before, *s)

	gen.err = nil
	_, err = svc.Export(context.Background(), s, export.FormatMXL)
	assert.NoError(t, err)
}

func TestParseStyle(t *testing.T) {
	for in, want := range map[string]Style{"": StyleAll, "STAFF": StyleStaff, "simplified": StyleJianpu, "jianpu": StyleJianpu} {
		got, err := ParseStyle(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseStyle("tab")
	assert.True(t, errors.Is(err, ErrUnknownStyle))
}

func TestCloseClosesStorage(t *testing.T) {
	svc, store, _ := newTestService(t)
	require.NoError(t, svc.Close())
	assert.True(t, store.closed)
}
