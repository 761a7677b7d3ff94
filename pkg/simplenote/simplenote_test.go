package simplenote

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/himanishpuri/SimpleNote/pkg/logger"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

// memStore keeps deep copies so tests catch accidental sharing.
type memStore struct {
	mu      sync.Mutex
	songs   map[string]score.Score
	listErr error
	putErr  error
	closed  bool
}

func newMemStore() *memStore {
	return &memStore{songs: map[string]score.Score{}}
}

func (m *memStore) ListSongs(ctx context.Context) ([]score.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]score.Score, 0, len(m.songs))
	for _, s := range m.songs {
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetSong(ctx context.Context, id string) (*score.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.songs[id]
	if !ok {
		return nil, ErrSongNotFound
	}
	c := s.Clone()
	return &c, nil
}

func (m *memStore) PutSong(ctx context.Context, s *score.Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.songs[s.ID] = s.Clone()
	return nil
}

func (m *memStore) DeleteSong(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.songs, id)
	return nil
}

func (m *memStore) Close() error {
	m.closed = true
	return nil
}

type fakeGenerator struct {
	calls   []export.Payload
	formats []export.Format
	err     error
	body    []byte
}

func (g *fakeGenerator) Generate(ctx context.Context, p export.Payload, f export.Format) ([]byte, error) {
	g.calls = append(g.calls, p)
	g.formats = append(g.formats, f)
	if g.err != nil {
		return nil, g.err
	}
	return g.body, nil
}

var errBoom = errors.New("boom")

func quietLogger() Logger {
	return logger.New(logger.Config{Level: logger.FATAL, Output: &bytes.Buffer{}})
}
