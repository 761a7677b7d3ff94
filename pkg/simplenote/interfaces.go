package simplenote

import (
	"context"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

type Service interface {
	ListSongs(ctx context.Context) ([]score.Score, error)
	GetSong(ctx context.Context, id string) (*score.Score, error)
	SaveSong(ctx context.Context, s *score.Score) error
	DeleteSong(ctx context.Context, id string) error
	Payload(s *score.Score) export.Payload
	Export(ctx context.Context, s *score.Score, format export.Format) (*ExportResult, error)
	NewSession() *Session
	Close() error
}

// Storage is a key-value store of scores keyed by id. PutSong replaces
// any score with the same id.
type Storage interface {
	ListSongs(ctx context.Context) ([]score.Score, error)
	GetSong(ctx context.Context, id string) (*score.Score, error)
	PutSong(ctx context.Context, s *score.Score) error
	DeleteSong(ctx context.Context, id string) error
	Close() error
}

// Generator turns a payload into file bytes. Both the HTTP client and the
// in-process renderer implement it.
type Generator interface {
	Generate(ctx context.Context, p export.Payload, format export.Format) ([]byte, error)
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
