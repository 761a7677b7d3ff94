package simplenote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/himanishpuri/SimpleNote/pkg/logger"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/generator"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
	"github.com/himanishpuri/SimpleNote/pkg/utils"
)

// noteService is the default implementation of the Service interface.
type noteService struct {
	storage   Storage
	generator Generator
	log       Logger
	config    *Config
	now       func() time.Time
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}
	if cfg.Format == "" {
		cfg.Format = export.FormatMXL
	}
	if cfg.Style == "" {
		cfg.Style = StyleAll
	}

	var stor Storage
	var err error
	if cfg.Storage != nil {
		stor = cfg.Storage
	} else {
		stor, err = NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	gen := cfg.Generator
	if gen == nil {
		gen = generator.NewClient(cfg.GeneratorURL, cfg.HTTPTimeout)
	}

	return &noteService{
		storage:   stor,
		generator: gen,
		log:       cfg.Logger,
		config:    cfg,
		now:       time.Now,
	}, nil
}

// ListSongs never fails on bad stored data: a store that cannot be read
// is logged and reported as holding no songs.
func (s *noteService) ListSongs(ctx context.Context) ([]score.Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	songs, err := s.storage.ListSongs(ctx)
	if err != nil {
		s.log.Warnf("Listing songs failed, treating store as empty: %v", err)
		return []score.Score{}, nil
	}
	return songs, nil
}

func (s *noteService) GetSong(ctx context.Context, id string) (*score.Score, error) {
	sc, err := s.storage.GetSong(ctx, id)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// SaveSong assigns an id on first save and stamps UpdatedAt on every save.
// sc is only changed once the store accepts it.
func (s *noteService) SaveSong(ctx context.Context, sc *score.Score) error {
	if sc == nil {
		return errors.New("score is nil")
	}
	stamped := *sc
	if stamped.ID == "" {
		stamped.ID = utils.GenerateUUID()
	}
	if len(stamped.Measures) == 0 {
		stamped.Measures = []score.Measure{{}}
	}
	stamped.UpdatedAt = s.now().UTC()

	if err := s.storage.PutSong(ctx, &stamped); err != nil {
		return fmt.Errorf("failed to save song: %w", err)
	}
	sc.ID = stamped.ID
	sc.Measures = stamped.Measures
	sc.UpdatedAt = stamped.UpdatedAt
	s.log.Infof("Saved song %s (%q, %d measures)", sc.ID, sc.Title, len(sc.Measures))
	return nil
}

func (s *noteService) DeleteSong(ctx context.Context, id string) error {
	if err := s.storage.DeleteSong(ctx, id); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	s.log.Infof("Deleted song %s", id)
	return nil
}

// Payload builds the export payload with blank metadata defaulted.
func (s *noteService) Payload(sc *score.Score) export.Payload {
	d := sc.WithDefaults(s.config.DefaultTitle, s.config.DefaultArtist)
	return export.Build(&d, s.config.exportOptions())
}

// Export sends the score to the generator and writes the result to the
// output directory as <title>.<format>. Failures wrap ErrExportFailed and
// leave the score untouched.
func (s *noteService) Export(ctx context.Context, sc *score.Score, format export.Format) (*ExportResult, error) {
	if format == "" {
		format = s.config.Format
	}
	p := s.Payload(sc)
	s.log.Infof("Exporting %q as %s (%d measures)", p.Title, format, len(p.Measures))

	data, err := s.generator.Generate(ctx, p, format)
	if err != nil {
		s.log.Errorf("Export of %q failed: %v", p.Title, err)
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	path, err := utils.WriteFile(s.config.OutputDir, generator.Filename(p.Title, format), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	s.log.Infof("Wrote %s (%d bytes)", path, len(data))
	return &ExportResult{Path: path, Format: format, Size: len(data)}, nil
}

func (s *noteService) NewSession() *Session {
	return newSession(s, s.config.Style)
}

func (s *noteService) Close() error {
	return s.storage.Close()
}
