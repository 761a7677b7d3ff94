package simplenote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/himanishpuri/SimpleNote/pkg/logger"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/storage"
)

// storageAdapter adapts the storage.DBClient to implement the Storage interface.
type storageAdapter struct {
	db  *storage.DBClient
	log Logger
}

// NewSQLiteStorage creates a new SQLite storage backend. An empty path
// falls back to SIMPLENOTE_DB_PATH, then to the default file.
func NewSQLiteStorage(dbPath string) (Storage, error) {
	var db *storage.DBClient
	var err error
	if dbPath == "" {
		db, err = storage.NewDBClient()
	} else {
		db, err = storage.NewDBClientWithPath(dbPath)
	}
	if err != nil {
		return nil, err
	}
	return &storageAdapter{db: db, log: logger.GetLogger().WithPrefix("[store]")}, nil
}

// ListSongs skips rows whose stored measures cannot be decoded.
func (s *storageAdapter) ListSongs(ctx context.Context) ([]score.Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.ListSongs()
	if err != nil {
		return nil, err
	}

	songs := make([]score.Score, 0, len(rows))
	for i := range rows {
		sc, err := fromRow(&rows[i])
		if err != nil {
			s.log.Warnf("Skipping unreadable song %s: %v", rows[i].ID, err)
			continue
		}
		songs = append(songs, *sc)
	}
	return songs, nil
}

// GetSong reports unreadable stored data as ErrSongNotFound.
func (s *storageAdapter) GetSong(ctx context.Context, id string) (*score.Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := s.db.GetSong(id)
	if err != nil {
		return nil, err
	}
	sc, err := fromRow(row)
	if err != nil {
		s.log.Warnf("Song %s is unreadable: %v", id, err)
		return nil, fmt.Errorf("%w: %s", ErrSongNotFound, id)
	}
	return sc, nil
}

func (s *storageAdapter) PutSong(ctx context.Context, sc *score.Score) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row, err := toRow(sc)
	if err != nil {
		return err
	}
	return s.db.PutSong(row)
}

func (s *storageAdapter) DeleteSong(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.DeleteSongByID(id)
}

func (s *storageAdapter) Close() error {
	return s.db.Close()
}

func toRow(sc *score.Score) (*storage.Song, error) {
	measures := sc.Measures
	if measures == nil {
		measures = []score.Measure{}
	}
	m, err := json.Marshal(measures)
	if err != nil {
		return nil, fmt.Errorf("encoding measures: %w", err)
	}

	row := &storage.Song{
		ID:           sc.ID,
		Title:        sc.Title,
		Artist:       sc.Artist,
		Rights:       sc.Rights,
		Measures:     string(m),
		MeasureCount: len(measures),
		UpdatedAt:    sc.UpdatedAt,
	}
	if !sc.Creators.IsZero() {
		c, err := json.Marshal(sc.Creators)
		if err != nil {
			return nil, fmt.Errorf("encoding creators: %w", err)
		}
		row.Creators = string(c)
	}
	return row, nil
}

func fromRow(row *storage.Song) (*score.Score, error) {
	sc := &score.Score{
		ID:        row.ID,
		Title:     row.Title,
		Artist:    row.Artist,
		Rights:    row.Rights,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Measures == "" {
		return nil, errors.New("no measures stored")
	}
	if err := json.Unmarshal([]byte(row.Measures), &sc.Measures); err != nil {
		return nil, fmt.Errorf("decoding measures: %w", err)
	}
	if len(sc.Measures) == 0 {
		sc.Measures = []score.Measure{{}}
	}
	for i, m := range sc.Measures {
		if m == nil {
			sc.Measures[i] = score.Measure{}
		}
	}
	if row.Creators != "" {
		var c score.Creators
		if err := json.Unmarshal([]byte(row.Creators), &c); err != nil {
			return nil, fmt.Errorf("decoding creators: %w", err)
		}
		sc.Creators = &c
	}
	return sc, nil
}
