package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	customlogger "github.com/himanishpuri/SimpleNote/pkg/logger"
)

const DefaultDBFile = "simplenote.sqlite3"
const errDBClientNil = "db client is nil"

var ErrSongNotFound = errors.New("song not found")

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

// Song is one stored score. Measures and Creators hold the JSON documents
// the editor works with, so the row never needs migrating when the note
// schema grows.
type Song struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title        string `gorm:"index:idx_song_meta,priority:1" json:"title"`
	Artist       string `gorm:"index:idx_song_meta,priority:2" json:"artist"`
	Creators     string `gorm:"type:text" json:"creators"`
	Rights       string `json:"rights"`
	Measures     string `gorm:"type:text;not null" json:"measures"`
	MeasureCount int    `json:"measure_count"`
	CreatedAt    time.Time
	UpdatedAt    time.Time `gorm:"index:idx_song_updated;autoUpdateTime:false"`
}

func NewDBClient() (*DBClient, error) {
	dbPath := os.Getenv("SIMPLENOTE_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewDBClientWithPath(dbPath)
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.New(
			customlogger.NewGormWriter(customlogger.GetLogger()),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_pragma=busy_timeout(5000)"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Song{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// PutSong inserts the song or replaces the row with the same id.
// CreatedAt is kept from the first insert.
func (c *DBClient) PutSong(song *Song) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	if song.ID == "" {
		return errors.New("song id is empty")
	}
	if song.UpdatedAt.IsZero() {
		song.UpdatedAt = time.Now()
	}
	if song.CreatedAt.IsZero() {
		song.CreatedAt = song.UpdatedAt
	}

	err := c.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "artist", "creators", "rights", "measures", "measure_count", "updated_at"}),
	}).Create(song).Error
	if err != nil {
		return fmt.Errorf("upserting song: %w", err)
	}
	return nil
}

func (c *DBClient) GetSong(id string) (*Song, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var song Song
	err := c.DB.Where("id = ?", id).First(&song).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying song: %w", err)
	}
	return &song, nil
}

// ListSongs returns every song, most recently updated first.
func (c *DBClient) ListSongs() ([]Song, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var songs []Song
	if err := c.DB.Order("updated_at DESC").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	return songs, nil
}

// DeleteSongByID removes the song. Deleting an unknown id is not an error.
func (c *DBClient) DeleteSongByID(id string) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	if err := c.DB.Where("id = ?", id).Delete(&Song{}).Error; err != nil {
		return fmt.Errorf("deleting song: %w", err)
	}
	return nil
}
