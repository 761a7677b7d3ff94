package simplenote

import (
	"fmt"
	"strings"
	"time"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

// Style selects which optional note fields an update may write. Staff
// notation uses accidentals and octave shifts, jianpu uses extension and
// reduction lines. StyleAll writes everything; the fields never exclude
// each other in the stored score.
type Style string

const (
	StyleAll    Style = "all"
	StyleStaff  Style = "staff"
	StyleJianpu Style = "jianpu"
)

func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleAll:
		return StyleAll, nil
	case StyleStaff, "standard":
		return StyleStaff, nil
	case StyleJianpu, "simplified", "numbered":
		return StyleJianpu, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

const (
	DefaultTitle  = score.DefaultTitle
	DefaultArtist = score.DefaultArtist
)

type Config struct {
	DBPath        string
	GeneratorURL  string
	HTTPTimeout   time.Duration
	Format        export.Format
	SystemBreak   int
	Tempo         int
	Style         Style
	OutputDir     string
	DefaultTitle  string
	DefaultArtist string
	Logger        Logger
	Storage       Storage
	Generator     Generator
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithGeneratorURL(url string) Option {
	return func(c *Config) {
		c.GeneratorURL = url
	}
}

func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = d
	}
}

func WithFormat(f export.Format) Option {
	return func(c *Config) {
		c.Format = f
	}
}

// WithSystemBreak sets how many measures go on one system.
func WithSystemBreak(every int) Option {
	return func(c *Config) {
		c.SystemBreak = every
	}
}

func WithTempo(bpm int) Option {
	return func(c *Config) {
		c.Tempo = bpm
	}
}

func WithStyle(s Style) Option {
	return func(c *Config) {
		c.Style = s
	}
}

func WithOutputDir(dir string) Option {
	return func(c *Config) {
		c.OutputDir = dir
	}
}

// WithDefaults sets the title and artist used when a song leaves them blank.
func WithDefaults(title, artist string) Option {
	return func(c *Config) {
		c.DefaultTitle = title
		c.DefaultArtist = artist
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithStorage(storage Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithGenerator replaces the HTTP generation client, e.g. with an
// in-process renderer.
func WithGenerator(g Generator) Option {
	return func(c *Config) {
		c.Generator = g
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:        "simplenote.sqlite3",
		HTTPTimeout:   30 * time.Second,
		Format:        export.FormatMXL,
		SystemBreak:   export.DefaultSystemBreak,
		Tempo:         export.DefaultTempo,
		Style:         StyleAll,
		OutputDir:     ".",
		DefaultTitle:  DefaultTitle,
		DefaultArtist: DefaultArtist,
	}
}

func (c *Config) exportOptions() export.Options {
	return export.Options{SystemBreak: c.SystemBreak, Tempo: c.Tempo}
}
