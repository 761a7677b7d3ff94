package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/himanishpuri/SimpleNote/pkg/logger"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/render"
)

// Global flags
var (
	dbPath       string
	generatorURL string
	outputDir    string
	formatName   string
	styleName    string
	systemBreak  int
	tempo        int
	timeout      time.Duration
	useLocal     bool
	verbose      bool
	quiet        bool
)

var rootCmd = &cobra.Command{
	Use:   "simplenote",
	Short: "Edit monophonic scores and export them as MusicXML, MXL or MIDI",
	Long: `SimpleNote keeps single-line melodies in a local SQLite database.
Songs are edited measure by measure and exported through a generation
service, or rendered in-process with --local.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log := logger.GetLogger()
		if verbose {
			log.SetLevel(logger.DEBUG)
		}
		if !quiet {
			printBanner(cmd.ErrOrStderr())
		}
		log.Debugf("Executing command: %s", cmd.CommandPath())
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// .env is optional
	_ = godotenv.Load()

	f := rootCmd.PersistentFlags()
	f.StringVar(&dbPath, "db", getEnvOrDefault("SIMPLENOTE_DB_PATH", "simplenote.sqlite3"), "Path to the SQLite database file")
	f.StringVar(&generatorURL, "generator", getEnvOrDefault("SIMPLENOTE_GENERATOR_URL", ""), "Base URL of the generation service")
	f.StringVarP(&outputDir, "output", "o", getEnvOrDefault("SIMPLENOTE_OUTPUT_DIR", "."), "Directory for exported files")
	f.StringVarP(&formatName, "format", "f", getEnvOrDefault("SIMPLENOTE_FORMAT", string(export.FormatMXL)), "Export format: mxl, musicxml or mid")
	f.StringVar(&styleName, "style", getEnvOrDefault("SIMPLENOTE_STYLE", string(simplenote.StyleAll)), "Notation style for edits: all, staff or jianpu")
	f.IntVar(&systemBreak, "system-break", getEnvInt("SIMPLENOTE_SYSTEM_BREAK", export.DefaultSystemBreak), "Measures per system")
	f.IntVar(&tempo, "tempo", getEnvInt("SIMPLENOTE_TEMPO", export.DefaultTempo), "Tempo in beats per minute")
	f.DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for generation requests")
	f.BoolVar(&useLocal, "local", false, "Render files in-process instead of calling the generation service")
	f.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	f.BoolVarP(&quiet, "quiet", "q", false, "Do not print the banner")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func selectedFormat() (export.Format, error) {
	return export.ParseFormat(formatName)
}

func exportOptions() export.Options {
	return export.Options{SystemBreak: systemBreak, Tempo: tempo}
}

// createService creates a SimpleNote service from the global flags.
func createService() (simplenote.Service, error) {
	format, err := selectedFormat()
	if err != nil {
		return nil, err
	}
	style, err := simplenote.ParseStyle(styleName)
	if err != nil {
		return nil, err
	}

	opts := []simplenote.Option{
		simplenote.WithDBPath(dbPath),
		simplenote.WithOutputDir(outputDir),
		simplenote.WithFormat(format),
		simplenote.WithStyle(style),
		simplenote.WithSystemBreak(systemBreak),
		simplenote.WithTempo(tempo),
		simplenote.WithHTTPTimeout(timeout),
	}
	if useLocal {
		opts = append(opts, simplenote.WithGenerator(render.NewLocal()))
	} else if generatorURL != "" {
		opts = append(opts, simplenote.WithGeneratorURL(generatorURL))
	}

	svc, err := simplenote.NewService(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

// withService runs fn against a fresh service and closes it afterwards.
func withService(fn func(svc simplenote.Service) error) error {
	svc, err := createService()
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(svc)
}
