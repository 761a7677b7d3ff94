package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/himanishpuri/SimpleNote/pkg/logger"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/render"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
	"github.com/himanishpuri/SimpleNote/pkg/utils"
)

// DefaultScoreGlob matches score files anywhere below a directory.
const DefaultScoreGlob = "**/*.{json,yaml,yml}"

var renderGlob string

var renderCmd = &cobra.Command{
	Use:   "render [file]...",
	Short: "Render score files in-process without touching the database",
	Long: `Render score files to MusicXML, MXL or MIDI without the database or
the generation service. Each output is named after its input file and
written to --output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := selectedFormat()
		if err != nil {
			return err
		}
		paths, err := expandInputs(args, renderGlob)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no score files given; pass files or --glob")
		}

		var failed int
		for _, path := range paths {
			out, err := renderFile(path, format, exportOptions(), outputDir)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s -> %s\n", path, out)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) failed to render", failed, len(paths))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderGlob, "glob", "g", "", "Also render files matching this pattern, e.g. 'scores/"+DefaultScoreGlob+"'")
}

// expandInputs merges explicit paths with the matches of pattern. The
// result is sorted and free of duplicates.
func expandInputs(args []string, pattern string) ([]string, error) {
	paths := slices.Clone(args)
	if pattern != "" {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	for i, p := range paths {
		paths[i] = filepath.Clean(p)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// renderFile reads one score file, renders it and writes the result into
// dir. It returns the path written.
func renderFile(path string, format export.Format, opts export.Options, dir string) (string, error) {
	s, err := score.ReadFile(path)
	if err != nil {
		return "", err
	}
	d := s.WithDefaults(simplenote.DefaultTitle, simplenote.DefaultArtist)
	data, err := render.Render(export.Build(&d, opts), format)
	if err != nil {
		return "", fmt.Errorf("%w: %w", simplenote.ErrExportFailed, err)
	}

	out, err := utils.WriteFile(dir, outputName(path, format), data)
	if err != nil {
		return "", err
	}
	logger.GetLogger().Debugf("Rendered %s (%d bytes)", out, len(data))
	return out, nil
}

func outputName(path string, format export.Format) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return utils.SafeFilename(base) + "." + format.Ext()
}
