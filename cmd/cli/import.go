package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

var importKeepID bool

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Store score files (.json, .yaml or .yml) as songs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc simplenote.Service) error {
			var failed int
			for _, path := range args {
				s, err := score.ReadFile(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, err)
					failed++
					continue
				}
				warnDurations(cmd.ErrOrStderr(), path, s)
				if !importKeepID {
					s.ID = ""
				}
				if err := svc.SaveSong(cmd.Context(), s); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s -> %s\n", path, s.ID)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed to import", failed, len(args))
			}
			return nil
		})
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <song-id> <file>",
	Short: "Write a stored song to a score file; the extension picks JSON or YAML",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc simplenote.Service) error {
			s, err := svc.GetSong(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := score.WriteFile(args[1], s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[1])
			return nil
		})
	},
}

// warnDurations reports events whose duration has no notation name.
// Exports draw them as quarter notes. It returns the number reported.
func warnDurations(w io.Writer, path string, s *score.Score) int {
	n := 0
	for mi, m := range s.Measures {
		for ni, e := range m {
			if score.IsStandardDuration(e.Duration) {
				continue
			}
			fmt.Fprintf(w, "! %s: measure %d, index %d: duration %v exports as a quarter\n", path, mi+1, ni+1, e.Duration)
			n++
		}
	}
	return n
}

func init() {
	rootCmd.AddCommand(importCmd, dumpCmd)
	importCmd.Flags().BoolVar(&importKeepID, "keep-id", false, "Keep the id stored in the file, replacing any song with that id")
}
