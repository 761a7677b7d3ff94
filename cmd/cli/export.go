package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote"
)

var exportCmd = &cobra.Command{
	Use:   "export <song-id>...",
	Short: "Export stored songs through the generation service",
	Long: `Export stored songs to --output as <title>.<format>. Files are produced by
the generation service at --generator, or in-process with --local.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := selectedFormat()
		if err != nil {
			return err
		}
		return withService(func(svc simplenote.Service) error {
			var failed int
			for _, id := range args {
				s, err := svc.GetSong(cmd.Context(), id)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", id, err)
					failed++
					continue
				}
				res, err := svc.Export(cmd.Context(), s, format)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", id, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s -> %s (%d bytes)\n", id, res.Path, res.Size)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d export(s) failed", failed, len(args))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
