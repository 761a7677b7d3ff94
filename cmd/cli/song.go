package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/notation"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

var (
	newTitle    string
	newArtist   string
	newRights   string
	newComposer string
	newLyricist string
	newTrans    string
	newMeasures int

	listJSON   bool
	showJSON   bool
	showLayout bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty song and print its id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc simplenote.Service) error {
			sess := svc.NewSession()
			sess.SetTitle(newTitle)
			sess.SetArtist(newArtist)
			sess.SetRights(newRights)
			sess.SetCreators(score.Creators{Composer: newComposer, Lyricist: newLyricist, Translator: newTrans})
			for i := 1; i < newMeasures; i++ {
				sess.AddMeasure()
			}
			if err := sess.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.Score().ID)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored songs, most recently edited first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc simplenote.Service) error {
			songs, err := svc.ListSongs(cmd.Context())
			if err != nil {
				return err
			}
			if listJSON {
				return writeJSON(cmd.OutOrStdout(), songs)
			}
			printSongs(cmd.OutOrStdout(), songs)
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <song-id>",
	Short: "Print a song as a measure-by-measure listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc simplenote.Service) error {
			s, err := svc.GetSong(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			switch {
			case showLayout:
				return writeJSON(cmd.OutOrStdout(), notation.ScoreLayout(s))
			case showJSON:
				return writeJSON(cmd.OutOrStdout(), s)
			}
			printScore(cmd.OutOrStdout(), s)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <song-id>",
	Short: "Delete a stored song",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc simplenote.Service) error {
			if err := svc.DeleteSong(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted song %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(newCmd, listCmd, showCmd, deleteCmd)

	newCmd.Flags().StringVar(&newTitle, "title", "", "Song title")
	newCmd.Flags().StringVar(&newArtist, "artist", "", "Artist name")
	newCmd.Flags().StringVar(&newRights, "rights", "", "Copyright line")
	newCmd.Flags().StringVar(&newComposer, "composer", "", "Composer")
	newCmd.Flags().StringVar(&newLyricist, "lyricist", "", "Lyricist")
	newCmd.Flags().StringVar(&newTrans, "translator", "", "Translator")
	newCmd.Flags().IntVar(&newMeasures, "measures", 1, "Number of empty measures to start with")

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output the stored score as JSON")
	showCmd.Flags().BoolVar(&showLayout, "layout", false, "Output beam groups and slur pairs per measure")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSongs(w io.Writer, songs []score.Score) {
	if len(songs) == 0 {
		fmt.Fprintln(w, "No songs in database.")
		return
	}
	fmt.Fprintf(w, "%-36s  %-30s  %-20s  %s\n", "ID", "TITLE", "ARTIST", "MEASURES")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, s := range songs {
		fmt.Fprintf(w, "%-36s  %-30s  %-20s  %d\n",
			s.ID,
			truncate(orDefault(s.Title, simplenote.DefaultTitle), 30),
			truncate(orDefault(s.Artist, simplenote.DefaultArtist), 20),
			len(s.Measures))
	}
	fmt.Fprintf(w, "\nTotal: %d song(s)\n", len(songs))
}

// printScore lists every event with its beam and slur role. Jianpu digits
// are shown next to the staff pitch.
func printScore(w io.Writer, s *score.Score) {
	fmt.Fprintf(w, "%s - %s\n", orDefault(s.Title, simplenote.DefaultTitle), orDefault(s.Artist, simplenote.DefaultArtist))
	for _, l := range notation.ScoreLayout(s) {
		fmt.Fprintf(w, "\nMeasure %d\n", l.Number)
		beams := notation.BeamStates(l.Events)
		slurs := notation.SlurRoles(l.Events)
		for i, e := range l.Events {
			fmt.Fprintf(w, "  %2d  %-12s %-8s %s\n", i+1, describe(e), beams[i], slurMark(slurs[i]))
		}
	}
}

func describe(e score.Event) string {
	dots := strings.Repeat(".", e.Dotted)
	if e.IsRest() {
		return fmt.Sprintf("rest %s%s", e.XMLType(), dots)
	}
	acc := ""
	switch e.Alter {
	case 1:
		acc = "#"
	case -1:
		acc = "b"
	}
	return fmt.Sprintf("%s%s%d(%s) %s%s", e.Step, acc, e.SoundingOctave(), score.PitchNumber(e.Step), e.XMLType(), dots)
}

func slurMark(r notation.SlurRole) string {
	switch {
	case r.Start:
		return "("
	case r.Stop:
		return ")"
	}
	return ""
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// loadSession opens song id in a new session.
func loadSession(ctx context.Context, svc simplenote.Service, id string) (*simplenote.Session, error) {
	sess := svc.NewSession()
	if err := sess.Load(ctx, id); err != nil {
		return nil, err
	}
	return sess, nil
}
