package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

// Measure and note positions on the command line are 1-based.

var (
	noteMeasure  int
	noteAt       int
	noteStep     string
	noteOctave   int
	noteDuration float64
	noteDotted   int
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Add or delete measures of a stored song",
}

var measureAddCmd = &cobra.Command{
	Use:   "add <song-id>",
	Short: "Append an empty measure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editSong(cmd, args[0], func(sess *simplenote.Session) error {
			n := sess.AddMeasure() + 1
			fmt.Fprintf(cmd.OutOrStdout(), "Added measure %d\n", n)
			return nil
		})
	},
}

var measureDeleteCmd = &cobra.Command{
	Use:   "delete <song-id> <measure>",
	Short: "Delete a measure and the events in it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mi, err := position(args[1], "measure")
		if err != nil {
			return err
		}
		return editSong(cmd, args[0], func(sess *simplenote.Session) error {
			if !sess.DeleteMeasure(mi) {
				return fmt.Errorf("measure %s does not exist", args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted measure %s\n", args[1])
			return nil
		})
	},
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Add, change or delete notes and rests of a stored song",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <song-id>",
	Short: "Add a note to the last measure, or at --measure/--at",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		step := strings.ToUpper(strings.TrimSpace(noteStep))
		if !score.IsStep(step) {
			return fmt.Errorf("invalid step %q: want one of C D E F G A B", noteStep)
		}
		e := score.NewNote(step, noteOctave, noteDuration)
		e.Dotted = max(noteDotted, 0)
		return addEvent(cmd, args[0], e)
	},
}

var noteRestCmd = &cobra.Command{
	Use:   "rest <song-id>",
	Short: "Add a rest to the last measure, or at --measure/--at",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := score.NewRest(noteDuration)
		e.Dotted = max(noteDotted, 0)
		return addEvent(cmd, args[0], e)
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <song-id> <measure> <index>",
	Short: "Delete one event",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := selection(args[1], args[2])
		if err != nil {
			return err
		}
		return editSong(cmd, args[0], func(sess *simplenote.Session) error {
			if !sess.Select(sel.Measure, sel.Index) || !sess.DeleteSelected() {
				return fmt.Errorf("no event at measure %s, index %s", args[1], args[2])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted event")
			return nil
		})
	},
}

var noteUpdateCmd = &cobra.Command{
	Use:   "update <song-id> <measure> <index>",
	Short: "Change fields of one event; only the flags given are applied",
	Long: `Change fields of one event. Only flags that are given are applied.
Under --style staff the --extend and --reduce flags are ignored; under
--style jianpu --alter and --octave-shift are.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := selection(args[1], args[2])
		if err != nil {
			return err
		}
		u, err := buildUpdate(cmd)
		if err != nil {
			return err
		}
		return editSong(cmd, args[0], func(sess *simplenote.Session) error {
			if !sess.Select(sel.Measure, sel.Index) || !sess.UpdateSelected(u) {
				return fmt.Errorf("no event at measure %s, index %s", args[1], args[2])
			}
			e, _ := sess.Selected()
			fmt.Fprintf(cmd.OutOrStdout(), "Updated event: %s\n", describe(e))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(measureCmd, noteCmd)
	measureCmd.AddCommand(measureAddCmd, measureDeleteCmd)
	noteCmd.AddCommand(noteAddCmd, noteRestCmd, noteDeleteCmd, noteUpdateCmd)

	for _, c := range []*cobra.Command{noteAddCmd, noteRestCmd} {
		c.Flags().IntVar(&noteMeasure, "measure", 0, "Measure to add to (default: last)")
		c.Flags().IntVar(&noteAt, "at", 0, "Position within the measure (default: end)")
		c.Flags().Float64VarP(&noteDuration, "duration", "d", 2, "Duration in eighths: 0.5, 1, 2, 4 or 8")
		c.Flags().IntVar(&noteDotted, "dotted", 0, "Number of augmentation dots")
	}
	noteAddCmd.Flags().StringVarP(&noteStep, "step", "s", "C", "Pitch step (C-B)")
	noteAddCmd.Flags().IntVar(&noteOctave, "octave", score.DefaultOctave, "Octave")

	registerUpdateFlags(noteUpdateCmd)
}

func registerUpdateFlags(c *cobra.Command) {
	f := c.Flags()
	f.String("type", "", "Change to a note or a rest")
	f.StringP("step", "s", "", "Pitch step (C-B)")
	f.Int("alter", 0, "Accidental: -1 flat, 0 natural, 1 sharp")
	f.Int("octave", 0, "Octave")
	f.Int("octave-shift", 0, "Octave shift: -1, 0 or 1")
	f.Float64P("duration", "d", 0, "Duration in eighths")
	f.Int("dotted", 0, "Number of augmentation dots")
	f.Int("extend", 0, "Jianpu extension lines")
	f.Int("reduce", 0, "Jianpu reduction lines")
	f.String("slur", "", "Slur marker: start, stop or none")
	f.String("beam", "", "Beam hint: start, stop or none")
	f.Bool("tie-start", false, "Start a tie")
	f.Bool("tie-stop", false, "Stop a tie")
	f.String("stem", "", "Stem direction: up or down")
	f.String("lyric", "", "Lyric syllable")
}

// editSong loads a song, runs fn on it and saves it when fn succeeds.
func editSong(cmd *cobra.Command, id string, fn func(sess *simplenote.Session) error) error {
	return withService(func(svc simplenote.Service) error {
		sess, err := loadSession(cmd.Context(), svc, id)
		if err != nil {
			return err
		}
		style, err := simplenote.ParseStyle(styleName)
		if err != nil {
			return err
		}
		sess.SetStyle(style)
		if err := fn(sess); err != nil {
			return err
		}
		return sess.Save(cmd.Context())
	})
}

func addEvent(cmd *cobra.Command, id string, e score.Event) error {
	if noteDuration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", noteDuration)
	}
	if !score.IsStandardDuration(noteDuration) {
		fmt.Fprintf(cmd.ErrOrStderr(), "! duration %v exports as a quarter\n", noteDuration)
	}
	return editSong(cmd, id, func(sess *simplenote.Session) error {
		if noteMeasure == 0 && noteAt == 0 {
			sel := sess.AppendEvent(e)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s at measure %d, index %d\n", describe(e), sel.Measure+1, sel.Index+1)
			return nil
		}

		mi := len(sess.Score().Measures) - 1
		if noteMeasure > 0 {
			mi = noteMeasure - 1
		}
		if mi < 0 || mi >= len(sess.Score().Measures) {
			return fmt.Errorf("measure %d does not exist", noteMeasure)
		}
		ni := len(sess.Score().Measures[mi])
		if noteAt > 0 {
			ni = noteAt - 1
		}
		if !sess.InsertEvent(mi, ni, e) {
			return fmt.Errorf("cannot insert at measure %d, index %d", mi+1, ni+1)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s at measure %d, index %d\n", describe(e), mi+1, ni+1)
		return nil
	})
}

// position converts a 1-based argument to a 0-based index.
func position(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q: want a number from 1", what, arg)
	}
	return n - 1, nil
}

func selection(measure, index string) (simplenote.Selection, error) {
	mi, err := position(measure, "measure")
	if err != nil {
		return simplenote.Selection{}, err
	}
	ni, err := position(index, "index")
	if err != nil {
		return simplenote.Selection{}, err
	}
	return simplenote.Selection{Measure: mi, Index: ni}, nil
}

// buildUpdate turns the flags that were set on cmd into an EventUpdate.
func buildUpdate(cmd *cobra.Command) (simplenote.EventUpdate, error) {
	var u simplenote.EventUpdate
	f := cmd.Flags()

	if f.Changed("type") {
		v, _ := f.GetString("type")
		k := score.Kind(strings.ToLower(v))
		if k != score.KindNote && k != score.KindRest {
			return u, fmt.Errorf("invalid type %q: want note or rest", v)
		}
		u.Kind = &k
	}
	if f.Changed("step") {
		v, _ := f.GetString("step")
		if !score.IsStep(strings.ToUpper(strings.TrimSpace(v))) {
			return u, fmt.Errorf("invalid step %q: want one of C D E F G A B", v)
		}
		u.Step = &v
	}
	if f.Changed("duration") {
		v, _ := f.GetFloat64("duration")
		if v <= 0 {
			return u, fmt.Errorf("duration must be positive, got %v", v)
		}
		u.Duration = &v
	}
	for name, dst := range map[string]**int{
		"alter":        &u.Alter,
		"octave":       &u.Octave,
		"octave-shift": &u.OctaveShift,
		"dotted":       &u.Dotted,
		"extend":       &u.ExtendLine,
		"reduce":       &u.ReduceLine,
	} {
		if f.Changed(name) {
			v, _ := f.GetInt(name)
			*dst = &v
		}
	}
	for name, dst := range map[string]**score.Marker{
		"slur": &u.Slur,
		"beam": &u.Beam,
	} {
		if !f.Changed(name) {
			continue
		}
		v, _ := f.GetString(name)
		m, err := parseMarker(v)
		if err != nil {
			return u, fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = &m
	}
	for name, dst := range map[string]**bool{
		"tie-start": &u.TieStart,
		"tie-stop":  &u.TieStop,
	} {
		if f.Changed(name) {
			v, _ := f.GetBool(name)
			*dst = &v
		}
	}
	for name, dst := range map[string]**string{
		"stem":  &u.Stem,
		"lyric": &u.Lyric,
	} {
		if f.Changed(name) {
			v, _ := f.GetString(name)
			*dst = &v
		}
	}
	return u, nil
}

func parseMarker(s string) (score.Marker, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return score.MarkerNone, nil
	case "start":
		return score.MarkerStart, nil
	case "stop":
		return score.MarkerStop, nil
	}
	return "", fmt.Errorf("%q: want start, stop or none", s)
}
