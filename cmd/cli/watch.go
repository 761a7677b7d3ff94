package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/himanishpuri/SimpleNote/pkg/logger"
)

var (
	watchPattern string
	watchSettle  time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Re-render score files below dir whenever they change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := selectedFormat()
		if err != nil {
			return err
		}
		if !doublestar.ValidatePattern(watchPattern) {
			return fmt.Errorf("invalid pattern %q", watchPattern)
		}
		log := logger.GetLogger()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sw, err := newScoreWatcher(args[0], watchPattern, watchSettle, func(path string) {
			out, err := renderFile(path, format, exportOptions(), outputDir)
			if err != nil {
				log.Errorf("Render of %s failed: %v", path, err)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s -> %s\n", path, out)
		})
		if err != nil {
			return err
		}
		defer sw.Close()

		log.Infof("Watching %s for %s (Ctrl+C to stop)", args[0], watchPattern)
		return sw.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchPattern, "pattern", "p", DefaultScoreGlob, "Files to render, relative to dir")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 100*time.Millisecond, "Quiet period before a changed file is rendered")
}

// scoreWatcher calls handle for files below root that match pattern after
// they stop changing for the settle period. New subdirectories are
// watched as they appear.
type scoreWatcher struct {
	root    string
	pattern string
	settle  time.Duration
	handle  func(path string)

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	timers  map[string]*time.Timer
}

func newScoreWatcher(root, pattern string, settle time.Duration, handle func(string)) (*scoreWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	sw := &scoreWatcher{
		root:    filepath.Clean(root),
		pattern: pattern,
		settle:  settle,
		handle:  handle,
		watcher: w,
		timers:  make(map[string]*time.Timer),
	}
	if err := sw.addTree(sw.root); err != nil {
		_ = w.Close()
		return nil, err
	}
	return sw, nil
}

func (sw *scoreWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := sw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Run processes events until ctx is done or the watcher is closed.
func (sw *scoreWatcher) Run(ctx context.Context) error {
	log := logger.GetLogger()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return nil
			}
			sw.process(event)
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("Watcher error: %v", err)
		}
	}
}

func (sw *scoreWatcher) process(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := sw.addTree(event.Name); err != nil {
				logger.GetLogger().Warnf("%v", err)
			}
			return
		}
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !sw.matches(event.Name) {
		return
	}
	logger.GetLogger().Debugf("Change detected: %s", event)
	sw.schedule(event.Name)
}

func (sw *scoreWatcher) matches(path string) bool {
	rel, err := filepath.Rel(sw.root, path)
	if err != nil {
		return false
	}
	ok, err := doublestar.PathMatch(sw.pattern, rel)
	return err == nil && ok
}

// schedule restarts the settle timer for path. Editors often write a file
// in several steps, so only the last write triggers a render.
func (sw *scoreWatcher) schedule(path string) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if t, ok := sw.timers[path]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(sw.settle, func() {
		sw.mu.Lock()
		if sw.timers[path] == t {
			delete(sw.timers, path)
		}
		sw.mu.Unlock()
		sw.handle(path)
	})
	sw.timers[path] = t
}

// Close stops pending renders and releases the watcher.
func (sw *scoreWatcher) Close() error {
	sw.mu.Lock()
	for path, t := range sw.timers {
		t.Stop()
		delete(sw.timers, path)
	}
	sw.mu.Unlock()
	if err := sw.watcher.Close(); err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return err
	}
	return nil
}
