package memory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notekeeper/pkg/core"
)

// DebounceWindow groups bursts of file events into a single reload.
const DebounceWindow = 50 * time.Millisecond

// WatchSeed reloads store from the files matching pattern whenever one of them
// is written, created, removed or renamed. Every successful reload replaces the
// store contents and sends one RESET event. A reload that fails to parse is
// logged and the previous contents are kept.
//
// The returned channel is closed once ctx is done.
func WatchSeed(ctx context.Context, store *Store, pattern string, logger *slog.Logger) (<-chan core.Event, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	pattern = filepath.Clean(pattern)
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("bad seed pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, dir := range seedDirs(pattern) {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("watching seed directory", "dir", dir)
	}

	out := make(chan core.Event)
	w := &seedWatcher{
		store:   store,
		pattern: pattern,
		logger:  logger,
		watcher: watcher,
		out:     out,
	}
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		logger.Error("seed watcher failed", "error", err)
	}))
	return out, nil
}

type seedWatcher struct {
	store   *Store
	pattern string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	out     chan core.Event
}

func (w *seedWatcher) run(ctx context.Context) error {
	defer close(w.out)
	defer w.watcher.Close()

	timer := time.NewTimer(DebounceWindow)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("seed file changed", "name", ev.Name, "op", ev.Op.String())
			timer.Reset(DebounceWindow)
			fire = timer.C

		case <-fire:
			fire = nil
			if !w.reload() {
				continue
			}
			select {
			case w.out <- core.Event{Type: core.EventReset, Timestamp: time.Now().Unix()}:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", err)
		}
	}
}

func (w *seedWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	ok, err := doublestar.PathMatch(w.pattern, filepath.Clean(ev.Name))
	return err == nil && ok
}

func (w *seedWatcher) reload() bool {
	notes, err := LoadSeedFiles(w.pattern)
	if err != nil {
		w.logger.Warn("seed reload failed, keeping previous notes", "error", err)
		return false
	}
	if err := w.store.Replace(notes); err != nil {
		w.logger.Warn("seed reload rejected", "error", err)
		return false
	}
	w.logger.Info("seed reloaded", "notes", len(notes))
	return true
}

// seedDirs lists the directories to watch: the static base of the pattern and
// every directory holding a file that currently matches.
func seedDirs(pattern string) []string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	dirs := []string{filepath.FromSlash(base)}
	seen := map[string]bool{dirs[0]: true}

	paths, _ := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	for _, p := range paths {
		d := filepath.Dir(p)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}
