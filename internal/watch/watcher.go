// Package watch rebuilds the catalog whenever the source tree changes.
// Rebuilds are throttled so editor save storms collapse into one run.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/antipat/internal/logger"
)

// RebuildFunc runs one full pipeline pass.
type RebuildFunc func(ctx context.Context) error

// Watcher triggers rebuilds on source-tree changes.
type Watcher struct {
	dir     string
	rebuild RebuildFunc
	limiter *rate.Limiter
}

// New creates a watcher over dir. Rebuilds run at most once per second;
// the burst of 1 means a storm of write events coalesces into a single
// pass after the current one.
func New(dir string, rebuild RebuildFunc) *Watcher {
	return &Watcher{
		dir:     dir,
		rebuild: rebuild,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

// Run blocks until the context is cancelled, rebuilding after every
// relevant filesystem event. The initial build is the caller's job.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := w.addTree(fw, w.dir); err != nil {
		return err
	}

	logger.Info("Watching %s for changes", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			// New directories need their own watch.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addTree(fw, event.Name)
				}
			}
			logger.Debug("Change detected: %s %s", event.Op, event.Name)
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
			drain(fw)
			if err := w.rebuild(ctx); err != nil {
				logger.Error("Rebuild failed: %v", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// addTree registers dir and every non-hidden subdirectory.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

// relevant reports whether an event should trigger a rebuild:
// content-file writes, creates, removes, and renames.
func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return ext == ".md" || ext == ".mdx" || ext == ".markdown" || ext == ""
}

// drain discards events queued while a rebuild was pending so one pass
// covers them all.
func drain(fw *fsnotify.Watcher) {
	for {
		select {
		case <-fw.Events:
		default:
			return
		}
	}
}
