package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant_ContentFiles(t *testing.T) {
	assert.True(t, relevant(fsnotify.Event{Name: "docs/a.md", Op: fsnotify.Write}))
	assert.True(t, relevant(fsnotify.Event{Name: "docs/a.mdx", Op: fsnotify.Create}))
	assert.True(t, relevant(fsnotify.Event{Name: "docs/a.markdown", Op: fsnotify.Remove}))
	assert.True(t, relevant(fsnotify.Event{Name: "docs/A.MD", Op: fsnotify.Rename}))
}

func TestRelevant_Directories(t *testing.T) {
	// Directory events have no extension; creations and removals of
	// whole directories must trigger a rebuild.
	assert.True(t, relevant(fsnotify.Event{Name: "docs/newdir", Op: fsnotify.Create}))
}

func TestRelevant_IgnoredFiles(t *testing.T) {
	assert.False(t, relevant(fsnotify.Event{Name: "docs/a.txt", Op: fsnotify.Write}))
	assert.False(t, relevant(fsnotify.Event{Name: "docs/a.json", Op: fsnotify.Create}))
}

func TestRelevant_IgnoredOps(t *testing.T) {
	assert.False(t, relevant(fsnotify.Event{Name: "docs/a.md", Op: fsnotify.Chmod}))
}

func TestRun_CancelledContext(t *testing.T) {
	w := New(t.TempDir(), func(context.Context) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope"), func(context.Context) error { return nil })

	// A missing root has nothing to watch; the watcher idles until the
	// deadline instead of erroring, matching fsnotify semantics for an
	// empty watch set.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := w.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRun_RebuildsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# 1. T"), 0644))

	var rebuilds atomic.Int32
	w := New(dir, func(context.Context) error {
		rebuilds.Add(1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register, then touch the file.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("# 1. T updated"), 0644))

	require.Eventually(t, func() bool {
		return rebuilds.Load() >= 1
	}, 2*time.Second, 50*time.Millisecond, "a content write should trigger a rebuild")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
