package systemd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_SignalsOnUnitFileCreate(t *testing.T) {
	dir := t.TempDir()
	w, err := WatchUnitDir(dir, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.service"), []byte("[Unit]\n"), 0644))

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcher_ClosesChanges(t *testing.T) {
	w, err := WatchUnitDir(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Changes():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("changes channel was not closed")
	}
}

func TestWatchUnitDir_MissingDir(t *testing.T) {
	_, err := WatchUnitDir(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	t.Parallel()

	assert.True(t, relevant(fsnotify.Event{Name: "/u/web.service", Op: fsnotify.Create}))
	assert.True(t, relevant(fsnotify.Event{Name: "/u/web.service", Op: fsnotify.Remove}))
	assert.False(t, relevant(fsnotify.Event{Name: "/u/web.service", Op: fsnotify.Chmod}))
	assert.False(t, relevant(fsnotify.Event{Name: "/u/web.timer", Op: fsnotify.Create}))
	assert.False(t, relevant(fsnotify.Event{Name: "/u/.service", Op: fsnotify.Create}))
}
