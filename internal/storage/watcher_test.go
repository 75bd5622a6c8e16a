package storage

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeeper/internal/core/model"
)

func TestConfigWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(DefaultPaths(dir, dir))
	var calls atomic.Int32

	watcher, err := NewConfigWatcher(store.Paths().Config, func() { calls.Add(1) })
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	t.Cleanup(func() { _ = watcher.Stop() })

	require.NoError(t, store.SaveConfig(model.DefaultPhaseConfig()))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
}

func TestConfigWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(DefaultPaths(dir, dir))
	var calls atomic.Int32

	watcher, err := NewConfigWatcher(store.Paths().Config, func() { calls.Add(1) })
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	t.Cleanup(func() { _ = watcher.Stop() })

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(store.Paths().Config), "other.txt"), []byte("x"), 0o644))
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestConfigWatcher_StopIsIdempotent(t *testing.T) {
	watcher, err := NewConfigWatcher(filepath.Join(t.TempDir(), "TimeKeeper.toml"), nil)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	require.NoError(t, watcher.Stop())
	require.NoError(t, watcher.Stop())
}
