package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeCatalog(t, `[]`)
	w := NewWatcher(path, 20*time.Millisecond)

	var changes atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, func() { changes.Add(1) }) }()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`[{}]`), 0600))

	assert.Eventually(t, func() bool { return changes.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeCatalog(t, `[]`)
	w := NewWatcher(path, 20*time.Millisecond)

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() { done <- w.Watch(context.Background(), func() { changes.Add(1) }) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), []byte(`x`), 0600))
	time.Sleep(150 * time.Millisecond)

	require.NoError(t, w.Close())
	require.NoError(t, <-done)
	assert.Equal(t, int32(0), changes.Load())
}

func TestWatcher_CloseBeforeWatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewWatcher(writeCatalog(t, `[]`), 0)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.NoError(t, w.Watch(context.Background(), func() {}))
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "products.json"), 0)
	assert.Error(t, w.Watch(context.Background(), func() {}))
}
