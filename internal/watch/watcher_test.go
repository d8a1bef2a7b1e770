package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/testutil"
)

func TestDebouncedBurstFiresOnce(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, 100*time.Millisecond, testutil.NopLogger())
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	var fired atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func() { fired.Add(1) })
	}()

	// A burst of writes inside the debounce window counts as one change.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "game.wasm"), []byte{byte(i)}, 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return fired.Load() == 1
	}, 2*time.Second, 20*time.Millisecond)

	// The window stays quiet afterwards.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	cancel()
	<-done
}

func TestSeparateBurstsFireSeparately(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, 50*time.Millisecond, testutil.NopLogger())
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	var fired atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = w.Run(ctx, func() { fired.Add(1) })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("1"), 0o644))
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("2"), 0o644))
	assert.Eventually(t, func() bool { return fired.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestIgnoresHiddenPaths(t *testing.T) {
	assert.True(t, ignored(filepath.Join("build", ".git")))
	assert.True(t, ignored(filepath.Join("build", ".DS_Store")))
	assert.True(t, ignored(filepath.Join("build", "node_modules")))
	assert.False(t, ignored(filepath.Join("build", "index.html")))
}

func TestRunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, 50*time.Millisecond, testutil.NopLogger())
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx, func() {})
	}()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}
