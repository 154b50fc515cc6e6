package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdnotes/internal/bridge"
	"mdnotes/internal/service"
	"mdnotes/internal/watcher"
)

func start(t *testing.T) (*watcher.Watcher, *service.MockEmitter) {
	t.Helper()
	em := &service.MockEmitter{}
	w, err := watcher.New(context.Background(), t.TempDir(), em, nil,
		watcher.WithDelay(30*time.Millisecond),
		watcher.WithSuppressTTL(time.Second),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, em
}

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestWatcher_ExternalWriteReloads(t *testing.T) {
	w, em := start(t)

	write(t, filepath.Join(w.Dir(), "a.md"), "# A\n")
	write(t, filepath.Join(w.Dir(), "b.md"), "# B\n")

	require.Eventually(t, func() bool { return len(em.Names()) > 0 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	names := em.Names()
	assert.Equal(t, bridge.EventLoadNotes, names[0])
	assert.Len(t, names, 1, "burst should coalesce into one reload")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	w, em := start(t)

	write(t, filepath.Join(w.Dir(), "scratch.txt"), "x")

	assert.Never(t, func() bool { return len(em.Names()) > 0 }, 200*time.Millisecond, 10*time.Millisecond)
}

func TestWatcher_SuppressedWritesAreQuiet(t *testing.T) {
	w, em := start(t)
	path := filepath.Join(w.Dir(), "own.md")

	w.Suppress(path)
	write(t, path, "# Own\n")
	require.NoError(t, os.Remove(path))

	assert.Never(t, func() bool { return len(em.Names()) > 0 }, 200*time.Millisecond, 10*time.Millisecond)
}

func TestWatcher_ExternalRemoveReloads(t *testing.T) {
	w, em := start(t)
	path := filepath.Join(w.Dir(), "gone.md")
	w.Suppress(path)
	write(t, path, "# Gone\n")

	// let the suppression window lapse before removing it externally
	time.Sleep(1100 * time.Millisecond)
	require.NoError(t, os.Remove(path))

	require.Eventually(t, func() bool { return len(em.Names()) == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, _ := start(t)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
