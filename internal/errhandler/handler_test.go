package errhandler_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdnotes/internal/errhandler"
)

func newHandler(t *testing.T, cfg errhandler.Config) *errhandler.Handler {
	t.Helper()
	h, err := errhandler.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close(context.Background()) })
	return h
}

func TestHandler_ConsoleEchoDev(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(t, errhandler.Config{IsDev: true, ConsoleLog: true, Console: &buf})

	h.Debug(context.Background(), "loading notes", errhandler.CategoryIPC, map[string]any{"count": 3})

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `msg="loading notes"`)
	assert.Contains(t, out, "category=ipc")
	assert.Contains(t, out, "scope=host")
}

func TestHandler_ProdDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(t, errhandler.Config{ConsoleLog: true, Console: &buf})

	h.Debug(context.Background(), "noise", errhandler.CategoryGeneral, nil)
	assert.Empty(t, buf.String())

	h.Info(context.Background(), "ready", errhandler.CategoryGeneral, nil)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "ready", rec["msg"])
}

func TestHandler_ConsoleDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(t, errhandler.Config{IsDev: true, Console: &buf})

	h.Error(context.Background(), "boom", errhandler.CategoryGeneral, nil)
	assert.Empty(t, buf.String())
}

func TestHandler_FileSinkAppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "host.log")
	h := newHandler(t, errhandler.Config{
		Scope:   errhandler.ScopeHost,
		FileLog: errhandler.FileLogConfig{Enabled: true, Path: path},
	})

	h.Info(context.Background(), "first", errhandler.CategoryStorage, nil)
	h.Capture(context.Background(), errors.New("disk full"), errhandler.CategoryFileSystem, map[string]any{"id": "n1"})
	require.NoError(t, h.Close(context.Background()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		lines = append(lines, rec)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "first", lines[0]["msg"])
	assert.Equal(t, "storage", lines[0]["category"])
	assert.Equal(t, "ERROR", lines[1]["level"])
	assert.Equal(t, "disk full", lines[1]["error"])
	assert.Equal(t, map[string]any{"id": "n1"}, lines[1]["context"])
}

func TestHandler_FileSinkUnopenable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := errhandler.New(errhandler.Config{
		FileLog: errhandler.FileLogConfig{Enabled: true, Path: filepath.Join(blocker, "host.log")},
	})
	assert.Error(t, err)
}

func TestHandler_Rotate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.log")
	h := newHandler(t, errhandler.Config{FileLog: errhandler.FileLogConfig{Enabled: true, Path: path}})

	h.Info(context.Background(), "before", errhandler.CategoryGeneral, nil)
	require.NoError(t, h.Rotate())
	h.Info(context.Background(), "after", errhandler.CategoryGeneral, nil)
	require.NoError(t, h.Close(context.Background()))

	old, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	cur, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(old), "before")
	assert.NotContains(t, string(old), "after")
	assert.Contains(t, string(cur), "after")
}

func TestHandler_RotateWithoutFileSink(t *testing.T) {
	h := newHandler(t, errhandler.Config{})
	assert.NoError(t, h.Rotate())
}

func TestHandler_OnErrorReceivesErrorsOnly(t *testing.T) {
	got := make(chan errhandler.Info, 4)
	h := newHandler(t, errhandler.Config{
		IsDev: true,
		OnError: func(_ context.Context, info errhandler.Info) error {
			got <- info
			return nil
		},
	})

	ctx := context.Background()
	h.Warn(ctx, "just a warning", errhandler.CategoryGeneral, nil)
	h.Error(ctx, "save failed", errhandler.CategoryFileSystem, map[string]any{"id": "n1"})

	select {
	case info := <-got:
		assert.Equal(t, errhandler.LevelError, info.Level)
		assert.Equal(t, "save failed", info.Message)
		assert.Equal(t, errhandler.CategoryFileSystem, info.Category)
		assert.Equal(t, errhandler.ScopeHost, info.Scope)
		assert.NotEmpty(t, info.ID)
		assert.False(t, info.Time.IsZero())
	case <-time.After(time.Second):
		t.Fatal("callback was not invoked")
	}

	require.NoError(t, h.Close(ctx))
	assert.Empty(t, got)
}

func TestHandler_OnErrorDoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	h := newHandler(t, errhandler.Config{
		OnError: func(context.Context, errhandler.Info) error {
			<-release
			return nil
		},
	})

	returned := make(chan struct{})
	go func() {
		h.Error(context.Background(), "slow sink", errhandler.CategoryGeneral, nil)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Error blocked on the callback")
	}
	close(release)
}

func TestHandler_CallbackFailuresAreSwallowed(t *testing.T) {
	h, err := errhandler.New(errhandler.Config{
		OnError: func(_ context.Context, info errhandler.Info) error {
			if info.Message == "panic" {
				panic("callback exploded")
			}
			return errors.New("callback failed")
		},
	})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		h.Error(context.Background(), "panic", errhandler.CategoryGeneral, nil)
		h.Error(context.Background(), "error", errhandler.CategoryGeneral, nil)
	})
	require.NoError(t, h.Close(context.Background()))
	assert.Equal(t, int64(2), h.Dropped())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("console gone") }

func TestHandler_SinkFaultIsCounted(t *testing.T) {
	h := newHandler(t, errhandler.Config{IsDev: true, ConsoleLog: true, Console: failingWriter{}})

	assert.NotPanics(t, func() {
		h.Info(context.Background(), "hello", errhandler.CategoryGeneral, nil)
	})
	assert.Equal(t, int64(1), h.Dropped())
}

func TestHandler_HandleRenderError(t *testing.T) {
	got := make(chan errhandler.Info, 1)
	h := newHandler(t, errhandler.Config{
		Scope: errhandler.ScopeRenderer,
		OnError: func(_ context.Context, info errhandler.Info) error {
			got <- info
			return nil
		},
	})

	h.HandleRenderError(context.Background(), "Cannot read properties of undefined", "\n    at NoteList\n    at App", "TypeError: Cannot read properties of undefined\n    at render (NoteList.tsx:12)")

	select {
	case info := <-got:
		assert.Equal(t, errhandler.CategoryRender, info.Category)
		assert.Equal(t, errhandler.ScopeRenderer, info.Scope)
		assert.True(t, strings.Contains(info.Context["componentStack"].(string), "NoteList"))
		assert.Contains(t, info.Stack, "NoteList.tsx:12")
	case <-time.After(time.Second):
		t.Fatal("callback was not invoked")
	}
}

func TestHandler_CaptureNilIsIgnored(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(t, errhandler.Config{IsDev: true, ConsoleLog: true, Console: &buf})
	h.Capture(context.Background(), nil, errhandler.CategoryGeneral, nil)
	assert.Empty(t, buf.String())
}

func TestHandler_NilHandlerIsSafe(t *testing.T) {
	var h *errhandler.Handler
	assert.NotPanics(t, func() {
		h.Error(context.Background(), "nobody listening", errhandler.CategoryGeneral, nil)
	})
}
