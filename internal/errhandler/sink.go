package errhandler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// sink is one destination in the dispatch pipeline.
type sink interface {
	write(ctx context.Context, info Info) error
}

// slogSink writes through a slog.Handler so that handler errors surface
// instead of being dropped by slog.Logger.
type slogSink struct {
	h slog.Handler
}

func newConsoleSink(w io.Writer, dev bool) *slogSink {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if dev {
		return &slogSink{h: slog.NewTextHandler(w, opts)}
	}
	return &slogSink{h: slog.NewJSONHandler(w, opts)}
}

func (s *slogSink) write(ctx context.Context, info Info) error {
	lvl := info.Level.slog()
	if !s.h.Enabled(ctx, lvl) {
		return nil
	}
	r := slog.NewRecord(info.Time, lvl, info.Message, 0)
	r.AddAttrs(info.attrs()...)
	return s.h.Handle(ctx, r)
}

// ─────────────────────────────────────────────────────────────
// File sink — append-only JSON lines with rotation
// ─────────────────────────────────────────────────────────────

type fileSink struct {
	*slogSink
	file *rotatingFile
}

func newFileSink(path string) (*fileSink, error) {
	rf, err := openRotatingFile(path)
	if err != nil {
		return nil, err
	}
	h := slog.NewJSONHandler(rf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &fileSink{slogSink: &slogSink{h: h}, file: rf}, nil
}

// rotatingFile is an io.Writer whose backing file can be swapped.
type rotatingFile struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

func openRotatingFile(path string) (*rotatingFile, error) {
	if path == "" {
		return nil, fmt.Errorf("file log: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := openAppend(path)
	if err != nil {
		return nil, err
	}
	return &rotatingFile{path: path, f: f}, nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", path, err)
	}
	return f, nil
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return 0, os.ErrClosed
	}
	return r.f.Write(p)
}

// Rotate moves the current file to path.1, replacing any older
// rotation, and continues writing to a fresh file.
func (r *rotatingFile) Rotate() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return os.ErrClosed
	}
	if err := r.f.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	r.f = nil
	old := r.path + ".1"
	_ = os.Remove(old)
	renameErr := os.Rename(r.path, old)
	f, err := openAppend(r.path)
	if err != nil {
		return err
	}
	r.f = f
	if renameErr != nil {
		return fmt.Errorf("rotate log file: %w", renameErr)
	}
	return nil
}

func (r *rotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}
