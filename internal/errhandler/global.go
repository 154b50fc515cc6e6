package errhandler

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"strings"
)

// ─────────────────────────────────────────────────────────────
// Global interception for the handler's own process
// ─────────────────────────────────────────────────────────────

// Install routes the standard log package into the pipeline when the
// handler was configured with SetupGlobalHandlers. The returned func
// restores the previous log output.
func (h *Handler) Install() (restore func()) {
	if h == nil || !h.cfg.SetupGlobalHandlers {
		return func() {}
	}
	prevOut, prevFlags, prevPrefix := log.Writer(), log.Flags(), log.Prefix()
	log.SetFlags(0)
	log.SetPrefix("")
	log.SetOutput(&stdlogWriter{h: h})
	return func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		log.SetPrefix(prevPrefix)
	}
}

type stdlogWriter struct {
	h *Handler
}

func (w *stdlogWriter) Write(p []byte) (int, error) {
	msg := string(bytes.TrimSpace(p))
	if msg == "" {
		return len(p), nil
	}
	lvl := LevelInfo
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "error") || strings.Contains(lower, "failed") {
		lvl = LevelError
	}
	w.h.record(context.Background(), lvl, msg, CategoryGeneral, map[string]any{"source": "log"}, nil)
	return len(p), nil
}

// Recover records a panic in the calling goroutine as an uncaught error
// and stops it from propagating. Use it directly in a defer statement.
func (h *Handler) Recover() {
	if r := recover(); r != nil {
		h.recordPanic(r, CategoryUncaught)
	}
}

// Go runs fn on a new goroutine whose panic is recorded, not fatal.
func (h *Handler) Go(fn func()) {
	go func() {
		defer h.Recover()
		fn()
	}()
}

// Async runs fn on a new goroutine. A returned error nobody awaited is
// recorded as an unhandled rejection; a panic as uncaught.
func (h *Handler) Async(ctx context.Context, fn func(context.Context) error) {
	go func() {
		defer h.Recover()
		if err := fn(ctx); err != nil {
			h.record(ctx, LevelError, err.Error(), CategoryUnhandledRejection, nil, err)
		}
	}()
}

func (h *Handler) recordPanic(r any, cat Category) {
	if h == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", r)
	}
	defer func() {
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()
	info := Info{
		Level:    LevelError,
		Category: cat,
		Message:  err.Error(),
		Err:      err,
		Stack:    string(debug.Stack()),
	}
	h.dispatchInfo(context.Background(), info)
}
