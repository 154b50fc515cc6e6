package errhandler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Handler classifies and dispatches every event of one execution context.
// It is safe for concurrent use.
type Handler struct {
	cfg      Config
	minLevel Level
	sinks    []sink
	file     *fileSink

	mu        sync.Mutex
	closed    bool
	callbacks sync.WaitGroup
	dropped   atomic.Int64

	now func() time.Time
}

// New builds a handler from cfg. The only failure is an unopenable
// file-log destination.
func New(cfg Config) (*Handler, error) {
	if cfg.Scope == "" {
		cfg.Scope = ScopeHost
	}
	h := &Handler{
		cfg:      cfg,
		minLevel: cfg.minLevel(),
		now:      time.Now,
	}
	if cfg.ConsoleLog {
		h.sinks = append(h.sinks, newConsoleSink(cfg.Console, cfg.IsDev))
	}
	if cfg.FileLog.Enabled {
		fs, err := newFileSink(cfg.FileLog.Path)
		if err != nil {
			return nil, err
		}
		h.file = fs
		h.sinks = append(h.sinks, fs)
	}
	return h, nil
}

// Scope returns the execution context this handler serves.
func (h *Handler) Scope() Scope { return h.cfg.Scope }

// IsDev reports whether the handler was built for development.
func (h *Handler) IsDev() bool { return h.cfg.IsDev }

// Dropped returns how many sink or callback faults were swallowed.
func (h *Handler) Dropped() int64 { return h.dropped.Load() }

func (h *Handler) Debug(ctx context.Context, msg string, cat Category, fields map[string]any) {
	h.record(ctx, LevelDebug, msg, cat, fields, nil)
}

func (h *Handler) Info(ctx context.Context, msg string, cat Category, fields map[string]any) {
	h.record(ctx, LevelInfo, msg, cat, fields, nil)
}

func (h *Handler) Warn(ctx context.Context, msg string, cat Category, fields map[string]any) {
	h.record(ctx, LevelWarn, msg, cat, fields, nil)
}

func (h *Handler) Error(ctx context.Context, msg string, cat Category, fields map[string]any) {
	h.record(ctx, LevelError, msg, cat, fields, nil)
}

// Capture records err at ERROR level. A nil err is ignored.
func (h *Handler) Capture(ctx context.Context, err error, cat Category, fields map[string]any) {
	if err == nil {
		return
	}
	h.record(ctx, LevelError, err.Error(), cat, fields, err)
}

// Log records an event at an explicit level.
func (h *Handler) Log(ctx context.Context, lvl Level, msg string, cat Category, fields map[string]any) {
	h.record(ctx, lvl, msg, cat, fields, nil)
}

// HandleRenderError records a UI rendering failure with the component
// stack the renderer reported. stack is the error's own stack trace and
// may be empty.
func (h *Handler) HandleRenderError(ctx context.Context, msg, componentStack, stack string) {
	fields := map[string]any{}
	if componentStack != "" {
		fields["componentStack"] = componentStack
	}
	h.capture(ctx, Info{
		Level:    LevelError,
		Category: CategoryRender,
		Message:  msg,
		Context:  fields,
		Stack:    stack,
	})
}

func (h *Handler) record(ctx context.Context, lvl Level, msg string, cat Category, fields map[string]any, err error) {
	h.capture(ctx, Info{
		Level:    lvl,
		Category: cat,
		Message:  msg,
		Context:  fields,
		Err:      err,
	})
}

func (h *Handler) capture(ctx context.Context, info Info) {
	if h == nil {
		return
	}
	defer func() {
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()
	h.dispatchInfo(ctx, info)
}

// dispatchInfo stamps identity, scope and time onto info and dispatches it.
func (h *Handler) dispatchInfo(ctx context.Context, info Info) {
	if ctx == nil {
		ctx = context.Background()
	}
	if info.Category == "" {
		info.Category = CategoryGeneral
	}
	info.ID = uuid.NewString()
	info.Scope = h.cfg.Scope
	info.Time = h.now()
	h.dispatch(ctx, info)
}

func (h *Handler) dispatch(ctx context.Context, info Info) {
	if info.Level < h.minLevel {
		return
	}
	for _, s := range h.sinks {
		h.safely(func() error { return s.write(ctx, info) })
	}
	if info.Level >= LevelError && h.cfg.OnError != nil {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.closed {
			return
		}
		h.callbacks.Add(1)
		go h.notify(context.WithoutCancel(ctx), info)
	}
}

func (h *Handler) notify(ctx context.Context, info Info) {
	defer h.callbacks.Done()
	h.safely(func() error { return h.cfg.OnError(ctx, info) })
}

func (h *Handler) safely(fn func() error) {
	defer func() {
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()
	if err := fn(); err != nil {
		h.dropped.Add(1)
	}
}

// Rotate rotates the file-log sink. It is a no-op without one.
func (h *Handler) Rotate() error {
	if h.file == nil {
		return nil
	}
	return h.file.file.Rotate()
}

// Close waits for in-flight callbacks, bounded by ctx, then closes the
// file sink. Events recorded after Close still reach the console.
func (h *Handler) Close(ctx context.Context) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.callbacks.Wait()
		close(done)
	}()
	var waitErr error
	select {
	case <-done:
	case <-ctx.Done():
		waitErr = ctx.Err()
	}
	if h.file != nil {
		return errors.Join(waitErr, h.file.file.Close())
	}
	return waitErr
}
