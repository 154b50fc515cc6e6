package app

import (
	"context"
	"sync"

	"mdnotes/internal/bridge"
	"mdnotes/internal/errhandler"
	"mdnotes/internal/service"
)

// ============================================================
// Renderer error reports
// ============================================================

// ReportError records an event raised in the UI. Unknown levels are
// treated as ERROR and unknown categories as general.
func (a *App) ReportError(level, category, message string, context map[string]any) {
	lvl, err := errhandler.ParseLevel(level)
	if err != nil {
		lvl = errhandler.LevelError
	}
	a.renderer().Log(a.ctx, lvl, message, errhandler.ParseCategory(category), context)
}

// HandleRenderError records a failure caught by the UI's render error
// boundary, with the component stack and the error's own stack, either
// of which may be empty.
func (a *App) HandleRenderError(message, componentStack, stack string) {
	a.renderer().HandleRenderError(a.ctx, message, componentStack, stack)
}

// ============================================================
// Dev-mode error forwarding
// ============================================================

// ErrorForwarder relays host ERROR events to the UI as host-error events.
// Events recorded before the app starts are dropped.
type ErrorForwarder struct {
	mu      sync.Mutex
	emitter service.EventEmitter
}

// Forward is used as the host handler's OnError callback.
func (f *ErrorForwarder) Forward(ctx context.Context, info errhandler.Info) error {
	// A failing host-error listener must not feed itself.
	if info.Context["event"] == bridge.EventHostError {
		return nil
	}
	f.mu.Lock()
	emitter := f.emitter
	f.mu.Unlock()
	if emitter == nil {
		return nil
	}
	emitter.Emit(ctx, bridge.EventHostError, info)
	return nil
}

func (f *ErrorForwarder) attach(emitter service.EventEmitter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emitter = emitter
}
