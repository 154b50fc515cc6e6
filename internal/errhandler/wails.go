package errhandler

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

// WailsLogger adapts the handler to the Wails runtime logger so that
// framework log lines share the same pipeline.
func (h *Handler) WailsLogger() logger.Logger {
	return wailsLogger{h: h}
}

// WailsLevel is the runtime log level matching the handler's minimum.
func (h *Handler) WailsLevel() logger.LogLevel {
	if h.cfg.IsDev {
		return logger.DEBUG
	}
	return logger.INFO
}

type wailsLogger struct {
	h *Handler
}

func wailsFields() map[string]any {
	return map[string]any{"source": "wails"}
}

func (l wailsLogger) Print(message string) {
	l.h.Info(context.Background(), message, CategoryGeneral, wailsFields())
}

func (l wailsLogger) Trace(message string) {
	l.h.Debug(context.Background(), message, CategoryGeneral, wailsFields())
}

func (l wailsLogger) Debug(message string) {
	l.h.Debug(context.Background(), message, CategoryGeneral, wailsFields())
}

func (l wailsLogger) Info(message string) {
	l.h.Info(context.Background(), message, CategoryGeneral, wailsFields())
}

func (l wailsLogger) Warning(message string) {
	l.h.Warn(context.Background(), message, CategoryGeneral, wailsFields())
}

func (l wailsLogger) Error(message string) {
	l.h.Error(context.Background(), message, CategoryGeneral, wailsFields())
}

// Fatal is recorded like Error; Wails decides whether to exit.
func (l wailsLogger) Fatal(message string) {
	l.h.Error(context.Background(), message, CategoryGeneral, map[string]any{"source": "wails", "fatal": true})
}
