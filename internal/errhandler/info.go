package errhandler

import (
	"log/slog"
	"time"
)

// Info is one captured event as it flows through the pipeline.
type Info struct {
	ID       string         `json:"id"`
	Level    Level          `json:"level"`
	Category Category       `json:"category"`
	Scope    Scope          `json:"scope"`
	Message  string         `json:"message"`
	Context  map[string]any `json:"context,omitempty"`
	Err      error          `json:"-"`
	Stack    string         `json:"stack,omitempty"`
	Time     time.Time      `json:"time"`
}

func (i Info) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("id", i.ID),
		slog.String("category", string(i.Category)),
		slog.String("scope", string(i.Scope)),
	}
	if len(i.Context) > 0 {
		attrs = append(attrs, slog.Any("context", i.Context))
	}
	if i.Err != nil {
		attrs = append(attrs, slog.String("error", i.Err.Error()))
	}
	if i.Stack != "" {
		attrs = append(attrs, slog.String("stack", i.Stack))
	}
	return attrs
}
