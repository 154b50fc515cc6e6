package errhandler

import (
	"context"
	"io"
	"reflect"
)

// ErrorCallback receives every ERROR event on its own goroutine.
// Its return value and any panic are swallowed.
type ErrorCallback func(ctx context.Context, info Info) error

// FileLogConfig enables the append-only JSON file sink.
type FileLogConfig struct {
	Enabled bool
	Path    string
}

// Config is fixed for the lifetime of a Handler.
type Config struct {
	Scope               Scope
	IsDev               bool
	ConsoleLog          bool
	SetupGlobalHandlers bool
	FileLog             FileLogConfig
	OnError             ErrorCallback

	// Console defaults to os.Stderr.
	Console io.Writer
}

func (c Config) minLevel() Level {
	if c.IsDev {
		return LevelDebug
	}
	return LevelInfo
}

// same reports whether two configurations would build identical handlers.
func (c Config) same(o Config) bool {
	return c.Scope == o.Scope &&
		c.IsDev == o.IsDev &&
		c.ConsoleLog == o.ConsoleLog &&
		c.SetupGlobalHandlers == o.SetupGlobalHandlers &&
		c.FileLog == o.FileLog &&
		sameWriter(c.Console, o.Console) &&
		funcPointer(c.OnError) == funcPointer(o.OnError)
}

func funcPointer(f ErrorCallback) uintptr {
	if f == nil {
		return 0
	}
	return reflect.ValueOf(f).Pointer()
}

func sameWriter(a, b io.Writer) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
