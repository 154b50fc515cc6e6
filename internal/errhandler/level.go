package errhandler

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level is the ordered severity of an event.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the level by name in JSON records.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts any spelling ParseLevel accepts.
func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG", "TRACE":
		return LevelDebug, nil
	case "INFO", "LOG":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR", "FATAL":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid level %q", s)
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Category classifies where an event originated. The set is closed.
type Category string

const (
	CategoryGeneral            Category = "general"
	CategoryIPC                Category = "ipc"
	CategoryFileSystem         Category = "filesystem"
	CategoryRender             Category = "render"
	CategoryUncaught           Category = "uncaught"
	CategoryUnhandledRejection Category = "unhandled-rejection"
	CategoryValidation         Category = "validation"
	CategoryConfig             Category = "config"
	CategoryStorage            Category = "storage"
)

// AllCategories lists every category.
func AllCategories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryIPC,
		CategoryFileSystem,
		CategoryRender,
		CategoryUncaught,
		CategoryUnhandledRejection,
		CategoryValidation,
		CategoryConfig,
		CategoryStorage,
	}
}

// ParseCategory maps s onto the closed set; anything unknown is general.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllCategories() {
		if c == known {
			return c
		}
	}
	return CategoryGeneral
}

// Scope names the execution context a handler belongs to.
type Scope string

const (
	ScopeHost     Scope = "host"
	ScopeRenderer Scope = "renderer"
)
