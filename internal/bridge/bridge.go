// Package bridge is the fixed allow-list between the host and the UI.
//
// Operations names every call the UI may make; nothing else crosses the
// boundary. Host adapts the note service to it, Registry carries the two
// host-to-UI events, and Client is the UI-side adapter.
package bridge

import (
	"context"

	"mdnotes/internal/domain"
)

// Host-to-UI event names. The note events carry no payload.
const (
	EventMenuNewNote = "menu-new-note"
	EventLoadNotes   = "load-notes"

	// EventHostError carries a host ERROR event to the UI in dev mode.
	EventHostError = "host-error"
)

// Events lists every event the bridge relays to the UI.
func Events(dev bool) []string {
	if dev {
		return []string{EventMenuNewNote, EventLoadNotes, EventHostError}
	}
	return []string{EventMenuNewNote, EventLoadNotes}
}

// Operations is the complete set of calls the UI may make on the host.
// Every call resolves with exactly one result; failures are encoded in
// the result, never returned as Go errors.
type Operations interface {
	GetAppVersion() string
	TestIPC() domain.IPCResult
	SaveMarkdown(id, title, content string) domain.SaveResult
	LoadAllMarkdown() domain.LoadResult
	DeleteMarkdown(id string) domain.Result
	GetMarkdownDir() domain.DirResult
	OpenMarkdownDir() domain.Result
}

// Notes is the storage backend the host adapter forwards to.
type Notes interface {
	Save(ctx context.Context, id, title, content string) (string, error)
	LoadAll(ctx context.Context) ([]domain.Note, error)
	Delete(ctx context.Context, id string) (string, error)
	EnsureDir() (string, error)
}

// Opener reveals a directory in the OS file manager.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, path string) error

func (f OpenerFunc) Open(ctx context.Context, path string) error {
	return f(ctx, path)
}
