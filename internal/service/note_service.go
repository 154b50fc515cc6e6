package service

import (
	"context"
	"time"

	"mdnotes/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Note Service — business logic for markdown notes
// ─────────────────────────────────────────────────────────────

// WriteObserver is told about every file the service is about to touch,
// so a directory watcher can tell the host's own writes from external ones.
type WriteObserver interface {
	Suppress(path string)
}

// NoteService manages the lifecycle of notes on disk.
type NoteService struct {
	store    domain.NoteStore
	observer WriteObserver
	now      func() time.Time
}

// NewNoteService creates a NoteService.
func NewNoteService(store domain.NoteStore) *NoteService {
	return &NoteService{store: store, now: time.Now}
}

// SetWriteObserver registers the observer notified before each write.
func (s *NoteService) SetWriteObserver(o WriteObserver) {
	s.observer = o
}

// Save writes a note, stamping it with the current time, and returns its path.
func (s *NoteService) Save(_ context.Context, id, title, content string) (string, error) {
	s.observe(id)
	return s.store.Save(domain.Note{
		ID:      id,
		Title:   title,
		Content: content,
		Date:    domain.FormatDate(s.now()),
	})
}

// LoadAll returns every note, newest first.
func (s *NoteService) LoadAll(_ context.Context) ([]domain.Note, error) {
	return s.store.LoadAll()
}

// Delete removes a note and returns the path it was stored at.
func (s *NoteService) Delete(_ context.Context, id string) (string, error) {
	s.observe(id)
	return s.store.Delete(id)
}

// Dir returns the notes directory.
func (s *NoteService) Dir() string {
	return s.store.Dir()
}

// EnsureDir creates the notes directory if needed and returns it.
func (s *NoteService) EnsureDir() (string, error) {
	return s.store.EnsureDir()
}

// PathFor returns the file path for a note id.
func (s *NoteService) PathFor(id string) string {
	return s.store.PathFor(id)
}

func (s *NoteService) observe(id string) {
	if s.observer != nil {
		s.observer.Suppress(s.store.PathFor(id))
	}
}
