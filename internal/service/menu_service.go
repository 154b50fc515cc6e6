package service

import (
	"context"

	"mdnotes/internal/bridge"
)

// MenuService turns host menu actions into bridge events.
type MenuService struct {
	emitter EventEmitter
}

// NewMenuService creates a MenuService.
func NewMenuService(emitter EventEmitter) *MenuService {
	return &MenuService{emitter: emitter}
}

// NewNote asks the UI to start a new note.
func (m *MenuService) NewNote(ctx context.Context) {
	m.emitter.Emit(ctx, bridge.EventMenuNewNote, nil)
}

// ReloadNotes asks the UI to reload the note list.
func (m *MenuService) ReloadNotes(ctx context.Context) {
	m.emitter.Emit(ctx, bridge.EventLoadNotes, nil)
}
