package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"mdnotes/internal/domain"
	"mdnotes/internal/service"
	"mdnotes/internal/storage"
)

type recordingObserver struct {
	paths []string
}

func (r *recordingObserver) Suppress(path string) {
	r.paths = append(r.paths, path)
}

func newNoteService(t *testing.T) (*service.NoteService, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "notes")
	return service.NewNoteService(storage.NewMarkdownStore(dir)), dir
}

func TestNoteService_SaveStampsDate(t *testing.T) {
	svc, dir := newNoteService(t)
	ctx := context.Background()

	path, err := svc.Save(ctx, "n1", "Title", "body")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "n1.md") {
		t.Errorf("unexpected path %q", path)
	}

	notes, err := svc.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if _, err := domain.ParseDate(notes[0].Date); err != nil {
		t.Errorf("expected a parseable date, got %q: %v", notes[0].Date, err)
	}
}

func TestNoteService_ObserverSeesOwnWrites(t *testing.T) {
	svc, dir := newNoteService(t)
	obs := &recordingObserver{}
	svc.SetWriteObserver(obs)
	ctx := context.Background()

	if _, err := svc.Save(ctx, "n1", "Title", "body"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := svc.Delete(ctx, "n1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	want := filepath.Join(dir, "n1.md")
	if len(obs.paths) != 2 || obs.paths[0] != want || obs.paths[1] != want {
		t.Errorf("expected two suppressions of %q, got %v", want, obs.paths)
	}
}

func TestNoteService_DeleteMissing(t *testing.T) {
	svc, _ := newNoteService(t)

	_, err := svc.Delete(context.Background(), "ghost")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNoteService_EnsureDir(t *testing.T) {
	svc, dir := newNoteService(t)

	got, err := svc.EnsureDir()
	if err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if got != dir || svc.Dir() != dir {
		t.Errorf("expected %q, got %q / %q", dir, got, svc.Dir())
	}
	if svc.PathFor("a") != filepath.Join(dir, "a.md") {
		t.Errorf("unexpected PathFor %q", svc.PathFor("a"))
	}
}
