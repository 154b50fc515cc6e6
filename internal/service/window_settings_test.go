package service_test

import (
	"path/filepath"
	"testing"

	"mdnotes/internal/service"
	"mdnotes/internal/storage"
)

func newSettings(t *testing.T) *storage.SettingsStore {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "mdnotes.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return storage.NewSettingsStore(db)
}

func TestWindowSettings_DefaultsWhenUnset(t *testing.T) {
	svc := service.NewWindowSettingsService(newSettings(t))

	if got := svc.LoadWindowSize(); got != service.DefaultWindowSize() {
		t.Errorf("expected defaults, got %+v", got)
	}
}

func TestWindowSettings_RoundTrip(t *testing.T) {
	svc := service.NewWindowSettingsService(newSettings(t))

	if err := svc.SaveWindowSize(1440, 900); err != nil {
		t.Fatalf("SaveWindowSize: %v", err)
	}
	got := svc.LoadWindowSize()
	if got.Width != 1440 || got.Height != 900 {
		t.Errorf("expected 1440x900, got %dx%d", got.Width, got.Height)
	}
}

func TestWindowSettings_TooSmallFallsBack(t *testing.T) {
	svc := service.NewWindowSettingsService(newSettings(t))

	if err := svc.SaveWindowSize(200, 100); err != nil {
		t.Fatalf("SaveWindowSize: %v", err)
	}
	if got := svc.LoadWindowSize(); got != service.DefaultWindowSize() {
		t.Errorf("expected defaults for a collapsed window, got %+v", got)
	}
}

func TestWindowSettings_NoStore(t *testing.T) {
	svc := service.NewWindowSettingsService(nil)

	if got := svc.LoadWindowSize(); got != service.DefaultWindowSize() {
		t.Errorf("expected defaults, got %+v", got)
	}
	if err := svc.SaveWindowSize(800, 600); err == nil {
		t.Error("expected an error without a store")
	}
}
