package service

import (
	"fmt"

	"mdnotes/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Window Size Persistence
// ─────────────────────────────────────────────────────────────
//
// Saves and restores the main Wails window size between sessions.
// Stored in SQLite as rows of the app_settings table.

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowSettingsService persists window size between sessions.
type WindowSettingsService struct {
	settings *storage.SettingsStore
}

// NewWindowSettingsService creates a WindowSettingsService.
func NewWindowSettingsService(settings *storage.SettingsStore) *WindowSettingsService {
	return &WindowSettingsService{settings: settings}
}

const (
	settingWindowWidth  = "window_width"
	settingWindowHeight = "window_height"
	defaultWindowWidth  = 1024
	defaultWindowHeight = 768
	minWindowWidth      = 640
	minWindowHeight     = 480
)

// DefaultWindowSize is used when nothing was saved yet.
func DefaultWindowSize() WindowSize {
	return WindowSize{Width: defaultWindowWidth, Height: defaultWindowHeight}
}

// LoadWindowSize returns the saved window dimensions, or sensible defaults.
func (s *WindowSettingsService) LoadWindowSize() WindowSize {
	if s.settings == nil {
		return DefaultWindowSize()
	}
	w := s.settings.GetInt(settingWindowWidth, defaultWindowWidth)
	h := s.settings.GetInt(settingWindowHeight, defaultWindowHeight)
	if w < minWindowWidth {
		w = defaultWindowWidth
	}
	if h < minWindowHeight {
		h = defaultWindowHeight
	}
	return WindowSize{Width: w, Height: h}
}

// SaveWindowSize persists the current window dimensions.
func (s *WindowSettingsService) SaveWindowSize(width, height int) error {
	if s.settings == nil {
		return fmt.Errorf("window settings: no store")
	}
	if err := s.settings.SetInt(settingWindowWidth, width); err != nil {
		return err
	}
	return s.settings.SetInt(settingWindowHeight, height)
}
