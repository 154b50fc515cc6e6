package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// SettingsStore is a key-value view over app_settings.
type SettingsStore struct {
	db *DB
}

func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the stored value and whether the key exists.
func (s *SettingsStore) Get(key string) (string, bool, error) {
	var v string
	err := s.db.conn.QueryRow(`SELECT value FROM app_settings WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return v, true, nil
}

// GetInt returns the stored integer, or def when missing or malformed.
func (s *SettingsStore) GetInt(key string, def int) int {
	v, ok, err := s.Get(key)
	if err != nil || !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (s *SettingsStore) Set(key, value string) error {
	_, err := s.db.conn.Exec(
		`INSERT INTO app_settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func (s *SettingsStore) SetInt(key string, value int) error {
	return s.Set(key, strconv.Itoa(value))
}
