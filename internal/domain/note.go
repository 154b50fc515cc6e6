package domain

import "time"

// Note is the unit persisted by the markdown store.
// Date is RFC 3339 so the frontend can parse it directly.
type Note struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// NoteStore is implemented by the markdown store.
type NoteStore interface {
	Save(n Note) (string, error)
	LoadAll() ([]Note, error)
	Delete(id string) (string, error)
	Dir() string
	EnsureDir() (string, error)
	PathFor(id string) string
}

// FormatDate renders t the way Note.Date expects.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseDate parses a Note.Date value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
