package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"mdnotes/internal/domain"
)

var (
	// ErrInvalidID is returned for ids that cannot name a file in the notes directory.
	ErrInvalidID = errors.New("invalid note id")
	// ErrNotFound is returned when deleting a note that has no file.
	ErrNotFound = errors.New("note not found")
)

const noteExt = ".md"

// MarkdownStore keeps one markdown file per note in a single directory.
// All file access is serialized; the host process is the only writer.
type MarkdownStore struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

// NewMarkdownStore returns a store rooted at dir. The directory is created
// lazily on first write or load.
func NewMarkdownStore(dir string) *MarkdownStore {
	return &MarkdownStore{dir: dir, now: time.Now}
}

// Dir returns the notes directory.
func (s *MarkdownStore) Dir() string {
	return s.dir
}

// EnsureDir creates the notes directory if needed and returns it.
func (s *MarkdownStore) EnsureDir() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return s.dir, fmt.Errorf("create notes directory: %w", err)
	}
	return s.dir, nil
}

// PathFor returns the file path a note with id is stored at.
func (s *MarkdownStore) PathFor(id string) string {
	return filepath.Join(s.dir, id+noteExt)
}

// ValidateID rejects ids that are empty or would escape the notes directory.
func ValidateID(id string) error {
	switch {
	case strings.TrimSpace(id) == "", id == ".", id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	case strings.ContainsAny(id, `/\`), strings.ContainsRune(id, 0):
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// frontmatter is the YAML header written above the note body.
type frontmatter struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
}

// Save writes n to its file, replacing any previous version, and returns the path.
// An empty Date is stamped with the current time.
func (s *MarkdownStore) Save(n domain.Note) (string, error) {
	if err := ValidateID(n.ID); err != nil {
		return s.PathFor(n.ID), err
	}
	if n.Date == "" {
		n.Date = domain.FormatDate(s.now())
	}
	data, err := encodeNote(n)
	if err != nil {
		return s.PathFor(n.ID), fmt.Errorf("encode note: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.PathFor(n.ID)
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return path, fmt.Errorf("create notes directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return path, fmt.Errorf("write note: %w", err)
	}
	return path, nil
}

// LoadAll reads every .md file in the directory, newest first.
// A missing directory is created and yields an empty list.
func (s *MarkdownStore) LoadAll() ([]domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("create notes directory: %w", err)
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read notes directory: %w", err)
	}

	notes := make([]domain.Note, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != noteExt {
			continue
		}
		n, err := s.readNote(e)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return newer(notes[i], notes[j])
	})
	return notes, nil
}

// newer orders notes by instant, newest first, then by id. Dates that do
// not parse sort after every parsed one, compared as text.
func newer(a, b domain.Note) bool {
	ta, errA := domain.ParseDate(a.Date)
	tb, errB := domain.ParseDate(b.Date)
	switch {
	case errA == nil && errB == nil:
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
	case errA == nil:
		return true
	case errB == nil:
		return false
	case a.Date != b.Date:
		return a.Date > b.Date
	}
	return a.ID < b.ID
}

func (s *MarkdownStore) readNote(e fs.DirEntry) (domain.Note, error) {
	path := filepath.Join(s.dir, e.Name())
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Note{}, fmt.Errorf("read note %s: %w", e.Name(), err)
	}
	n := decodeNote(strings.TrimSuffix(e.Name(), noteExt), data)
	if n.Date == "" {
		if info, err := e.Info(); err == nil {
			n.Date = domain.FormatDate(info.ModTime())
		}
	}
	return n, nil
}

// Delete removes the note file and returns its path.
func (s *MarkdownStore) Delete(id string) (string, error) {
	path := s.PathFor(id)
	if err := ValidateID(id); err != nil {
		return path, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, fmt.Errorf("delete note %s: %w: %w", id, ErrNotFound, err)
		}
		return path, fmt.Errorf("delete note: %w", err)
	}
	return path, nil
}

// ─────────────────────────────────────────────────────────────
// File format: optional YAML frontmatter, then the body
// ─────────────────────────────────────────────────────────────

func encodeNote(n domain.Note) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(frontmatter{Title: n.Title, Date: n.Date}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// decodeNote never fails: a file with broken or missing frontmatter is
// loaded as plain content so that a hand-edited note stays visible.
// Only such plain files take their title from the first heading.
func decodeNote(id string, data []byte) domain.Note {
	n := domain.Note{ID: id}
	body := data
	plain := true
	if bytes.HasPrefix(data, []byte("---\n")) || bytes.HasPrefix(data, []byte("---\r\n")) {
		rest := data[bytes.IndexByte(data, '\n')+1:]
		if end := closingDelimiter(rest); end >= 0 {
			var fm frontmatter
			if yaml.Unmarshal(rest[:end], &fm) == nil {
				plain = false
				n.Title = fm.Title
				n.Date = fm.Date
				body = rest[end:]
				if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
					body = body[nl+1:]
				} else {
					body = nil
				}
			}
		}
	}
	n.Content = string(body)
	if plain {
		n.Title = firstHeading(n.Content, id)
	}
	return n
}

// closingDelimiter returns the offset of the line holding the closing "---".
func closingDelimiter(b []byte) int {
	off := 0
	for off < len(b) {
		line := b[off:]
		nl := bytes.IndexByte(line, '\n')
		if nl >= 0 {
			line = line[:nl]
		}
		if string(bytes.TrimRight(line, "\r")) == "---" {
			return off
		}
		if nl < 0 {
			break
		}
		off += nl + 1
	}
	return -1
}

func firstHeading(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return fallback
}
