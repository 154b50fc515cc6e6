// Package watcher reloads the UI when notes change on disk behind the
// host's back.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"mdnotes/internal/bridge"
	"mdnotes/internal/errhandler"
	"mdnotes/internal/service"
)

const (
	defaultDelay = 250 * time.Millisecond
	defaultTTL   = 2 * time.Second
)

// Watcher watches the notes directory and emits load-notes for external
// changes to .md files. Bursts of events are coalesced into one emission.
type Watcher struct {
	ctx     context.Context
	dir     string
	fs      *fsnotify.Watcher
	emitter service.EventEmitter
	errs    *errhandler.Handler

	delay     time.Duration
	ttl       time.Duration
	debounced func(func())
	now       func() time.Time

	mu         sync.Mutex
	suppressed map[string]time.Time // path -> until
	closed     bool
	done       chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the quiet period before an emission.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) { w.delay = d }
}

// WithSuppressTTL sets how long a Suppress call masks events for a path.
func WithSuppressTTL(d time.Duration) Option {
	return func(w *Watcher) { w.ttl = d }
}

// New starts watching dir, creating it if needed. errs may be nil.
func New(ctx context.Context, dir string, emitter service.EventEmitter, errs *errhandler.Handler, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve notes directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create notes directory: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(abs); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", abs, err)
	}

	w := &Watcher{
		ctx:        ctx,
		dir:        abs,
		fs:         fw,
		emitter:    emitter,
		errs:       errs,
		delay:      defaultDelay,
		ttl:        defaultTTL,
		now:        time.Now,
		suppressed: make(map[string]time.Time),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debounced = debounce.New(w.delay)

	errs.Go(w.watchLoop)
	return w, nil
}

// Dir returns the absolute directory being watched.
func (w *Watcher) Dir() string {
	return w.dir
}

// Suppress masks events for path for a short while. The host calls it
// right before writing or removing a note itself.
func (w *Watcher) Suppress(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.suppressed[path] = w.now().Add(w.ttl)
}

// Close stops the watcher. Pending emissions are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	w.debounced(func() {})
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.debounced(w.fire)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.errs.Capture(w.ctx, fmt.Errorf("notes watcher: %w", err), errhandler.CategoryFileSystem, map[string]any{"dir": w.dir})
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".md") {
		return false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return !w.isSuppressed(event.Name)
}

func (w *Watcher) isSuppressed(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.now()
	for p, until := range w.suppressed {
		if now.After(until) {
			delete(w.suppressed, p)
		}
	}
	_, ok := w.suppressed[path]
	return ok
}

func (w *Watcher) fire() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}
	w.errs.Debug(w.ctx, "notes changed on disk", errhandler.CategoryFileSystem, map[string]any{"dir": w.dir})
	w.emitter.Emit(w.ctx, bridge.EventLoadNotes, nil)
}
