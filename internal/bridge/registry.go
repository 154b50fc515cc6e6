package bridge

import (
	"context"
	"fmt"
	"sync"

	"mdnotes/internal/errhandler"
)

// Listener receives one event emission.
type Listener func(ctx context.Context, data any)

type subscription struct {
	id uint64
	fn Listener
}

// Registry holds event listeners keyed by subscription handle. Emissions
// of one event are delivered synchronously, in emission order.
type Registry struct {
	mu   sync.RWMutex
	next uint64
	subs map[string][]subscription
	errs *errhandler.Handler
}

// NewRegistry creates a Registry. Listener panics are reported to errs,
// which may be nil.
func NewRegistry(errs *errhandler.Handler) *Registry {
	return &Registry{subs: make(map[string][]subscription), errs: errs}
}

// Subscribe adds fn alongside any existing listeners of event.
func (r *Registry) Subscribe(event string, fn Listener) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(event, fn)
}

// Replace removes every listener of event, then adds fn.
func (r *Registry) Replace(event string, fn Listener) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, event)
	return r.addLocked(event, fn)
}

func (r *Registry) addLocked(event string, fn Listener) func() {
	r.next++
	id := r.next
	r.subs[event] = append(r.subs[event], subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(event, id) })
	}
}

func (r *Registry) remove(event string, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := r.subs[event]
	for i, s := range subs {
		if s.id == id {
			r.subs[event] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(r.subs[event]) == 0 {
		delete(r.subs, event)
	}
}

// Clear removes every listener of event.
func (r *Registry) Clear(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, event)
}

// Count returns the number of active listeners for event.
func (r *Registry) Count(event string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[event])
}

// Emit delivers data to every listener of event. A panicking listener is
// reported and does not stop delivery to the others.
func (r *Registry) Emit(ctx context.Context, event string, data any) {
	r.mu.RLock()
	subs := append([]subscription(nil), r.subs[event]...)
	r.mu.RUnlock()

	for _, s := range subs {
		r.deliver(ctx, event, s, data)
	}
}

func (r *Registry) deliver(ctx context.Context, event string, s subscription, data any) {
	defer func() {
		if p := recover(); p != nil {
			r.errs.Error(ctx, fmt.Sprintf("listener for %s panicked: %v", event, p), errhandler.CategoryIPC, map[string]any{
				"event": event,
			})
		}
	}()
	s.fn(ctx, data)
}
