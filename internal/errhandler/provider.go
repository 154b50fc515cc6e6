package errhandler

import (
	"context"
	"sync"
	"sync/atomic"
)

// Provider hands out the one Handler of an execution context. The first
// Get binds the configuration; later calls return the same handler and
// record any differing configuration as ignored.
//
// Composition roots own a Provider value; there is no package-level instance.
type Provider struct {
	once sync.Once
	cfg  Config
	h    atomic.Pointer[Handler]
}

// Get returns the bound handler, building it from cfg on first use.
// If the file sink cannot be opened the handler is built without it and
// the failure is recorded through the handler itself.
func (p *Provider) Get(cfg Config) *Handler {
	first := false
	p.once.Do(func() {
		first = true
		p.cfg = cfg
		h, err := New(cfg)
		if err != nil {
			fallback := cfg
			fallback.FileLog.Enabled = false
			h, _ = New(fallback)
			h.Capture(context.Background(), err, CategoryConfig, map[string]any{"path": cfg.FileLog.Path})
		}
		p.h.Store(h)
	})
	h := p.h.Load()
	if !first && !p.cfg.same(cfg) {
		h.Warn(context.Background(), "error handler already configured; ignoring new configuration", CategoryConfig, map[string]any{
			"scope": string(p.cfg.Scope),
		})
	}
	return h
}

// Handler returns the bound handler, or nil before the first Get.
// It is safe to call while another goroutine runs the first Get.
func (p *Provider) Handler() *Handler {
	return p.h.Load()
}
