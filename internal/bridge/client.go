package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mdnotes/internal/domain"
)

// Client is the UI-side adapter of the bridge. It forwards calls to the
// host Operations and exposes the two host events with a
// clear-then-register policy: subscribing again replaces every previous
// listener of that event.
type Client struct {
	ops     Operations
	events  *Registry
	timeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout bounds every call. On expiry the call resolves with a
// failure result named ETIMEDOUT; the host call itself is not cancelled.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a Client over ops and the events registry.
func NewClient(ops Operations, events *Registry, opts ...ClientOption) *Client {
	c := &Client{ops: ops, events: events}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) GetAppVersion(ctx context.Context) string {
	return call(ctx, c.timeout, c.ops.GetAppVersion, func(string, error) string { return "" })
}

func (c *Client) TestIPC(ctx context.Context) domain.IPCResult {
	return call(ctx, c.timeout, c.ops.TestIPC, func(name string, err error) domain.IPCResult {
		return domain.IPCResult{Result: failed(name, err, nil)}
	})
}

func (c *Client) SaveMarkdown(ctx context.Context, id, title, content string) domain.SaveResult {
	return call(ctx, c.timeout, func() domain.SaveResult {
		return c.ops.SaveMarkdown(id, title, content)
	}, func(name string, err error) domain.SaveResult {
		return domain.SaveResult{Result: failed(name, err, &domain.ErrorDetails{ID: id})}
	})
}

func (c *Client) LoadAllMarkdown(ctx context.Context) domain.LoadResult {
	return call(ctx, c.timeout, c.ops.LoadAllMarkdown, func(name string, err error) domain.LoadResult {
		return domain.LoadResult{Result: failed(name, err, &domain.ErrorDetails{})}
	})
}

func (c *Client) DeleteMarkdown(ctx context.Context, id string) domain.Result {
	return call(ctx, c.timeout, func() domain.Result {
		return c.ops.DeleteMarkdown(id)
	}, func(name string, err error) domain.Result {
		return failed(name, err, &domain.ErrorDetails{ID: id})
	})
}

func (c *Client) GetMarkdownDir(ctx context.Context) domain.DirResult {
	return call(ctx, c.timeout, c.ops.GetMarkdownDir, func(name string, err error) domain.DirResult {
		return domain.DirResult{Result: failed(name, err, nil)}
	})
}

func (c *Client) OpenMarkdownDir(ctx context.Context) domain.Result {
	return call(ctx, c.timeout, c.ops.OpenMarkdownDir, func(name string, err error) domain.Result {
		return failed(name, err, nil)
	})
}

// OnMenuNewNote replaces every menu-new-note listener with cb.
func (c *Client) OnMenuNewNote(cb func()) (unsubscribe func()) {
	return c.events.Replace(EventMenuNewNote, func(context.Context, any) { cb() })
}

// OnLoadNotes replaces every load-notes listener with cb.
func (c *Client) OnLoadNotes(cb func()) (unsubscribe func()) {
	return c.events.Replace(EventLoadNotes, func(context.Context, any) { cb() })
}

func failed(name string, err error, d *domain.ErrorDetails) domain.Result {
	if d != nil {
		d.ErrorName = name
	}
	return domain.Fail(err.Error(), d)
}

// call runs fn, waiting at most until ctx (narrowed by timeout) is done.
// A panic in fn resolves as a failure rather than crossing back.
func call[T any](ctx context.Context, timeout time.Duration, fn func() T, fail func(name string, err error) T) T {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan T, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fail("Error", fmt.Errorf("host panicked: %v", p))
			}
		}()
		done <- fn()
	}()

	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		name := "ECANCELED"
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			name = "ETIMEDOUT"
		}
		return fail(name, fmt.Errorf("bridge call abandoned: %w", ctx.Err()))
	}
}
