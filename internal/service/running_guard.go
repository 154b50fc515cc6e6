package service

import (
	"context"
	"sync"
)

// ExportedRunningGuard is an exported alias so _test packages can test the guard.
type ExportedRunningGuard = runningJobsGuard

// ─────────────────────────────────────────────────────────────
// runningJobsGuard — one run per scheduled job at a time
// ─────────────────────────────────────────────────────────────

// runningJobsGuard keeps a scheduled job from overlapping with itself
// and lets shutdown wait for whatever is still running.
type runningJobsGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
	wg      sync.WaitGroup
}

// TryLock marks job as running. It returns false if it already is.
func (g *runningJobsGuard) TryLock(job string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running == nil {
		g.running = make(map[string]struct{})
	}
	if _, ok := g.running[job]; ok {
		return false
	}
	g.running[job] = struct{}{}
	g.wg.Add(1)
	return true
}

// Unlock releases a job taken with TryLock.
func (g *runningJobsGuard) Unlock(job string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.running[job]; !ok {
		return
	}
	delete(g.running, job)
	g.wg.Done()
}

// Running reports whether job currently holds the guard.
func (g *runningJobsGuard) Running(job string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.running[job]
	return ok
}

// WaitAll blocks until every running job completes or ctx is done.
func (g *runningJobsGuard) WaitAll(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
