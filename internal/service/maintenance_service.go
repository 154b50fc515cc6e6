package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"mdnotes/internal/errhandler"
)

// ─────────────────────────────────────────────────────────────
// Maintenance Service — scheduled housekeeping
// ─────────────────────────────────────────────────────────────

// JobRotateLogs is the scheduled log rotation job.
const JobRotateLogs = "rotate-logs"

// ErrJobRunning is returned when a job is triggered while its previous
// run has not finished.
var ErrJobRunning = errors.New("job already running")

// Rotator rotates a log destination.
type Rotator interface {
	Rotate() error
}

// MaintenanceService runs housekeeping jobs on a cron schedule.
type MaintenanceService struct {
	rotator Rotator
	errs    *errhandler.Handler
	running runningJobsGuard

	mu    sync.Mutex
	sched *cron.Cron
}

// NewMaintenanceService creates a MaintenanceService. errs may be nil.
func NewMaintenanceService(rotator Rotator, errs *errhandler.Handler) *MaintenanceService {
	return &MaintenanceService{rotator: rotator, errs: errs}
}

// Start schedules log rotation with a cron expression such as "@daily".
// An empty expression schedules nothing. Calling Start again replaces
// the previous schedule.
func (s *MaintenanceService) Start(ctx context.Context, rotateSpec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopSchedule()

	if rotateSpec == "" || s.rotator == nil {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(rotateSpec, func() {
		if err := s.RotateLogs(ctx); err != nil && !errors.Is(err, ErrJobRunning) {
			s.errs.Capture(ctx, err, errhandler.CategoryConfig, map[string]any{"job": JobRotateLogs})
		}
	}); err != nil {
		return fmt.Errorf("schedule %s %q: %w", JobRotateLogs, rotateSpec, err)
	}
	c.Start()
	s.sched = c
	s.errs.Debug(ctx, "maintenance scheduled", errhandler.CategoryGeneral, map[string]any{"job": JobRotateLogs, "spec": rotateSpec})
	return nil
}

// RotateLogs rotates the log file now. Overlapping runs are refused.
func (s *MaintenanceService) RotateLogs(ctx context.Context) error {
	if s.rotator == nil {
		return nil
	}
	if !s.running.TryLock(JobRotateLogs) {
		return ErrJobRunning
	}
	defer s.running.Unlock(JobRotateLogs)

	if err := s.rotator.Rotate(); err != nil {
		return fmt.Errorf("rotate logs: %w", err)
	}
	s.errs.Info(ctx, "log file rotated", errhandler.CategoryGeneral, nil)
	return nil
}

// Stop cancels the schedule and waits for running jobs or ctx.
func (s *MaintenanceService) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopSchedule()
	s.mu.Unlock()
	return s.running.WaitAll(ctx)
}

func (s *MaintenanceService) stopSchedule() {
	if s.sched != nil {
		s.sched.Stop()
		s.sched = nil
	}
}
