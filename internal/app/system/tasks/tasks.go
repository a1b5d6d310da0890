// internal/app/system/tasks/tasks.go

// Package tasks runs background jobs on cron schedules. Jobs are registered
// at startup and run until the scheduler is stopped during shutdown.
package tasks

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named unit of background work on a cron schedule.
type Job struct {
	Name string
	Spec string // standard 5-field cron expression
	Run  func(ctx context.Context) error
}

// Scheduler wraps the cron runner with logging and per-run timeouts.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// NewScheduler builds an empty scheduler.
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  logger,
	}
}

// Add registers a job. Each run gets its own timeout context; a failing run
// is logged and the schedule continues.
func (s *Scheduler) Add(job Job) error {
	_, err := s.cron.AddFunc(job.Spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		start := time.Now()
		if err := job.Run(ctx); err != nil {
			s.log.Error("job failed", zap.String("job", job.Name), zap.Error(err))
			return
		}
		s.log.Debug("job finished", zap.String("job", job.Name), zap.Duration("took", time.Since(start)))
	})
	return err
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("task scheduler started")
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
