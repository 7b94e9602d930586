package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically drops idle sessions from a Service.
type Sweeper struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewSweeper schedules svc.SweepIdle on schedule, a standard cron expression
// or a descriptor such as "@every 5m". The sweeper is idle until Start.
func NewSweeper(svc Service, schedule string, logger *slog.Logger) (*Sweeper, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "session_sweeper"))

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		svc.SweepIdle(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	return &Sweeper{cron: c, logger: logger}, nil
}

// Start begins running the schedule in the background.
func (s *Sweeper) Start() {
	s.cron.Start()
	s.logger.Info("session sweeper started")
}

// Stop halts the schedule and waits up to timeout for a running sweep.
func (s *Sweeper) Stop(timeout time.Duration) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(timeout):
		s.logger.Warn("timed out waiting for session sweep to finish")
	}
	s.logger.Info("session sweeper stopped")
}
