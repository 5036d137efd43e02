// Package scheduler runs the day-rollover job while the client is alive.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler wraps a gocron scheduler bound to one location.
type Scheduler struct {
	scheduler *gocron.Scheduler
	loc       *time.Location
	logger    *slog.Logger
}

// New creates a scheduler whose clock times are read in loc.
func New(loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{scheduler: s, loc: loc, logger: logger}
}

// OnDayStart registers fn to run at local midnight with the current time.
func (s *Scheduler) OnDayStart(fn func(now time.Time)) error {
	_, err := s.scheduler.Every(1).Day().At("00:00").Tag("day-rollover").Do(func() {
		now := time.Now().In(s.loc)
		s.logger.Info("day rollover", "date", now.Format(time.DateOnly))
		fn(now)
	})
	if err != nil {
		return fmt.Errorf("schedule day rollover: %w", err)
	}
	return nil
}

func (s *Scheduler) jobs() int {
	return s.scheduler.Len()
}

// runNow runs every registered job once. The scheduler must be started.
func (s *Scheduler) runNow() {
	s.scheduler.RunAll()
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

// Stop halts the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
