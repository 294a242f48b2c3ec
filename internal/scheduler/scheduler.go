// Package scheduler wraps gocron for the bot's periodic maintenance
// jobs (cache purging).
package scheduler

import (
	"time"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/logger"
	"github.com/go-co-op/gocron/v2"
	"log/slog"
)

// Scheduler runs background jobs at fixed intervals.
type Scheduler struct {
	instance gocron.Scheduler
}

// New creates a stopped scheduler; call Start after adding jobs.
func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{instance: s}, nil
}

// AddJob registers a job to run every interval.
func (s *Scheduler) AddJob(name string, interval time.Duration, job func()) error {
	_, err := s.instance.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(job),
		gocron.WithName(name),
	)
	if err != nil {
		logger.SCHED.Error("job registration failed",
			slog.String("event", "job.register_failed"),
			slog.String("job", name),
			slog.String("err", err.Error()),
		)
		return err
	}
	logger.SCHED.Info("job registered",
		slog.String("event", "job.registered"),
		slog.String("job", name),
		slog.Duration("interval", interval),
	)
	return nil
}

// Start begins executing registered jobs.
func (s *Scheduler) Start() {
	s.instance.Start()
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	return s.instance.Shutdown()
}
