package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

// Runner is a unit of work the scheduler triggers.
type Runner interface {
	Run(ctx context.Context) *model.RunSummary
}

// Scheduler re-runs the dashboard pipeline on a cron schedule.
type Scheduler struct {
	Cron   *cron.Cron
	Runner Runner
	Ctx    context.Context

	mu     sync.Mutex // one run at a time
	logger zerolog.Logger
}

// NewScheduler creates a new Scheduler. Cron specs include a seconds field.
func NewScheduler(ctx context.Context, runner Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: runner,
		Ctx:    ctx,
		logger: log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the refresh task under spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

// RunNow executes the refresh task immediately.
func (s *Scheduler) RunNow() *model.RunSummary {
	return s.refresh()
}

func (s *Scheduler) refreshTask() {
	s.refresh()
}

func (s *Scheduler) refresh() *model.RunSummary {
	if !s.mu.TryLock() {
		s.logger.Warn().Msg("previous refresh still running, skipping")
		return nil
	}
	defer s.mu.Unlock()

	if err := s.Ctx.Err(); err != nil {
		s.logger.Info().Msg("context done, skipping refresh")
		return nil
	}
	s.logger.Info().Msg("running dashboard refresh")
	return s.Runner.Run(s.Ctx)
}
