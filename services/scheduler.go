package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StatusScheduler periodically moves tournaments along their lifecycle
// based on start and end dates.
type StatusScheduler struct {
	sched       gocron.Scheduler
	tournaments TournamentService
	logger      *slog.Logger
	now         func() time.Time
}

// NewStatusScheduler returns nil, nil when interval is zero (scheduler disabled).
func NewStatusScheduler(tournaments TournamentService, interval time.Duration, logger *slog.Logger) (*StatusScheduler, error) {
	if interval <= 0 {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	s := &StatusScheduler{sched: sched, tournaments: tournaments, logger: logger, now: time.Now}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.RunOnce, context.Background()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule status job: %w", err)
	}
	return s, nil
}

func (s *StatusScheduler) Start() {
	s.sched.Start()
	s.logger.Info("Tournament status scheduler started")
}

func (s *StatusScheduler) Shutdown() error {
	return s.sched.Shutdown()
}

// RunOnce performs a single promotion pass.
func (s *StatusScheduler) RunOnce(ctx context.Context) {
	changed, err := s.tournaments.PromoteDueStatuses(ctx, s.now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Scheduler: status update failed", slog.Any("error", err))
		return
	}
	if changed > 0 {
		s.logger.InfoContext(ctx, "Scheduler: tournament statuses updated", slog.Int("changed", changed))
	}
}
