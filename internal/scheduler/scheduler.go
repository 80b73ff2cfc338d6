package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/dftlabs/refengine/internal/domain"
	"github.com/dftlabs/refengine/internal/metrics"
	miningrepo "github.com/dftlabs/refengine/internal/repo/mining-repo"
	"github.com/dftlabs/refengine/internal/service/miningservice"
	"github.com/dftlabs/refengine/internal/worker"
)

//go:generate mockgen -source=scheduler.go -destination=mock_scheduler.go -package=scheduler

// MiningService is the runner surface the scheduler drives.
type MiningService interface {
	DueSchedules(ctx context.Context, now time.Time) ([]domain.MiningSchedule, error)
	StartRun(ctx context.Context, schedule domain.MiningSchedule, now time.Time) (*domain.MiningRun, error)
	ResumeRun(ctx context.Context, scheduleID int64) (*domain.MiningRun, error)
	ExecuteRun(ctx context.Context, run *domain.MiningRun, params miningservice.Params) error
}

// Scheduler fires due mining runs. Failures are isolated per schedule: one
// broken schedule never blocks the others.
type Scheduler struct {
	mining       MiningService
	cfg          *worker.ConfigProvider
	clock        clockwork.Clock
	pollInterval time.Duration
}

func New(mining MiningService, cfg *worker.ConfigProvider, clock clockwork.Clock, pollInterval time.Duration) *Scheduler {
	return &Scheduler{
		mining:       mining,
		cfg:          cfg,
		clock:        clock,
		pollInterval: pollInterval,
	}
}

// Run is the polling loop wrapper around Tick.
func (s *Scheduler) Run(ctx context.Context) {
	zap.L().Info("mining scheduler started", zap.Duration("pollInterval", s.pollInterval))
	for {
		_ = s.cfg.Reload(ctx)
		if err := s.Tick(ctx, s.clock.Now()); err != nil && !errors.Is(err, context.Canceled) {
			zap.L().Error("scheduler tick failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			zap.L().Info("mining scheduler stopping")
			return
		case <-s.clock.After(s.pollInterval):
		}
	}
}

// Tick collects all due schedules and executes a run for each. A schedule
// that already has a RUNNING run (a crashed predecessor) is resumed rather
// than started again; the payout idempotency keys make the resume safe.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) error {
	schedules, err := s.mining.DueSchedules(ctx, now)
	if err != nil {
		return err
	}

	cfg := s.cfg.Current()
	params := miningservice.Params{
		CompanyUserID:    cfg.SentinelUserID,
		MaxChainDepth:    cfg.MaxChainDepth,
		MinEligibleLevel: cfg.MinEligibleLevel,
	}

	for _, schedule := range schedules {
		if err := s.fire(ctx, schedule, now, params); err != nil {
			zap.L().Error("mining schedule failed",
				zap.Int64("scheduleID", schedule.ID),
				zap.Error(err))
		}
	}
	return nil
}

func (s *Scheduler) fire(ctx context.Context, schedule domain.MiningSchedule, now time.Time, params miningservice.Params) error {
	run, err := s.mining.StartRun(ctx, schedule, now)
	if errors.Is(err, miningrepo.ErrRunAlreadyRunning) {
		run, err = s.mining.ResumeRun(ctx, schedule.ID)
		if err != nil {
			return err
		}
		if run == nil {
			// The competing run finished between the two calls.
			return nil
		}
		zap.L().Warn("resuming interrupted mining run",
			zap.Int64("runID", run.ID),
			zap.Int64("scheduleID", schedule.ID))
	} else if err != nil {
		return err
	} else {
		metrics.RunsStarted.Inc()
	}

	if err := s.mining.ExecuteRun(ctx, run, params); err != nil {
		return err
	}
	metrics.RunsCompleted.Inc()
	return nil
}
