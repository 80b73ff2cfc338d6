package miningrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dftlabs/refengine/internal/domain"
	"github.com/dftlabs/refengine/internal/pg"
	"go.uber.org/zap"
)

// ErrRunAlreadyRunning reports that the schedule already has a RUNNING run.
var ErrRunAlreadyRunning = errors.New("schedule already has a running mining run")

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// DueSchedules returns active schedules whose next_run_at has passed.
func (r *Repository) DueSchedules(ctx context.Context, now time.Time) ([]domain.MiningSchedule, error) {
	query := `
        SELECT id, kind, active, interval_minutes, daily_at_minutes, timezone,
               days_of_week_mask, next_run_at, last_run_at
        FROM mining_schedules
        WHERE active AND next_run_at IS NOT NULL AND next_run_at <= $1
        ORDER BY next_run_at
    `
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		zap.L().Error("can't list due schedules", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.MiningSchedule
	for rows.Next() {
		var s domain.MiningSchedule
		err := rows.Scan(&s.ID, &s.Kind, &s.Active, &s.IntervalMinutes, &s.DailyAtMinutes,
			&s.Timezone, &s.DaysOfWeekMask, &s.NextRunAt, &s.LastRunAt)
		if err != nil {
			zap.L().Error("can't scan schedule row", zap.Error(err))
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// StartRun inserts the immutable run snapshot and advances the schedule in
// one transaction. The partial unique index on RUNNING runs is the
// exclusivity guard: a second concurrent start fails with
// ErrRunAlreadyRunning and the schedule row is left untouched.
func (r *Repository) StartRun(ctx context.Context, run *domain.MiningRun, nextRunAt time.Time, lastRunAt time.Time) error {
	pcts, err := json.Marshal(run.ReferralPcts)
	if err != nil {
		return err
	}

	err = r.txManager.Begin(ctx, func(ctx context.Context) error {
		insertRun := `
            INSERT INTO mining_runs (schedule_id, status, self_pct, company_pct, mlm_pct, referral_pcts, bonus_plan_id)
            VALUES ($1, 'RUNNING', $2, $3, $4, $5, $6)
            RETURNING id, started_at
        `
		row := r.db.QueryRow(ctx, insertRun, run.ScheduleID, run.SelfPct, run.CompanyPct, run.MlmPct, pcts, run.BonusPlanID)
		if err := row.Scan(&run.ID, &run.StartedAt); err != nil {
			return err
		}
		run.Status = domain.RunRunning

		updateSchedule := `
            UPDATE mining_schedules
            SET next_run_at = $2, last_run_at = $3
            WHERE id = $1
        `
		_, err := r.db.Exec(ctx, updateSchedule, run.ScheduleID, nextRunAt, lastRunAt)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrRunAlreadyRunning
		}
		zap.L().Error("can't start mining run", zap.Int64("scheduleID", run.ScheduleID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) CompleteRun(ctx context.Context, runID int64) error {
	query := `
        UPDATE mining_runs
        SET status = 'COMPLETED', completed_at = now()
        WHERE id = $1 AND status = 'RUNNING'
    `
	if _, err := r.db.Exec(ctx, query, runID); err != nil {
		zap.L().Error("can't complete mining run", zap.Int64("runID", runID), zap.Error(err))
		return err
	}
	return nil
}

// FindRunningRun returns the RUNNING run for a schedule, if any. Lets the
// runner resume a run that crashed mid-way instead of starting a new one.
func (r *Repository) FindRunningRun(ctx context.Context, scheduleID int64) (*domain.MiningRun, error) {
	query := `
        SELECT id, schedule_id, status, self_pct, company_pct, mlm_pct, referral_pcts,
               bonus_plan_id, started_at, completed_at
        FROM mining_runs
        WHERE schedule_id = $1 AND status = 'RUNNING'
    `
	var run domain.MiningRun
	var pcts []byte
	err := r.db.QueryRow(ctx, query, scheduleID).Scan(&run.ID, &run.ScheduleID, &run.Status,
		&run.SelfPct, &run.CompanyPct, &run.MlmPct, &pcts, &run.BonusPlanID, &run.StartedAt, &run.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find running run", zap.Int64("scheduleID", scheduleID), zap.Error(err))
		return nil, err
	}
	if err := json.Unmarshal(pcts, &run.ReferralPcts); err != nil {
		return nil, err
	}
	return &run, nil
}

// HolderAllowances aggregates the per-user daily DFT allowance over all
// active packages, joined with the holder's current tier.
func (r *Repository) HolderAllowances(ctx context.Context) ([]domain.HolderAllowance, error) {
	query := `
        SELECT p.user_id, u.level, SUM(p.quantity * p.daily_rate) AS allowance
        FROM user_packages p
        JOIN users u ON u.id = p.user_id
        WHERE p.active
        GROUP BY p.user_id, u.level
        HAVING SUM(p.quantity * p.daily_rate) > 0
        ORDER BY p.user_id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't aggregate holder allowances", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var holders []domain.HolderAllowance
	for rows.Next() {
		var h domain.HolderAllowance
		if err := rows.Scan(&h.UserID, &h.Level, &h.Allowance); err != nil {
			zap.L().Error("can't scan holder allowance", zap.Error(err))
			return nil, err
		}
		holders = append(holders, h)
	}
	return holders, rows.Err()
}
