package jobrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dftlabs/refengine/internal/domain"
	"github.com/dftlabs/refengine/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

// Enqueue creates a PENDING job. A dedupe key collides only against other
// live (PENDING/IN_PROGRESS) jobs, so the purchase flow can call this
// idempotently. Returns false when a duplicate suppressed the insert.
func (r *Repository) Enqueue(ctx context.Context, job *domain.RecalcJob) (bool, error) {
	payload, err := json.Marshal(job.Payload)
	if err != nil {
		return false, fmt.Errorf("can't marshal job payload: %w", err)
	}

	query := `
        INSERT INTO level_recalc_jobs (user_id, reason, max_attempts, scheduled_at, payload, dedupe_key)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (dedupe_key) WHERE dedupe_key IS NOT NULL AND status IN ('PENDING', 'IN_PROGRESS')
        DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, job.UserID, job.Reason, job.MaxAttempts, job.ScheduledAt, payload, job.DedupeKey)
	if err != nil {
		zap.L().Error("can't enqueue recalc job", zap.Int64("userID", job.UserID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ClaimBatch atomically claims up to batch eligible jobs: PENDING, due,
// not the sentinel user, at most one job per user, and never a user who
// already holds an IN_PROGRESS job anywhere in the queue. Claimed rows are
// stamped IN_PROGRESS with a lease; SKIP LOCKED keeps concurrent workers
// from double-claiming.
func (r *Repository) ClaimBatch(ctx context.Context, workerID string, batch int, leaseSec int, sentinelUserID int64) ([]domain.RecalcJob, error) {
	query := `
        WITH eligible AS (
            SELECT DISTINCT ON (user_id) id
            FROM level_recalc_jobs
            WHERE status = 'PENDING'
              AND scheduled_at <= now()
              AND user_id <> $2
              AND NOT EXISTS (
                  SELECT 1 FROM level_recalc_jobs p
                  WHERE p.user_id = level_recalc_jobs.user_id
                    AND p.status = 'IN_PROGRESS'
              )
            ORDER BY user_id, scheduled_at, id
            LIMIT $3
        ), locked AS (
            SELECT id FROM level_recalc_jobs
            WHERE id IN (SELECT id FROM eligible) AND status = 'PENDING'
            FOR UPDATE SKIP LOCKED
        )
        UPDATE level_recalc_jobs j
        SET status = 'IN_PROGRESS',
            picked_at = now(),
            picked_by = $1,
            available_until = now() + make_interval(secs => $4)
        FROM locked
        WHERE j.id = locked.id
        RETURNING j.id, j.user_id, j.reason, j.status, j.attempts, j.max_attempts,
                  j.scheduled_at, j.available_until, j.picked_at, j.picked_by,
                  j.payload, j.last_error
    `
	rows, err := r.db.Query(ctx, query, workerID, sentinelUserID, batch, leaseSec)
	if err != nil {
		zap.L().Error("can't claim job batch", zap.String("workerID", workerID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.RecalcJob
	for rows.Next() {
		var job domain.RecalcJob
		var payload []byte
		err := rows.Scan(&job.ID, &job.UserID, &job.Reason, &job.Status, &job.Attempts, &job.MaxAttempts,
			&job.ScheduledAt, &job.AvailableUntil, &job.PickedAt, &job.PickedBy, &payload, &job.LastError)
		if err != nil {
			zap.L().Error("can't scan claimed job row", zap.Error(err))
			return nil, err
		}
		if err := json.Unmarshal(payload, &job.Payload); err != nil {
			return nil, fmt.Errorf("can't unmarshal payload of job %d: %w", job.ID, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// RescueOrphans resets jobs stuck IN_PROGRESS past their lease, or with no
// lease and a stale pick, back to PENDING. Returns the number rescued.
func (r *Repository) RescueOrphans(ctx context.Context, graceSec int) (int64, error) {
	query := `
        UPDATE level_recalc_jobs
        SET status = 'PENDING', picked_by = NULL, picked_at = NULL, available_until = NULL
        WHERE status = 'IN_PROGRESS'
          AND (available_until < now()
               OR (available_until IS NULL AND picked_at < now() - make_interval(secs => $1)))
    `
	tag, err := r.db.Exec(ctx, query, graceSec)
	if err != nil {
		zap.L().Error("orphan rescue sweep failed", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ExtendLease pushes available_until forward for a still-claimed job.
// Returns false when the job is no longer IN_PROGRESS (rescued or finished),
// in which case the worker must stop treating the claim as its own.
func (r *Repository) ExtendLease(ctx context.Context, jobID int64, leaseSec int) (bool, error) {
	query := `
        UPDATE level_recalc_jobs
        SET available_until = now() + make_interval(secs => $2)
        WHERE id = $1 AND status = 'IN_PROGRESS'
    `
	tag, err := r.db.Exec(ctx, query, jobID, leaseSec)
	if err != nil {
		zap.L().Error("can't extend job lease", zap.Int64("jobID", jobID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkSucceeded closes a job this worker still owns. Returns false when
// the claim was lost in the meantime (lease lapsed and a rescue sweep or
// another worker took the row), in which case nothing was written.
func (r *Repository) MarkSucceeded(ctx context.Context, jobID int64, workerID string) (bool, error) {
	query := `
        UPDATE level_recalc_jobs
        SET status = 'SUCCEEDED', picked_by = NULL, available_until = NULL
        WHERE id = $1 AND status = 'IN_PROGRESS' AND picked_by = $2
    `
	tag, err := r.db.Exec(ctx, query, jobID, workerID)
	if err != nil {
		zap.L().Error("can't mark job succeeded", zap.Int64("jobID", jobID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkFailed bumps attempts and either parks the job DEAD (attempts
// exhausted) or requeues it PENDING after backoff. The update only lands
// while this worker still owns the IN_PROGRESS row, so a stale failure can
// never resurrect a DEAD job or stomp another worker's claim. Returns the
// resulting status, or "" when the claim was lost and nothing changed.
func (r *Repository) MarkFailed(ctx context.Context, jobID int64, workerID string, errMsg string, backoff time.Duration) (domain.JobStatus, error) {
	query := `
        UPDATE level_recalc_jobs
        SET attempts = attempts + 1,
            last_error = $3,
            picked_by = NULL, picked_at = NULL, available_until = NULL,
            status = CASE WHEN attempts + 1 >= max_attempts THEN 'DEAD' ELSE 'PENDING' END,
            scheduled_at = CASE WHEN attempts + 1 >= max_attempts
                                THEN scheduled_at
                                ELSE now() + make_interval(secs => $4) END
        WHERE id = $1 AND status = 'IN_PROGRESS' AND picked_by = $2
        RETURNING status
    `
	var status domain.JobStatus
	err := r.db.QueryRow(ctx, query, jobID, workerID, errMsg, int(backoff.Seconds())).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		zap.L().Error("can't mark job failed", zap.Int64("jobID", jobID), zap.Error(err))
		return "", err
	}
	return status, nil
}

// MarkDead transitions the job straight to DEAD, bypassing retries. Used
// when the wall-clock cap fires and reprocessing is no longer safe.
func (r *Repository) MarkDead(ctx context.Context, jobID int64, errMsg string) error {
	query := `
        UPDATE level_recalc_jobs
        SET status = 'DEAD', last_error = $2, picked_by = NULL, available_until = NULL
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, jobID, errMsg); err != nil {
		zap.L().Error("can't mark job dead", zap.Int64("jobID", jobID), zap.Error(err))
		return err
	}
	return nil
}

// Requeue puts a claimed job back to PENDING after delay without burning an
// attempt. Used when the per-user advisory lock is busy.
func (r *Repository) Requeue(ctx context.Context, jobID int64, delay time.Duration) error {
	query := `
        UPDATE level_recalc_jobs
        SET status = 'PENDING', picked_by = NULL, picked_at = NULL, available_until = NULL,
            scheduled_at = now() + make_interval(secs => $2)
        WHERE id = $1 AND status = 'IN_PROGRESS'
    `
	if _, err := r.db.Exec(ctx, query, jobID, int(delay.Seconds())); err != nil {
		zap.L().Error("can't requeue job", zap.Int64("jobID", jobID), zap.Error(err))
		return err
	}
	return nil
}

// DiscardSentinel succeeds any pending job whose own user is the sentinel
// root. Such jobs would otherwise sit unclaimable forever; the discard is
// intentional and logged by the caller.
func (r *Repository) DiscardSentinel(ctx context.Context, sentinelUserID int64) (int64, error) {
	query := `
        UPDATE level_recalc_jobs
        SET status = 'SUCCEEDED'
        WHERE status = 'PENDING' AND user_id = $1
    `
	tag, err := r.db.Exec(ctx, query, sentinelUserID)
	if err != nil {
		zap.L().Error("can't discard sentinel jobs", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Stats returns the queue depth per status.
func (r *Repository) Stats(ctx context.Context) (map[domain.JobStatus]int64, error) {
	query := `
        SELECT status, count(*)
        FROM level_recalc_jobs
        GROUP BY status
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't read queue stats", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	stats := make(map[domain.JobStatus]int64)
	for rows.Next() {
		var status domain.JobStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}
