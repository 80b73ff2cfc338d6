package worker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dftlabs/refengine/internal/domain"
	"github.com/dftlabs/refengine/internal/metrics"
	"github.com/dftlabs/refengine/internal/pg"
	"github.com/dftlabs/refengine/internal/service/bonusservice"
)

//go:generate mockgen -source=worker.go -destination=mock_worker.go -package=worker

// ErrLeaseExpired marks a job whose lease or wall-clock budget ran out
// mid-processing. The job is already DEAD by the time processing unwinds;
// the worker must not retry it as a business failure.
var ErrLeaseExpired = errors.New("job lease expired")

type JobRepo interface {
	ClaimBatch(ctx context.Context, workerID string, batch int, leaseSec int, sentinelUserID int64) ([]domain.RecalcJob, error)
	RescueOrphans(ctx context.Context, graceSec int) (int64, error)
	DiscardSentinel(ctx context.Context, sentinelUserID int64) (int64, error)
	ExtendLease(ctx context.Context, jobID int64, leaseSec int) (bool, error)
	MarkSucceeded(ctx context.Context, jobID int64, workerID string) (bool, error)
	MarkFailed(ctx context.Context, jobID int64, workerID string, errMsg string, backoff time.Duration) (domain.JobStatus, error)
	MarkDead(ctx context.Context, jobID int64, errMsg string) error
	Requeue(ctx context.Context, jobID int64, delay time.Duration) error
	Stats(ctx context.Context) (map[domain.JobStatus]int64, error)
}

type UserSource interface {
	Parent(ctx context.Context, userID int64) (*domain.User, error)
}

// Recalculator re-derives one user's tier against the active policy.
type Recalculator interface {
	Evaluate(ctx context.Context, userID int64) (int, bool, error)
}

// BonusPayer runs the purchase-triggered USDT waterfall for a source user.
type BonusPayer interface {
	PayPurchaseBonus(ctx context.Context, sourceUserID int64, sourceLevel int, amountUSD decimal.Decimal, sourceHistoryID string, params bonusservice.Params) (int, error)
}

// UserLocker is the per-user mutex layered on top of the row-level
// IN_PROGRESS claim.
type UserLocker interface {
	TryAcquire(ctx context.Context, key int64) (pg.UnlockFunc, bool, error)
}

// Worker drains the level-recalc queue: it claims due jobs, re-evaluates
// the source user's tier, pays the purchase bonus once per job, then walks
// the sponsor chain upward re-evaluating every ancestor until the root
// sentinel or the depth bound.
type Worker struct {
	id     string
	jobs   JobRepo
	users  UserSource
	levels Recalculator
	bonus  BonusPayer
	locks  UserLocker
	cfg    *ConfigProvider
	clock  clockwork.Clock
}

func New(id string, jobs JobRepo, users UserSource, levels Recalculator, bonus BonusPayer, locks UserLocker, cfg *ConfigProvider, clock clockwork.Clock) *Worker {
	return &Worker{
		id:     id,
		jobs:   jobs,
		users:  users,
		levels: levels,
		bonus:  bonus,
		locks:  locks,
		cfg:    cfg,
		clock:  clock,
	}
}

// Run is the long-running polling loop. The persisted config is reloaded
// on every iteration; an inactive flag pauses claiming without stopping
// the process.
func (w *Worker) Run(ctx context.Context) {
	zap.L().Info("recalc worker started", zap.String("workerID", w.id))
	for {
		_ = w.cfg.Reload(ctx)
		cfg := w.cfg.Current()

		if cfg.Active {
			if err := w.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zap.L().Error("worker pass failed", zap.Error(err))
			}
		}

		select {
		case <-ctx.Done():
			zap.L().Info("recalc worker stopping", zap.String("workerID", w.id))
			return
		case <-w.clock.After(time.Duration(cfg.PollIntervalSec) * time.Second):
		}
	}
}

// RunOnce performs one full pass: rescue orphans, discard sentinel jobs,
// claim a batch, process each claimed job in isolation.
func (w *Worker) RunOnce(ctx context.Context) error {
	cfg := w.cfg.Current()

	rescued, err := w.jobs.RescueOrphans(ctx, cfg.RescueGraceSec)
	if err != nil {
		return fmt.Errorf("orphan rescue failed: %w", err)
	}
	if rescued > 0 {
		metrics.OrphansRescued.Add(float64(rescued))
		zap.L().Warn("rescued orphaned jobs", zap.Int64("count", rescued))
	}

	discarded, err := w.jobs.DiscardSentinel(ctx, cfg.SentinelUserID)
	if err != nil {
		return fmt.Errorf("sentinel discard failed: %w", err)
	}
	if discarded > 0 {
		zap.L().Warn("discarded jobs addressed to sentinel user",
			zap.Int64("sentinelUserID", cfg.SentinelUserID),
			zap.Int64("count", discarded))
	}

	jobs, err := w.jobs.ClaimBatch(ctx, w.id, cfg.BatchSize, cfg.LeaseSec, cfg.SentinelUserID)
	if err != nil {
		return fmt.Errorf("claim batch failed: %w", err)
	}
	metrics.JobsClaimed.Add(float64(len(jobs)))

	var g errgroup.Group
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			// One job's failure never aborts the batch.
			w.handleJob(ctx, job, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w.publishQueueDepth(ctx)
	return nil
}

func (w *Worker) publishQueueDepth(ctx context.Context) {
	stats, err := w.jobs.Stats(ctx)
	if err != nil {
		return
	}
	for _, status := range []domain.JobStatus{domain.JobPending, domain.JobInProgress, domain.JobSucceeded, domain.JobDead} {
		metrics.QueueDepth.WithLabelValues(string(status)).Set(float64(stats[status]))
	}
}

// handleJob wraps one claimed job with the advisory lock and the heartbeat,
// then classifies the outcome.
func (w *Worker) handleJob(ctx context.Context, job domain.RecalcJob, cfg domain.WorkerConfig) {
	unlock, ok, err := w.locks.TryAcquire(ctx, pg.LockKey("level-recalc", job.UserID))
	if err != nil {
		w.fail(ctx, job, cfg, err)
		return
	}
	if !ok {
		// Someone else holds the user; put the job back without burning an
		// attempt.
		zap.L().Info("user lock busy, requeueing job", zap.Int64("jobID", job.ID), zap.Int64("userID", job.UserID))
		if err := w.jobs.Requeue(ctx, job.ID, time.Duration(cfg.BackoffBaseSec)*time.Second); err != nil {
			zap.L().Error("requeue failed", zap.Int64("jobID", job.ID), zap.Error(err))
		}
		metrics.JobsProcessed.WithLabelValues("requeued").Inc()
		return
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			zap.L().Error("advisory unlock failed", zap.Int64("userID", job.UserID), zap.Error(err))
		}
	}()

	jobCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	hbDone := make(chan struct{})
	go func() {
		defer close(hbDone)
		w.heartbeat(jobCtx, cancel, job, cfg)
	}()

	err = w.process(jobCtx, job, cfg)
	cancel(nil)
	<-hbDone

	if cause := context.Cause(jobCtx); errors.Is(cause, ErrLeaseExpired) {
		// The heartbeat already marked the job DEAD.
		zap.L().Error("job exceeded its lease budget", zap.Int64("jobID", job.ID))
		metrics.JobsProcessed.WithLabelValues("lease_expired").Inc()
		return
	}

	if err != nil {
		w.fail(ctx, job, cfg, err)
		return
	}

	closed, err := w.jobs.MarkSucceeded(ctx, job.ID, w.id)
	if err != nil {
		zap.L().Error("can't mark job succeeded", zap.Int64("jobID", job.ID), zap.Error(err))
		return
	}
	if !closed {
		// The lease lapsed and someone else owns the row now; their run
		// decides the outcome.
		zap.L().Warn("claim lost before success write", zap.Int64("jobID", job.ID))
		metrics.JobsProcessed.WithLabelValues("claim_lost").Inc()
		return
	}
	metrics.JobsProcessed.WithLabelValues("succeeded").Inc()
}

func (w *Worker) fail(ctx context.Context, job domain.RecalcJob, cfg domain.WorkerConfig, cause error) {
	backoff := Backoff(time.Duration(cfg.BackoffBaseSec)*time.Second, job.Attempts, cfg.BackoffExpCap)
	status, err := w.jobs.MarkFailed(ctx, job.ID, w.id, cause.Error(), backoff)
	if err != nil {
		zap.L().Error("can't mark job failed", zap.Int64("jobID", job.ID), zap.Error(err))
		return
	}
	if status == "" {
		// Claim already lost; the row belongs to a rescue sweep or another
		// worker and must keep its state.
		zap.L().Warn("claim lost before failure write", zap.Int64("jobID", job.ID), zap.Error(cause))
		metrics.JobsProcessed.WithLabelValues("claim_lost").Inc()
		return
	}
	if status == domain.JobDead {
		zap.L().Error("job exhausted its attempts",
			zap.Int64("jobID", job.ID),
			zap.Int64("userID", job.UserID),
			zap.Error(cause))
		metrics.JobsProcessed.WithLabelValues("dead").Inc()
		return
	}
	zap.L().Warn("job failed, retrying with backoff",
		zap.Int64("jobID", job.ID),
		zap.Duration("backoff", backoff),
		zap.Error(cause))
	metrics.JobsProcessed.WithLabelValues("failed").Inc()
}

// heartbeat periodically extends the lease while the job runs. Two things
// end a claim early: the absolute wall-clock cap (pickedAt + maxWalltime),
// and losing the IN_PROGRESS row to a rescue sweep. Both mark the job DEAD
// and cancel processing with ErrLeaseExpired.
func (w *Worker) heartbeat(ctx context.Context, cancel context.CancelCauseFunc, job domain.RecalcJob, cfg domain.WorkerConfig) {
	steps := cfg.HeartbeatSteps
	if steps < 1 {
		steps = 1
	}
	interval := time.Duration(cfg.LeaseSec) * time.Second / time.Duration(steps)
	if interval < time.Second {
		interval = time.Second
	}

	pickedAt := w.clock.Now()
	if job.PickedAt != nil {
		pickedAt = *job.PickedAt
	}
	deadline := pickedAt.Add(time.Duration(cfg.MaxWalltimeSec) * time.Second)

	ticker := w.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if w.clock.Now().After(deadline) {
				if err := w.jobs.MarkDead(context.WithoutCancel(ctx), job.ID, ErrLeaseExpired.Error()); err != nil {
					zap.L().Error("can't mark over-budget job dead", zap.Int64("jobID", job.ID), zap.Error(err))
				}
				cancel(ErrLeaseExpired)
				return
			}
			extended, err := w.jobs.ExtendLease(ctx, job.ID, cfg.LeaseSec)
			if err != nil {
				zap.L().Warn("heartbeat failed", zap.Int64("jobID", job.ID), zap.Error(err))
				continue
			}
			if !extended {
				// The claim is no longer ours.
				cancel(ErrLeaseExpired)
				return
			}
		}
	}
}

// process holds the business sequence of one job: evaluate the source
// user, pay the purchase bonus once, then re-evaluate every ancestor up to
// the sentinel or the depth bound.
func (w *Worker) process(ctx context.Context, job domain.RecalcJob, cfg domain.WorkerConfig) error {
	level, _, err := w.levels.Evaluate(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("evaluate user %d: %w", job.UserID, err)
	}

	if amt := job.Payload.PurchaseAmountUSD; amt != nil && amt.IsPositive() {
		params := bonusservice.Params{
			RootUserID:       cfg.SentinelUserID,
			MaxChainDepth:    cfg.MaxChainDepth,
			MinEligibleLevel: cfg.MinEligibleLevel,
		}
		if _, err := w.bonus.PayPurchaseBonus(ctx, job.UserID, level, *amt, sourceHistoryKey(job), params); err != nil {
			return fmt.Errorf("purchase bonus for user %d: %w", job.UserID, err)
		}
	}

	current := job.UserID
	for depth := 0; depth < cfg.MaxChainDepth; depth++ {
		parent, err := w.users.Parent(ctx, current)
		if err != nil {
			return fmt.Errorf("resolve parent of user %d: %w", current, err)
		}
		if parent == nil || parent.ID == cfg.SentinelUserID {
			break
		}
		if _, _, err := w.levels.Evaluate(ctx, parent.ID); err != nil {
			return fmt.Errorf("evaluate ancestor %d: %w", parent.ID, err)
		}
		current = parent.ID
	}
	return nil
}

// sourceHistoryKey derives the payment dedupe key from the purchase history
// ids: the single id for a plain purchase, a sorted aggregate for batched
// jobs, and a job-scoped fallback when no history travelled with the
// payload.
func sourceHistoryKey(job domain.RecalcJob) string {
	ids := job.Payload.HistoryIDs
	if len(ids) == 0 {
		return fmt.Sprintf("job:%d", job.ID)
	}
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "ph:" + strings.Join(parts, ",")
}

// Backoff is the retry delay before attempt n+1: base x 2^min(n, cap).
func Backoff(base time.Duration, attempts, expCap int) time.Duration {
	if attempts > expCap {
		attempts = expCap
	}
	return base << uint(attempts)
}
