package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dftlabs/refengine/internal/domain"
	"github.com/dftlabs/refengine/internal/pg"
	"github.com/dftlabs/refengine/internal/service/bonusservice"
)

type workerMocks struct {
	jobs   *MockJobRepo
	users  *MockUserSource
	levels *MockRecalculator
	bonus  *MockBonusPayer
	locks  *MockUserLocker
	clock  *clockwork.FakeClock
}

func NewMock(t *testing.T) (*Worker, workerMocks) {
	ctrl := gomock.NewController(t)
	m := workerMocks{
		jobs:   NewMockJobRepo(ctrl),
		users:  NewMockUserSource(ctrl),
		levels: NewMockRecalculator(ctrl),
		bonus:  NewMockBonusPayer(ctrl),
		locks:  NewMockUserLocker(ctrl),
		clock:  clockwork.NewFakeClock(),
	}
	source := NewMockConfigSource(ctrl)
	source.EXPECT().WorkerConfig(gomock.Any()).Return(nil, nil).AnyTimes()
	w := New("w1", m.jobs, m.users, m.levels, m.bonus, m.locks, NewConfigProvider(source), m.clock)
	defer ctrl.Finish()
	return w, m
}

func noopUnlock(context.Context) error { return nil }

func TestBackoff(t *testing.T) {
	tests := []struct {
		name     string
		base     time.Duration
		attempts int
		expCap   int
		expected time.Duration
	}{
		{name: "first retry uses the base", base: 10 * time.Second, attempts: 0, expCap: 6, expected: 10 * time.Second},
		{name: "doubles per attempt", base: 10 * time.Second, attempts: 3, expCap: 6, expected: 80 * time.Second},
		{name: "exponent is capped", base: 10 * time.Second, attempts: 50, expCap: 6, expected: 640 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Backoff(tt.base, tt.attempts, tt.expCap))
		})
	}
}

func TestSourceHistoryKey(t *testing.T) {
	assert.Equal(t, "job:5", sourceHistoryKey(domain.RecalcJob{ID: 5}))
	assert.Equal(t, "ph:42", sourceHistoryKey(domain.RecalcJob{
		ID: 5, Payload: domain.JobPayload{HistoryIDs: []int64{42}},
	}))
	// Order of ids does not change the key.
	assert.Equal(t, "ph:7,42,99", sourceHistoryKey(domain.RecalcJob{
		ID: 5, Payload: domain.JobPayload{HistoryIDs: []int64{99, 7, 42}},
	}))
}

func TestRunOnceSuccess(t *testing.T) {
	w, m := NewMock(t)
	amount := decimal.NewFromInt(500)
	job := domain.RecalcJob{
		ID:     5,
		UserID: 7,
		Payload: domain.JobPayload{
			PurchaseAmountUSD: &amount,
			HistoryIDs:        []int64{42},
		},
	}

	m.jobs.EXPECT().RescueOrphans(gomock.Any(), 120).Return(int64(0), nil)
	m.jobs.EXPECT().DiscardSentinel(gomock.Any(), int64(1)).Return(int64(0), nil)
	m.jobs.EXPECT().ClaimBatch(gomock.Any(), "w1", 20, 60, int64(1)).Return([]domain.RecalcJob{job}, nil)
	m.locks.EXPECT().TryAcquire(gomock.Any(), pg.LockKey("level-recalc", 7)).
		Return(pg.UnlockFunc(noopUnlock), true, nil)

	m.levels.EXPECT().Evaluate(gomock.Any(), int64(7)).Return(2, true, nil)
	m.bonus.EXPECT().PayPurchaseBonus(gomock.Any(), int64(7), 2, amount, "ph:42",
		bonusservice.Params{RootUserID: 1, MaxChainDepth: 30, MinEligibleLevel: 1}).Return(2, nil)

	// Ancestor walk: one real ancestor, then the root sentinel.
	m.users.EXPECT().Parent(gomock.Any(), int64(7)).Return(&domain.User{ID: 3}, nil)
	m.levels.EXPECT().Evaluate(gomock.Any(), int64(3)).Return(1, false, nil)
	m.users.EXPECT().Parent(gomock.Any(), int64(3)).Return(&domain.User{ID: 1}, nil)

	m.jobs.EXPECT().MarkSucceeded(gomock.Any(), int64(5), "w1").Return(true, nil)
	m.jobs.EXPECT().Stats(gomock.Any()).Return(map[domain.JobStatus]int64{}, nil)

	assert.NoError(t, w.RunOnce(context.Background()))
}

func TestRunOnceNoPurchasePaysNothing(t *testing.T) {
	w, m := NewMock(t)
	job := domain.RecalcJob{ID: 5, UserID: 7}

	m.jobs.EXPECT().RescueOrphans(gomock.Any(), 120).Return(int64(0), nil)
	m.jobs.EXPECT().DiscardSentinel(gomock.Any(), int64(1)).Return(int64(0), nil)
	m.jobs.EXPECT().ClaimBatch(gomock.Any(), "w1", 20, 60, int64(1)).Return([]domain.RecalcJob{job}, nil)
	m.locks.EXPECT().TryAcquire(gomock.Any(), gomock.Any()).Return(pg.UnlockFunc(noopUnlock), true, nil)

	m.levels.EXPECT().Evaluate(gomock.Any(), int64(7)).Return(0, false, nil)
	m.users.EXPECT().Parent(gomock.Any(), int64(7)).Return(nil, nil)

	m.jobs.EXPECT().MarkSucceeded(gomock.Any(), int64(5), "w1").Return(true, nil)
	m.jobs.EXPECT().Stats(gomock.Any()).Return(map[domain.JobStatus]int64{}, nil)

	assert.NoError(t, w.RunOnce(context.Background()))
}

func TestRunOnceLockBusyRequeues(t *testing.T) {
	w, m := NewMock(t)
	job := domain.RecalcJob{ID: 5, UserID: 7}

	m.jobs.EXPECT().RescueOrphans(gomock.Any(), 120).Return(int64(0), nil)
	m.jobs.EXPECT().DiscardSentinel(gomock.Any(), int64(1)).Return(int64(0), nil)
	m.jobs.EXPECT().ClaimBatch(gomock.Any(), "w1", 20, 60, int64(1)).Return([]domain.RecalcJob{job}, nil)
	m.locks.EXPECT().TryAcquire(gomock.Any(), gomock.Any()).Return(nil, false, nil)

	// The attempt counter must not move.
	m.jobs.EXPECT().Requeue(gomock.Any(), int64(5), 10*time.Second).Return(nil)
	m.jobs.EXPECT().Stats(gomock.Any()).Return(map[domain.JobStatus]int64{}, nil)

	assert.NoError(t, w.RunOnce(context.Background()))
}

func TestRunOnceEvaluationFailureMarksFailed(t *testing.T) {
	w, m := NewMock(t)
	job := domain.RecalcJob{ID: 5, UserID: 7, Attempts: 2}

	m.jobs.EXPECT().RescueOrphans(gomock.Any(), 120).Return(int64(0), nil)
	m.jobs.EXPECT().DiscardSentinel(gomock.Any(), int64(1)).Return(int64(0), nil)
	m.jobs.EXPECT().ClaimBatch(gomock.Any(), "w1", 20, 60, int64(1)).Return([]domain.RecalcJob{job}, nil)
	m.locks.EXPECT().TryAcquire(gomock.Any(), gomock.Any()).Return(pg.UnlockFunc(noopUnlock), true, nil)

	m.levels.EXPECT().Evaluate(gomock.Any(), int64(7)).Return(0, false, errors.New("some error"))

	// attempts=2 -> backoff 10s << 2.
	m.jobs.EXPECT().MarkFailed(gomock.Any(), int64(5), "w1", gomock.Any(), 40*time.Second).
		Return(domain.JobPending, nil)
	m.jobs.EXPECT().Stats(gomock.Any()).Return(map[domain.JobStatus]int64{}, nil)

	assert.NoError(t, w.RunOnce(context.Background()))
}

func TestRunOnceLastAttemptGoesDead(t *testing.T) {
	w, m := NewMock(t)
	job := domain.RecalcJob{ID: 5, UserID: 7, Attempts: 4, MaxAttempts: 5}

	m.jobs.EXPECT().RescueOrphans(gomock.Any(), 120).Return(int64(0), nil)
	m.jobs.EXPECT().DiscardSentinel(gomock.Any(), int64(1)).Return(int64(0), nil)
	m.jobs.EXPECT().ClaimBatch(gomock.Any(), "w1", 20, 60, int64(1)).Return([]domain.RecalcJob{job}, nil)
	m.locks.EXPECT().TryAcquire(gomock.Any(), gomock.Any()).Return(pg.UnlockFunc(noopUnlock), true, nil)

	m.levels.EXPECT().Evaluate(gomock.Any(), int64(7)).Return(0, false, errors.New("some error"))

	m.jobs.EXPECT().MarkFailed(gomock.Any(), int64(5), "w1", gomock.Any(), gomock.Any()).
		Return(domain.JobDead, nil)
	m.jobs.EXPECT().Stats(gomock.Any()).Return(map[domain.JobStatus]int64{}, nil)

	assert.NoError(t, w.RunOnce(context.Background()))
}

func TestRunOnceLostClaimSuccessLeavesRow(t *testing.T) {
	w, m := NewMock(t)
	job := domain.RecalcJob{ID: 5, UserID: 7}

	m.jobs.EXPECT().RescueOrphans(gomock.Any(), 120).Return(int64(0), nil)
	m.jobs.EXPECT().DiscardSentinel(gomock.Any(), int64(1)).Return(int64(0), nil)
	m.jobs.EXPECT().ClaimBatch(gomock.Any(), "w1", 20, 60, int64(1)).Return([]domain.RecalcJob{job}, nil)
	m.locks.EXPECT().TryAcquire(gomock.Any(), gomock.Any()).Return(pg.UnlockFunc(noopUnlock), true, nil)

	m.levels.EXPECT().Evaluate(gomock.Any(), int64(7)).Return(0, false, nil)
	m.users.EXPECT().Parent(gomock.Any(), int64(7)).Return(nil, nil)

	// The lease lapsed mid-run and the row belongs to someone else now; the
	// success write reports zero rows and the worker walks away.
	m.jobs.EXPECT().MarkSucceeded(gomock.Any(), int64(5), "w1").Return(false, nil)
	m.jobs.EXPECT().Stats(gomock.Any()).Return(map[domain.JobStatus]int64{}, nil)

	assert.NoError(t, w.RunOnce(context.Background()))
}

func TestRunOnceLostClaimFailureLeavesRow(t *testing.T) {
	w, m := NewMock(t)
	job := domain.RecalcJob{ID: 5, UserID: 7, Attempts: 4, MaxAttempts: 5}

	m.jobs.EXPECT().RescueOrphans(gomock.Any(), 120).Return(int64(0), nil)
	m.jobs.EXPECT().DiscardSentinel(gomock.Any(), int64(1)).Return(int64(0), nil)
	m.jobs.EXPECT().ClaimBatch(gomock.Any(), "w1", 20, 60, int64(1)).Return([]domain.RecalcJob{job}, nil)
	m.locks.EXPECT().TryAcquire(gomock.Any(), gomock.Any()).Return(pg.UnlockFunc(noopUnlock), true, nil)

	m.levels.EXPECT().Evaluate(gomock.Any(), int64(7)).Return(0, false, errors.New("some error"))

	// Empty status means the ownership guard matched no row: the job was
	// already DEAD or re-claimed, and its state must be left alone.
	m.jobs.EXPECT().MarkFailed(gomock.Any(), int64(5), "w1", gomock.Any(), gomock.Any()).
		Return(domain.JobStatus(""), nil)
	m.jobs.EXPECT().Stats(gomock.Any()).Return(map[domain.JobStatus]int64{}, nil)

	assert.NoError(t, w.RunOnce(context.Background()))
}

func TestHeartbeatMarksOverBudgetJobDead(t *testing.T) {
	w, m := NewMock(t)

	cfg := domain.DefaultWorkerConfig()
	cfg.MaxWalltimeSec = 0 // any tick is over budget

	pickedAt := m.clock.Now()
	job := domain.RecalcJob{ID: 5, UserID: 7, PickedAt: &pickedAt}

	m.jobs.EXPECT().MarkDead(gomock.Any(), int64(5), ErrLeaseExpired.Error()).Return(nil)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.heartbeat(ctx, cancel, job, cfg)
	}()

	// First heartbeat tick: interval = leaseSec/steps = 15s.
	m.clock.BlockUntil(1)
	m.clock.Advance(16 * time.Second)
	<-done

	assert.ErrorIs(t, context.Cause(ctx), ErrLeaseExpired)
}

func TestHeartbeatLostClaimCancelsProcessing(t *testing.T) {
	w, m := NewMock(t)

	cfg := domain.DefaultWorkerConfig()
	pickedAt := m.clock.Now()
	job := domain.RecalcJob{ID: 5, UserID: 7, PickedAt: &pickedAt}

	// A rescue sweep took the claim away.
	m.jobs.EXPECT().ExtendLease(gomock.Any(), int64(5), 60).Return(false, nil)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.heartbeat(ctx, cancel, job, cfg)
	}()

	m.clock.BlockUntil(1)
	m.clock.Advance(16 * time.Second)
	<-done

	assert.ErrorIs(t, context.Cause(ctx), ErrLeaseExpired)
}

func TestHeartbeatExtendsWhileRunning(t *testing.T) {
	w, m := NewMock(t)

	cfg := domain.DefaultWorkerConfig()
	pickedAt := m.clock.Now()
	job := domain.RecalcJob{ID: 5, UserID: 7, PickedAt: &pickedAt}

	extended := make(chan struct{})
	m.jobs.EXPECT().ExtendLease(gomock.Any(), int64(5), 60).
		DoAndReturn(func(context.Context, int64, int) (bool, error) {
			close(extended)
			return true, nil
		})

	ctx, cancel := context.WithCancelCause(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.heartbeat(ctx, cancel, job, cfg)
	}()

	m.clock.BlockUntil(1)
	m.clock.Advance(16 * time.Second)
	<-extended

	cancel(nil)
	<-done
	assert.NotErrorIs(t, context.Cause(ctx), ErrLeaseExpired)
}
