package miningservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dftlabs/refengine/internal/domain"
	"github.com/dftlabs/refengine/internal/service/uplineservice"
	"github.com/dftlabs/refengine/internal/service/waterfall"
)

//go:generate mockgen -source=miningservice.go -destination=mock_miningservice.go -package=miningservice

var (
	ErrNoPercentPolicy = errors.New("no active mining percent policy")
	ErrNoBonusPlan     = errors.New("no active bonus plan")
	ErrMaskNeverFires  = errors.New("days-of-week mask allows no day")
)

type MiningRepo interface {
	DueSchedules(ctx context.Context, now time.Time) ([]domain.MiningSchedule, error)
	StartRun(ctx context.Context, run *domain.MiningRun, nextRunAt time.Time, lastRunAt time.Time) error
	CompleteRun(ctx context.Context, runID int64) error
	FindRunningRun(ctx context.Context, scheduleID int64) (*domain.MiningRun, error)
	HolderAllowances(ctx context.Context) ([]domain.HolderAllowance, error)
}

type PolicySource interface {
	ActiveMiningPercentPolicy(ctx context.Context) (*domain.MiningPercentPolicy, error)
	ActiveBonusPlan(ctx context.Context) (*domain.BonusPlan, error)
	BonusPlanByID(ctx context.Context, planID int64) (*domain.BonusPlan, error)
}

type LedgerWriter interface {
	PayMiningReward(ctx context.Context, payout *domain.MiningPayout) (bool, error)
}

// Service runs scheduled mining payouts: it snapshots the live percentages
// into an immutable run, then distributes self/company/referral/level-bonus
// rewards over all package holders.
type Service struct {
	repo     MiningRepo
	policies PolicySource
	upline   uplineservice.Resolver
	ledger   LedgerWriter
}

func New(repo MiningRepo, policies PolicySource, upline uplineservice.Resolver, ledger LedgerWriter) *Service {
	return &Service{repo: repo, policies: policies, upline: upline, ledger: ledger}
}

func (s *Service) DueSchedules(ctx context.Context, now time.Time) ([]domain.MiningSchedule, error) {
	return s.repo.DueSchedules(ctx, now)
}

// ComputeNextRunAt derives a schedule's next firing time. INTERVAL
// schedules add a fixed minute offset. DAILY schedules find the next
// occurrence of the target time-of-day in the schedule's timezone among the
// weekdays its bitmask (bit 0 = Sunday) allows; a target that already
// passed today, or a disallowed day, pushes the search forward day by day.
func ComputeNextRunAt(schedule domain.MiningSchedule, now time.Time) (time.Time, error) {
	switch schedule.Kind {
	case domain.ScheduleInterval:
		if schedule.IntervalMinutes <= 0 {
			return time.Time{}, fmt.Errorf("schedule %d has non-positive interval", schedule.ID)
		}
		return now.Add(time.Duration(schedule.IntervalMinutes) * time.Minute), nil

	case domain.ScheduleDaily:
		loc, err := time.LoadLocation(schedule.Timezone)
		if err != nil {
			return time.Time{}, fmt.Errorf("schedule %d has bad timezone %q: %w", schedule.ID, schedule.Timezone, err)
		}
		local := now.In(loc)
		for day := 0; day <= 7; day++ {
			d := local.AddDate(0, 0, day)
			candidate := time.Date(d.Year(), d.Month(), d.Day(),
				schedule.DailyAtMinutes/60, schedule.DailyAtMinutes%60, 0, 0, loc)
			if !candidate.After(now) {
				continue
			}
			if schedule.DaysOfWeekMask&(1<<int(candidate.Weekday())) == 0 {
				continue
			}
			return candidate, nil
		}
		return time.Time{}, fmt.Errorf("schedule %d: %w", schedule.ID, ErrMaskNeverFires)

	default:
		return time.Time{}, fmt.Errorf("schedule %d has unknown kind %q", schedule.ID, schedule.Kind)
	}
}

// StartRun snapshots the active percent policy and bonus plan into an
// immutable RUNNING run and advances the schedule, all in one transaction.
// Propagates miningrepo.ErrRunAlreadyRunning when the exclusivity guard
// trips.
func (s *Service) StartRun(ctx context.Context, schedule domain.MiningSchedule, now time.Time) (*domain.MiningRun, error) {
	policy, err := s.policies.ActiveMiningPercentPolicy(ctx)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, ErrNoPercentPolicy
	}
	plan, err := s.policies.ActiveBonusPlan(ctx)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoBonusPlan
	}

	nextRunAt, err := ComputeNextRunAt(schedule, now)
	if err != nil {
		return nil, err
	}

	run := &domain.MiningRun{
		ScheduleID:   schedule.ID,
		SelfPct:      policy.SelfPct,
		CompanyPct:   policy.CompanyPct,
		MlmPct:       policy.MlmPct,
		ReferralPcts: policy.ReferralPcts,
		BonusPlanID:  plan.ID,
	}
	if err := s.repo.StartRun(ctx, run, nextRunAt, now); err != nil {
		return nil, err
	}

	zap.L().Info("mining run started",
		zap.Int64("runID", run.ID),
		zap.Int64("scheduleID", schedule.ID),
		zap.Time("nextRunAt", nextRunAt))
	return run, nil
}

// ResumeRun returns the RUNNING run of a schedule, if one survived a crash.
func (s *Service) ResumeRun(ctx context.Context, scheduleID int64) (*domain.MiningRun, error) {
	return s.repo.FindRunningRun(ctx, scheduleID)
}

// Params are the chain-walk tunables, read from the persisted worker
// config. CompanyUserID doubles as the root sentinel of the sponsor tree.
type Params struct {
	CompanyUserID    int64
	MaxChainDepth    int
	MinEligibleLevel int
}

type payoutKey struct {
	userID int64
	kind   domain.PayoutKind
	level  int
}

// ExecuteRun distributes the run's rewards over every package holder.
// Amounts are first accumulated per (beneficiary, kind, level) across all
// holders and then written once each, so the ledger's idempotency key holds
// and a re-executed run only fills in the payouts a crash left behind.
func (s *Service) ExecuteRun(ctx context.Context, run *domain.MiningRun, params Params) error {
	plan, err := s.policies.BonusPlanByID(ctx, run.BonusPlanID)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("mining run %d references missing bonus plan %d", run.ID, run.BonusPlanID)
	}
	caps := waterfall.CapTable(plan.Items)

	levelPct := run.MlmPct
	for _, pct := range run.ReferralPcts {
		levelPct = levelPct.Sub(pct)
	}
	if levelPct.IsNegative() {
		levelPct = decimal.Zero
	}

	holders, err := s.repo.HolderAllowances(ctx)
	if err != nil {
		return err
	}

	acc := make(map[payoutKey]decimal.Decimal)
	add := func(userID int64, kind domain.PayoutKind, level int, amount decimal.Decimal) {
		if !amount.IsPositive() {
			return
		}
		key := payoutKey{userID: userID, kind: kind, level: level}
		acc[key] = acc[key].Add(amount)
	}

	// The sponsor graph is stable for the duration of the run.
	chains := uplineservice.NewCache(s.upline)

	for _, holder := range holders {
		add(holder.UserID, domain.PayoutSelf, 0, holder.Allowance.Mul(run.SelfPct).Div(hundred))
		add(params.CompanyUserID, domain.PayoutCompany, 0, holder.Allowance.Mul(run.CompanyPct).Div(hundred))

		if err := s.accumulateReferral(ctx, chains, run, holder, params, add); err != nil {
			return err
		}
		if levelPct.IsPositive() {
			if err := s.accumulateLevelBonus(ctx, chains, holder, levelPct, caps, params, add); err != nil {
				return err
			}
		}
	}

	keys := make([]payoutKey, 0, len(acc))
	for key := range acc {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].userID != keys[j].userID {
			return keys[i].userID < keys[j].userID
		}
		if keys[i].kind != keys[j].kind {
			return keys[i].kind < keys[j].kind
		}
		return keys[i].level < keys[j].level
	})

	paidCount := 0
	for _, key := range keys {
		paid, err := s.ledger.PayMiningReward(ctx, &domain.MiningPayout{
			RunID:  run.ID,
			UserID: key.userID,
			Kind:   key.kind,
			Level:  key.level,
			Amount: acc[key],
		})
		if err != nil {
			return fmt.Errorf("mining run %d payout failed: %w", run.ID, err)
		}
		if paid {
			paidCount++
		}
	}

	if err := s.repo.CompleteRun(ctx, run.ID); err != nil {
		return err
	}
	zap.L().Info("mining run completed",
		zap.Int64("runID", run.ID),
		zap.Int("holders", len(holders)),
		zap.Int("payouts", len(keys)),
		zap.Int("paid", paidCount))
	return nil
}

var hundred = decimal.NewFromInt(100)

// accumulateReferral pays flat per-depth percentages over the full upline
// chain: position i gets referralPcts[i] of the allowance, skipping
// ancestors below the minimum eligible tier.
func (s *Service) accumulateReferral(ctx context.Context, chains uplineservice.Resolver, run *domain.MiningRun, holder domain.HolderAllowance, params Params, add func(int64, domain.PayoutKind, int, decimal.Decimal)) error {
	if len(run.ReferralPcts) == 0 {
		return nil
	}
	chain, err := chains.FullChain(ctx, holder.UserID, params.CompanyUserID, params.MaxChainDepth)
	if err != nil {
		return err
	}
	for i, ancestor := range chain {
		if i >= len(run.ReferralPcts) {
			break
		}
		pct := run.ReferralPcts[i]
		if !pct.IsPositive() || ancestor.Level < params.MinEligibleLevel {
			continue
		}
		add(ancestor.ID, domain.PayoutReferral, i+1, holder.Allowance.Mul(pct).Div(hundred))
	}
	return nil
}

// accumulateLevelBonus runs the waterfall over the monotonic chain with the
// residual MLM percentage of the allowance as the pool.
func (s *Service) accumulateLevelBonus(ctx context.Context, chains uplineservice.Resolver, holder domain.HolderAllowance, levelPct decimal.Decimal, caps map[int]decimal.Decimal, params Params, add func(int64, domain.PayoutKind, int, decimal.Decimal)) error {
	chain, err := chains.MonotonicChain(ctx, holder.UserID, params.CompanyUserID, params.MaxChainDepth)
	if err != nil {
		return err
	}
	if len(chain) == 0 {
		return nil
	}

	entries := make([]waterfall.ChainEntry, len(chain))
	for i, ancestor := range chain {
		entries[i] = waterfall.ChainEntry{UserID: ancestor.ID, Level: ancestor.Level}
	}

	pool := holder.Allowance.Mul(levelPct).Div(hundred)
	shares, err := waterfall.Distribute(pool, entries, caps, params.MinEligibleLevel, holder.Level)
	if err != nil {
		return fmt.Errorf("level bonus waterfall failed for holder %d: %w", holder.UserID, err)
	}
	for _, share := range shares {
		add(share.UserID, domain.PayoutLevelBonus, share.CapLevel, share.Amount)
	}
	return nil
}
