package bonusservice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dftlabs/refengine/internal/domain"
	"github.com/dftlabs/refengine/internal/service/uplineservice"
	"github.com/dftlabs/refengine/internal/service/waterfall"
)

//go:generate mockgen -source=bonusservice.go -destination=mock_bonusservice.go -package=bonusservice

type PolicySource interface {
	ActiveSplitPolicy(ctx context.Context) (*domain.PurchaseSplitPolicy, error)
	ActiveBonusPlan(ctx context.Context) (*domain.BonusPlan, error)
}

type LedgerWriter interface {
	PayLevelBonus(ctx context.Context, sourceHistoryID string, userID int64, capLevel int, amount decimal.Decimal) (bool, error)
}

// Service pays the purchase-triggered USDT level bonus: it turns the
// purchase amount into a fixed pool via the split policy and runs the
// waterfall over the buyer's monotonic upline chain.
type Service struct {
	policies PolicySource
	upline   uplineservice.Resolver
	ledger   LedgerWriter
}

func New(policies PolicySource, upline uplineservice.Resolver, ledger LedgerWriter) *Service {
	return &Service{policies: policies, upline: upline, ledger: ledger}
}

// Distribution settings that come from the worker's persisted config.
type Params struct {
	RootUserID       int64
	MaxChainDepth    int
	MinEligibleLevel int
}

var hundred = decimal.NewFromInt(100)

// PayPurchaseBonus distributes the level pool of one purchase event.
// sourceLevel is the buyer's tier at evaluation time; the waterfall never
// pays an ancestor below it. Each recipient is paid under the
// (sourceHistoryID, recipient, capLevel) idempotency key, so retries of the
// same job cannot double-pay. Returns the number of payments made.
func (s *Service) PayPurchaseBonus(ctx context.Context, sourceUserID int64, sourceLevel int, amountUSD decimal.Decimal, sourceHistoryID string, params Params) (int, error) {
	if !amountUSD.IsPositive() {
		return 0, nil
	}

	split, err := s.policies.ActiveSplitPolicy(ctx)
	if err != nil {
		return 0, err
	}
	if split == nil {
		zap.L().Warn("no active split policy, skipping purchase bonus", zap.Int64("userID", sourceUserID))
		return 0, nil
	}

	pool := amountUSD.Mul(split.BasePct).Div(hundred).Mul(split.LevelPct).Div(hundred)
	if !pool.IsPositive() {
		return 0, nil
	}

	plan, err := s.policies.ActiveBonusPlan(ctx)
	if err != nil {
		return 0, err
	}
	if plan == nil || len(plan.Items) == 0 {
		zap.L().Warn("no active bonus plan, skipping purchase bonus", zap.Int64("userID", sourceUserID))
		return 0, nil
	}

	chain, err := s.upline.MonotonicChain(ctx, sourceUserID, params.RootUserID, params.MaxChainDepth)
	if err != nil {
		return 0, err
	}

	entries := make([]waterfall.ChainEntry, len(chain))
	for i, ancestor := range chain {
		entries[i] = waterfall.ChainEntry{UserID: ancestor.ID, Level: ancestor.Level}
	}

	shares, err := waterfall.Distribute(pool, entries, waterfall.CapTable(plan.Items), params.MinEligibleLevel, sourceLevel)
	if err != nil {
		return 0, fmt.Errorf("waterfall distribution failed for user %d: %w", sourceUserID, err)
	}

	paidCount := 0
	for _, share := range shares {
		paid, err := s.ledger.PayLevelBonus(ctx, sourceHistoryID, share.UserID, share.CapLevel, share.Amount)
		if err != nil {
			return paidCount, err
		}
		if paid {
			paidCount++
		}
	}

	zap.L().Info("purchase level bonus distributed",
		zap.Int64("sourceUserID", sourceUserID),
		zap.String("sourceHistoryID", sourceHistoryID),
		zap.String("pool", pool.String()),
		zap.Int("recipients", len(shares)),
		zap.Int("paid", paidCount))
	return paidCount, nil
}
