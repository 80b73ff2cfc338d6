package ledgerservice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dftlabs/refengine/internal/domain"
	"github.com/dftlabs/refengine/internal/metrics"
	"github.com/dftlabs/refengine/internal/pg"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

const (
	TokenUSDT = "USDT"
	TokenDFT  = "DFT"
)

// LedgerRepo is the single-statement write surface the service composes
// into transactions.
type LedgerRepo interface {
	ClaimLevelBonus(ctx context.Context, sourceHistoryID string, userID int64, capLevel int, amount decimal.Decimal) (bool, error)
	InsertPayout(ctx context.Context, payout *domain.MiningPayout) (bool, error)
	CreditWallet(ctx context.Context, userID int64, token string, amount decimal.Decimal) error
	AppendWalletTx(ctx context.Context, tx *domain.WalletTx) error
	BumpRewardSummary(ctx context.Context, userID int64, amount decimal.Decimal) error
	AppendRewardHistory(ctx context.Context, h *domain.RewardHistory) error
}

// Service is the ledger writer: the only place payouts, balances, reward
// summaries and transaction history get mutated. Every payment is one
// transaction whose first statement is the idempotency claim, so a crash or
// retry can never split a payment from its audit trail or pay twice.
type Service struct {
	repo      LedgerRepo
	txManager pg.TXManager
}

func New(repo LedgerRepo, txManager pg.TXManager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// PayLevelBonus credits a purchase-triggered USDT bonus. Returns false
// without side effects when the (sourceHistoryID, userID, capLevel) triple
// was already paid.
func (s *Service) PayLevelBonus(ctx context.Context, sourceHistoryID string, userID int64, capLevel int, amount decimal.Decimal) (bool, error) {
	if !amount.IsPositive() {
		return false, nil
	}

	paid := false
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		claimed, err := s.repo.ClaimLevelBonus(ctx, sourceHistoryID, userID, capLevel, amount)
		if err != nil {
			return err
		}
		if !claimed {
			zap.L().Debug("level bonus already paid",
				zap.String("sourceHistoryID", sourceHistoryID),
				zap.Int64("userID", userID),
				zap.Int("capLevel", capLevel))
			return nil
		}

		if err := s.repo.CreditWallet(ctx, userID, TokenUSDT, amount); err != nil {
			return err
		}
		if err := s.repo.AppendWalletTx(ctx, &domain.WalletTx{
			UserID:    userID,
			Token:     TokenUSDT,
			Direction: domain.TxDeposit,
			Amount:    amount,
			Note:      fmt.Sprintf("level bonus %s cap %d", sourceHistoryID, capLevel),
		}); err != nil {
			return err
		}
		paid = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("can't pay level bonus to user %d: %w", userID, err)
	}
	if paid {
		metrics.PayoutsPaid.WithLabelValues(string(domain.PayoutLevelBonus)).Inc()
	}
	return paid, nil
}

// PayMiningReward credits one mining payout. The (runID, userID, kind,
// level) ledger row is the idempotency key; when it already exists the
// whole payment is a no-op, which makes re-executing a crashed run safe.
func (s *Service) PayMiningReward(ctx context.Context, payout *domain.MiningPayout) (bool, error) {
	if !payout.Amount.IsPositive() {
		return false, nil
	}

	paid := false
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		inserted, err := s.repo.InsertPayout(ctx, payout)
		if err != nil {
			return err
		}
		if !inserted {
			zap.L().Debug("mining payout already recorded",
				zap.Int64("runID", payout.RunID),
				zap.Int64("userID", payout.UserID),
				zap.String("kind", string(payout.Kind)),
				zap.Int("level", payout.Level))
			return nil
		}

		if err := s.repo.CreditWallet(ctx, payout.UserID, TokenDFT, payout.Amount); err != nil {
			return err
		}
		if err := s.repo.AppendWalletTx(ctx, &domain.WalletTx{
			UserID:    payout.UserID,
			Token:     TokenDFT,
			Direction: domain.TxDeposit,
			Amount:    payout.Amount,
			Note:      fmt.Sprintf("mining run %d %s L%d", payout.RunID, payout.Kind, payout.Level),
		}); err != nil {
			return err
		}
		if err := s.repo.BumpRewardSummary(ctx, payout.UserID, payout.Amount); err != nil {
			return err
		}
		if err := s.repo.AppendRewardHistory(ctx, &domain.RewardHistory{
			UserID: payout.UserID,
			Kind:   payout.Kind,
			Token:  TokenDFT,
			Amount: payout.Amount,
			Note:   fmt.Sprintf("mining run %d", payout.RunID),
		}); err != nil {
			return err
		}
		paid = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("can't pay mining reward to user %d: %w", payout.UserID, err)
	}
	if paid {
		metrics.PayoutsPaid.WithLabelValues(string(payout.Kind)).Inc()
	}
	return paid, nil
}
