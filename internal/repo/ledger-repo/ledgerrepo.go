package ledgerrepo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dftlabs/refengine/internal/domain"
	"github.com/dftlabs/refengine/internal/pg"
	"go.uber.org/zap"
)

// Repository holds the append-only payout ledger, wallet balances and the
// rolling reward summaries. Every method is a single statement so the
// ledger service can compose them inside one transaction; the idempotency
// claims report whether the row was actually inserted.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

// ClaimLevelBonus inserts the (sourceHistoryID, userID, capLevel)
// idempotency record. Returns false when the bonus was already paid.
func (r *Repository) ClaimLevelBonus(ctx context.Context, sourceHistoryID string, userID int64, capLevel int, amount decimal.Decimal) (bool, error) {
	query := `
        INSERT INTO user_level_bonuses (source_history_id, user_id, cap_level, amount)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (source_history_id, user_id, cap_level) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, sourceHistoryID, userID, capLevel, amount)
	if err != nil {
		zap.L().Error("can't claim level bonus", zap.String("sourceHistoryID", sourceHistoryID), zap.Int64("userID", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// InsertPayout appends a mining payout. The (run_id, user_id, kind, level)
// unique key makes retried runs no-ops; returns false on conflict.
func (r *Repository) InsertPayout(ctx context.Context, payout *domain.MiningPayout) (bool, error) {
	query := `
        INSERT INTO mining_payouts (run_id, user_id, kind, level, amount)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (run_id, user_id, kind, level) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, payout.RunID, payout.UserID, payout.Kind, payout.Level, payout.Amount)
	if err != nil {
		zap.L().Error("can't insert mining payout", zap.Int64("runID", payout.RunID), zap.Int64("userID", payout.UserID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CreditWallet adds amount to the user's balance for token, creating the
// wallet row on first credit.
func (r *Repository) CreditWallet(ctx context.Context, userID int64, token string, amount decimal.Decimal) error {
	query := `
        INSERT INTO user_wallets (user_id, token, balance)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, token)
        DO UPDATE SET balance = user_wallets.balance + EXCLUDED.balance
    `
	if _, err := r.db.Exec(ctx, query, userID, token, amount); err != nil {
		zap.L().Error("can't credit wallet", zap.Int64("userID", userID), zap.String("token", token), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) AppendWalletTx(ctx context.Context, tx *domain.WalletTx) error {
	query := `
        INSERT INTO wallet_txs (user_id, token, direction, amount, note)
        VALUES ($1, $2, $3, $4, $5)
    `
	if _, err := r.db.Exec(ctx, query, tx.UserID, tx.Token, tx.Direction, tx.Amount, tx.Note); err != nil {
		zap.L().Error("can't append wallet tx", zap.Int64("userID", tx.UserID), zap.Error(err))
		return err
	}
	return nil
}

// BumpRewardSummary folds amount into the rolling summary, rolling the
// today/yesterday buckets over when the stored date is stale.
func (r *Repository) BumpRewardSummary(ctx context.Context, userID int64, amount decimal.Decimal) error {
	query := `
        INSERT INTO user_reward_summaries (user_id, today_amount, yesterday_amount, total_amount, updated_on)
        VALUES ($1, $2, 0, $2, current_date)
        ON CONFLICT (user_id) DO UPDATE SET
            yesterday_amount = CASE
                WHEN user_reward_summaries.updated_on = current_date THEN user_reward_summaries.yesterday_amount
                WHEN user_reward_summaries.updated_on = current_date - 1 THEN user_reward_summaries.today_amount
                ELSE 0 END,
            today_amount = CASE
                WHEN user_reward_summaries.updated_on = current_date THEN user_reward_summaries.today_amount + EXCLUDED.today_amount
                ELSE EXCLUDED.today_amount END,
            total_amount = user_reward_summaries.total_amount + EXCLUDED.today_amount,
            updated_on = current_date
    `
	if _, err := r.db.Exec(ctx, query, userID, amount); err != nil {
		zap.L().Error("can't bump reward summary", zap.Int64("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) AppendRewardHistory(ctx context.Context, h *domain.RewardHistory) error {
	query := `
        INSERT INTO user_reward_histories (user_id, kind, token, amount, note)
        VALUES ($1, $2, $3, $4, $5)
    `
	if _, err := r.db.Exec(ctx, query, h.UserID, h.Kind, h.Token, h.Amount, h.Note); err != nil {
		zap.L().Error("can't append reward history", zap.Int64("userID", h.UserID), zap.Error(err))
		return err
	}
	return nil
}
