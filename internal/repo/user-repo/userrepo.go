package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

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

func (r *Repository) FindByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `
        SELECT id, login, level, created_at
        FROM users
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)

	var user domain.User
	err := row.Scan(&user.ID, &user.Login, &user.Level, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find user", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// Parent returns the sponsor of userID, or nil when the user has no edge.
func (r *Repository) Parent(ctx context.Context, userID int64) (*domain.User, error) {
	query := `
        SELECT u.id, u.login, u.level, u.created_at
        FROM referral_edges e
        JOIN users u ON u.id = e.parent_id
        WHERE e.child_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)

	var user domain.User
	err := row.Scan(&user.ID, &user.Login, &user.Level, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find parent", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// SetLevel writes the user's tier only when it actually changes. Returns
// true when a row was updated.
func (r *Repository) SetLevel(ctx context.Context, userID int64, level int) (bool, error) {
	query := `
        UPDATE users
        SET level = $2
        WHERE id = $1 AND level <> $2
    `
	tag, err := r.db.Exec(ctx, query, userID, level)
	if err != nil {
		zap.L().Error("can't set user level", zap.Int64("userID", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SelfNodeAmount is the user's own purchase volume: sum of quantity*price
// over active packages.
func (r *Repository) SelfNodeAmount(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(quantity * price), 0)
        FROM user_packages
        WHERE user_id = $1 AND active
    `
	var amount decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID).Scan(&amount); err != nil {
		zap.L().Error("can't compute self node amount", zap.Int64("userID", userID), zap.Error(err))
		return decimal.Zero, err
	}
	return amount, nil
}

func (r *Repository) DirectReferralCount(ctx context.Context, userID int64) (int, error) {
	query := `
        SELECT count(*)
        FROM referral_edges
        WHERE parent_id = $1
    `
	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		zap.L().Error("can't count direct referrals", zap.Int64("userID", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// GroupSalesAmount reads the precomputed group-sales rollup for the user.
func (r *Repository) GroupSalesAmount(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `
        SELECT total_amount
        FROM user_group_sales
        WHERE user_id = $1
    `
	var amount decimal.Decimal
	err := r.db.QueryRow(ctx, query, userID).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		zap.L().Error("can't read group sales", zap.Int64("userID", userID), zap.Error(err))
		return decimal.Zero, err
	}
	return amount, nil
}

// DirectDownlineLevelCount counts direct referrals sitting at exactly
// targetLevel.
func (r *Repository) DirectDownlineLevelCount(ctx context.Context, userID int64, targetLevel int) (int, error) {
	query := `
        SELECT count(*)
        FROM referral_edges e
        JOIN users u ON u.id = e.child_id
        WHERE e.parent_id = $1 AND u.level = $2
    `
	var count int
	if err := r.db.QueryRow(ctx, query, userID, targetLevel).Scan(&count); err != nil {
		zap.L().Error("can't count downline at level", zap.Int64("userID", userID), zap.Int("targetLevel", targetLevel), zap.Error(err))
		return 0, err
	}
	return count, nil
}
