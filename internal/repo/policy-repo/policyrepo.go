package policyrepo

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

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

// ActiveLevelPolicy loads the whole tier tree of the active policy in one
// pass. Returns nil when no policy is active. Levels come back sorted
// ascending; the evaluator walks them from the top itself.
func (r *Repository) ActiveLevelPolicy(ctx context.Context) (*domain.LevelPolicy, error) {
	var policy domain.LevelPolicy
	err := r.db.QueryRow(ctx, `SELECT id, active FROM level_policies WHERE active LIMIT 1`).
		Scan(&policy.ID, &policy.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't load active level policy", zap.Error(err))
		return nil, err
	}

	query := `
        SELECT pl.id, pl.level, pgr.id, req.id, req.kind, req.amount, req.cnt, req.target_level
        FROM policy_levels pl
        JOIN policy_groups pgr ON pgr.policy_level_id = pl.id
        JOIN policy_requirements req ON req.group_id = pgr.id
        WHERE pl.policy_id = $1
        ORDER BY pl.level, pgr.id, req.id
    `
	rows, err := r.db.Query(ctx, query, policy.ID)
	if err != nil {
		zap.L().Error("can't load policy tree", zap.Int64("policyID", policy.ID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	levels := map[int64]*domain.PolicyLevel{}
	groups := map[int64]*domain.PolicyGroup{}
	var levelOrder []int64
	for rows.Next() {
		var levelID, groupID int64
		var level int
		var req domain.PolicyRequirement
		err := rows.Scan(&levelID, &level, &groupID, &req.ID, &req.Kind, &req.Amount, &req.Count, &req.TargetLevel)
		if err != nil {
			zap.L().Error("can't scan policy row", zap.Error(err))
			return nil, err
		}

		lvl, ok := levels[levelID]
		if !ok {
			lvl = &domain.PolicyLevel{ID: levelID, Level: level}
			levels[levelID] = lvl
			levelOrder = append(levelOrder, levelID)
		}
		grp, ok := groups[groupID]
		if !ok {
			lvl.Groups = append(lvl.Groups, domain.PolicyGroup{ID: groupID})
			grp = &lvl.Groups[len(lvl.Groups)-1]
			groups[groupID] = grp
		}
		grp.Requirements = append(grp.Requirements, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range levelOrder {
		policy.Levels = append(policy.Levels, *levels[id])
	}
	sort.Slice(policy.Levels, func(i, j int) bool { return policy.Levels[i].Level < policy.Levels[j].Level })
	return &policy, nil
}

func (r *Repository) ActiveSplitPolicy(ctx context.Context) (*domain.PurchaseSplitPolicy, error) {
	query := `
        SELECT id, base_pct, level_pct
        FROM purchase_split_policies
        WHERE active
        LIMIT 1
    `
	var policy domain.PurchaseSplitPolicy
	err := r.db.QueryRow(ctx, query).Scan(&policy.ID, &policy.BasePct, &policy.LevelPct)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't load split policy", zap.Error(err))
		return nil, err
	}
	return &policy, nil
}

// ActiveBonusPlan loads the active cap% table, items sorted by level.
func (r *Repository) ActiveBonusPlan(ctx context.Context) (*domain.BonusPlan, error) {
	var plan domain.BonusPlan
	err := r.db.QueryRow(ctx, `SELECT id, active FROM bonus_plans WHERE active LIMIT 1`).
		Scan(&plan.ID, &plan.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't load active bonus plan", zap.Error(err))
		return nil, err
	}
	if err := r.loadPlanItems(ctx, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// BonusPlanByID loads a specific plan, used by mining runs that snapshotted
// a plan reference at start time.
func (r *Repository) BonusPlanByID(ctx context.Context, planID int64) (*domain.BonusPlan, error) {
	var plan domain.BonusPlan
	err := r.db.QueryRow(ctx, `SELECT id, active FROM bonus_plans WHERE id = $1`, planID).
		Scan(&plan.ID, &plan.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't load bonus plan", zap.Int64("planID", planID), zap.Error(err))
		return nil, err
	}
	if err := r.loadPlanItems(ctx, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *Repository) loadPlanItems(ctx context.Context, plan *domain.BonusPlan) error {
	query := `
        SELECT level, percent
        FROM bonus_plan_items
        WHERE plan_id = $1
        ORDER BY level
    `
	rows, err := r.db.Query(ctx, query, plan.ID)
	if err != nil {
		zap.L().Error("can't load bonus plan items", zap.Int64("planID", plan.ID), zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.BonusPlanItem
		if err := rows.Scan(&item.Level, &item.Percent); err != nil {
			return err
		}
		plan.Items = append(plan.Items, item)
	}
	return rows.Err()
}

func (r *Repository) ActiveMiningPercentPolicy(ctx context.Context) (*domain.MiningPercentPolicy, error) {
	query := `
        SELECT id, active, self_pct, company_pct, mlm_pct, referral_pcts
        FROM mining_percent_policies
        WHERE active
        LIMIT 1
    `
	var policy domain.MiningPercentPolicy
	var pcts []byte
	err := r.db.QueryRow(ctx, query).Scan(&policy.ID, &policy.Active, &policy.SelfPct, &policy.CompanyPct, &policy.MlmPct, &pcts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't load mining percent policy", zap.Error(err))
		return nil, err
	}
	if err := json.Unmarshal(pcts, &policy.ReferralPcts); err != nil {
		return nil, err
	}
	return &policy, nil
}

// WorkerConfig reads the single tunables row. Returns nil when absent so
// the provider can fall back to defaults.
func (r *Repository) WorkerConfig(ctx context.Context) (*domain.WorkerConfig, error) {
	query := `
        SELECT active, poll_interval_sec, batch_size, lease_sec, max_chain_depth,
               heartbeat_steps, max_walltime_sec, rescue_grace_sec, backoff_base_sec,
               backoff_exp_cap, min_eligible_level, sentinel_user_id
        FROM worker_config
        WHERE id = 1
    `
	var cfg domain.WorkerConfig
	err := r.db.QueryRow(ctx, query).Scan(&cfg.Active, &cfg.PollIntervalSec, &cfg.BatchSize,
		&cfg.LeaseSec, &cfg.MaxChainDepth, &cfg.HeartbeatSteps, &cfg.MaxWalltimeSec,
		&cfg.RescueGraceSec, &cfg.BackoffBaseSec, &cfg.BackoffExpCap, &cfg.MinEligibleLevel,
		&cfg.SentinelUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't load worker config", zap.Error(err))
		return nil, err
	}
	return &cfg, nil
}
