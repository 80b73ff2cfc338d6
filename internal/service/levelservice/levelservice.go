package levelservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dftlabs/refengine/internal/domain"
)

//go:generate mockgen -source=levelservice.go -destination=mock_levelservice.go -package=levelservice

var ErrNoActivePolicy = errors.New("no active level policy")

// MetricsRepo computes the qualifying metrics on demand and persists the
// resulting tier.
type MetricsRepo interface {
	SelfNodeAmount(ctx context.Context, userID int64) (decimal.Decimal, error)
	DirectReferralCount(ctx context.Context, userID int64) (int, error)
	GroupSalesAmount(ctx context.Context, userID int64) (decimal.Decimal, error)
	DirectDownlineLevelCount(ctx context.Context, userID int64, targetLevel int) (int, error)
	SetLevel(ctx context.Context, userID int64, level int) (bool, error)
}

type PolicySource interface {
	ActiveLevelPolicy(ctx context.Context) (*domain.LevelPolicy, error)
}

// Service is the policy evaluator: it re-derives a user's tier from their
// metrics against the active policy tree.
type Service struct {
	metrics  MetricsRepo
	policies PolicySource
}

func New(metrics MetricsRepo, policies PolicySource) *Service {
	return &Service{metrics: metrics, policies: policies}
}

// metricsCache memoizes metric queries within one evaluation; a tier tree
// commonly reuses the same requirement kind across groups.
type metricsCache struct {
	repo   MetricsRepo
	userID int64

	nodeAmount     *decimal.Decimal
	referralCount  *int
	groupSales     *decimal.Decimal
	downlineCounts map[int]int
}

func (c *metricsCache) NodeAmount(ctx context.Context) (decimal.Decimal, error) {
	if c.nodeAmount == nil {
		amount, err := c.repo.SelfNodeAmount(ctx, c.userID)
		if err != nil {
			return decimal.Zero, err
		}
		c.nodeAmount = &amount
	}
	return *c.nodeAmount, nil
}

func (c *metricsCache) ReferralCount(ctx context.Context) (int, error) {
	if c.referralCount == nil {
		count, err := c.repo.DirectReferralCount(ctx, c.userID)
		if err != nil {
			return 0, err
		}
		c.referralCount = &count
	}
	return *c.referralCount, nil
}

func (c *metricsCache) GroupSales(ctx context.Context) (decimal.Decimal, error) {
	if c.groupSales == nil {
		amount, err := c.repo.GroupSalesAmount(ctx, c.userID)
		if err != nil {
			return decimal.Zero, err
		}
		c.groupSales = &amount
	}
	return *c.groupSales, nil
}

func (c *metricsCache) DownlineCount(ctx context.Context, targetLevel int) (int, error) {
	if c.downlineCounts == nil {
		c.downlineCounts = make(map[int]int)
	}
	if count, ok := c.downlineCounts[targetLevel]; ok {
		return count, nil
	}
	count, err := c.repo.DirectDownlineLevelCount(ctx, c.userID, targetLevel)
	if err != nil {
		return 0, err
	}
	c.downlineCounts[targetLevel] = count
	return count, nil
}

// Evaluate re-derives the user's tier: levels are tried from the highest
// down, a level qualifies when any of its groups has all requirements
// satisfied, and no match resets the tier to 0. The write is skipped when
// the tier is unchanged. Returns the resulting level and whether it moved.
func (s *Service) Evaluate(ctx context.Context, userID int64) (int, bool, error) {
	policy, err := s.policies.ActiveLevelPolicy(ctx)
	if err != nil {
		return 0, false, err
	}
	if policy == nil {
		return 0, false, ErrNoActivePolicy
	}

	cache := &metricsCache{repo: s.metrics, userID: userID}

	newLevel := 0
	for i := len(policy.Levels) - 1; i >= 0; i-- {
		qualified, err := s.qualifies(ctx, cache, policy.Levels[i])
		if err != nil {
			return 0, false, err
		}
		if qualified {
			newLevel = policy.Levels[i].Level
			break
		}
	}

	changed, err := s.metrics.SetLevel(ctx, userID, newLevel)
	if err != nil {
		return 0, false, err
	}
	if changed {
		zap.L().Info("user level changed", zap.Int64("userID", userID), zap.Int("level", newLevel))
	}
	return newLevel, changed, nil
}

func (s *Service) qualifies(ctx context.Context, cache *metricsCache, level domain.PolicyLevel) (bool, error) {
	for _, group := range level.Groups {
		ok, err := s.groupSatisfied(ctx, cache, group)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) groupSatisfied(ctx context.Context, cache *metricsCache, group domain.PolicyGroup) (bool, error) {
	for _, req := range group.Requirements {
		ok, err := s.requirementMet(ctx, cache, req)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return len(group.Requirements) > 0, nil
}

func (s *Service) requirementMet(ctx context.Context, cache *metricsCache, req domain.PolicyRequirement) (bool, error) {
	switch req.Kind {
	case domain.ReqNodeAmountMin:
		amount, err := cache.NodeAmount(ctx)
		if err != nil {
			return false, err
		}
		return amount.GreaterThanOrEqual(req.Amount), nil
	case domain.ReqDirectReferralCountMin:
		count, err := cache.ReferralCount(ctx)
		if err != nil {
			return false, err
		}
		return count >= req.Count, nil
	case domain.ReqGroupSalesAmountMin:
		amount, err := cache.GroupSales(ctx)
		if err != nil {
			return false, err
		}
		return amount.GreaterThanOrEqual(req.Amount), nil
	case domain.ReqDirectDownlineLevelCountMin:
		count, err := cache.DownlineCount(ctx, req.TargetLevel)
		if err != nil {
			return false, err
		}
		return count >= req.Count, nil
	default:
		return false, fmt.Errorf("unknown requirement kind %q", req.Kind)
	}
}
