package uplineservice

import (
	"context"
	"fmt"

	"github.com/dftlabs/refengine/internal/domain"
)

//go:generate mockgen -source=uplineservice.go -destination=mock_uplineservice.go -package=uplineservice

// UserSource is the sponsor-graph read surface the resolver walks.
type UserSource interface {
	Parent(ctx context.Context, userID int64) (*domain.User, error)
}

// Service walks the sponsor graph from a user toward the root sentinel.
// The graph is immutable while a run is in flight, so results are safe to
// memoize per run (see Cache).
type Service struct {
	users UserSource
}

func New(users UserSource) *Service {
	return &Service{users: users}
}

// FullChain returns every ancestor in child-to-root order, excluding the
// root sentinel, bounded by maxDepth steps.
func (s *Service) FullChain(ctx context.Context, userID, rootID int64, maxDepth int) ([]domain.User, error) {
	var chain []domain.User
	current := userID
	for depth := 0; depth < maxDepth; depth++ {
		parent, err := s.users.Parent(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("can't resolve parent of user %d: %w", current, err)
		}
		if parent == nil || parent.ID == rootID {
			break
		}
		chain = append(chain, *parent)
		current = parent.ID
	}
	return chain, nil
}

// MonotonicChain returns ancestors whose level never decreases: the first
// parent is always included, and each later parent only when its level is
// at least the level of the last included ancestor. Excluded ancestors do
// not reset the comparison baseline. The weakly increasing level sequence
// is what makes the waterfall cap-delta rule well-defined.
func (s *Service) MonotonicChain(ctx context.Context, userID, rootID int64, maxDepth int) ([]domain.User, error) {
	var chain []domain.User
	lastLevel := 0
	current := userID
	for depth := 0; depth < maxDepth; depth++ {
		parent, err := s.users.Parent(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("can't resolve parent of user %d: %w", current, err)
		}
		if parent == nil || parent.ID == rootID {
			break
		}
		if len(chain) == 0 || parent.Level >= lastLevel {
			chain = append(chain, *parent)
			lastLevel = parent.Level
		}
		current = parent.ID
	}
	return chain, nil
}

// Resolver is what chain consumers depend on, so a Cache can stand in for
// the raw service.
type Resolver interface {
	FullChain(ctx context.Context, userID, rootID int64, maxDepth int) ([]domain.User, error)
	MonotonicChain(ctx context.Context, userID, rootID int64, maxDepth int) ([]domain.User, error)
}

type chainKey struct {
	userID    int64
	rootID    int64
	maxDepth  int
	monotonic bool
}

// Cache memoizes chains for the duration of one run. Not safe for
// concurrent use; each run builds its own.
type Cache struct {
	inner  Resolver
	chains map[chainKey][]domain.User
}

func NewCache(inner Resolver) *Cache {
	return &Cache{inner: inner, chains: make(map[chainKey][]domain.User)}
}

func (c *Cache) FullChain(ctx context.Context, userID, rootID int64, maxDepth int) ([]domain.User, error) {
	key := chainKey{userID: userID, rootID: rootID, maxDepth: maxDepth}
	if chain, ok := c.chains[key]; ok {
		return chain, nil
	}
	chain, err := c.inner.FullChain(ctx, userID, rootID, maxDepth)
	if err != nil {
		return nil, err
	}
	c.chains[key] = chain
	return chain, nil
}

func (c *Cache) MonotonicChain(ctx context.Context, userID, rootID int64, maxDepth int) ([]domain.User, error) {
	key := chainKey{userID: userID, rootID: rootID, maxDepth: maxDepth, monotonic: true}
	if chain, ok := c.chains[key]; ok {
		return chain, nil
	}
	chain, err := c.inner.MonotonicChain(ctx, userID, rootID, maxDepth)
	if err != nil {
		return nil, err
	}
	c.chains[key] = chain
	return chain, nil
}
