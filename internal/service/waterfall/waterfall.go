package waterfall

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dftlabs/refengine/internal/domain"
)

// ErrCapTableNotMonotonic reports a cap table whose percent decreases as
// the level grows. A decreasing table would produce negative marginal
// deltas, so it is rejected outright instead of being silently clamped.
var ErrCapTableNotMonotonic = errors.New("bonus plan cap table is not non-decreasing by level")

// ChainEntry is one upline position: the recipient and their tier.
type ChainEntry struct {
	UserID int64
	Level  int
}

// Share is one computed allocation: CapLevel is the tier threshold that
// produced it, which together with the source event id forms the payment
// idempotency key.
type Share struct {
	UserID   int64
	CapLevel int
	Amount   decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Distribute walks a monotonic upline chain and allocates marginal cap%
// slices of pool. At each position the delta between the level's cap% and
// the highest cap% already granted is split equally across the contiguous
// block of chain entries sharing that level; the block is then skipped so a
// threshold is applied exactly once per run. A position only collects when
// its level is at least minLevel and at least sourceLevel. Distribution
// stops once the granted cap reaches 100%.
//
// The sum of all shares never exceeds pool, and equals pool exactly when
// the highest reached cap is 100.
func Distribute(pool decimal.Decimal, chain []ChainEntry, caps map[int]decimal.Decimal, minLevel, sourceLevel int) ([]Share, error) {
	if err := validate(caps); err != nil {
		return nil, err
	}
	if !pool.IsPositive() || len(chain) == 0 {
		return nil, nil
	}

	var shares []Share
	maxCapSoFar := decimal.Zero

	for i := 0; i < len(chain) && maxCapSoFar.LessThan(hundred); {
		entry := chain[i]
		cap, ok := caps[entry.Level]
		if !ok {
			i++
			continue
		}

		delta := cap.Sub(maxCapSoFar)
		if !delta.IsPositive() || entry.Level < minLevel || entry.Level < sourceLevel {
			i++
			continue
		}

		// Contiguous run of entries at this exact level shares the slice.
		end := i
		for end < len(chain) && chain[end].Level == entry.Level {
			end++
		}
		block := chain[i:end]

		per := pool.Mul(delta).Div(hundred.Mul(decimal.NewFromInt(int64(len(block)))))
		for _, member := range block {
			shares = append(shares, Share{UserID: member.UserID, CapLevel: entry.Level, Amount: per})
		}

		if cap.GreaterThan(maxCapSoFar) {
			maxCapSoFar = cap
		}
		i = end
	}
	return shares, nil
}

// CapTable converts bonus plan items into the lookup the distributor wants.
func CapTable(items []domain.BonusPlanItem) map[int]decimal.Decimal {
	caps := make(map[int]decimal.Decimal, len(items))
	for _, item := range items {
		caps[item.Level] = item.Percent
	}
	return caps
}

func validate(caps map[int]decimal.Decimal) error {
	levels := make([]int, 0, len(caps))
	for level := range caps {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	prev := decimal.Zero
	for _, level := range levels {
		if caps[level].LessThan(prev) {
			return ErrCapTableNotMonotonic
		}
		prev = caps[level]
	}
	return nil
}
