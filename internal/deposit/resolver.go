// Package deposit holds the fixed-deposit rules: rate resolution, payout calculation and
// plan validation. Everything here is pure; callers pre-fetch whatever it needs.
package deposit

import (
	"errors"
	"math"

	"github.com/fdonboard/backend/internal/model"
)

var (
	ErrNoApplicableRateCondition = errors.New("no applicable rate condition")
	ErrPrincipalOutOfRange       = errors.New("principal out of range")
	ErrInvalidTenure             = errors.New("invalid tenure")
)

// Resolve picks the condition that applies when a deposit is withdrawn after elapsedMonths.
//
// At or beyond the plan tenure the maturity condition applies. Before that, the premature
// band containing elapsedMonths applies. Overlapping bands are resolved by preferring the
// narrowest band (open-ended bands are infinitely wide), then the most recently created,
// then the greater ID. A gap in coverage is an error; no fallback rate is guessed.
func Resolve(plan *model.FDPlan, elapsedMonths int) (*model.InterestRateCondition, error) {
	if elapsedMonths < 0 {
		return nil, ErrInvalidTenure
	}

	var best *model.InterestRateCondition
	matured := elapsedMonths >= plan.TenureMonths

	for i := range plan.Conditions {
		c := &plan.Conditions[i]
		if matured {
			if c.ConditionType != model.ConditionTypeMaturity {
				continue
			}
		} else if !c.Covers(elapsedMonths) {
			continue
		}
		if best == nil || preferred(c, best) {
			best = c
		}
	}

	if best == nil {
		return nil, ErrNoApplicableRateCondition
	}
	chosen := *best
	return &chosen, nil
}

// preferred reports whether a should win over b when both apply.
func preferred(a, b *model.InterestRateCondition) bool {
	if wa, wb := bandWidth(a), bandWidth(b); wa != wb {
		return wa < wb
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}

func bandWidth(c *model.InterestRateCondition) int {
	if c.MinTenureMonths == nil || c.MaxTenureMonths == nil {
		return math.MaxInt
	}
	return *c.MaxTenureMonths - *c.MinTenureMonths
}
