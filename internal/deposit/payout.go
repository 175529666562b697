package deposit

import (
	"github.com/shopspring/decimal"

	"github.com/fdonboard/backend/internal/model"
)

var monthsPerYear = decimal.NewFromInt(12)

// Compute returns the payout for principal withdrawn after elapsedMonths.
//
//	interest = principal * rate * elapsed / 12
//	penalty  = principal * penaltyRate + penaltyAmount
//	final    = principal + interest - penalty
//
// The final amount is not floored at principal.
func Compute(plan *model.FDPlan, principal decimal.Decimal, elapsedMonths int) (*model.PayoutResult, error) {
	if elapsedMonths < 0 {
		return nil, ErrInvalidTenure
	}
	if !plan.AcceptsPrincipal(principal) {
		return nil, ErrPrincipalOutOfRange
	}

	cond, err := Resolve(plan, elapsedMonths)
	if err != nil {
		return nil, err
	}

	interest := principal.Mul(cond.InterestRate).
		Mul(decimal.NewFromInt(int64(elapsedMonths))).
		Div(monthsPerYear)
	pctPenalty := principal.Mul(cond.PenaltyRate)
	penalty := pctPenalty.Add(cond.PenaltyAmount)

	return &model.PayoutResult{
		PlanID:              plan.ID,
		Principal:           principal,
		ElapsedMonths:       elapsedMonths,
		TenureMonths:        plan.TenureMonths,
		IsPremature:         elapsedMonths < plan.TenureMonths,
		Condition:           *cond,
		InterestRate:        cond.InterestRate,
		MonthlyInterestRate: cond.InterestRate.Div(monthsPerYear),
		InterestAmount:      interest,
		PercentagePenalty:   pctPenalty,
		FixedPenalty:        cond.PenaltyAmount,
		PenaltyAmount:       penalty,
		NetInterest:         interest.Sub(penalty),
		FinalAmount:         principal.Add(interest).Sub(penalty),
	}, nil
}
