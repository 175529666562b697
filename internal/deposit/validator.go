package deposit

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fdonboard/backend/internal/model"
)

// Storage limits: amounts are NUMERIC(18,2), rates NUMERIC(9,6), months INTEGER.
const (
	maxPlanNameLength = 255
	amountPlaces      = 2
	ratePlaces        = 6
	MaxMonths         = math.MaxInt32
)

var (
	one         = decimal.NewFromInt(1)
	amountLimit = decimal.New(1, 16)
)

// Facts are the lookups the validator needs, resolved by the caller beforehand.
type Facts struct {
	Bank      *model.Bank // nil when the referenced bank does not exist
	NameTaken bool        // another plan of the bank already uses the name
}

// ValidationResult is either a normalized plan or the list of errors that prevented one.
// Warnings never make a draft invalid.
type ValidationResult struct {
	Plan     *model.FDPlan `json:"plan,omitempty"`
	Errors   []FieldError  `json:"errors,omitempty"`
	Warnings []FieldError  `json:"warnings,omitempty"`
}

func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns a *ValidationError when the draft was rejected.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Errors: r.Errors}
}

type collector struct {
	errors   []FieldError
	warnings []FieldError
}

func (c *collector) fail(field, code, format string, args ...any) {
	c.errors = append(c.errors, FieldError{Field: field, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (c *collector) warn(field, code, format string, args ...any) {
	c.warnings = append(c.warnings, FieldError{Field: field, Code: code, Message: fmt.Sprintf(format, args...)})
}

// band is a well formed premature band, kept with its draft index.
type band struct {
	index int
	min   int
	max   int // math.MaxInt when open-ended
}

// Validate checks a draft against every plan rule and collects all failures.
// The draft is never modified; a valid draft yields a normalized plan with its
// conditions sorted and a maturity condition synthesized when none was supplied.
func Validate(draft PlanDraft, facts Facts) ValidationResult {
	v := &collector{}

	switch {
	case draft.BankID == uuid.Nil:
		v.fail(FieldBankID, CodeRequired, "bank is required")
	case facts.Bank == nil:
		v.fail(FieldBankID, CodeNotFound, "bank does not exist")
	case !facts.Bank.IsActive:
		v.fail(FieldBankID, CodeInactive, "bank is not active")
	}

	name := strings.TrimSpace(draft.PlanName)
	switch {
	case name == "":
		v.fail(FieldPlanName, CodeRequired, "plan name is required")
	case utf8.RuneCountInString(name) > maxPlanNameLength:
		v.fail(FieldPlanName, CodeTooLong, "plan name must be at most %d characters", maxPlanNameLength)
	case facts.NameTaken:
		v.fail(FieldPlanName, CodeDuplicatePlan, "plan %q already exists for this bank", name)
	}

	minOK := false
	switch {
	case draft.MinimumAmount == nil:
		v.fail(FieldMinimumAmount, CodeRequired, "minimum amount is required")
	case !draft.MinimumAmount.IsPositive():
		v.fail(FieldMinimumAmount, CodeOutOfRange, "minimum amount must be greater than zero")
	default:
		minOK = checkAmount(v, FieldMinimumAmount, "minimum amount", *draft.MinimumAmount)
	}

	if draft.MaximumAmount != nil {
		switch {
		case !draft.MaximumAmount.IsPositive():
			v.fail(FieldMaximumAmount, CodeOutOfRange, "maximum amount must be greater than zero")
		case checkAmount(v, FieldMaximumAmount, "maximum amount", *draft.MaximumAmount) &&
			minOK && draft.MaximumAmount.LessThan(*draft.MinimumAmount):
			v.fail(FieldMaximumAmount, CodeOutOfRange, "maximum amount must be greater than or equal to minimum amount")
		}
	}

	tenureOK := false
	switch {
	case draft.TenureMonths == nil:
		v.fail(FieldTenureMonths, CodeRequired, "tenure months is required")
	case *draft.TenureMonths <= 0:
		v.fail(FieldTenureMonths, CodeOutOfRange, "tenure months must be greater than zero")
	case *draft.TenureMonths > MaxMonths:
		v.fail(FieldTenureMonths, CodeOutOfRange, "tenure months must be at most %d", MaxMonths)
	default:
		tenureOK = true
	}

	baseOK := false
	switch {
	case draft.BaseInterestRate == nil:
		v.fail(FieldBaseInterestRate, CodeRequired, "base interest rate is required")
	case !isFraction(*draft.BaseInterestRate):
		v.fail(FieldBaseInterestRate, CodeOutOfRange, "base interest rate must be a fraction between 0 and 1")
	case !hasPlaces(*draft.BaseInterestRate, ratePlaces):
		v.fail(FieldBaseInterestRate, CodeInvalid, "base interest rate must have at most %d decimal places", ratePlaces)
	default:
		baseOK = true
	}

	tenure := 0
	if tenureOK {
		tenure = *draft.TenureMonths
	}
	var base *decimal.Decimal
	if baseOK {
		base = draft.BaseInterestRate
	}

	bands, maturityIdx := validateConditions(v, draft.Conditions, tenure, base)
	checkOverlaps(v, bands)
	if tenureOK {
		checkCoverage(v, bands, tenure)
	}

	if len(v.errors) > 0 {
		return ValidationResult{Errors: v.errors, Warnings: v.warnings}
	}

	return ValidationResult{
		Plan:     normalize(draft, name, maturityIdx),
		Warnings: v.warnings,
	}
}

func validateConditions(v *collector, drafts []ConditionDraft, tenure int, base *decimal.Decimal) ([]band, int) {
	var bands []band
	maturityIdx := -1

	for i, c := range drafts {
		ct := model.ConditionType(strings.ToLower(strings.TrimSpace(c.ConditionType)))
		if !ct.IsValid() {
			v.fail(conditionField(i, "condition_type"), CodeInvalid,
				"condition type %q is not one of maturity, premature", c.ConditionType)
			continue
		}

		checkRates(v, i, c)

		if ct == model.ConditionTypeMaturity {
			if maturityIdx >= 0 {
				v.fail(conditionField(i, "condition_type"), CodeInvalid, "only one maturity condition is allowed")
				continue
			}
			maturityIdx = i
			if c.MinTenureMonths != nil || c.MaxTenureMonths != nil {
				v.fail(conditionField(i, "min_tenure_months"), CodeInvalid, "maturity condition must not have tenure bounds")
			}
			if c.InterestRate != nil && base != nil && !c.InterestRate.Equal(*base) {
				v.fail(conditionField(i, "interest_rate"), CodeMismatch,
					"maturity interest rate %s must equal base interest rate %s", c.InterestRate, base)
			}
			continue
		}

		if c.InterestRate == nil {
			v.fail(conditionField(i, "interest_rate"), CodeRequired, "interest rate is required")
		}

		wellFormed := true
		switch {
		case c.MinTenureMonths == nil:
			v.fail(conditionField(i, "min_tenure_months"), CodeRequired, "min tenure months is required for premature conditions")
			wellFormed = false
		case *c.MinTenureMonths < 0:
			v.fail(conditionField(i, "min_tenure_months"), CodeOutOfRange, "min tenure months must not be negative")
			wellFormed = false
		case *c.MinTenureMonths > MaxMonths:
			v.fail(conditionField(i, "min_tenure_months"), CodeOutOfRange, "min tenure months must be at most %d", MaxMonths)
			wellFormed = false
		case tenure > 0 && *c.MinTenureMonths >= tenure:
			v.fail(conditionField(i, "min_tenure_months"), CodeOutOfRange,
				"min tenure months must be less than tenure months (%d)", tenure)
		}

		if wellFormed && c.MaxTenureMonths != nil {
			switch {
			case *c.MaxTenureMonths <= *c.MinTenureMonths:
				v.fail(conditionField(i, "max_tenure_months"), CodeOutOfRange, "max tenure months must be greater than min tenure months")
				wellFormed = false
			case *c.MaxTenureMonths > MaxMonths:
				v.fail(conditionField(i, "max_tenure_months"), CodeOutOfRange, "max tenure months must be at most %d", MaxMonths)
				wellFormed = false
			}
		}

		if wellFormed {
			b := band{index: i, min: *c.MinTenureMonths, max: math.MaxInt}
			if c.MaxTenureMonths != nil {
				b.max = *c.MaxTenureMonths
			}
			bands = append(bands, b)
		}
	}

	sort.SliceStable(bands, func(a, b int) bool {
		if bands[a].min != bands[b].min {
			return bands[a].min < bands[b].min
		}
		return bands[a].max < bands[b].max
	})
	return bands, maturityIdx
}

func checkRates(v *collector, i int, c ConditionDraft) {
	checkRate(v, conditionField(i, "interest_rate"), "interest rate", c.InterestRate)
	checkRate(v, conditionField(i, "penalty_rate"), "penalty rate", c.PenaltyRate)

	if c.PenaltyAmount != nil {
		field := conditionField(i, "penalty_amount")
		if c.PenaltyAmount.IsNegative() {
			v.fail(field, CodeOutOfRange, "penalty amount must not be negative")
		} else {
			checkAmount(v, field, "penalty amount", *c.PenaltyAmount)
		}
	}
}

func checkRate(v *collector, field, label string, r *decimal.Decimal) {
	switch {
	case r == nil:
	case !isFraction(*r):
		v.fail(field, CodeOutOfRange, "%s must be a fraction between 0 and 1", label)
	case !hasPlaces(*r, ratePlaces):
		v.fail(field, CodeInvalid, "%s must have at most %d decimal places", label, ratePlaces)
	}
}

// checkAmount reports an amount that cannot be stored exactly. d must not be negative.
func checkAmount(v *collector, field, label string, d decimal.Decimal) bool {
	switch {
	case !d.LessThan(amountLimit):
		v.fail(field, CodeOutOfRange, "%s must be less than %s", label, amountLimit)
		return false
	case !hasPlaces(d, amountPlaces):
		v.fail(field, CodeInvalid, "%s must have at most %d decimal places", label, amountPlaces)
		return false
	}
	return true
}

// hasPlaces reports whether d needs no more than places digits after the point.
// Trailing zeros do not count.
func hasPlaces(d decimal.Decimal, places int32) bool {
	return d.Truncate(places).Equal(d)
}

// checkOverlaps reports each band that intersects an earlier one. bands is sorted by min.
func checkOverlaps(v *collector, bands []band) {
	reported := make(map[int]bool)
	for a := 0; a < len(bands); a++ {
		for b := a + 1; b < len(bands); b++ {
			x, y := bands[a], bands[b]
			if y.min >= x.max {
				continue
			}
			later := y
			other := x
			if x.index > y.index {
				later, other = x, y
			}
			if reported[later.index] {
				continue
			}
			reported[later.index] = true
			v.fail(conditionField(later.index, "min_tenure_months"), CodeOverlap,
				"premature band %s overlaps band %s", describeBand(later), describeBand(other))
		}
	}
}

// checkCoverage warns about months in [0, tenure) that no premature band covers.
func checkCoverage(v *collector, bands []band, tenure int) {
	if len(bands) == 0 {
		v.warn(FieldConditions, CodeGap, "no premature conditions; withdrawals before %d months cannot be priced", tenure)
		return
	}
	cursor := 0
	for _, b := range bands {
		if cursor >= tenure {
			return
		}
		if b.min > cursor {
			v.warn(FieldConditions, CodeGap, "no premature condition covers months [%d, %d)", cursor, min(b.min, tenure))
		}
		if b.max > cursor {
			cursor = b.max
		}
	}
	if cursor < tenure {
		v.warn(FieldConditions, CodeGap, "no premature condition covers months [%d, %d)", cursor, tenure)
	}
}

func normalize(draft PlanDraft, name string, maturityIdx int) *model.FDPlan {
	plan := &model.FDPlan{
		BankID:           draft.BankID,
		PlanName:         name,
		MinimumAmount:    *draft.MinimumAmount,
		TenureMonths:     *draft.TenureMonths,
		BaseInterestRate: *draft.BaseInterestRate,
		Description:      strings.TrimSpace(draft.Description),
		IsActive:         true,
	}
	if draft.MaximumAmount != nil {
		plan.MaximumAmount = decPtr(*draft.MaximumAmount)
	}
	if draft.IsActive != nil {
		plan.IsActive = *draft.IsActive
	}

	for i, c := range draft.Conditions {
		if i == maturityIdx {
			continue
		}
		plan.Conditions = append(plan.Conditions, ConditionFromDraft(c))
	}
	sort.SliceStable(plan.Conditions, func(a, b int) bool {
		ca, cb := plan.Conditions[a], plan.Conditions[b]
		if *ca.MinTenureMonths != *cb.MinTenureMonths {
			return *ca.MinTenureMonths < *cb.MinTenureMonths
		}
		return bandWidth(&ca) < bandWidth(&cb)
	})

	maturity := model.InterestRateCondition{
		ConditionType: model.ConditionTypeMaturity,
		InterestRate:  plan.BaseInterestRate,
		PenaltyRate:   decimal.Zero,
		PenaltyAmount: decimal.Zero,
		Description:   "Maturity rate",
	}
	if maturityIdx >= 0 {
		m := draft.Conditions[maturityIdx]
		maturity.PenaltyRate = orZero(m.PenaltyRate)
		maturity.PenaltyAmount = orZero(m.PenaltyAmount)
		if d := strings.TrimSpace(m.Description); d != "" {
			maturity.Description = d
		}
	}
	plan.Conditions = append(plan.Conditions, maturity)

	return plan
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && !d.GreaterThan(one)
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func describeBand(b band) string {
	if b.max == math.MaxInt {
		return fmt.Sprintf("[%d, open)", b.min)
	}
	return fmt.Sprintf("[%d, %d)", b.min, b.max)
}
