package deposit

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fdonboard/backend/internal/model"
)

// Field names used in FieldError. They match the import column names so row errors
// can be attributed to a spreadsheet column.
const (
	FieldBankID           = "bank_id"
	FieldPlanName         = "plan_name"
	FieldMinimumAmount    = "minimum_amount"
	FieldMaximumAmount    = "maximum_amount"
	FieldTenureMonths     = "tenure_months"
	FieldBaseInterestRate = "base_interest_rate"
	FieldDescription      = "description"
	FieldConditions       = "conditions"
)

// Error codes carried by FieldError.
const (
	CodeRequired      = "required"
	CodeInvalid       = "invalid"
	CodeOutOfRange    = "out_of_range"
	CodeTooLong       = "too_long"
	CodeNotFound      = "not_found"
	CodeInactive      = "inactive"
	CodeDuplicatePlan = "duplicate_plan"
	CodeMismatch      = "mismatch"
	CodeOverlap       = "overlap"
	CodeGap           = "gap"
)

// ConditionDraft is an unvalidated interest rate condition.
type ConditionDraft struct {
	ConditionType   string           `json:"conditionType"`
	MinTenureMonths *int             `json:"minTenureMonths,omitempty"`
	MaxTenureMonths *int             `json:"maxTenureMonths,omitempty"`
	InterestRate    *decimal.Decimal `json:"interestRate,omitempty"`
	PenaltyRate     *decimal.Decimal `json:"penaltyRate,omitempty"`
	PenaltyAmount   *decimal.Decimal `json:"penaltyAmount,omitempty"`
	Description     string           `json:"description,omitempty"`
}

// PlanDraft is an unvalidated plan as submitted by the API or parsed from an import row.
// Nil pointers mean the value was not supplied.
type PlanDraft struct {
	BankID           uuid.UUID        `json:"bankId"`
	PlanName         string           `json:"planName"`
	MinimumAmount    *decimal.Decimal `json:"minimumAmount"`
	MaximumAmount    *decimal.Decimal `json:"maximumAmount,omitempty"`
	TenureMonths     *int             `json:"tenureMonths"`
	BaseInterestRate *decimal.Decimal `json:"baseInterestRate"`
	Description      string           `json:"description,omitempty"`
	IsActive         *bool            `json:"isActive,omitempty"`
	Conditions       []ConditionDraft `json:"conditions,omitempty"`
}

// DraftFromPlan turns a stored plan back into a draft so it can be edited and re-validated.
func DraftFromPlan(p *model.FDPlan) PlanDraft {
	d := PlanDraft{
		BankID:           p.BankID,
		PlanName:         p.PlanName,
		MinimumAmount:    decPtr(p.MinimumAmount),
		TenureMonths:     intPtr(p.TenureMonths),
		BaseInterestRate: decPtr(p.BaseInterestRate),
		Description:      p.Description,
		IsActive:         boolPtr(p.IsActive),
	}
	if p.MaximumAmount != nil {
		d.MaximumAmount = decPtr(*p.MaximumAmount)
	}
	for _, c := range p.Conditions {
		d.Conditions = append(d.Conditions, DraftFromCondition(c))
	}
	return d
}

// DraftFromCondition converts a stored condition into a draft.
func DraftFromCondition(c model.InterestRateCondition) ConditionDraft {
	return ConditionDraft{
		ConditionType:   string(c.ConditionType),
		MinTenureMonths: copyInt(c.MinTenureMonths),
		MaxTenureMonths: copyInt(c.MaxTenureMonths),
		InterestRate:    decPtr(c.InterestRate),
		PenaltyRate:     decPtr(c.PenaltyRate),
		PenaltyAmount:   decPtr(c.PenaltyAmount),
		Description:     c.Description,
	}
}

// ConditionFromDraft builds a premature condition from a draft that passed validation.
func ConditionFromDraft(c ConditionDraft) model.InterestRateCondition {
	return model.InterestRateCondition{
		ConditionType:   model.ConditionTypePremature,
		MinTenureMonths: copyInt(c.MinTenureMonths),
		MaxTenureMonths: copyInt(c.MaxTenureMonths),
		InterestRate:    *c.InterestRate,
		PenaltyRate:     orZero(c.PenaltyRate),
		PenaltyAmount:   orZero(c.PenaltyAmount),
		Description:     strings.TrimSpace(c.Description),
	}
}

// FieldError is a single validation failure tagged with the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError carries every failure found in one draft.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// HasCode reports whether any error carries code.
func (e *ValidationError) HasCode(code string) bool {
	for _, fe := range e.Errors {
		if fe.Code == code {
			return true
		}
	}
	return false
}

func conditionField(i int, name string) string {
	return fmt.Sprintf("%s[%d].%s", FieldConditions, i, name)
}

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }
func intPtr(v int) *int                         { return &v }
func boolPtr(v bool) *bool                      { return &v }

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	return intPtr(*p)
}
