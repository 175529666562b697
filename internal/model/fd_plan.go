package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ConditionType string

const (
	ConditionTypeMaturity  ConditionType = "maturity"
	ConditionTypePremature ConditionType = "premature"
)

// IsValid reports whether t is a recognised condition type.
func (t ConditionType) IsValid() bool {
	return t == ConditionTypeMaturity || t == ConditionTypePremature
}

// FDPlan is a fixed-deposit product offered by a bank. Rates are fractions (0.07 = 7%).
type FDPlan struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	BankID           uuid.UUID        `db:"bank_id" json:"bankId"`
	PlanName         string           `db:"plan_name" json:"planName"`
	MinimumAmount    decimal.Decimal  `db:"minimum_amount" json:"minimumAmount"`
	MaximumAmount    *decimal.Decimal `db:"maximum_amount" json:"maximumAmount,omitempty"`
	TenureMonths     int              `db:"tenure_months" json:"tenureMonths"`
	BaseInterestRate decimal.Decimal  `db:"base_interest_rate" json:"baseInterestRate"`
	Description      string           `db:"description" json:"description,omitempty"`
	IsActive         bool             `db:"is_active" json:"isActive"`
	CreatedAt        time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updatedAt"`

	Conditions []InterestRateCondition `db:"-" json:"conditions"`
}

// AcceptsPrincipal reports whether principal lies within [MinimumAmount, MaximumAmount].
// A nil MaximumAmount is unbounded.
func (p *FDPlan) AcceptsPrincipal(principal decimal.Decimal) bool {
	if principal.LessThan(p.MinimumAmount) {
		return false
	}
	return p.MaximumAmount == nil || !principal.GreaterThan(*p.MaximumAmount)
}

// InterestRateCondition is one rate rule of a plan. Maturity conditions have no tenure
// bounds; premature conditions cover [MinTenureMonths, MaxTenureMonths), nil max meaning open-ended.
type InterestRateCondition struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	FDPlanID        uuid.UUID       `db:"fd_plan_id" json:"fdPlanId"`
	ConditionType   ConditionType   `db:"condition_type" json:"conditionType"`
	MinTenureMonths *int            `db:"min_tenure_months" json:"minTenureMonths,omitempty"`
	MaxTenureMonths *int            `db:"max_tenure_months" json:"maxTenureMonths,omitempty"`
	InterestRate    decimal.Decimal `db:"interest_rate" json:"interestRate"`
	PenaltyRate     decimal.Decimal `db:"penalty_rate" json:"penaltyRate"`
	PenaltyAmount   decimal.Decimal `db:"penalty_amount" json:"penaltyAmount"`
	Description     string          `db:"description" json:"description,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
}

// Covers reports whether a premature condition's band contains elapsedMonths.
func (c *InterestRateCondition) Covers(elapsedMonths int) bool {
	if c.ConditionType != ConditionTypePremature || c.MinTenureMonths == nil {
		return false
	}
	if elapsedMonths < *c.MinTenureMonths {
		return false
	}
	return c.MaxTenureMonths == nil || elapsedMonths < *c.MaxTenureMonths
}

// PlanFilter narrows plan listings. Zero values are ignored.
type PlanFilter struct {
	BankID       *uuid.UUID
	IsActive     *bool
	Search       string
	TenureMonths *int
	Amount       *decimal.Decimal // plans accepting this principal
	Limit        int
	Offset       int
}

// PayoutResult is the outcome of a payout calculation.
type PayoutResult struct {
	PlanID        uuid.UUID             `json:"planId"`
	Principal     decimal.Decimal       `json:"principal"`
	ElapsedMonths int                   `json:"elapsedMonths"`
	TenureMonths  int                   `json:"tenureMonths"`
	IsPremature   bool                  `json:"isPremature"`
	Condition     InterestRateCondition `json:"condition"`

	InterestRate        decimal.Decimal `json:"interestRate"`
	MonthlyInterestRate decimal.Decimal `json:"monthlyInterestRate"`
	InterestAmount      decimal.Decimal `json:"interestAmount"`
	PercentagePenalty   decimal.Decimal `json:"percentagePenalty"`
	FixedPenalty        decimal.Decimal `json:"fixedPenalty"`
	PenaltyAmount       decimal.Decimal `json:"penaltyAmount"`
	NetInterest         decimal.Decimal `json:"netInterest"`
	FinalAmount         decimal.Decimal `json:"finalAmount"`

	// Display holds amounts rounded and formatted in the configured currency.
	Display *PayoutDisplay `json:"display,omitempty"`
}

type PayoutDisplay struct {
	Currency       string `json:"currency"`
	Principal      string `json:"principal"`
	InterestAmount string `json:"interestAmount"`
	PenaltyAmount  string `json:"penaltyAmount"`
	FinalAmount    string `json:"finalAmount"`
}
