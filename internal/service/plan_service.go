package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/deposit"
	"github.com/fdonboard/backend/internal/logger"
	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/internal/repository"
	"github.com/fdonboard/backend/pkg/currency"
	"github.com/fdonboard/backend/pkg/datetime"
)

// PlanRepositoryInterface defines the contract for FD plan data access.
type PlanRepositoryInterface interface {
	CreateWithConditions(ctx context.Context, plan *model.FDPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.FDPlan, error)
	List(ctx context.Context, filter model.PlanFilter) ([]model.FDPlan, error)
	Update(ctx context.Context, plan *model.FDPlan, replaceConditions bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	NameExists(ctx context.Context, bankID uuid.UUID, name string) (bool, error)
	AddCondition(ctx context.Context, c *model.InterestRateCondition) error
	DeleteCondition(ctx context.Context, planID, conditionID uuid.UUID) error
}

// BankReader is the bank lookup plan operations depend on.
type BankReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Bank, error)
}

// PlanService manages FD plans and answers payout queries.
type PlanService struct {
	plans    PlanRepositoryInterface
	banks    BankReader
	currency currency.Currency
}

func NewPlanService(plans PlanRepositoryInterface, banks BankReader, curr currency.Currency) *PlanService {
	if curr == "" {
		curr = currency.DefaultCurrency
	}
	return &PlanService{plans: plans, banks: banks, currency: curr}
}

// CreatePlan validates draft and persists the resulting plan with its conditions.
// A rejected draft returns the validation result together with a *deposit.ValidationError.
func (s *PlanService) CreatePlan(ctx context.Context, draft deposit.PlanDraft) (*model.FDPlan, *deposit.ValidationResult, error) {
	bank, err := s.lookupBank(ctx, draft.BankID)
	if err != nil {
		return nil, nil, err
	}

	taken := false
	if name := strings.TrimSpace(draft.PlanName); name != "" && bank != nil {
		if taken, err = s.plans.NameExists(ctx, draft.BankID, name); err != nil {
			return nil, nil, fmt.Errorf("check plan name: %w", err)
		}
	}

	result := deposit.Validate(draft, deposit.Facts{Bank: bank, NameTaken: taken})
	if !result.Valid() {
		return nil, &result, result.Err()
	}

	plan := result.Plan
	if err := s.plans.CreateWithConditions(ctx, plan); err != nil {
		if errors.Is(err, apperror.ErrDuplicatePlan) {
			return nil, &result, apperror.DuplicatePlan(plan.PlanName)
		}
		return nil, &result, fmt.Errorf("create plan: %w", err)
	}

	logger.FromContext(ctx).Info("plan created",
		"plan_id", plan.ID, "bank_id", plan.BankID, "conditions", len(plan.Conditions))
	return plan, &result, nil
}

func (s *PlanService) Get(ctx context.Context, id uuid.UUID) (*model.FDPlan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlanNotFound) {
		return nil, apperror.NotFound("plan")
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return plan, nil
}

func (s *PlanService) List(ctx context.Context, filter model.PlanFilter) ([]model.FDPlan, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	plans, err := s.plans.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// ListForBank returns the plans of an existing bank.
func (s *PlanService) ListForBank(ctx context.Context, bankID uuid.UUID, filter model.PlanFilter) ([]model.FDPlan, error) {
	bank, err := s.lookupBank(ctx, bankID)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, apperror.NotFound("bank")
	}
	filter.BankID = &bankID
	return s.List(ctx, filter)
}

// Update re-validates the edited plan and replaces its conditions. When draft carries no
// conditions the stored premature conditions are kept and the maturity condition is
// rebuilt from the (possibly new) base rate. The owning bank cannot change.
func (s *PlanService) Update(ctx context.Context, id uuid.UUID, draft deposit.PlanDraft) (*model.FDPlan, *deposit.ValidationResult, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	draft.BankID = existing.BankID
	if draft.Conditions == nil {
		draft.Conditions = prematureDrafts(existing)
	}
	if draft.IsActive == nil {
		active := existing.IsActive
		draft.IsActive = &active
	}

	bank, err := s.lookupBank(ctx, existing.BankID)
	if err != nil {
		return nil, nil, err
	}

	taken := false
	name := strings.TrimSpace(draft.PlanName)
	if name != "" && name != existing.PlanName {
		if taken, err = s.plans.NameExists(ctx, existing.BankID, name); err != nil {
			return nil, nil, fmt.Errorf("check plan name: %w", err)
		}
	}

	result := deposit.Validate(draft, deposit.Facts{Bank: bank, NameTaken: taken})
	if !result.Valid() {
		return nil, &result, result.Err()
	}

	plan := result.Plan
	plan.ID = existing.ID
	if err := s.plans.Update(ctx, plan, true); err != nil {
		switch {
		case errors.Is(err, repository.ErrPlanNotFound):
			return nil, &result, apperror.NotFound("plan")
		case errors.Is(err, apperror.ErrDuplicatePlan):
			return nil, &result, apperror.DuplicatePlan(plan.PlanName)
		}
		return nil, &result, fmt.Errorf("update plan: %w", err)
	}
	return plan, &result, nil
}

func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.plans.Delete(ctx, id)
	if errors.Is(err, repository.ErrPlanNotFound) {
		return apperror.NotFound("plan")
	}
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}

// AddCondition adds a premature condition after re-validating the plan with it included.
func (s *PlanService) AddCondition(ctx context.Context, planID uuid.UUID, cond deposit.ConditionDraft) (*model.InterestRateCondition, *deposit.ValidationResult, error) {
	plan, err := s.Get(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	if model.ConditionType(strings.ToLower(strings.TrimSpace(cond.ConditionType))) == model.ConditionTypeMaturity {
		return nil, nil, apperror.BadRequest("a plan has exactly one maturity condition; update the base interest rate instead")
	}

	bank, err := s.lookupBank(ctx, plan.BankID)
	if err != nil {
		return nil, nil, err
	}

	draft := deposit.DraftFromPlan(plan)
	draft.Conditions = append(draft.Conditions, cond)

	result := deposit.Validate(draft, deposit.Facts{Bank: bank})
	if !result.Valid() {
		return nil, &result, result.Err()
	}

	c := deposit.ConditionFromDraft(cond)
	c.FDPlanID = plan.ID
	if err := s.plans.AddCondition(ctx, &c); err != nil {
		return nil, &result, fmt.Errorf("add condition: %w", err)
	}
	return &c, &result, nil
}

// DeleteCondition removes a premature condition. The maturity condition cannot be removed.
func (s *PlanService) DeleteCondition(ctx context.Context, planID, conditionID uuid.UUID) error {
	plan, err := s.Get(ctx, planID)
	if err != nil {
		return err
	}

	var target *model.InterestRateCondition
	for i := range plan.Conditions {
		if plan.Conditions[i].ID == conditionID {
			target = &plan.Conditions[i]
			break
		}
	}
	if target == nil {
		return apperror.NotFound("condition")
	}
	if target.ConditionType == model.ConditionTypeMaturity {
		return apperror.BadRequest("the maturity condition cannot be deleted")
	}

	err = s.plans.DeleteCondition(ctx, planID, conditionID)
	if errors.Is(err, repository.ErrConditionNotFound) {
		return apperror.NotFound("condition")
	}
	if err != nil {
		return fmt.Errorf("delete condition: %w", err)
	}
	return nil
}

// CalculateInterest computes the payout of principal withdrawn after elapsedMonths.
func (s *PlanService) CalculateInterest(ctx context.Context, planID uuid.UUID, principal decimal.Decimal, elapsedMonths int) (*model.PayoutResult, error) {
	plan, err := s.Get(ctx, planID)
	if err != nil {
		return nil, err
	}

	result, err := deposit.Compute(plan, principal, elapsedMonths)
	if err != nil {
		return nil, s.payoutError(err, plan, elapsedMonths)
	}

	result.Display = s.display(result)
	return result, nil
}

// CalculateBetween computes the payout for a deposit held from depositDate to withdrawalDate,
// counting completed months only.
func (s *PlanService) CalculateBetween(ctx context.Context, planID uuid.UUID, principal decimal.Decimal, depositDate, withdrawalDate datetime.Date) (*model.PayoutResult, error) {
	months, err := datetime.MonthsBetween(depositDate, withdrawalDate)
	if err != nil {
		return nil, apperror.ValidationError("withdrawalDate", "withdrawal date must not be before deposit date")
	}
	return s.CalculateInterest(ctx, planID, principal, months)
}

func (s *PlanService) display(r *model.PayoutResult) *model.PayoutDisplay {
	format := func(d decimal.Decimal) string {
		return currency.NewMoney(d, s.currency).Format()
	}
	return &model.PayoutDisplay{
		Currency:       string(s.currency),
		Principal:      format(r.Principal),
		InterestAmount: format(r.InterestAmount),
		PenaltyAmount:  format(r.PenaltyAmount),
		FinalAmount:    format(r.FinalAmount),
	}
}

func (s *PlanService) payoutError(err error, plan *model.FDPlan, months int) error {
	switch {
	case errors.Is(err, deposit.ErrInvalidTenure):
		return &apperror.AppError{
			Err:        err,
			Message:    "elapsed months must not be negative",
			StatusCode: http.StatusBadRequest,
			Field:      "months",
		}
	case errors.Is(err, deposit.ErrPrincipalOutOfRange):
		return apperror.Unprocessable(err, principalRangeMessage(plan, s.currency))
	case errors.Is(err, deposit.ErrNoApplicableRateCondition):
		return apperror.Unprocessable(err, fmt.Sprintf("no interest rate condition applies after %d months", months))
	default:
		return fmt.Errorf("calculate payout: %w", err)
	}
}

func principalRangeMessage(plan *model.FDPlan, curr currency.Currency) string {
	minimum := currency.NewMoney(plan.MinimumAmount, curr).Format()
	if plan.MaximumAmount == nil {
		return fmt.Sprintf("principal must be at least %s", minimum)
	}
	maximum := currency.NewMoney(*plan.MaximumAmount, curr).Format()
	return fmt.Sprintf("principal must be between %s and %s", minimum, maximum)
}

// lookupBank returns nil without error when the bank does not exist.
func (s *PlanService) lookupBank(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	bank, err := s.banks.GetByID(ctx, id)
	if errors.Is(err, repository.ErrBankNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bank: %w", err)
	}
	return bank, nil
}

func prematureDrafts(plan *model.FDPlan) []deposit.ConditionDraft {
	drafts := []deposit.ConditionDraft{}
	for _, c := range plan.Conditions {
		if c.ConditionType == model.ConditionTypePremature {
			drafts = append(drafts, deposit.DraftFromCondition(c))
		}
	}
	return drafts
}
