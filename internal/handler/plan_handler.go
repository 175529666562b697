package handler

import (
	"net/http"
	"strings"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/deposit"
	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/pkg/datetime"
)

// PlanResponse is a saved plan with any non-fatal validation warnings.
type PlanResponse struct {
	*model.FDPlan
	Warnings []deposit.FieldError `json:"warnings,omitempty"`
}

// ConditionResponse is a saved condition with any non-fatal validation warnings.
type ConditionResponse struct {
	*model.InterestRateCondition
	Warnings []deposit.FieldError `json:"warnings,omitempty"`
}

type PlanHandler struct {
	service PlanServiceInterface
}

func NewPlanHandler(service PlanServiceInterface) *PlanHandler {
	return &PlanHandler{service: service}
}

// Create godoc
// @Summary Create an FD plan
// @Description Validate and save a plan with its interest rate conditions. Rates are fractions (0.07 = 7%).
// @Description A maturity condition is derived from the base rate when none is supplied.
// @Tags plans
// @Accept json
// @Produce json
// @Param input body deposit.PlanDraft true "Plan data"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ValidationErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Router /plans [post]
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft deposit.PlanDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	plan, result, err := h.service.CreatePlan(r.Context(), draft)
	if err != nil {
		respondServiceError(w, r, err, warningsOf(result))
		return
	}

	respondJSON(w, http.StatusCreated, PlanResponse{FDPlan: plan, Warnings: warningsOf(result)})
}

// List godoc
// @Summary List FD plans
// @Tags plans
// @Produce json
// @Param bankId query string false "Bank ID"
// @Param active query bool false "Filter by active flag"
// @Param search query string false "Match on plan name"
// @Param tenure query int false "Exact tenure in months"
// @Param amount query number false "Only plans accepting this principal"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.FDPlan
// @Failure 400 {object} ErrorResponse
// @Router /plans [get]
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := planFilter(r)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	plans, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusOK, plans)
}

// Get godoc
// @Summary Get an FD plan
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} model.FDPlan
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /plans/{id} [get]
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	plan, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// Update godoc
// @Summary Update an FD plan
// @Description Re-validate and save the plan. Omitting conditions keeps the premature conditions and rebuilds maturity from the base rate.
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param input body deposit.PlanDraft true "Plan data"
// @Success 200 {object} PlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ValidationErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Router /plans/{id} [put]
func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var draft deposit.PlanDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	plan, result, err := h.service.Update(r.Context(), id, draft)
	if err != nil {
		respondServiceError(w, r, err, warningsOf(result))
		return
	}

	respondJSON(w, http.StatusOK, PlanResponse{FDPlan: plan, Warnings: warningsOf(result)})
}

// Delete godoc
// @Summary Delete an FD plan
// @Tags plans
// @Param id path string true "Plan ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /plans/{id} [delete]
func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddCondition godoc
// @Summary Add a premature withdrawal condition
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param input body deposit.ConditionDraft true "Condition data"
// @Success 201 {object} ConditionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Router /plans/{id}/conditions [post]
func (h *PlanHandler) AddCondition(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var cond deposit.ConditionDraft
	if !decodeJSON(w, r, &cond) {
		return
	}

	saved, result, err := h.service.AddCondition(r.Context(), id, cond)
	if err != nil {
		respondServiceError(w, r, err, warningsOf(result))
		return
	}

	respondJSON(w, http.StatusCreated, ConditionResponse{InterestRateCondition: saved, Warnings: warningsOf(result)})
}

// DeleteCondition godoc
// @Summary Delete a premature withdrawal condition
// @Tags plans
// @Param id path string true "Plan ID"
// @Param conditionId path string true "Condition ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /plans/{id}/conditions/{conditionId} [delete]
func (h *PlanHandler) DeleteCondition(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	conditionID, ok := uuidParam(w, r, "conditionId")
	if !ok {
		return
	}

	if err := h.service.DeleteCondition(r.Context(), id, conditionID); err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Calculate godoc
// @Summary Calculate the payout of a deposit
// @Description Either months, or depositDate and withdrawalDate (YYYY-MM-DD), give the time the deposit was held.
// @Description Withdrawal before the plan tenure applies the matching premature condition.
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Param principal query number true "Deposit amount"
// @Param months query int false "Months held"
// @Param depositDate query string false "Deposit date"
// @Param withdrawalDate query string false "Withdrawal date"
// @Success 200 {object} model.PayoutResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /plans/{id}/calculate [get]
func (h *PlanHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	q := r.URL.Query()
	principal, err := parseDecimal(q.Get("principal"))
	if err != nil {
		respondAppError(w, apperror.ValidationError("principal", "principal must be a number"))
		return
	}

	var result *model.PayoutResult
	months, hasMonths, err := queryInt(r, "months")
	switch {
	case err != nil:
		respondServiceError(w, r, err, nil)
		return
	case hasMonths:
		result, err = h.service.CalculateInterest(r.Context(), id, principal, months)
	default:
		start, end, derr := holdingPeriod(q.Get("depositDate"), q.Get("withdrawalDate"))
		if derr != nil {
			respondAppError(w, derr)
			return
		}
		result, err = h.service.CalculateBetween(r.Context(), id, principal, start, end)
	}
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func holdingPeriod(depositDate, withdrawalDate string) (datetime.Date, datetime.Date, *apperror.AppError) {
	if strings.TrimSpace(depositDate) == "" {
		return datetime.Date{}, datetime.Date{}, apperror.ValidationError("months", "months or depositDate is required")
	}
	start, err := datetime.ParseDate(depositDate)
	if err != nil {
		return datetime.Date{}, datetime.Date{}, apperror.ValidationError("depositDate", "depositDate must be YYYY-MM-DD")
	}
	end := datetime.Today()
	if strings.TrimSpace(withdrawalDate) != "" {
		if end, err = datetime.ParseDate(withdrawalDate); err != nil {
			return datetime.Date{}, datetime.Date{}, apperror.ValidationError("withdrawalDate", "withdrawalDate must be YYYY-MM-DD")
		}
	}
	return start, end, nil
}

func planFilter(r *http.Request) (model.PlanFilter, error) {
	var filter model.PlanFilter
	var err error

	if filter.BankID, err = queryUUID(r, "bankId"); err != nil {
		return filter, err
	}
	if filter.IsActive, err = queryBool(r, "active"); err != nil {
		return filter, err
	}
	tenure, hasTenure, err := queryInt(r, "tenure")
	if err != nil {
		return filter, err
	}
	if hasTenure {
		filter.TenureMonths = &tenure
	}
	if v := r.URL.Query().Get("amount"); v != "" {
		amount, err := parseDecimal(v)
		if err != nil {
			return filter, apperror.ValidationError("amount", "amount must be a number")
		}
		filter.Amount = &amount
	}
	if filter.Limit, filter.Offset, err = paging(r); err != nil {
		return filter, err
	}
	filter.Search = strings.TrimSpace(r.URL.Query().Get("search"))
	return filter, nil
}

func warningsOf(result *deposit.ValidationResult) []deposit.FieldError {
	if result == nil {
		return nil
	}
	return result.Warnings
}
