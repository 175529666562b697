package handler

import (
	"net/http"
	"strings"

	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/internal/service"
)

type BankHandler struct {
	service BankServiceInterface
	plans   PlanServiceInterface
}

func NewBankHandler(service BankServiceInterface, plans PlanServiceInterface) *BankHandler {
	return &BankHandler{service: service, plans: plans}
}

// Create godoc
// @Summary Onboard a bank
// @Description Register a new bank. Name and code must be unique.
// @Tags banks
// @Accept json
// @Produce json
// @Param input body service.BankInput true "Bank data"
// @Success 201 {object} model.Bank
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /banks [post]
func (h *BankHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.BankInput
	if !decodeJSON(w, r, &input) {
		return
	}

	bank, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusCreated, bank)
}

// List godoc
// @Summary List banks
// @Description List banks with their plan counts, ordered by name
// @Tags banks
// @Produce json
// @Param search query string false "Match on name or code"
// @Param active query bool false "Filter by active flag"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.BankWithPlanCount
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /banks [get]
func (h *BankHandler) List(w http.ResponseWriter, r *http.Request) {
	active, err := queryBool(r, "active")
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}
	limit, offset, err := paging(r)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	banks, err := h.service.List(r.Context(), model.BankFilter{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		IsActive: active,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusOK, banks)
}

// Get godoc
// @Summary Get a bank
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Success 200 {object} model.Bank
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /banks/{id} [get]
func (h *BankHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	bank, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusOK, bank)
}

// Update godoc
// @Summary Update a bank
// @Tags banks
// @Accept json
// @Produce json
// @Param id path string true "Bank ID"
// @Param input body service.BankInput true "Bank data"
// @Success 200 {object} model.Bank
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /banks/{id} [put]
func (h *BankHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var input service.BankInput
	if !decodeJSON(w, r, &input) {
		return
	}

	bank, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusOK, bank)
}

// ToggleActive godoc
// @Summary Enable or disable a bank
// @Description Flip the active flag. Plans of an inactive bank cannot be created or imported.
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Success 200 {object} model.Bank
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /banks/{id}/toggle-active [patch]
func (h *BankHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	bank, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusOK, bank)
}

// Delete godoc
// @Summary Delete a bank
// @Description Delete a bank together with its plans and upload history
// @Tags banks
// @Param id path string true "Bank ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /banks/{id} [delete]
func (h *BankHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// ListPlans godoc
// @Summary List the plans of a bank
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Param active query bool false "Filter by active flag"
// @Success 200 {array} model.FDPlan
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /banks/{id}/plans [get]
func (h *BankHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	active, err := queryBool(r, "active")
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	plans, err := h.plans.ListForBank(r.Context(), id, model.PlanFilter{IsActive: active})
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusOK, plans)
}
