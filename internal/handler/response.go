package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/deposit"
	"github.com/fdonboard/backend/internal/logger"
)

// ErrorResponse represents a JSON error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ValidationErrorResponse lists every field that failed plan validation.
type ValidationErrorResponse struct {
	Error    string               `json:"error"`
	Errors   []deposit.FieldError `json:"errors"`
	Warnings []deposit.FieldError `json:"warnings,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response with the given status code and message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondAppError writes a JSON error response from an AppError.
// It extracts the status code and message from the error.
func respondAppError(w http.ResponseWriter, err *apperror.AppError) {
	resp := ErrorResponse{
		Error: err.Message,
		Field: err.Field,
	}
	respondJSON(w, err.StatusCode, resp)
}

// respondServiceError maps an error returned by a service to a response.
// Plan validation failures become 422 with the full error list, or 409 when the
// only blocker is a duplicate plan name. Unknown errors are logged and hidden.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, warnings []deposit.FieldError) {
	var verr *deposit.ValidationError
	if errors.As(err, &verr) {
		status := http.StatusUnprocessableEntity
		if onlyDuplicate(verr) {
			status = http.StatusConflict
		}
		respondJSON(w, status, ValidationErrorResponse{
			Error:    "plan validation failed",
			Errors:   verr.Errors,
			Warnings: warnings,
		})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode >= http.StatusInternalServerError {
			logger.FromContext(r.Context()).Error("request failed", "error", appErr.Err, "path", r.URL.Path)
		}
		respondAppError(w, appErr)
		return
	}

	status := apperror.GetStatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", "error", err, "path", r.URL.Path)
		respondError(w, status, "an internal error occurred")
		return
	}
	respondError(w, status, apperror.GetMessage(err))
}

func onlyDuplicate(verr *deposit.ValidationError) bool {
	if len(verr.Errors) == 0 {
		return false
	}
	for _, fe := range verr.Errors {
		if fe.Code != deposit.CodeDuplicatePlan {
			return false
		}
	}
	return true
}

// respondFile writes a download with the given content type.
func respondFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// uuidParam parses a UUID path parameter, writing a 400 on failure.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// parseDecimal parses a string into a decimal.Decimal.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

func queryInt(r *http.Request, key string) (int, bool, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, apperror.ValidationError(key, key+" must be an integer")
	}
	return n, true, nil
}

func queryBool(r *http.Request, key string) (*bool, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, apperror.ValidationError(key, key+" must be true or false")
	}
	return &b, nil
}

func queryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, apperror.ValidationError(key, key+" must be a valid id")
	}
	return &id, nil
}

// paging reads limit and offset, rejecting negatives.
func paging(r *http.Request) (limit, offset int, err error) {
	if limit, _, err = queryInt(r, "limit"); err != nil {
		return 0, 0, err
	}
	if offset, _, err = queryInt(r, "offset"); err != nil {
		return 0, 0, err
	}
	if limit < 0 || offset < 0 {
		return 0, 0, apperror.ValidationError("limit", "limit and offset must not be negative")
	}
	return limit, offset, nil
}
