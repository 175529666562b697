package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without field",
			appErr: &AppError{
				Message: "something went wrong",
			},
			expected: "something went wrong",
		},
		{
			name: "with field",
			appErr: &AppError{
				Message: "is required",
				Field:   "planName",
			},
			expected: "planName: is required",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	t.Parallel()

	originalErr := errors.New("original error")
	appErr := &AppError{
		Err:     originalErr,
		Message: "wrapped error",
	}

	assert.Equal(t, originalErr, appErr.Unwrap())
	assert.True(t, errors.Is(appErr, originalErr))
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	err := NotFound("bank")

	assert.Equal(t, "bank not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBadRequest(t *testing.T) {
	t.Parallel()

	err := BadRequest("invalid input")

	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := ValidationError("minimumAmount", "must be greater than zero")

	assert.Equal(t, "must be greater than zero", err.Message)
	assert.Equal(t, "minimumAmount", err.Field)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestUnprocessable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		wantIs error
	}{
		{
			name:   "with cause",
			err:    errors.New("principal out of range"),
			wantIs: nil,
		},
		{
			name:   "nil cause defaults to sentinel",
			err:    nil,
			wantIs: ErrUnprocessable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Unprocessable(tt.err, "cannot compute payout")
			assert.Equal(t, "cannot compute payout", err.Message)
			assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs))
			} else {
				assert.True(t, errors.Is(err, tt.err))
			}
		})
	}
}

func TestConflict(t *testing.T) {
	t.Parallel()

	err := Conflict("resource already exists")

	assert.Equal(t, "resource already exists", err.Message)
	assert.Equal(t, http.StatusConflict, err.StatusCode)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestDuplicates(t *testing.T) {
	t.Parallel()

	bankErr := DuplicateBank("HDFC")
	assert.Equal(t, http.StatusConflict, bankErr.StatusCode)
	assert.Equal(t, "name", bankErr.Field)
	assert.True(t, errors.Is(bankErr, ErrDuplicateBank))
	assert.True(t, errors.Is(bankErr, ErrConflict))

	planErr := DuplicatePlan("Gold 12M")
	assert.Equal(t, http.StatusConflict, planErr.StatusCode)
	assert.Equal(t, "planName", planErr.Field)
	assert.Contains(t, planErr.Message, "Gold 12M")
	assert.True(t, errors.Is(planErr, ErrDuplicatePlan))
	assert.True(t, errors.Is(planErr, ErrConflict))
	assert.False(t, errors.Is(planErr, ErrDuplicateBank))
}

func TestTooLarge(t *testing.T) {
	t.Parallel()

	err := TooLarge(1024)

	assert.Equal(t, http.StatusRequestEntityTooLarge, err.StatusCode)
	assert.Contains(t, err.Message, "1024")
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestInternal(t *testing.T) {
	t.Parallel()

	originalErr := errors.New("database connection failed")
	err := Internal(originalErr)

	assert.Equal(t, "an internal error occurred", err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.True(t, errors.Is(err, originalErr))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	originalErr := errors.New("original")
	err := Wrap(originalErr, "custom message")

	assert.Equal(t, "custom message", err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.True(t, errors.Is(err, originalErr))
}

func TestGetStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "AppError",
			err:      &AppError{StatusCode: http.StatusTeapot},
			expected: http.StatusTeapot,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("getting plan: %w", ErrNotFound),
			expected: http.StatusNotFound,
		},
		{
			name:     "ErrBadRequest",
			err:      ErrBadRequest,
			expected: http.StatusBadRequest,
		},
		{
			name:     "ErrValidation",
			err:      ErrValidation,
			expected: http.StatusBadRequest,
		},
		{
			name:     "ErrConflict",
			err:      ErrConflict,
			expected: http.StatusConflict,
		},
		{
			name:     "ErrDuplicatePlan",
			err:      ErrDuplicatePlan,
			expected: http.StatusConflict,
		},
		{
			name:     "ErrUnprocessable",
			err:      ErrUnprocessable,
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "ErrTooLarge",
			err:      ErrTooLarge,
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "unknown error",
			err:      errors.New("unknown"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, GetStatusCode(tt.err))
		})
	}
}

func TestGetMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "AppError",
			err:      &AppError{Message: "custom message"},
			expected: "custom message",
		},
		{
			name:     "regular error",
			err:      errors.New("regular error message"),
			expected: "regular error message",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, GetMessage(tt.err))
		})
	}
}
