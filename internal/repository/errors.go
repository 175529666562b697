package repository

import (
	"errors"

	"github.com/lib/pq"

	"github.com/fdonboard/backend/internal/apperror"
)

var (
	ErrBankNotFound      = errors.New("bank not found")
	ErrPlanNotFound      = errors.New("fd plan not found")
	ErrConditionNotFound = errors.New("interest rate condition not found")
	ErrUploadNotFound    = errors.New("upload not found")

	// ErrInvalidTransition is returned when an upload is not in the state an update requires.
	ErrInvalidTransition = errors.New("invalid upload status transition")
)

const uniqueViolation = "23505"

// Unique constraint names from the migrations.
const (
	constraintBankName = "banks_name_key"
	constraintBankCode = "banks_code_key"
	constraintPlanName = "fd_plans_bank_id_plan_name_key"
)

// uniqueConstraint returns the violated constraint when err is a unique violation.
func uniqueConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// mapBankError turns unique violations on banks into duplicate errors.
func mapBankError(err error) error {
	constraint, ok := uniqueConstraint(err)
	if !ok {
		return err
	}
	switch constraint {
	case constraintBankCode:
		return apperror.Conflict("bank code already exists")
	default:
		return apperror.ErrDuplicateBank
	}
}

func mapPlanError(err error) error {
	if constraint, ok := uniqueConstraint(err); ok && (constraint == constraintPlanName || constraint == "") {
		return apperror.ErrDuplicatePlan
	}
	return err
}
