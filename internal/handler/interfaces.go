package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fdonboard/backend/internal/deposit"
	"github.com/fdonboard/backend/internal/importer"
	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/internal/service"
	"github.com/fdonboard/backend/pkg/datetime"
)

// BankServiceInterface for handler testing
type BankServiceInterface interface {
	Create(ctx context.Context, input service.BankInput) (*model.Bank, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Bank, error)
	List(ctx context.Context, filter model.BankFilter) ([]model.BankWithPlanCount, error)
	Update(ctx context.Context, id uuid.UUID, input service.BankInput) (*model.Bank, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (*model.Bank, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlanServiceInterface for handler testing
type PlanServiceInterface interface {
	CreatePlan(ctx context.Context, draft deposit.PlanDraft) (*model.FDPlan, *deposit.ValidationResult, error)
	Get(ctx context.Context, id uuid.UUID) (*model.FDPlan, error)
	List(ctx context.Context, filter model.PlanFilter) ([]model.FDPlan, error)
	ListForBank(ctx context.Context, bankID uuid.UUID, filter model.PlanFilter) ([]model.FDPlan, error)
	Update(ctx context.Context, id uuid.UUID, draft deposit.PlanDraft) (*model.FDPlan, *deposit.ValidationResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddCondition(ctx context.Context, planID uuid.UUID, cond deposit.ConditionDraft) (*model.InterestRateCondition, *deposit.ValidationResult, error)
	DeleteCondition(ctx context.Context, planID, conditionID uuid.UUID) error
	CalculateInterest(ctx context.Context, planID uuid.UUID, principal decimal.Decimal, elapsedMonths int) (*model.PayoutResult, error)
	CalculateBetween(ctx context.Context, planID uuid.UUID, principal decimal.Decimal, depositDate, withdrawalDate datetime.Date) (*model.PayoutResult, error)
}

// ImportServiceInterface for handler testing
type ImportServiceInterface interface {
	ImportFile(ctx context.Context, req service.ImportRequest) (uuid.UUID, error)
	ValidateFile(ctx context.Context, req service.ImportRequest) (*importer.ValidationReport, error)
	GenerateTemplate(format string) ([]byte, error)
}

// UploadServiceInterface for handler testing
type UploadServiceInterface interface {
	GetUpload(ctx context.Context, id uuid.UUID) (*model.ExcelUpload, error)
	ListUploads(ctx context.Context, filter model.UploadFilter) ([]model.ExcelUpload, error)
}

// UploadReportInterface for handler testing
type UploadReportInterface interface {
	UploadErrorsCSV(ctx context.Context, uploadID uuid.UUID) ([]byte, string, error)
	UploadErrorsPDF(ctx context.Context, uploadID uuid.UUID) ([]byte, string, error)
}
