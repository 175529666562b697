package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fdonboard/backend/internal/deposit"
	"github.com/fdonboard/backend/internal/importer"
	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/internal/service"
	"github.com/fdonboard/backend/pkg/datetime"
)

// withURLParams attaches chi route parameters to a request.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// MockBankService implements BankServiceInterface
type MockBankService struct {
	mock.Mock
}

func (m *MockBankService) Create(ctx context.Context, input service.BankInput) (*model.Bank, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bank), args.Error(1)
}

func (m *MockBankService) Get(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bank), args.Error(1)
}

func (m *MockBankService) List(ctx context.Context, filter model.BankFilter) ([]model.BankWithPlanCount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BankWithPlanCount), args.Error(1)
}

func (m *MockBankService) Update(ctx context.Context, id uuid.UUID, input service.BankInput) (*model.Bank, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bank), args.Error(1)
}

func (m *MockBankService) ToggleActive(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bank), args.Error(1)
}

func (m *MockBankService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockPlanService implements PlanServiceInterface
type MockPlanService struct {
	mock.Mock
}

func planResult(args mock.Arguments) (*model.FDPlan, *deposit.ValidationResult, error) {
	var plan *model.FDPlan
	if p := args.Get(0); p != nil {
		plan = p.(*model.FDPlan)
	}
	var result *deposit.ValidationResult
	if r := args.Get(1); r != nil {
		result = r.(*deposit.ValidationResult)
	}
	return plan, result, args.Error(2)
}

func (m *MockPlanService) CreatePlan(ctx context.Context, draft deposit.PlanDraft) (*model.FDPlan, *deposit.ValidationResult, error) {
	return planResult(m.Called(ctx, draft))
}

func (m *MockPlanService) Get(ctx context.Context, id uuid.UUID) (*model.FDPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FDPlan), args.Error(1)
}

func (m *MockPlanService) List(ctx context.Context, filter model.PlanFilter) ([]model.FDPlan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FDPlan), args.Error(1)
}

func (m *MockPlanService) ListForBank(ctx context.Context, bankID uuid.UUID, filter model.PlanFilter) ([]model.FDPlan, error) {
	args := m.Called(ctx, bankID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FDPlan), args.Error(1)
}

func (m *MockPlanService) Update(ctx context.Context, id uuid.UUID, draft deposit.PlanDraft) (*model.FDPlan, *deposit.ValidationResult, error) {
	return planResult(m.Called(ctx, id, draft))
}

func (m *MockPlanService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPlanService) AddCondition(ctx context.Context, planID uuid.UUID, cond deposit.ConditionDraft) (*model.InterestRateCondition, *deposit.ValidationResult, error) {
	args := m.Called(ctx, planID, cond)
	var saved *model.InterestRateCondition
	if c := args.Get(0); c != nil {
		saved = c.(*model.InterestRateCondition)
	}
	var result *deposit.ValidationResult
	if r := args.Get(1); r != nil {
		result = r.(*deposit.ValidationResult)
	}
	return saved, result, args.Error(2)
}

func (m *MockPlanService) DeleteCondition(ctx context.Context, planID, conditionID uuid.UUID) error {
	return m.Called(ctx, planID, conditionID).Error(0)
}

func (m *MockPlanService) CalculateInterest(ctx context.Context, planID uuid.UUID, principal decimal.Decimal, elapsedMonths int) (*model.PayoutResult, error) {
	args := m.Called(ctx, planID, principal, elapsedMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PayoutResult), args.Error(1)
}

func (m *MockPlanService) CalculateBetween(ctx context.Context, planID uuid.UUID, principal decimal.Decimal, depositDate, withdrawalDate datetime.Date) (*model.PayoutResult, error) {
	args := m.Called(ctx, planID, principal, depositDate, withdrawalDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PayoutResult), args.Error(1)
}

// MockImportService implements ImportServiceInterface
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportFile(ctx context.Context, req service.ImportRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockImportService) ValidateFile(ctx context.Context, req service.ImportRequest) (*importer.ValidationReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.ValidationReport), args.Error(1)
}

func (m *MockImportService) GenerateTemplate(format string) ([]byte, error) {
	args := m.Called(format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockUploadService implements UploadServiceInterface
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) GetUpload(ctx context.Context, id uuid.UUID) (*model.ExcelUpload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExcelUpload), args.Error(1)
}

func (m *MockUploadService) ListUploads(ctx context.Context, filter model.UploadFilter) ([]model.ExcelUpload, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExcelUpload), args.Error(1)
}

// MockReportService implements UploadReportInterface
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) UploadErrorsCSV(ctx context.Context, uploadID uuid.UUID) ([]byte, string, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockReportService) UploadErrorsPDF(ctx context.Context, uploadID uuid.UUID) ([]byte, string, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
