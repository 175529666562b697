package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fdonboard/backend/internal/importer"
	"github.com/fdonboard/backend/internal/model"
)

// MockBankRepo implements BankRepositoryInterface and BankReader for testing
type MockBankRepo struct {
	mock.Mock
}

func (m *MockBankRepo) Create(ctx context.Context, bank *model.Bank) error {
	args := m.Called(ctx, bank)
	if args.Error(0) == nil && bank.ID == uuid.Nil {
		bank.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockBankRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bank), args.Error(1)
}

func (m *MockBankRepo) List(ctx context.Context, filter model.BankFilter) ([]model.BankWithPlanCount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BankWithPlanCount), args.Error(1)
}

func (m *MockBankRepo) Update(ctx context.Context, bank *model.Bank) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *MockBankRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bank), args.Error(1)
}

func (m *MockBankRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlanRepo implements PlanRepositoryInterface for testing
type MockPlanRepo struct {
	mock.Mock
}

func (m *MockPlanRepo) CreateWithConditions(ctx context.Context, plan *model.FDPlan) error {
	args := m.Called(ctx, plan)
	if args.Error(0) == nil {
		plan.ID = uuid.New()
		for i := range plan.Conditions {
			plan.Conditions[i].ID = uuid.New()
			plan.Conditions[i].FDPlanID = plan.ID
		}
	}
	return args.Error(0)
}

func (m *MockPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.FDPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FDPlan), args.Error(1)
}

func (m *MockPlanRepo) List(ctx context.Context, filter model.PlanFilter) ([]model.FDPlan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FDPlan), args.Error(1)
}

func (m *MockPlanRepo) Update(ctx context.Context, plan *model.FDPlan, replaceConditions bool) error {
	args := m.Called(ctx, plan, replaceConditions)
	return args.Error(0)
}

func (m *MockPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlanRepo) NameExists(ctx context.Context, bankID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, bankID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlanRepo) AddCondition(ctx context.Context, c *model.InterestRateCondition) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockPlanRepo) DeleteCondition(ctx context.Context, planID, conditionID uuid.UUID) error {
	args := m.Called(ctx, planID, conditionID)
	return args.Error(0)
}

// MockUploadRepo implements UploadRepositoryInterface and UploadLedgerInterface for testing
type MockUploadRepo struct {
	mock.Mock
}

func (m *MockUploadRepo) Create(ctx context.Context, upload *model.ExcelUpload) error {
	args := m.Called(ctx, upload)
	if args.Error(0) == nil {
		upload.ID = uuid.New()
		upload.UploadStatus = model.UploadStatusPending
	}
	return args.Error(0)
}

func (m *MockUploadRepo) Fail(ctx context.Context, id uuid.UUID, details string) error {
	args := m.Called(ctx, id, details)
	return args.Error(0)
}

func (m *MockUploadRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.ExcelUpload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExcelUpload), args.Error(1)
}

func (m *MockUploadRepo) List(ctx context.Context, filter model.UploadFilter) ([]model.ExcelUpload, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExcelUpload), args.Error(1)
}

// MockImportQueue implements ImportQueue for testing
type MockImportQueue struct {
	mock.Mock
}

func (m *MockImportQueue) Submit(ctx context.Context, job importer.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockDryRunner implements DryRunner for testing
type MockDryRunner struct {
	mock.Mock
}

func (m *MockDryRunner) Validate(ctx context.Context, bankID uuid.UUID, data []byte) (*importer.ValidationReport, error) {
	args := m.Called(ctx, bankID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.ValidationReport), args.Error(1)
}

// MockUploadReader implements UploadReader for testing
type MockUploadReader struct {
	mock.Mock
}

func (m *MockUploadReader) GetUpload(ctx context.Context, id uuid.UUID) (*model.ExcelUpload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExcelUpload), args.Error(1)
}
