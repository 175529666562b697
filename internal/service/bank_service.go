package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/internal/repository"
)

// BankRepositoryInterface defines the contract for bank data access.
type BankRepositoryInterface interface {
	Create(ctx context.Context, bank *model.Bank) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Bank, error)
	List(ctx context.Context, filter model.BankFilter) ([]model.BankWithPlanCount, error)
	Update(ctx context.Context, bank *model.Bank) error
	ToggleActive(ctx context.Context, id uuid.UUID) (*model.Bank, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BankService onboards banks.
type BankService struct {
	repo BankRepositoryInterface
}

func NewBankService(repo BankRepositoryInterface) *BankService {
	return &BankService{repo: repo}
}

type BankInput struct {
	Name          string `json:"name" validate:"required,max=255"`
	Code          string `json:"code" validate:"required,max=50,alphanum"`
	Description   string `json:"description" validate:"max=2000"`
	ContactPerson string `json:"contactPerson" validate:"max=255"`
	Email         string `json:"email" validate:"omitempty,email,max=255"`
	Phone         string `json:"phone" validate:"max=20"`
	Address       string `json:"address" validate:"max=2000"`
	IsActive      *bool  `json:"isActive"`
}

func (in *BankInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
}

func (in *BankInput) apply(bank *model.Bank) {
	bank.Name = in.Name
	bank.Code = in.Code
	bank.Description = in.Description
	bank.ContactPerson = in.ContactPerson
	bank.Email = in.Email
	bank.Phone = in.Phone
	bank.Address = in.Address
	if in.IsActive != nil {
		bank.IsActive = *in.IsActive
	}
}

func (s *BankService) Create(ctx context.Context, input BankInput) (*model.Bank, error) {
	input.normalize()
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	bank := &model.Bank{IsActive: true}
	input.apply(bank)

	if err := s.repo.Create(ctx, bank); err != nil {
		return nil, bankWriteError(err, input.Name)
	}
	return bank, nil
}

func (s *BankService) Get(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	bank, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrBankNotFound) {
		return nil, apperror.NotFound("bank")
	}
	if err != nil {
		return nil, fmt.Errorf("get bank: %w", err)
	}
	return bank, nil
}

func (s *BankService) List(ctx context.Context, filter model.BankFilter) ([]model.BankWithPlanCount, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	banks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	return banks, nil
}

func (s *BankService) Update(ctx context.Context, id uuid.UUID, input BankInput) (*model.Bank, error) {
	input.normalize()
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	bank, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(bank)

	if err := s.repo.Update(ctx, bank); err != nil {
		if errors.Is(err, repository.ErrBankNotFound) {
			return nil, apperror.NotFound("bank")
		}
		return nil, bankWriteError(err, input.Name)
	}
	return bank, nil
}

func (s *BankService) ToggleActive(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	bank, err := s.repo.ToggleActive(ctx, id)
	if errors.Is(err, repository.ErrBankNotFound) {
		return nil, apperror.NotFound("bank")
	}
	if err != nil {
		return nil, fmt.Errorf("toggle bank: %w", err)
	}
	return bank, nil
}

// Delete removes the bank together with its plans and upload history.
func (s *BankService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrBankNotFound) {
		return apperror.NotFound("bank")
	}
	if err != nil {
		return fmt.Errorf("delete bank: %w", err)
	}
	return nil
}

func bankWriteError(err error, name string) error {
	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, apperror.ErrDuplicateBank):
		return apperror.DuplicateBank(name)
	default:
		return fmt.Errorf("save bank: %w", err)
	}
}
