package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/internal/repository"
)

// UploadRepositoryInterface is the read side of the upload ledger.
type UploadRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.ExcelUpload, error)
	List(ctx context.Context, filter model.UploadFilter) ([]model.ExcelUpload, error)
}

// UploadService reads import progress and row errors from the ledger.
type UploadService struct {
	repo UploadRepositoryInterface
}

func NewUploadService(repo UploadRepositoryInterface) *UploadService {
	return &UploadService{repo: repo}
}

// GetUpload returns the upload together with its row errors.
func (s *UploadService) GetUpload(ctx context.Context, id uuid.UUID) (*model.ExcelUpload, error) {
	upload, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrUploadNotFound) {
		return nil, apperror.NotFound("upload")
	}
	if err != nil {
		return nil, fmt.Errorf("get upload: %w", err)
	}
	return upload, nil
}

func (s *UploadService) ListUploads(ctx context.Context, filter model.UploadFilter) ([]model.ExcelUpload, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, apperror.ValidationError("status", "status must be one of pending, processing, completed, failed")
	}
	uploads, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return uploads, nil
}
