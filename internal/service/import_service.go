package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/config"
	"github.com/fdonboard/backend/internal/importer"
	"github.com/fdonboard/backend/internal/logger"
	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/internal/repository"
)

// UploadLedgerInterface is the part of the upload ledger needed to accept a file.
type UploadLedgerInterface interface {
	Create(ctx context.Context, upload *model.ExcelUpload) error
	Fail(ctx context.Context, id uuid.UUID, details string) error
}

// ImportQueue accepts uploads for background processing.
type ImportQueue interface {
	Submit(ctx context.Context, job importer.Job) error
}

// DryRunner validates a file without importing it.
type DryRunner interface {
	Validate(ctx context.Context, bankID uuid.UUID, data []byte) (*importer.ValidationReport, error)
}

// ImportRequest describes one uploaded spreadsheet.
type ImportRequest struct {
	BankID     uuid.UUID `json:"bankId" validate:"required"`
	Filename   string    `json:"filename" validate:"required,max=255"`
	UploadedBy string    `json:"uploadedBy" validate:"max=255"`
	Data       []byte    `json:"-"`
}

// ImportService accepts bulk plan uploads and hands them to the import runner.
type ImportService struct {
	ledger UploadLedgerInterface
	banks  BankReader
	queue  ImportQueue
	dryRun DryRunner
	cfg    config.ImportConfig
}

func NewImportService(ledger UploadLedgerInterface, banks BankReader, queue ImportQueue, dryRun DryRunner, cfg config.ImportConfig) *ImportService {
	return &ImportService{ledger: ledger, banks: banks, queue: queue, dryRun: dryRun, cfg: cfg}
}

// ImportFile records a pending upload and queues it. It returns as soon as the job is
// queued; progress is read from the upload ledger.
func (s *ImportService) ImportFile(ctx context.Context, req ImportRequest) (uuid.UUID, error) {
	req.Filename = filepath.Base(strings.TrimSpace(req.Filename))
	req.UploadedBy = strings.TrimSpace(req.UploadedBy)
	if err := s.checkFile(req); err != nil {
		return uuid.Nil, err
	}

	bank, err := s.requireBank(ctx, req.BankID)
	if err != nil {
		return uuid.Nil, err
	}
	if !bank.IsActive {
		return uuid.Nil, apperror.BadRequest("bank is not active")
	}

	upload := &model.ExcelUpload{
		BankID:     req.BankID,
		Filename:   req.Filename,
		FileSize:   int64(len(req.Data)),
		UploadedBy: req.UploadedBy,
	}
	if err := s.ledger.Create(ctx, upload); err != nil {
		return uuid.Nil, fmt.Errorf("create upload: %w", err)
	}

	ctx = logger.WithUploadID(logger.WithBankID(ctx, req.BankID.String()), upload.ID.String())
	log := logger.FromContext(ctx)

	if err := s.queue.Submit(ctx, importer.Job{Upload: upload, Data: req.Data}); err != nil {
		log.Error("failed to queue import", "error", err)
		if ferr := s.ledger.Fail(context.WithoutCancel(ctx), upload.ID, "import could not be queued"); ferr != nil {
			log.Error("failed to mark upload failed", "error", ferr)
		}
		return uuid.Nil, &apperror.AppError{
			Err:        err,
			Message:    "import queue is unavailable, try again later",
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	log.Info("import queued", "filename", upload.Filename, "file_size", upload.FileSize)
	return upload.ID, nil
}

// ValidateFile runs every import check over the file without saving anything.
func (s *ImportService) ValidateFile(ctx context.Context, req ImportRequest) (*importer.ValidationReport, error) {
	req.Filename = filepath.Base(strings.TrimSpace(req.Filename))
	if err := s.checkFile(req); err != nil {
		return nil, err
	}
	if _, err := s.requireBank(ctx, req.BankID); err != nil {
		return nil, err
	}

	report, err := s.dryRun.Validate(ctx, req.BankID, req.Data)
	if errors.Is(err, importer.ErrFileFormat) {
		return nil, &apperror.AppError{Err: err, Message: err.Error(), StatusCode: http.StatusBadRequest, Field: "file"}
	}
	if err != nil {
		return nil, fmt.Errorf("validate import: %w", err)
	}
	return report, nil
}

// GenerateTemplate returns an empty import file with one example row.
func (s *ImportService) GenerateTemplate(format string) ([]byte, error) {
	data, err := importer.Template(strings.ToLower(strings.TrimSpace(format)))
	if errors.Is(err, importer.ErrFileFormat) {
		return nil, apperror.ValidationError("format", "format must be xlsx or csv")
	}
	if err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}
	return data, nil
}

func (s *ImportService) checkFile(req ImportRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if !s.cfg.IsAllowedExtension(req.Filename) {
		return apperror.ValidationError("file",
			fmt.Sprintf("file type not allowed, expected one of %s", strings.Join(s.cfg.AllowedExtensions, ", ")))
	}
	if len(req.Data) == 0 {
		return apperror.ValidationError("file", "file is empty")
	}
	if s.cfg.MaxUploadSize > 0 && int64(len(req.Data)) > s.cfg.MaxUploadSize {
		return apperror.TooLarge(s.cfg.MaxUploadSize)
	}
	return nil
}

func (s *ImportService) requireBank(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	bank, err := s.banks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBankNotFound) {
			return nil, apperror.NotFound("bank")
		}
		return nil, fmt.Errorf("get bank: %w", err)
	}
	return bank, nil
}
