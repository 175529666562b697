package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fdonboard/backend/internal/model"
)

// UploadRepository is the upload ledger: one header per import plus append-only row errors.
// Status changes are guarded in SQL so an upload can only move
// pending -> processing -> completed|failed.
type UploadRepository struct {
	db *sqlx.DB
}

func NewUploadRepository(db *sqlx.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Create records a new pending upload.
func (r *UploadRepository) Create(ctx context.Context, upload *model.ExcelUpload) error {
	query := `
		INSERT INTO excel_uploads (id, bank_id, filename, file_size, upload_status, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING uploaded_at`

	upload.ID = uuid.New()
	upload.UploadStatus = model.UploadStatusPending
	err := r.db.QueryRowxContext(ctx, query,
		upload.ID, upload.BankID, upload.Filename, upload.FileSize, upload.UploadStatus, upload.UploadedBy,
	).Scan(&upload.UploadedAt)
	if err != nil {
		return fmt.Errorf("create upload: %w", err)
	}
	return nil
}

func (r *UploadRepository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE excel_uploads SET upload_status = $2 WHERE id = $1 AND upload_status = $3`
	return r.transition(ctx, id, model.UploadStatusProcessing, query,
		id, model.UploadStatusProcessing, model.UploadStatusPending)
}

func (r *UploadRepository) Complete(ctx context.Context, id uuid.UUID, counters model.UploadCounters) error {
	query := `
		UPDATE excel_uploads
		SET upload_status = $2, total_rows = $3, successful_rows = $4, failed_rows = $5, processed_at = NOW()
		WHERE id = $1 AND upload_status = $6`
	return r.transition(ctx, id, model.UploadStatusCompleted, query,
		id, model.UploadStatusCompleted, counters.TotalRows, counters.SuccessfulRows, counters.FailedRows,
		model.UploadStatusProcessing)
}

func (r *UploadRepository) Fail(ctx context.Context, id uuid.UUID, details string) error {
	query := `
		UPDATE excel_uploads
		SET upload_status = $2, error_details = $3, processed_at = NOW()
		WHERE id = $1 AND upload_status IN ($4, $5)`
	return r.transition(ctx, id, model.UploadStatusFailed, query,
		id, model.UploadStatusFailed, details, model.UploadStatusPending, model.UploadStatusProcessing)
}

func (r *UploadRepository) transition(ctx context.Context, id uuid.UUID, to model.UploadStatus, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set upload %s: %w", to, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	var current model.UploadStatus
	err = r.db.GetContext(ctx, &current, `SELECT upload_status FROM excel_uploads WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUploadNotFound
	}
	if err != nil {
		return fmt.Errorf("get upload status: %w", err)
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, to)
}

// AppendErrors inserts row errors in one transaction. Existing errors are never modified.
func (r *UploadRepository) AppendErrors(ctx context.Context, errs []model.UploadError) error {
	if len(errs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append upload errors: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO upload_errors (id, upload_id, row_number, column_name, error_message, row_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`)
	if err != nil {
		return fmt.Errorf("prepare upload error insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range errs {
		e := &errs[i]
		e.ID = uuid.New()
		if _, err := stmt.ExecContext(ctx, e.ID, e.UploadID, e.RowNumber, e.ColumnName, e.ErrorMessage, e.RowData); err != nil {
			return fmt.Errorf("append upload error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upload errors: %w", err)
	}
	return nil
}

// GetByID returns an upload with all of its row errors.
func (r *UploadRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ExcelUpload, error) {
	var upload model.ExcelUpload
	err := r.db.GetContext(ctx, &upload, `SELECT * FROM excel_uploads WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUploadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get upload: %w", err)
	}

	upload.Errors, err = r.ListErrors(ctx, id)
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

// ListErrors returns the row errors of an upload in row order.
func (r *UploadRepository) ListErrors(ctx context.Context, uploadID uuid.UUID) ([]model.UploadError, error) {
	errs := []model.UploadError{}
	query := `SELECT * FROM upload_errors WHERE upload_id = $1 ORDER BY row_number ASC, created_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &errs, query, uploadID); err != nil {
		return nil, fmt.Errorf("list upload errors: %w", err)
	}
	return errs, nil
}

// List returns upload headers, newest first. Row errors are not loaded.
func (r *UploadRepository) List(ctx context.Context, filter model.UploadFilter) ([]model.ExcelUpload, error) {
	query := `SELECT * FROM excel_uploads WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.BankID != nil {
		query += fmt.Sprintf(" AND bank_id = $%d", argNum)
		args = append(args, *filter.BankID)
		argNum++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND upload_status = $%d", argNum)
		args = append(args, *filter.Status)
		argNum++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += fmt.Sprintf(" ORDER BY uploaded_at DESC LIMIT $%d", argNum)
	args = append(args, limit)

	uploads := []model.ExcelUpload{}
	if err := r.db.SelectContext(ctx, &uploads, query, args...); err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return uploads, nil
}

// FailStale fails uploads that were accepted before cutoff and never finished.
func (r *UploadRepository) FailStale(ctx context.Context, cutoff time.Time, details string) (int64, error) {
	query := `
		UPDATE excel_uploads
		SET upload_status = $1, error_details = $2, processed_at = NOW()
		WHERE upload_status IN ($3, $4) AND uploaded_at < $5`

	result, err := r.db.ExecContext(ctx, query,
		model.UploadStatusFailed, details, model.UploadStatusPending, model.UploadStatusProcessing, cutoff)
	if err != nil {
		return 0, fmt.Errorf("fail stale uploads: %w", err)
	}
	return result.RowsAffected()
}
