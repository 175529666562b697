package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "pending"
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusCompleted  UploadStatus = "completed"
	UploadStatusFailed     UploadStatus = "failed"
)

// IsValid reports whether s is a known status.
func (s UploadStatus) IsValid() bool {
	switch s {
	case UploadStatusPending, UploadStatusProcessing, UploadStatusCompleted, UploadStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s UploadStatus) IsTerminal() bool {
	return s == UploadStatusCompleted || s == UploadStatusFailed
}

// CanTransitionTo enforces pending -> processing -> {completed, failed}.
// A pending upload may also fail directly when the file cannot be read.
func (s UploadStatus) CanTransitionTo(next UploadStatus) bool {
	switch s {
	case UploadStatusPending:
		return next == UploadStatusProcessing || next == UploadStatusFailed
	case UploadStatusProcessing:
		return next == UploadStatusCompleted || next == UploadStatusFailed
	}
	return false
}

// ExcelUpload is the ledger header for one bulk import.
type ExcelUpload struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	BankID         uuid.UUID    `db:"bank_id" json:"bankId"`
	Filename       string       `db:"filename" json:"filename"`
	FileSize       int64        `db:"file_size" json:"fileSize"`
	UploadStatus   UploadStatus `db:"upload_status" json:"uploadStatus"`
	TotalRows      int          `db:"total_rows" json:"totalRows"`
	SuccessfulRows int          `db:"successful_rows" json:"successfulRows"`
	FailedRows     int          `db:"failed_rows" json:"failedRows"`
	ErrorDetails   *string      `db:"error_details" json:"errorDetails,omitempty"`
	UploadedBy     string       `db:"uploaded_by" json:"uploadedBy"`
	UploadedAt     time.Time    `db:"uploaded_at" json:"uploadedAt"`
	ProcessedAt    *time.Time   `db:"processed_at" json:"processedAt,omitempty"`

	Errors []UploadError `db:"-" json:"errors,omitempty"`
}

// UploadCounters are the final row tallies written when an upload completes.
type UploadCounters struct {
	TotalRows      int `json:"totalRows"`
	SuccessfulRows int `json:"successfulRows"`
	FailedRows     int `json:"failedRows"`
}

// UploadFilter narrows upload listings. Zero values are ignored.
type UploadFilter struct {
	BankID *uuid.UUID
	Status *UploadStatus
	Limit  int
}

// UploadError is one append-only row-level failure. RowNumber is 1-based, header excluded.
type UploadError struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UploadID     uuid.UUID `db:"upload_id" json:"uploadId"`
	RowNumber    int       `db:"row_number" json:"rowNumber"`
	ColumnName   *string   `db:"column_name" json:"columnName,omitempty"`
	ErrorMessage string    `db:"error_message" json:"errorMessage"`
	RowData      RowData   `db:"row_data" json:"rowData"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// RowData is the raw spreadsheet row, keyed by header. Stored as JSONB.
type RowData map[string]string

func (d RowData) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

func (d *RowData) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*d = RowData{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("row data: unsupported scan type")
	}
	return json.Unmarshal(data, d)
}
