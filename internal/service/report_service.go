package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/pkg/sheet"
)

// UploadReader loads an upload with its row errors.
type UploadReader interface {
	GetUpload(ctx context.Context, id uuid.UUID) (*model.ExcelUpload, error)
}

// ReportService renders the row errors of an upload as downloadable files.
type ReportService struct {
	uploads UploadReader
	banks   BankReader
	now     func() time.Time
}

func NewReportService(uploads UploadReader, banks BankReader) *ReportService {
	return &ReportService{uploads: uploads, banks: banks, now: time.Now}
}

var reportHeader = []string{"row_number", "column_name", "error_message", "row_data"}

// UploadErrorsCSV returns one line per recorded row error, ordered by row.
func (s *ReportService) UploadErrorsCSV(ctx context.Context, uploadID uuid.UUID) ([]byte, string, error) {
	upload, err := s.uploads.GetUpload(ctx, uploadID)
	if err != nil {
		return nil, "", err
	}

	errs := sortedErrors(upload.Errors)
	rows := make([][]any, 0, len(errs))
	for _, e := range errs {
		rows = append(rows, []any{e.RowNumber, columnLabel(e.ColumnName), e.ErrorMessage, formatRowData(e.RowData)})
	}

	data, err := sheet.WriteCSV(reportHeader, rows)
	if err != nil {
		return nil, "", fmt.Errorf("write error report: %w", err)
	}
	return data, reportName(upload, "csv"), nil
}

// UploadErrorsPDF renders a summary of the upload followed by its row errors.
func (s *ReportService) UploadErrorsPDF(ctx context.Context, uploadID uuid.UUID) ([]byte, string, error) {
	upload, err := s.uploads.GetUpload(ctx, uploadID)
	if err != nil {
		return nil, "", err
	}

	bankName := upload.BankID.String()
	if bank, err := s.banks.GetByID(ctx, upload.BankID); err == nil {
		bankName = bank.Name
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 10, "FD Plan Import Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(0, 6, upload.Filename, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	summary := [][2]string{
		{"Bank", bankName},
		{"Status", string(upload.UploadStatus)},
		{"Uploaded by", orDash(upload.UploadedBy)},
		{"Uploaded at", upload.UploadedAt.Format("2006-01-02 15:04")},
		{"Total rows", strconv.Itoa(upload.TotalRows)},
		{"Imported", strconv.Itoa(upload.SuccessfulRows)},
		{"Failed", strconv.Itoa(upload.FailedRows)},
	}
	if upload.ErrorDetails != nil {
		summary = append(summary, [2]string{"Details", *upload.ErrorDetails})
	}
	for _, kv := range summary {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(108, 117, 125)
		pdf.CellFormat(40, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(0, 6, kv[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Row errors", "", 1, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(3)

	errs := sortedErrors(upload.Errors)
	if len(errs) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(108, 117, 125)
		pdf.CellFormat(0, 6, "No row errors were recorded.", "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(248, 249, 250)
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(15, 7, "Row", "1", 0, "C", true, 0, "")
		pdf.CellFormat(45, 7, "Column", "1", 0, "L", true, 0, "")
		pdf.CellFormat(120, 7, "Error", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		for _, e := range errs {
			msg := truncate(e.ErrorMessage, 90)
			pdf.CellFormat(15, 6, strconv.Itoa(e.RowNumber), "1", 0, "C", false, 0, "")
			pdf.CellFormat(45, 6, orDash(columnLabel(e.ColumnName)), "1", 0, "L", false, 0, "")
			pdf.CellFormat(120, 6, msg, "1", 1, "L", false, 0, "")
		}
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated on %s", s.now().Format("January 2, 2006")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("generating PDF: %w", err)
	}
	return buf.Bytes(), reportName(upload, "pdf"), nil
}

func sortedErrors(errs []model.UploadError) []model.UploadError {
	out := append([]model.UploadError(nil), errs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].RowNumber < out[j].RowNumber })
	return out
}

func columnLabel(col *string) string {
	if col == nil {
		return ""
	}
	return *col
}

func formatRowData(d model.RowData) string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+d[k])
	}
	return strings.Join(parts, "; ")
}

func reportName(upload *model.ExcelUpload, ext string) string {
	base := strings.TrimSuffix(upload.Filename, filepath.Ext(upload.Filename))
	if base == "" {
		base = upload.ID.String()
	}
	return fmt.Sprintf("%s-errors.%s", base, ext)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
