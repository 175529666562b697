package importer

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/fdonboard/backend/internal/deposit"
	"github.com/fdonboard/backend/internal/model"
)

const sampleRows = 5

// RowIssue is one problem found in a dry run.
type RowIssue struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationReport summarises a dry run over an upload file.
type ValidationReport struct {
	Valid       bool            `json:"valid"`
	Columns     *Columns        `json:"columns"`
	TotalRows   int             `json:"totalRows"`
	ValidRows   int             `json:"validRows"`
	InvalidRows int             `json:"invalidRows"`
	RowErrors   []RowIssue      `json:"rowErrors,omitempty"`
	Warnings    []RowIssue      `json:"warnings,omitempty"`
	Sample      []model.RowData `json:"sample,omitempty"`
}

// Validate parses and validates every row of data as an import for bankID without
// writing anything. Names repeated within the file are reported as duplicates.
// An unreadable file returns an ErrFileFormat error; missing columns yield an
// invalid report.
func (p *Pipeline) Validate(ctx context.Context, bankID uuid.UUID, data []byte) (*ValidationReport, error) {
	table, cols, err := readTable(data)
	if table == nil {
		return nil, err
	}

	report := &ValidationReport{Columns: cols}
	for i, row := range table.Rows {
		if i >= sampleRows {
			break
		}
		report.Sample = append(report.Sample, model.RowData(row.Values))
	}
	if err != nil {
		return report, nil
	}

	bank, err := p.lookupBank(ctx, bankID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, row := range table.Rows {
		parsed := ParseRow(bankID, cols, row)
		name := strings.TrimSpace(parsed.Draft.PlanName)

		res, err := p.evaluate(ctx, bank, parsed, seen[name])
		if err != nil {
			return nil, err
		}
		if name != "" {
			seen[name] = true
		}

		report.TotalRows++
		report.Warnings = append(report.Warnings, issues(row.Number, res.Warnings)...)
		if len(res.Errors) > 0 {
			report.InvalidRows++
			report.RowErrors = append(report.RowErrors, issues(row.Number, res.Errors)...)
			continue
		}
		report.ValidRows++
	}

	report.Valid = report.InvalidRows == 0
	return report, nil
}

func issues(row int, errs []deposit.FieldError) []RowIssue {
	out := make([]RowIssue, 0, len(errs))
	for _, fe := range errs {
		out = append(out, RowIssue{
			Row:     row,
			Column:  fieldColumn(fe.Field),
			Code:    fe.Code,
			Message: fe.Message,
		})
	}
	return out
}
