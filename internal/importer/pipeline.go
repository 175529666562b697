package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/deposit"
	"github.com/fdonboard/backend/internal/logger"
	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/internal/repository"
	"github.com/fdonboard/backend/pkg/sheet"
)

// ErrPersistence marks a storage failure. Inside the row loop it fails only that row.
var ErrPersistence = errors.New("persistence error")

const codePersistence = "persistence"

// LedgerStore is the part of the upload ledger the pipeline writes to.
type LedgerStore interface {
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	Complete(ctx context.Context, id uuid.UUID, counters model.UploadCounters) error
	Fail(ctx context.Context, id uuid.UUID, details string) error
	AppendErrors(ctx context.Context, errs []model.UploadError) error
}

// PlanStore persists validated plans.
type PlanStore interface {
	NameExists(ctx context.Context, bankID uuid.UUID, name string) (bool, error)
	CreateWithConditions(ctx context.Context, plan *model.FDPlan) error
}

type BankLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Bank, error)
}

// Pipeline imports FD plans from a spreadsheet into the plan store.
type Pipeline struct {
	ledger LedgerStore
	plans  PlanStore
	banks  BankLookup
}

func NewPipeline(ledger LedgerStore, plans PlanStore, banks BankLookup) *Pipeline {
	return &Pipeline{ledger: ledger, plans: plans, banks: banks}
}

// Process runs one upload to completion. Every data row is validated and, when valid,
// saved in its own transaction; failures are appended to the ledger and never stop the
// batch. The upload fails only when the file cannot be read or its header is unusable.
func (p *Pipeline) Process(ctx context.Context, upload *model.ExcelUpload, data []byte) (model.UploadCounters, error) {
	ctx = logger.WithUploadID(ctx, upload.ID.String())
	log := logger.FromContext(ctx)

	if err := p.ledger.MarkProcessing(ctx, upload.ID); err != nil {
		return model.UploadCounters{}, fmt.Errorf("mark upload processing: %w", err)
	}
	log.Info("import started", "filename", upload.Filename, "bank_id", upload.BankID)

	table, cols, err := readTable(data)
	if err != nil {
		return model.UploadCounters{}, p.fail(ctx, upload.ID, err)
	}

	bank, err := p.lookupBank(ctx, upload.BankID)
	if err != nil {
		return model.UploadCounters{}, p.fail(ctx, upload.ID, err)
	}

	acc := NewAccumulator()
	for _, row := range table.Rows {
		p.importRow(ctx, upload, bank, cols, row, acc)
	}

	counters := acc.Counters()
	if err := p.ledger.Complete(ctx, upload.ID, counters); err != nil {
		return counters, fmt.Errorf("complete upload: %w", err)
	}

	log.Info("import finished",
		"total_rows", counters.TotalRows,
		"successful_rows", counters.SuccessfulRows,
		"failed_rows", counters.FailedRows,
	)
	return counters, nil
}

func (p *Pipeline) importRow(ctx context.Context, upload *model.ExcelUpload, bank *model.Bank, cols *Columns, row sheet.Row, acc *Accumulator) {
	parsed := ParseRow(upload.BankID, cols, row)

	res, err := p.evaluate(ctx, bank, parsed, false)
	errs := res.Errors
	if err != nil {
		errs = []deposit.FieldError{{Code: codePersistence, Message: err.Error()}}
	}

	if len(errs) == 0 {
		plan := res.Plan
		err = p.plans.CreateWithConditions(ctx, plan)
		switch {
		case err == nil:
			acc.Succeeded()
			return
		case errors.Is(err, apperror.ErrDuplicatePlan):
			errs = []deposit.FieldError{{
				Field:   ColumnPlanName,
				Code:    deposit.CodeDuplicatePlan,
				Message: fmt.Sprintf("plan %q already exists for this bank", plan.PlanName),
			}}
		default:
			logger.FromContext(ctx).Error("failed to save imported plan", "row", row.Number, "error", err)
			errs = []deposit.FieldError{{
				Code:    codePersistence,
				Message: fmt.Errorf("%w: saving plan: %v", ErrPersistence, err).Error(),
			}}
		}
	}

	acc.Failed()
	p.recordErrors(ctx, upload.ID, parsed, errs)
}

func (p *Pipeline) recordErrors(ctx context.Context, uploadID uuid.UUID, parsed ParsedRow, errs []deposit.FieldError) {
	entries := make([]model.UploadError, 0, len(errs))
	for _, fe := range errs {
		entries = append(entries, model.UploadError{
			UploadID:     uploadID,
			RowNumber:    parsed.Number,
			ColumnName:   columnFor(fe.Field),
			ErrorMessage: fe.Message,
			RowData:      parsed.Raw,
		})
	}
	if err := p.ledger.AppendErrors(ctx, entries); err != nil {
		logger.FromContext(ctx).Error("failed to record row errors", "row", parsed.Number, "error", err)
	}
}

// evaluate validates one parsed row, folding parse errors into the result.
// takenInFile marks a name already used earlier in the same file. The returned error
// is a lookup failure, not a validation failure.
func (p *Pipeline) evaluate(ctx context.Context, bank *model.Bank, parsed ParsedRow, takenInFile bool) (deposit.ValidationResult, error) {
	taken := takenInFile
	name := strings.TrimSpace(parsed.Draft.PlanName)
	if name != "" && !taken && bank != nil {
		exists, err := p.plans.NameExists(ctx, bank.ID, name)
		if err != nil {
			return deposit.ValidationResult{}, fmt.Errorf("%w: checking plan name: %v", ErrPersistence, err)
		}
		taken = exists
	}

	res := deposit.Validate(parsed.Draft, deposit.Facts{Bank: bank, NameTaken: taken})
	res.Errors = mergeErrors(parsed.Errors, res.Errors)
	if len(res.Errors) > 0 {
		res.Plan = nil
	}
	return res, nil
}

// mergeErrors keeps every parse error and drops validator errors on columns that
// already failed to parse, since those only restate the missing value.
func mergeErrors(parseErrs, validationErrs []deposit.FieldError) []deposit.FieldError {
	if len(parseErrs) == 0 {
		return validationErrs
	}
	failed := make(map[string]bool, len(parseErrs))
	for _, fe := range parseErrs {
		failed[fe.Field] = true
	}
	merged := append([]deposit.FieldError(nil), parseErrs...)
	for _, fe := range validationErrs {
		if failed[fieldColumn(fe.Field)] {
			continue
		}
		merged = append(merged, fe)
	}
	return merged
}

func (p *Pipeline) lookupBank(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	bank, err := p.banks.GetByID(ctx, id)
	if errors.Is(err, repository.ErrBankNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: looking up bank: %v", ErrPersistence, err)
	}
	return bank, nil
}

func (p *Pipeline) fail(ctx context.Context, id uuid.UUID, cause error) error {
	logger.FromContext(ctx).Warn("import failed", "error", cause)
	if err := p.ledger.Fail(ctx, id, cause.Error()); err != nil {
		return fmt.Errorf("mark upload failed: %w", err)
	}
	return cause
}

func readTable(data []byte) (*sheet.Table, *Columns, error) {
	table, err := sheet.Read(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}
	cols := MapHeader(table.Header)
	if err := cols.Err(); err != nil {
		return table, cols, err
	}
	return table, cols, nil
}
