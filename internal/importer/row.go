package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fdonboard/backend/internal/deposit"
	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/pkg/sheet"
)

var (
	hundred   = decimal.NewFromInt(100)
	maxMonths = decimal.NewFromInt(deposit.MaxMonths)
)

// conditionRecord is the JSON shape of one entry in the premature_conditions column.
// Rates are whole-number percentages; penalty_amount is an absolute amount.
type conditionRecord struct {
	ConditionType   string           `json:"condition_type"`
	MinTenureMonths *int             `json:"min_tenure_months"`
	MaxTenureMonths *int             `json:"max_tenure_months"`
	InterestRate    *decimal.Decimal `json:"interest_rate"`
	PenaltyRate     *decimal.Decimal `json:"penalty_rate"`
	PenaltyAmount   *decimal.Decimal `json:"penalty_amount"`
	Description     string           `json:"description"`
}

// ParsedRow is an import row converted to a plan draft, plus the cells that could not be parsed.
type ParsedRow struct {
	Number int
	Draft  deposit.PlanDraft
	Errors []deposit.FieldError
	Raw    model.RowData
}

// ParseRow converts a sheet row into a draft for bankID. Cells that fail to parse are
// left nil in the draft and reported as field errors on their column.
func ParseRow(bankID uuid.UUID, cols *Columns, row sheet.Row) ParsedRow {
	p := ParsedRow{
		Number: row.Number,
		Raw:    model.RowData(row.Values),
		Draft:  deposit.PlanDraft{BankID: bankID},
	}
	cell := func(column string) string {
		if !cols.Has(column) {
			return ""
		}
		return row.Get(cols.Source(column))
	}

	p.Draft.PlanName = cell(ColumnPlanName)
	p.Draft.Description = cell(ColumnDescription)

	p.Draft.MinimumAmount = p.amount(ColumnMinimumAmount, cell(ColumnMinimumAmount))
	p.Draft.MaximumAmount = p.amount(ColumnMaximumAmount, cell(ColumnMaximumAmount))
	p.Draft.TenureMonths = p.months(ColumnTenureMonths, cell(ColumnTenureMonths))
	p.Draft.BaseInterestRate = p.percent(ColumnBaseInterestRate, cell(ColumnBaseInterestRate))

	if raw := cell(ColumnPrematureConditions); raw != "" {
		conds, err := DecodeConditions(raw)
		if err != nil {
			p.fail(ColumnPrematureConditions, deposit.CodeInvalid, err.Error())
		} else {
			p.Draft.Conditions = conds
		}
	}
	return p
}

func (p *ParsedRow) fail(column, code, msg string) {
	p.Errors = append(p.Errors, deposit.FieldError{Field: column, Code: code, Message: msg})
}

func (p *ParsedRow) amount(column, s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := parseDecimal(s)
	if err != nil {
		p.fail(column, deposit.CodeInvalid, fmt.Sprintf("%q is not a valid amount", s))
		return nil
	}
	return &d
}

func (p *ParsedRow) months(column, s string) *int {
	if s == "" {
		return nil
	}
	d, err := parseDecimal(s)
	if err != nil || !d.IsInteger() {
		p.fail(column, deposit.CodeInvalid, fmt.Sprintf("%q is not a whole number of months", s))
		return nil
	}
	if d.Abs().GreaterThan(maxMonths) {
		p.fail(column, deposit.CodeOutOfRange, fmt.Sprintf("%q months is out of range", s))
		return nil
	}
	n := int(d.IntPart())
	return &n
}

func (p *ParsedRow) percent(column, s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := parsePercent(s)
	if err != nil {
		p.fail(column, deposit.CodeInvalid, fmt.Sprintf("%q is not a valid percentage", s))
		return nil
	}
	return &d
}

// parseDecimal accepts plain numbers with optional thousands separators.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(",", "", " ", "", "_", "").Replace(strings.TrimSpace(s))
	return decimal.NewFromString(s)
}

// parsePercent reads a whole-number percentage ("7.25" or "7.25%") as a fraction.
func parsePercent(s string) (decimal.Decimal, error) {
	d, err := parseDecimal(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return decimal.Zero, err
	}
	return d.Div(hundred), nil
}

// DecodeConditions parses the premature_conditions JSON array. Unknown keys and
// unknown condition types are rejected; rates are converted from percentages.
func DecodeConditions(raw string) ([]deposit.ConditionDraft, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()

	var records []conditionRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("premature conditions must be a JSON array of condition objects: %v", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("premature conditions must contain a single JSON array")
	}

	drafts := make([]deposit.ConditionDraft, 0, len(records))
	for i, r := range records {
		ct := model.ConditionType(strings.ToLower(strings.TrimSpace(r.ConditionType)))
		switch ct {
		case "":
			return nil, fmt.Errorf("condition %d: condition_type is required", i+1)
		case model.ConditionTypeMaturity, model.ConditionTypePremature:
		default:
			return nil, fmt.Errorf("condition %d: condition_type %q is not one of maturity, premature", i+1, r.ConditionType)
		}

		drafts = append(drafts, deposit.ConditionDraft{
			ConditionType:   string(ct),
			MinTenureMonths: r.MinTenureMonths,
			MaxTenureMonths: r.MaxTenureMonths,
			InterestRate:    fromPercent(r.InterestRate),
			PenaltyRate:     fromPercent(r.PenaltyRate),
			PenaltyAmount:   r.PenaltyAmount,
			Description:     r.Description,
		})
	}
	return drafts, nil
}

func fromPercent(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := d.Div(hundred)
	return &v
}

// columnFor maps a validator field to the import column it came from.
// Bank and storage errors are not attributable to any column.
func columnFor(field string) *string {
	var col string
	switch {
	case field == "", field == deposit.FieldBankID:
		return nil
	case strings.HasPrefix(field, deposit.FieldConditions):
		col = ColumnPrematureConditions
	default:
		col = field
	}
	return &col
}

// fieldColumn is columnFor without the pointer, "" for unattributable fields.
func fieldColumn(field string) string {
	if c := columnFor(field); c != nil {
		return *c
	}
	return ""
}
