package importer

import (
	"fmt"
	"strings"

	"github.com/fdonboard/backend/pkg/sheet"
)

// Template sheet names.
const (
	SheetPlans            = "FD_Plans"
	SheetInstructions     = "Instructions"
	SheetConditionsFormat = "Conditions_Format"
)

const exampleConditions = `[` +
	`{"condition_type":"premature","min_tenure_months":0,"max_tenure_months":3,"interest_rate":6.0,"penalty_rate":0.5,"description":"Withdrawal within 3 months"},` +
	`{"condition_type":"premature","min_tenure_months":3,"max_tenure_months":6,"interest_rate":6.25,"penalty_rate":0.25,"description":"Withdrawal within 6 months"},` +
	`{"condition_type":"premature","min_tenure_months":6,"interest_rate":6.5,"penalty_amount":500,"description":"Withdrawal after 6 months"}` +
	`]`

// exampleRow follows Schema order.
var exampleRow = []any{
	"Sample FD Plan",
	100000,
	10000000,
	12,
	7,
	"Regular FD plan with flexible tenure",
	exampleConditions,
}

type columnHelp struct {
	column      string
	description string
	example     string
}

var columnDocs = []columnHelp{
	{ColumnPlanName, "Name of the FD plan, unique within the bank", "Sample FD Plan"},
	{ColumnMinimumAmount, "Minimum deposit amount, greater than zero", "100000"},
	{ColumnMaximumAmount, "Maximum deposit amount; leave blank for no limit", "10000000"},
	{ColumnTenureMonths, "Tenure of the plan in whole months", "12"},
	{ColumnBaseInterestRate, "Annual interest rate at maturity as a percentage (7 means 7%)", "7"},
	{ColumnDescription, "Free text description", "Regular FD plan"},
	{ColumnPrematureConditions, "JSON array of withdrawal conditions; see the " + SheetConditionsFormat + " sheet", "[]"},
}

var conditionDocs = []columnHelp{
	{"condition_type", "premature or maturity", "premature"},
	{"min_tenure_months", "First month the condition applies to (inclusive). Required for premature", "0"},
	{"max_tenure_months", "Month the condition stops applying (exclusive). Omit for open-ended", "3"},
	{"interest_rate", "Annual interest rate as a percentage. Must equal the base rate for maturity", "6.5"},
	{"penalty_rate", "Penalty as a percentage of the principal", "0.5"},
	{"penalty_amount", "Fixed penalty amount", "500"},
	{"description", "Free text description", "Withdrawal within 3 months"},
}

// TemplateXLSX builds the import workbook: the data sheet carries exactly the columns
// the importer reads and one example row.
func TemplateXLSX() ([]byte, error) {
	instructions := make([][]any, 0, len(columnDocs))
	for _, d := range columnDocs {
		instructions = append(instructions, []any{d.column, requiredLabel(d.column), d.description, d.example})
	}
	conditions := make([][]any, 0, len(conditionDocs)+1)
	for _, d := range conditionDocs {
		conditions = append(conditions, []any{d.column, d.description, d.example})
	}
	conditions = append(conditions, []any{"example", "Full column value", exampleConditions})

	data, err := sheet.WriteXLSX(
		sheet.Sheet{Name: SheetPlans, Header: Schema, Rows: [][]any{exampleRow}},
		sheet.Sheet{Name: SheetInstructions, Header: []string{"Column", "Required", "Description", "Example"}, Rows: instructions},
		sheet.Sheet{Name: SheetConditionsFormat, Header: []string{"Field", "Description", "Example"}, Rows: conditions},
	)
	if err != nil {
		return nil, fmt.Errorf("build import template: %w", err)
	}
	return data, nil
}

// TemplateCSV builds the data sheet alone as CSV.
func TemplateCSV() ([]byte, error) {
	data, err := sheet.WriteCSV(Schema, [][]any{exampleRow})
	if err != nil {
		return nil, fmt.Errorf("build import template: %w", err)
	}
	return data, nil
}

// Template builds the template in the requested format ("xlsx" or "csv").
func Template(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", string(sheet.FormatXLSX):
		return TemplateXLSX()
	case string(sheet.FormatCSV):
		return TemplateCSV()
	default:
		return nil, fmt.Errorf("%w: unsupported template format %q", ErrFileFormat, format)
	}
}

func requiredLabel(column string) string {
	for _, c := range RequiredColumns {
		if c == column {
			return "yes"
		}
	}
	return "no"
}
