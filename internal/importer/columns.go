// Package importer turns uploaded spreadsheets into FD plans, one transaction per row,
// and records every row outcome in the upload ledger.
package importer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Canonical import columns, in template order.
const (
	ColumnPlanName            = "plan_name"
	ColumnMinimumAmount       = "minimum_amount"
	ColumnMaximumAmount       = "maximum_amount"
	ColumnTenureMonths        = "tenure_months"
	ColumnBaseInterestRate    = "base_interest_rate"
	ColumnDescription         = "description"
	ColumnPrematureConditions = "premature_conditions"
)

// ErrFileFormat marks an upload that cannot be processed at all: the file is
// unreadable or its header lacks required columns.
var ErrFileFormat = errors.New("file format error")

// Schema lists the canonical columns in the order the template writes them.
var Schema = []string{
	ColumnPlanName,
	ColumnMinimumAmount,
	ColumnMaximumAmount,
	ColumnTenureMonths,
	ColumnBaseInterestRate,
	ColumnDescription,
	ColumnPrematureConditions,
}

// RequiredColumns must be present in every upload header.
var RequiredColumns = []string{
	ColumnPlanName,
	ColumnMinimumAmount,
	ColumnTenureMonths,
	ColumnBaseInterestRate,
}

var aliases = map[string][]string{
	ColumnPlanName:            {"plan name", "fd plan name", "scheme name", "plan"},
	ColumnMinimumAmount:       {"min_amount", "minimum amount", "min amount"},
	ColumnMaximumAmount:       {"max_amount", "maximum amount", "max amount"},
	ColumnTenureMonths:        {"tenure", "tenure in months", "period", "tenure (months)"},
	ColumnBaseInterestRate:    {"base_rate", "maturity_rate", "interest_rate", "base interest rate", "rate"},
	ColumnDescription:         {"details", "plan description"},
	ColumnPrematureConditions: {"conditions", "premature conditions", "interest_rate_conditions"},
}

// lookup maps a normalized header to its canonical column.
var lookup = buildLookup()

func buildLookup() map[string]string {
	m := make(map[string]string)
	for canonical, names := range aliases {
		m[normalizeHeader(canonical)] = canonical
		for _, n := range names {
			m[normalizeHeader(n)] = canonical
		}
	}
	return m
}

// normalizeHeader lowercases h and turns spaces and dashes into underscores.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_", "(", "", ")", "").Replace(h)
	for strings.Contains(h, "__") {
		h = strings.ReplaceAll(h, "__", "_")
	}
	return strings.Trim(h, "_")
}

// Columns is a resolved header: which raw header holds each canonical column.
type Columns struct {
	source  map[string]string
	Found   []string `json:"found"`
	Missing []string `json:"missing,omitempty"`
	Unknown []string `json:"unknown,omitempty"`
}

// MapHeader resolves raw header names against the alias table. The first header that
// maps to a canonical column wins; later duplicates are reported as unknown.
func MapHeader(header []string) *Columns {
	c := &Columns{source: make(map[string]string)}

	for _, raw := range header {
		if raw == "" {
			continue
		}
		canonical, ok := lookup[normalizeHeader(raw)]
		if !ok {
			c.Unknown = append(c.Unknown, raw)
			continue
		}
		if _, dup := c.source[canonical]; dup {
			c.Unknown = append(c.Unknown, raw)
			continue
		}
		c.source[canonical] = raw
	}

	for _, col := range Schema {
		if _, ok := c.source[col]; ok {
			c.Found = append(c.Found, col)
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := c.source[col]; !ok {
			c.Missing = append(c.Missing, col)
		}
	}
	sort.Strings(c.Missing)
	return c
}

// Has reports whether the canonical column is present.
func (c *Columns) Has(column string) bool {
	_, ok := c.source[column]
	return ok
}

// Source returns the raw header name for a canonical column.
func (c *Columns) Source(column string) string {
	return c.source[column]
}

// Err returns an ErrFileFormat error when required columns are missing.
func (c *Columns) Err() error {
	if len(c.Missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing required columns: %s", ErrFileFormat, strings.Join(c.Missing, ", "))
}
