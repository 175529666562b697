// Package sheet reads and writes tabular files (xlsx and csv) as header-keyed rows.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatXLS  Format = "xls"
)

var (
	ErrUnreadable  = errors.New("file could not be read")
	ErrNoHeader    = errors.New("file has no header row")
	ErrUnsupported = errors.New("unsupported file format")
)

// Row is one data row. Number is its 1-based position below the header.
type Row struct {
	Number int
	Values map[string]string
}

// Get returns the trimmed cell under column, or "" when absent.
func (r Row) Get(column string) string {
	return r.Values[column]
}

// Table is a parsed sheet. Blank rows are dropped but keep their numbering gap.
type Table struct {
	Header []string
	Rows   []Row
}

// Detect guesses the format from magic bytes: zip (xlsx), OLE2 (legacy xls), otherwise csv.
func Detect(data []byte) Format {
	if len(data) >= 4 {
		switch {
		case data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04:
			return FormatXLSX
		case data[0] == 0xD0 && data[1] == 0xCF && data[2] == 0x11 && data[3] == 0xE0:
			return FormatXLS
		}
	}
	return FormatCSV
}

// Read parses data according to its detected format.
func Read(data []byte) (*Table, error) {
	switch Detect(data) {
	case FormatXLSX:
		return ReadXLSX(bytes.NewReader(data))
	case FormatXLS:
		return nil, fmt.Errorf("%w: legacy .xls workbooks must be saved as .xlsx", ErrUnsupported)
	default:
		return ReadCSV(bytes.NewReader(data))
	}
}

// ReadXLSX reads the first worksheet of an xlsx workbook.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: no sheets found in workbook", ErrUnreadable)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: reading rows: %v", ErrUnreadable, err)
	}
	return build(rows)
}

// ReadCSV reads comma separated data. A leading UTF-8 BOM is ignored.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing csv: %v", ErrUnreadable, err)
	}
	return build(rows)
}

func build(rows [][]string) (*Table, error) {
	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, ErrNoHeader
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	t := &Table{Header: header}
	for i, cells := range rows[1:] {
		if isBlank(cells) {
			continue
		}
		values := make(map[string]string, len(header))
		for col, name := range header {
			if name == "" {
				continue
			}
			if _, seen := values[name]; seen {
				continue
			}
			v := ""
			if col < len(cells) {
				v = strings.TrimSpace(cells[col])
			}
			values[name] = v
		}
		t.Rows = append(t.Rows, Row{Number: i + 1, Values: values})
	}
	return t, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
