package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet to write. Cells may be strings or numbers.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// WriteXLSX writes sheets into a workbook in the given order. The first sheet is active.
func WriteXLSX(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, fmt.Errorf("renaming sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("adding sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s, bold); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	widths := make([]int, len(s.Header))

	for col, h := range s.Header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(s.Name, cell, h); err != nil {
			return fmt.Errorf("writing header %q: %w", h, err)
		}
		widths[col] = len(h)
	}
	if len(s.Header) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, 1)
		last, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
		if err := f.SetCellStyle(s.Name, first, last, headerStyle); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
	}

	for r, row := range s.Rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(s.Name, cell, v); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
			if col < len(widths) {
				widths[col] = max(widths[col], len(fmt.Sprint(v)))
			}
		}
	}

	for col, w := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		width := float64(min(w+4, 80))
		if width < 12 {
			width = 12
		}
		if err := f.SetColWidth(s.Name, name, name, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", name, err)
		}
	}
	return nil
}

// WriteCSV writes a header and rows as comma separated values.
func WriteCSV(header []string, rows [][]any) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
