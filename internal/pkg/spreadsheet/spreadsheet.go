// Package spreadsheet reads and writes single-sheet xlsx workbooks keyed by header row.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrNoWorksheet    = errors.New("no worksheet found")
	ErrEmptyWorksheet = errors.New("worksheet is empty")
)

// Row maps a normalized header to the raw cell value.
type Row map[string]string

// Get looks a column up by its display header.
func (r Row) Get(header string) string {
	return r[NormalizeHeader(header)]
}

func NormalizeHeader(header string) string {
	return strings.ToLower(strings.Join(strings.Fields(header), " "))
}

// ReadRows parses the first sheet of an xlsx workbook. The first non-empty
// row is the header. Cells are returned unformatted, so date cells come back
// as serial numbers.
func ReadRows(r io.Reader) ([]Row, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoWorksheet
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read worksheet: %w", err)
	}

	headerIdx := -1
	for i, row := range rows {
		if !isBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrEmptyWorksheet
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		headers[i] = NormalizeHeader(h)
	}

	var out []Row
	for _, row := range rows[headerIdx+1:] {
		if isBlank(row) {
			continue
		}
		record := make(Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			record[h] = cellValue(row, i)
		}
		out = append(out, record)
	}
	return out, nil
}

// WriteTemplate writes a workbook with one header row and optional sample rows.
func WriteTemplate(w io.Writer, sheet string, headers []string, samples [][]string) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		return err
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, sample := range samples {
		values := make([]interface{}, len(sample))
		for j, v := range sample {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil && len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = file.SetCellStyle(sheet, "A1", last, style)
	}

	return file.Write(w)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
