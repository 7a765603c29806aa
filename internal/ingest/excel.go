// internal/ingest/excel.go

// Package ingest reads applicant rosters from xlsx workbooks into raw row
// maps. It validates the header, nothing else; content-level cleanup belongs
// to the roster normalizer.
package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	apperrors "exam-seating/internal/common/errors"
	"exam-seating/internal/models"
)

// Warning flags a row the reader could not shape into the header's columns.
type Warning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Result carries the raw rows alongside non-fatal warnings.
type Result struct {
	Rows     []models.RawRow
	Warnings []Warning
}

// ReadFile opens a workbook and reads the named sheet.
func ReadFile(path, sheetName string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewInputFileInvalidError(path, err)
	}
	defer f.Close()
	res, err := readSheet(f, sheetName)
	if err != nil {
		return nil, apperrors.NewInputFileInvalidError(path, err)
	}
	return res, nil
}

// Read reads the named sheet from an already-open workbook stream.
func Read(r io.Reader, sheetName string) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewInputFileInvalidError("stream", err)
	}
	defer f.Close()
	res, err := readSheet(f, sheetName)
	if err != nil {
		return nil, apperrors.NewInputFileInvalidError("stream", err)
	}
	return res, nil
}

func readSheet(f *excelize.File, sheetName string) (*Result, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheetName)
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	var missing []string
	for _, col := range models.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("sheet %q is missing required columns %v", sheetName, missing)
	}

	result := &Result{Rows: make([]models.RawRow, 0, len(rows)-1)}
	for rowNum, cells := range rows[1:] {
		if isBlank(cells) {
			result.Warnings = append(result.Warnings, Warning{
				Row:     rowNum + 2, // 1-based, after the header
				Message: "blank row skipped",
			})
			continue
		}
		row := make(models.RawRow, len(header))
		for name, i := range index {
			// Trailing empty cells are simply absent from excelize's slice.
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
