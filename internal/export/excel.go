// internal/export/excel.go

// Package export renders an assignment report into the artifacts handed to
// the exam organizers: one spreadsheet and printable per-program room lists.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "exam-seating/internal/common/errors"
	"exam-seating/internal/report"
)

// Spreadsheet column headers, in print order.
var excelHeaders = []string{
	"ห้องสอบ",         // room
	"เลขที่นั่งสอบ",   // seat number
	"เลขประจำตัวสอบ",  // exam id
	"ชื่อ - นามสกุล",  // full name
	"โรงเรียน",        // school
}

// ExcelWriter writes one sheet per program.
type ExcelWriter struct {
	path string
}

func NewExcelWriter(path string) *ExcelWriter {
	return &ExcelWriter{path: path}
}

// Write renders the report into a workbook at the configured path. Sheets are
// created in allocation order, seats in traversal order, so identical reports
// produce identical workbooks.
func (w *ExcelWriter) Write(rep *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewExportFailedError(w.path, err)
	}

	for i, program := range rep.Programs() {
		sheet := sheetName(program.ID())
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return apperrors.NewExportFailedError(w.path, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return apperrors.NewExportFailedError(w.path, err)
		}

		if err := f.SetSheetRow(sheet, "A1", &excelHeaders); err != nil {
			return apperrors.NewExportFailedError(w.path, err)
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return apperrors.NewExportFailedError(w.path, err)
		}

		rowNum := 2
		for _, room := range program.Rooms() {
			for _, seat := range room.Seats() {
				cell := fmt.Sprintf("A%d", rowNum)
				row := []interface{}{seat.RoomLabel, seat.SeatNumber, seat.ExamID, seat.FullName, seat.School}
				if err := f.SetSheetRow(sheet, cell, &row); err != nil {
					return apperrors.NewExportFailedError(w.path, err)
				}
				rowNum++
			}
		}
	}

	if rep.ProgramCount() == 0 {
		// Leave the default sheet; an empty workbook is still a valid artifact.
		_ = f.SetSheetName("Sheet1", "empty")
	}

	if err := f.SaveAs(w.path); err != nil {
		return apperrors.NewExportFailedError(w.path, err)
	}
	return nil
}

// sheetName fits a program id into Excel's 31-character sheet name limit.
func sheetName(programID string) string {
	if len(programID) <= 31 {
		return programID
	}
	return programID[:31]
}
