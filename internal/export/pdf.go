// internal/export/pdf.go
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	apperrors "exam-seating/internal/common/errors"
	"exam-seating/internal/report"
)

// PDFWriter renders printable room lists, one document per program. Thai text
// needs an embedded UTF-8 font; without one the writer falls back to the core
// Helvetica font, which is good enough for Latin test fixtures.
type PDFWriter struct {
	dir          string
	fontPath     string
	boldFontPath string
	examDates    map[string]string
}

func NewPDFWriter(dir, fontPath, boldFontPath string, examDates map[string]string) *PDFWriter {
	return &PDFWriter{
		dir:          dir,
		fontPath:     fontPath,
		boldFontPath: boldFontPath,
		examDates:    examDates,
	}
}

// Write renders every program of the report. File names embed the program id,
// so a re-run overwrites the same files.
func (w *PDFWriter) Write(rep *report.Report) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return apperrors.NewExportFailedError(w.dir, err)
	}
	for _, program := range rep.Programs() {
		if err := w.writeProgram(program); err != nil {
			return err
		}
	}
	return nil
}

func (w *PDFWriter) writeProgram(program report.Program) error {
	path := filepath.Join(w.dir, fmt.Sprintf("exam_room_%s.pdf", program.ID()))

	pdf := fpdf.New("P", "mm", "A4", "")
	font, boldFont := w.fonts(pdf)
	pdf.SetAutoPageBreak(true, 15)

	for _, room := range program.Rooms() {
		pdf.AddPage()

		pdf.SetFont(boldFont, "B", 16)
		pdf.CellFormat(0, 9, fmt.Sprintf("ห้องสอบ %s", room.Label()), "", 1, "C", false, 0, "")

		pdf.SetFont(font, "", 12)
		location := room.Building()
		if room.Floor() != "" {
			location = fmt.Sprintf("%s ชั้น %s", room.Building(), room.Floor())
		}
		if location != "" {
			pdf.CellFormat(0, 7, location, "", 1, "C", false, 0, "")
		}
		if date, ok := w.examDates[program.ID()]; ok {
			pdf.CellFormat(0, 7, date, "", 1, "C", false, 0, "")
		}
		pdf.Ln(3)

		pdf.SetFont(boldFont, "B", 12)
		pdf.CellFormat(20, 8, "ที่นั่ง", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, "เลขประจำตัวสอบ", "1", 0, "C", false, 0, "")
		pdf.CellFormat(75, 8, "ชื่อ - นามสกุล", "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 8, "โรงเรียน", "1", 1, "C", false, 0, "")

		pdf.SetFont(font, "", 12)
		for _, seat := range room.Seats() {
			pdf.CellFormat(20, 7, fmt.Sprintf("%d", seat.SeatNumber), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 7, seat.ExamID, "1", 0, "C", false, 0, "")
			textCell(pdf, 75, seat.FullName, 0)
			textCell(pdf, 60, seat.School, 1)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return apperrors.NewExportFailedError(path, err)
	}
	return nil
}

const (
	cellFontSize = 12
	minFontSize  = 7
	cellPadding  = 2
)

// fitFontSize shrinks the current font until text fits the cell width, down
// to a floor that keeps it legible. The font size is left applied.
func fitFontSize(pdf *fpdf.Fpdf, width float64, text string) float64 {
	size := float64(cellFontSize)
	pdf.SetFontSize(size)
	for size > minFontSize && pdf.GetStringWidth(text) > width-cellPadding {
		size -= 0.5
		pdf.SetFontSize(size)
	}
	return size
}

// textCell renders a left-aligned bordered cell, shrinking long names and
// school strings instead of letting them overflow the column.
func textCell(pdf *fpdf.Fpdf, width float64, text string, ln int) {
	fitFontSize(pdf, width, text)
	pdf.CellFormat(width, 7, text, "1", ln, "L", false, 0, "")
	pdf.SetFontSize(cellFontSize)
}

// fonts registers the configured UTF-8 fonts, returning the family names to
// use for regular and bold text.
func (w *PDFWriter) fonts(pdf *fpdf.Fpdf) (string, string) {
	if w.fontPath == "" {
		return "Helvetica", "Helvetica"
	}
	pdf.AddUTF8Font("thsarabun", "", w.fontPath)
	bold := w.boldFontPath
	if bold == "" {
		bold = w.fontPath
	}
	pdf.AddUTF8Font("thsarabun", "B", bold)
	return "thsarabun", "thsarabun"
}
