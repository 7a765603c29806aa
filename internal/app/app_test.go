package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"exam-seating/internal/common/config"
	"exam-seating/internal/common/logger"
	"exam-seating/internal/common/observability"
	"exam-seating/internal/models"
)

func writeRoster(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Merge"))

	header := make([]interface{}, len(models.RequiredColumns))
	for i, c := range models.RequiredColumns {
		header[i] = c
	}
	all := append([][]interface{}{header}, rows...)
	for i, cells := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Merge", cell, &cells))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func pipelineConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{Name: "exam-seating"},
		Input: config.InputConfig{
			File:      filepath.Join(dir, "roster.xlsx"),
			SheetName: "Merge",
		},
		Allocation: config.AllocationConfig{
			SeatsPerRoom:   2,
			SortKey:        config.SortByID,
			ExamIDPrefixes: map[string]string{"m1": "1"},
			ExamIDWidth:    3,
		},
		Roster: config.RosterConfig{
			EligibleStatuses:  []string{"ผ่านคุณสมบัติ"},
			WithdrawnStatuses: []string{"สละสิทธิ์"},
		},
		Checkpoint: config.CheckpointConfig{
			Enabled: true,
			Path:    filepath.Join(dir, "checkpoint.db"),
		},
		Output: config.OutputConfig{
			ExcelPath: filepath.Join(dir, "assignments.xlsx"),
			PDFDir:    filepath.Join(dir, "pdf"),
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	tracing, err := observability.New("exam-seating-test", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tracing.Shutdown(context.Background()) })
	return New(cfg, logger.NewTestLogger(t), tracing)
}

func TestApp_RunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeRoster(t, filepath.Join(dir, "roster.xlsx"), [][]interface{}{
		{"1001", "เด็กชาย", "สมชาย", "ใจดี", "โรงเรียนวัดใหม่", "m1", "ผ่านคุณสมบัติ"},
		{"1002", "เด็กหญิง", "สมศรี", "มีสุข", "โรงเรียนบ้านดอน", "m1", "ผ่านคุณสมบัติ"},
		{"1003", "นาย", "เอก", "โท", "โรงเรียนวัดใหม่", "m1", "สละสิทธิ์"},
		{"1004", "นาย", "ตรี", "จัตวา", "โรงเรียนวัดใหม่", "m1", "ผ่านคุณสมบัติ"},
	})
	cfg := pipelineConfig(t, dir)

	rep, err := newTestApp(t, cfg).Run(context.Background())
	require.NoError(t, err)

	// Three eligible applicants, two per room.
	require.Equal(t, 3, rep.SeatCount())
	program, ok := rep.Program("m1")
	require.True(t, ok)
	assert.Equal(t, 2, program.RoomCount())

	// Artifacts land where configured.
	assert.FileExists(t, cfg.Output.ExcelPath)
	assert.FileExists(t, filepath.Join(cfg.Output.PDFDir, "exam_room_m1.pdf"))
	assert.FileExists(t, cfg.Checkpoint.Path)
}

func TestApp_RerunKeepsIssuedSeats(t *testing.T) {
	dir := t.TempDir()
	roster := filepath.Join(dir, "roster.xlsx")
	writeRoster(t, roster, [][]interface{}{
		{"1001", "นาย", "ก", "ข", "x", "m1", "ผ่านคุณสมบัติ"},
		{"1002", "นาย", "ค", "ง", "x", "m1", "ผ่านคุณสมบัติ"},
	})
	cfg := pipelineConfig(t, dir)

	first, err := newTestApp(t, cfg).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, first.SeatCount())

	// A late registration arrives; issued seats and exam ids must not move.
	writeRoster(t, roster, [][]interface{}{
		{"1001", "นาย", "ก", "ข", "x", "m1", "ผ่านคุณสมบัติ"},
		{"1002", "นาย", "ค", "ง", "x", "m1", "ผ่านคุณสมบัติ"},
		{"1003", "นาย", "จ", "ฉ", "x", "m1", "ผ่านคุณสมบัติ"},
	})
	second, err := newTestApp(t, cfg).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, second.SeatCount())

	firstSeats := map[string]models.SeatAssignment{}
	for _, s := range first.Seats() {
		firstSeats[s.ApplicantID] = s
	}
	for _, s := range second.Seats() {
		if prev, ok := firstSeats[s.ApplicantID]; ok {
			assert.Equal(t, prev.RoomLabel, s.RoomLabel)
			assert.Equal(t, prev.SeatNumber, s.SeatNumber)
			assert.Equal(t, prev.ExamID, s.ExamID)
		} else {
			// The newcomer continues the numbering instead of reusing "1001".
			assert.Equal(t, "1003", s.ExamID)
		}
	}
}

func TestApp_ExportUsesConfiguredFont(t *testing.T) {
	dir := t.TempDir()
	writeRoster(t, filepath.Join(dir, "roster.xlsx"), [][]interface{}{
		{"1001", "นาย", "ก", "ข", "x", "m1", "ผ่านคุณสมบัติ"},
	})
	cfg := pipelineConfig(t, dir)
	// The path flows through to the writer: an unreadable font surfaces as an
	// export failure instead of being silently ignored.
	cfg.Output.FontPath = filepath.Join(dir, "no-such-font.ttf")

	rep, err := newTestApp(t, cfg).Run(context.Background())
	require.NotNil(t, rep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export")
}

func TestApp_FailsOnMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := pipelineConfig(t, dir)

	rep, err := newTestApp(t, cfg).Run(context.Background())
	assert.Nil(t, rep)
	assert.Error(t, err)
}
