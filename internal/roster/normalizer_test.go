package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-seating/internal/common/config"
	"exam-seating/internal/common/logger"
	"exam-seating/internal/models"
)

func testRosterConfig() config.RosterConfig {
	return config.RosterConfig{
		EligibleStatuses:   []string{"ผ่านคุณสมบัติ", "active"},
		WithdrawnStatuses:  []string{"withdrawn", "สละสิทธิ์"},
		IneligibleStatuses: []string{"rejected"},
	}
}

func row(id, title, first, last, school, programID, status string) models.RawRow {
	return models.RawRow{
		models.ColThaiID:    id,
		models.ColTitle:     title,
		models.ColFirstName: first,
		models.ColLastName:  last,
		models.ColSchool:    school,
		models.ColProgramID: programID,
		models.ColStatus:    status,
	}
}

func TestNormalize_BuildsRecords(t *testing.T) {
	n := NewNormalizer(testRosterConfig(), logger.NewTestLogger(t))

	records, summary := n.Normalize([]models.RawRow{
		row("1234567890123", "เด็กชาย", "สมชาย", "ใจดี", "โรงเรียนวัดใหม่", "m1", "ผ่านคุณสมบัติ"),
	})

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "1234567890123", r.ID)
	assert.Equal(t, "ด.ช.", r.Title)
	assert.Equal(t, "ด.ช.สมชาย ใจดี", r.FullName)
	assert.Equal(t, "วัดใหม่", r.School)
	assert.Equal(t, "m1", r.ProgramID)
	assert.Equal(t, models.StatusActive, r.Status)
	assert.Equal(t, 1, summary.Kept)
	assert.Equal(t, 0, summary.Dropped())
}

func TestNormalize_DropsRowsMissingIDOrProgram(t *testing.T) {
	n := NewNormalizer(testRosterConfig(), logger.NewTestLogger(t))

	records, summary := n.Normalize([]models.RawRow{
		row("", "นาย", "ก", "ข", "", "m1", "active"),
		row("111", "นาย", "ก", "ข", "", "", "active"),
		row("222", "นาย", "ก", "ข", "", "m1", "active"),
	})

	assert.Len(t, records, 1)
	assert.Equal(t, 3, summary.RowsRead)
	assert.Equal(t, 1, summary.MissingID)
	assert.Equal(t, 1, summary.MissingProgram)
	assert.Equal(t, 2, summary.Dropped())
}

func TestNormalize_DuplicateIDKeepsFirstOccurrence(t *testing.T) {
	n := NewNormalizer(testRosterConfig(), logger.NewTestLogger(t))

	records, summary := n.Normalize([]models.RawRow{
		row("111", "นาย", "คนแรก", "ก", "", "m1", "active"),
		row("111", "นาย", "คนหลัง", "ข", "", "m2", "active"),
		row("111", "นาย", "คนหลังสุด", "ค", "", "m1", "active"),
	})

	require.Len(t, records, 1)
	assert.Equal(t, "คนแรก", records[0].FirstName)
	assert.Equal(t, "m1", records[0].ProgramID)
	assert.Equal(t, 2, summary.DuplicateID)
	assert.Equal(t, []string{"111"}, summary.DuplicateIDs)
}

func TestNormalize_StatusMapping(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Status
	}{
		{"ผ่านคุณสมบัติ", models.StatusActive},
		{"ACTIVE", models.StatusActive},
		{"  active  ", models.StatusActive},
		{"withdrawn", models.StatusWithdrawn},
		{"สละสิทธิ์", models.StatusWithdrawn},
		{"rejected", models.StatusIneligible},
		{"pending", models.StatusUnknown},
		{"", models.StatusUnknown},
	}

	n := NewNormalizer(testRosterConfig(), logger.NewNoOpLogger())
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			records, _ := n.Normalize([]models.RawRow{
				row("999", "นาย", "ก", "ข", "", "m1", tt.raw),
			})
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Status)
		})
	}
}

func TestNormalize_CleansSpreadsheetArtefacts(t *testing.T) {
	n := NewNormalizer(testRosterConfig(), logger.NewTestLogger(t))

	records, _ := n.Normalize([]models.RawRow{
		row("1234567890123.0", "นางสาว", "  สม  หญิง ", "ดี", "ร.ร. บ้านดอน", "m4", "active"),
	})

	require.Len(t, records, 1)
	assert.Equal(t, "1234567890123", records[0].ID)
	assert.Equal(t, "สม หญิง", records[0].FirstName)
	assert.Equal(t, "บ้านดอน", records[0].School)
}

func TestNormalize_PreservesInputOrder(t *testing.T) {
	n := NewNormalizer(testRosterConfig(), logger.NewTestLogger(t))

	records, _ := n.Normalize([]models.RawRow{
		row("3", "นาย", "ค", "x", "", "m2", "active"),
		row("1", "นาย", "ก", "x", "", "m1", "active"),
		row("2", "นาย", "ข", "x", "", "m1", "active"),
	})

	require.Len(t, records, 3)
	assert.Equal(t, "3", records[0].ID)
	assert.Equal(t, "1", records[1].ID)
	assert.Equal(t, "2", records[2].ID)
}

func TestNameFormatter_FullName(t *testing.T) {
	f := newNameFormatter(nil, nil)

	assert.Equal(t, "ด.ญ.สมศรี มีสุข", f.FullName(f.Title("เด็กหญิง"), "สมศรี", "มีสุข"))
	assert.Equal(t, "นายเดี่ยว", f.FullName("นาย", "เดี่ยว", ""))
	// Unknown titles pass through untouched.
	assert.Equal(t, "Mr.", f.Title("Mr."))
}
