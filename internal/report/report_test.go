package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-seating/internal/models"
)

func buildSampleReport() *Report {
	b := NewBuilder()
	b.StartProgram("m1")
	b.StartRoom("m1-R1", "อาคาร 1", "2", 30)
	b.AddSeat(models.SeatAssignment{ProgramID: "m1", RoomLabel: "m1-R1", SeatNumber: 1, ApplicantID: "a"})
	b.AddSeat(models.SeatAssignment{ProgramID: "m1", RoomLabel: "m1-R1", SeatNumber: 2, ApplicantID: "b"})
	b.StartRoom("m1-R2", "อาคาร 1", "2", 30)
	b.AddSeat(models.SeatAssignment{ProgramID: "m1", RoomLabel: "m1-R2", SeatNumber: 1, ApplicantID: "c"})
	b.StartProgram("m4")
	return b.Build()
}

func TestBuilder_BuildsNestedStructure(t *testing.T) {
	rep := buildSampleReport()

	assert.Equal(t, 2, rep.ProgramCount())
	assert.Equal(t, 3, rep.SeatCount())

	m1, ok := rep.Program("m1")
	require.True(t, ok)
	assert.Equal(t, 2, m1.RoomCount())
	assert.Equal(t, 2, m1.Rooms()[0].SeatCount())
	assert.Equal(t, "อาคาร 1", m1.Rooms()[0].Building())
	assert.Equal(t, 30, m1.Rooms()[0].Capacity())

	// Programs with zero eligible applicants still traverse, as empty.
	m4, ok := rep.Program("m4")
	require.True(t, ok)
	assert.Equal(t, 0, m4.RoomCount())
	assert.Equal(t, 0, m4.SeatCount())

	_, ok = rep.Program("m9")
	assert.False(t, ok)
}

func TestReport_SeatsFlattenInTraversalOrder(t *testing.T) {
	rep := buildSampleReport()

	var ids []string
	for _, seat := range rep.Seats() {
		ids = append(ids, seat.ApplicantID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestReport_AccessorsReturnCopies(t *testing.T) {
	rep := buildSampleReport()

	m1, _ := rep.Program("m1")
	roomSeats := m1.Rooms()[0].Seats()
	roomSeats[0].ApplicantID = "tampered"

	again, _ := rep.Program("m1")
	assert.Equal(t, "a", again.Rooms()[0].Seats()[0].ApplicantID)
}
