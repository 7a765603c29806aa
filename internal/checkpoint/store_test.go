package checkpoint

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-seating/internal/models"
	"exam-seating/internal/report"
)

func sampleReport(seatOneID, examOne string) *report.Report {
	b := report.NewBuilder()
	b.StartProgram("m1")
	b.StartRoom("m1-R1", "อาคาร 1", "2", 30)
	b.AddSeat(models.SeatAssignment{
		ProgramID: "m1", RoomLabel: "m1-R1", SeatNumber: 1,
		ExamID: examOne, ApplicantID: seatOneID, Building: "อาคาร 1", Floor: "2",
	})
	b.AddSeat(models.SeatAssignment{
		ProgramID: "m1", RoomLabel: "m1-R1", SeatNumber: 2,
		ExamID: "1002", ApplicantID: "b",
	})
	return b.Build()
}

func TestStore_SaveAndLoad(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleReport("a", "1001")))

	entries, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "a", entries[0].ApplicantID)
	assert.Equal(t, "1001", entries[0].ExamID)
	assert.Equal(t, "m1-R1", entries[0].RoomLabel)
	assert.Equal(t, 1, entries[0].SeatNumber)
	assert.Equal(t, "อาคาร 1", entries[0].Building)
	assert.Equal(t, 2, entries[1].SeatNumber)
}

func TestStore_SaveUpserts(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleReport("a", "1001")))
	// Same applicant and program again; the row updates instead of duplicating.
	require.NoError(t, store.Save(ctx, sampleReport("a", "1009")))

	entries, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1009", entries[0].ExamID)
}

func TestStore_LoadEmpty(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_CreatesFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), sampleReport("a", "1001")))
	require.NoError(t, store.Close())

	// Reopening sees the persisted rows.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
