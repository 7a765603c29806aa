package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "exam-seating/internal/common/errors"
	"exam-seating/internal/common/logger"
	"exam-seating/internal/models"
	"exam-seating/internal/report"
)

func publishedReport() *report.Report {
	b := report.NewBuilder()
	b.StartProgram("m1")
	b.StartRoom("m1-R1", "อาคาร 1", "2", 30)
	b.AddSeat(models.SeatAssignment{
		ProgramID: "m1", RoomLabel: "m1-R1", SeatNumber: 1,
		ExamID: "1001", ApplicantID: "a", FullName: "ด.ช.สมชาย ใจดี",
		Building: "อาคาร 1", Floor: "2",
	})
	b.AddSeat(models.SeatAssignment{
		ProgramID: "m1", RoomLabel: "m1-R1", SeatNumber: 2,
		ExamID: "1002", ApplicantID: "b", FullName: "ด.ญ.สมศรี มีสุข",
		Building: "อาคาร 1", Floor: "2",
	})
	return b.Build()
}

func TestPostgresPublisher_Publish(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prepared := mock.ExpectPrepare(`INSERT INTO exam_seat_assignments`)
	prepared.ExpectExec().
		WithArgs("run-1", "a", "m1", "1001", "m1-R1", 1, "อาคาร 1", "2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	prepared.ExpectExec().
		WithArgs("run-1", "b", "m1", "1002", "m1-R1", 2, "อาคาร 1", "2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p := NewPostgresPublisher(db, logger.NewTestLogger(t))
	require.NoError(t, p.Publish(context.Background(), "run-1", publishedReport()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPublisher_RollsBackOnExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prepared := mock.ExpectPrepare(`INSERT INTO exam_seat_assignments`)
	prepared.ExpectExec().
		WithArgs("run-1", "a", "m1", "1001", "m1-R1", 1, "อาคาร 1", "2").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	p := NewPostgresPublisher(db, logger.NewTestLogger(t))
	err = p.Publish(context.Background(), "run-1", publishedReport())
	assert.Equal(t, apperrors.ErrCodePublishFailed, apperrors.CodeOf(err))
	assert.False(t, apperrors.IsFatal(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
