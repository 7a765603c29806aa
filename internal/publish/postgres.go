// internal/publish/postgres.go

// Package publish pushes a finished report to the school's stores: the
// admissions database and the seat-lookup cache the applicant portal reads.
package publish

import (
	"context"
	"database/sql"

	apperrors "exam-seating/internal/common/errors"
	"exam-seating/internal/common/logger"
	"exam-seating/internal/report"
)

const upsertSeatSQL = `
	INSERT INTO exam_seat_assignments
		(run_id, applicant_id, program_id, exam_id, room_label, seat_number, building, floor)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (applicant_id, program_id) DO UPDATE SET
		run_id = EXCLUDED.run_id,
		exam_id = EXCLUDED.exam_id,
		room_label = EXCLUDED.room_label,
		seat_number = EXCLUDED.seat_number,
		building = EXCLUDED.building,
		floor = EXCLUDED.floor`

// PostgresPublisher upserts seat assignments into the admissions database.
type PostgresPublisher struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresPublisher(db *sql.DB, log logger.Logger) *PostgresPublisher {
	return &PostgresPublisher{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"publisher": "postgres"}),
	}
}

// Publish writes every seat of the report in one transaction, tagged with the
// run id so operators can tell which run last touched a row.
func (p *PostgresPublisher) Publish(ctx context.Context, runID string, rep *report.Report) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewPublishFailedError("postgres", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertSeatSQL)
	if err != nil {
		return apperrors.NewPublishFailedError("postgres", err)
	}
	defer stmt.Close()

	count := 0
	for _, seat := range rep.Seats() {
		if _, err := stmt.ExecContext(ctx,
			runID, seat.ApplicantID, seat.ProgramID, seat.ExamID,
			seat.RoomLabel, seat.SeatNumber, seat.Building, seat.Floor); err != nil {
			return apperrors.NewPublishFailedError("postgres", err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewPublishFailedError("postgres", err)
	}

	p.logger.Info("assignments published", map[string]interface{}{
		"runID": runID,
		"seats": count,
	})
	return nil
}
