// internal/checkpoint/store.go

// Package checkpoint persists issued assignments between runs, so a re-run
// after a late registration never renumbers seats that are already printed.
package checkpoint

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	apperrors "exam-seating/internal/common/errors"
	"exam-seating/internal/models"
	"exam-seating/internal/report"
)

// Store is a local sqlite database of issued assignments.
type Store struct {
	db *sql.DB
}

// Open creates or opens a checkpoint database at path. ":memory:" works for
// tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, apperrors.NewCheckpointFailedError("open", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS seat_assignments (
		applicant_id TEXT NOT NULL,
		program_id   TEXT NOT NULL,
		exam_id      TEXT NOT NULL,
		room_label   TEXT NOT NULL,
		seat_number  INTEGER NOT NULL,
		building     TEXT NOT NULL DEFAULT '',
		floor        TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (applicant_id, program_id)
	);

	CREATE INDEX IF NOT EXISTS idx_program ON seat_assignments(program_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return apperrors.NewCheckpointFailedError("init schema", err)
	}
	return nil
}

// Load returns every checkpointed assignment, ordered by program then room
// then seat so callers see a stable sequence.
func (s *Store) Load(ctx context.Context) ([]models.CheckpointEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT applicant_id, program_id, exam_id, room_label, seat_number, building, floor
		FROM seat_assignments
		ORDER BY program_id, room_label, seat_number`)
	if err != nil {
		return nil, apperrors.NewCheckpointFailedError("load", err)
	}
	defer rows.Close()

	var entries []models.CheckpointEntry
	for rows.Next() {
		var e models.CheckpointEntry
		if err := rows.Scan(&e.ApplicantID, &e.ProgramID, &e.ExamID, &e.RoomLabel, &e.SeatNumber, &e.Building, &e.Floor); err != nil {
			return nil, apperrors.NewCheckpointFailedError("scan", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewCheckpointFailedError("load", err)
	}
	return entries, nil
}

// Save upserts every seat of a report inside one transaction.
func (s *Store) Save(ctx context.Context, rep *report.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewCheckpointFailedError("begin", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO seat_assignments (applicant_id, program_id, exam_id, room_label, seat_number, building, floor)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(applicant_id, program_id) DO UPDATE SET
			exam_id = excluded.exam_id,
			room_label = excluded.room_label,
			seat_number = excluded.seat_number,
			building = excluded.building,
			floor = excluded.floor`)
	if err != nil {
		return apperrors.NewCheckpointFailedError("prepare", err)
	}
	defer stmt.Close()

	for _, seat := range rep.Seats() {
		if _, err := stmt.ExecContext(ctx,
			seat.ApplicantID, seat.ProgramID, seat.ExamID,
			seat.RoomLabel, seat.SeatNumber, seat.Building, seat.Floor); err != nil {
			return apperrors.NewCheckpointFailedError(
				fmt.Sprintf("upsert %s/%s", seat.ProgramID, seat.ApplicantID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewCheckpointFailedError("commit", err)
	}
	return nil
}
