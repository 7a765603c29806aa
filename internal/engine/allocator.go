// internal/engine/allocator.go

// Package engine assigns exam rooms and seat numbers. Allocate is a pure
// function of its inputs: no I/O, no logging, and identical inputs always
// produce an identical report.
package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "exam-seating/internal/common/errors"
	"exam-seating/internal/models"
	"exam-seating/internal/report"
	"exam-seating/internal/roomplan"
)

// Config carries everything Allocate needs beyond the roster itself.
type Config struct {
	SeatsPerRoom int
	SortKey      string
	SortLocale   string
	// Scheme labels rooms and carries per-room capacities. Nil falls back to
	// the sequential scheme with SeatsPerRoom.
	Scheme roomplan.Scheme
	// ExamIDPrefixes maps programID to its exam-ID prefix. Programs without a
	// prefix are seated but issued no exam ID.
	ExamIDPrefixes map[string]string
	ExamIDWidth    int
	// SortPrograms switches program iteration from first-seen to lexicographic.
	SortPrograms bool
	// Prior holds assignments issued by earlier runs. Applicants found here
	// keep their room, seat and exam ID; new applicants fill the remaining
	// capacity and continue the exam-ID numbering.
	Prior []models.CheckpointEntry
}

// Allocate partitions Active applicants by program, orders each partition,
// packs applicants into rooms and assigns 1-based seat numbers. It either
// returns a complete report or an input-validation error and no report.
func Allocate(records []models.ApplicantRecord, cfg Config) (*report.Report, error) {
	if cfg.SeatsPerRoom < 1 {
		return nil, apperrors.NewInvalidCapacityError(cfg.SeatsPerRoom)
	}
	scheme := cfg.Scheme
	if scheme == nil {
		scheme = roomplan.NewSequentialScheme(cfg.SeatsPerRoom)
	}

	// Filter and partition, preserving first-seen program order.
	var programOrder []string
	partitions := make(map[string][]models.ApplicantRecord)
	for _, r := range records {
		if !r.Status.Eligible() {
			continue
		}
		if _, seen := partitions[r.ProgramID]; !seen {
			programOrder = append(programOrder, r.ProgramID)
		}
		partitions[r.ProgramID] = append(partitions[r.ProgramID], r)
	}
	if cfg.SortPrograms {
		sort.Strings(programOrder)
	}

	// Validate every program up front so a failure never yields a partial report.
	for _, programID := range programOrder {
		if err := scheme.ValidateProgram(programID); err != nil {
			return nil, err
		}
	}

	prior := indexPrior(cfg.Prior)

	builder := report.NewBuilder()
	for _, programID := range programOrder {
		if err := allocateProgram(builder, programID, partitions[programID], scheme, cfg, prior); err != nil {
			return nil, err
		}
	}
	return builder.Build(), nil
}

// priorIndex provides fast access to checkpointed assignments.
type priorIndex struct {
	byKey map[string]models.CheckpointEntry // applicantID|programID
}

func priorKey(applicantID, programID string) string {
	return applicantID + "|" + programID
}

func indexPrior(entries []models.CheckpointEntry) priorIndex {
	idx := priorIndex{byKey: make(map[string]models.CheckpointEntry, len(entries))}
	for _, e := range entries {
		idx.byKey[priorKey(e.ApplicantID, e.ProgramID)] = e
	}
	return idx
}

func allocateProgram(
	builder *report.Builder,
	programID string,
	records []models.ApplicantRecord,
	scheme roomplan.Scheme,
	cfg Config,
	prior priorIndex,
) error {
	if err := orderRecords(records, cfg.SortKey, cfg.SortLocale); err != nil {
		return err
	}

	prefix := cfg.ExamIDPrefixes[programID]
	width := cfg.ExamIDWidth
	if width <= 0 {
		width = 3
	}

	// Split applicants into those keeping a checkpointed seat and fresh ones,
	// in assignment order. Track the highest checkpointed exam number and the
	// highest occupied seat per room.
	var kept []models.SeatAssignment
	var fresh []models.ApplicantRecord
	maxExamNo := 0
	occupied := make(map[string]int)
	for _, r := range records {
		entry, ok := prior.byKey[priorKey(r.ID, programID)]
		if !ok {
			fresh = append(fresh, r)
			continue
		}
		kept = append(kept, models.SeatAssignment{
			ProgramID:   programID,
			RoomLabel:   entry.RoomLabel,
			SeatNumber:  entry.SeatNumber,
			ExamID:      entry.ExamID,
			ApplicantID: r.ID,
			FullName:    r.FullName,
			School:      r.School,
			Building:    entry.Building,
			Floor:       entry.Floor,
		})
		if entry.SeatNumber > occupied[entry.RoomLabel] {
			occupied[entry.RoomLabel] = entry.SeatNumber
		}
		if n, ok := parseExamNo(entry.ExamID, prefix); ok && n > maxExamNo {
			maxExamNo = n
		}
	}

	if capacity, bounded := scheme.TotalCapacity(programID); bounded {
		// Count free seats room by room so checkpointed seats in retired
		// labels do not eat into the plan's capacity.
		remaining := 0
		for index := 0; ; index++ {
			spec, ok := scheme.RoomAt(programID, index)
			if !ok {
				break
			}
			if free := spec.Capacity - occupied[spec.Name]; free > 0 {
				remaining += free
			}
		}
		if len(fresh) > remaining {
			return apperrors.NewPlanCapacityExceededError(programID, len(fresh)+len(kept), capacity)
		}
	}

	// Pack fresh applicants: a room fills to capacity before the next opens.
	next := 0
	for index := 0; next < len(fresh); index++ {
		spec, ok := scheme.RoomAt(programID, index)
		if !ok {
			// Backstop; the free-seat pre-check above already accounts for
			// every room a bounded scheme serves.
			return apperrors.NewPlanCapacityExceededError(programID, len(fresh)+len(kept), index)
		}
		seat := occupied[spec.Name]
		for seat < spec.Capacity && next < len(fresh) {
			seat++
			r := fresh[next]
			next++
			assignment := models.SeatAssignment{
				ProgramID:   programID,
				RoomLabel:   spec.Name,
				SeatNumber:  seat,
				ApplicantID: r.ID,
				FullName:    r.FullName,
				School:      r.School,
				Building:    spec.Building,
				Floor:       spec.Floor,
			}
			if prefix != "" {
				maxExamNo++
				assignment.ExamID = formatExamID(prefix, maxExamNo, width)
			}
			kept = append(kept, assignment)
		}
	}

	emitProgram(builder, programID, scheme, kept)
	return nil
}

// emitProgram writes a program's rooms in scheme index order, seats in
// seat-number order. Checkpointed seats in rooms the scheme no longer knows
// are appended after the scheme's rooms, in label order.
func emitProgram(builder *report.Builder, programID string, scheme roomplan.Scheme, seats []models.SeatAssignment) {
	byRoom := make(map[string][]models.SeatAssignment)
	for _, s := range seats {
		byRoom[s.RoomLabel] = append(byRoom[s.RoomLabel], s)
	}

	builder.StartProgram(programID)

	// Unbounded schemes never run out of rooms, so bound the scan; labels the
	// scan misses are emitted as leftovers below.
	scanLimit := len(seats) + len(byRoom) + 1
	emitted := make(map[string]struct{}, len(byRoom))
	for index := 0; len(emitted) < len(byRoom) && index < scanLimit; index++ {
		spec, ok := scheme.RoomAt(programID, index)
		if !ok {
			break
		}
		roomSeats, found := byRoom[spec.Name]
		if !found {
			continue
		}
		emitRoom(builder, spec.Name, spec.Building, spec.Floor, spec.Capacity, roomSeats)
		emitted[spec.Name] = struct{}{}
	}

	var leftovers []string
	for label := range byRoom {
		if _, done := emitted[label]; !done {
			leftovers = append(leftovers, label)
		}
	}
	sort.Strings(leftovers)
	for _, label := range leftovers {
		roomSeats := byRoom[label]
		emitRoom(builder, label, roomSeats[0].Building, roomSeats[0].Floor, len(roomSeats), roomSeats)
	}
}

func emitRoom(builder *report.Builder, label, building, floor string, capacity int, seats []models.SeatAssignment) {
	sort.Slice(seats, func(i, j int) bool {
		return seats[i].SeatNumber < seats[j].SeatNumber
	})
	builder.StartRoom(label, building, floor, capacity)
	for _, s := range seats {
		builder.AddSeat(s)
	}
}

func formatExamID(prefix string, n, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}

func parseExamNo(examID, prefix string) (int, bool) {
	if prefix == "" || !strings.HasPrefix(examID, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(examID[len(prefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}
