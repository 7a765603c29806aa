// internal/roomplan/scheme.go
package roomplan

import (
	"fmt"
	"regexp"

	apperrors "exam-seating/internal/common/errors"
)

// Scheme yields room labels and capacities for a program, by room index.
// Labels are deterministic and injective within a program.
type Scheme interface {
	// ValidateProgram rejects program identifiers the scheme cannot label.
	ValidateProgram(programID string) error
	// RoomAt returns the room spec for a 0-based room index. ok is false when
	// the scheme has no further rooms for the program.
	RoomAt(programID string, index int) (spec RoomSpec, ok bool)
	// TotalCapacity returns the bounded seat capacity for a program, or
	// bounded=false when rooms are unlimited.
	TotalCapacity(programID string) (capacity int, bounded bool)
}

var programIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// sequentialScheme labels rooms "<programID>-R<n>" with a uniform capacity.
type sequentialScheme struct {
	seatsPerRoom int
}

// NewSequentialScheme returns the fallback scheme with a uniform room capacity.
func NewSequentialScheme(seatsPerRoom int) Scheme {
	return &sequentialScheme{seatsPerRoom: seatsPerRoom}
}

func (s *sequentialScheme) ValidateProgram(programID string) error {
	if programID == "" {
		return apperrors.NewInvalidProgramIDError(programID, "empty identifier")
	}
	if !programIDPattern.MatchString(programID) {
		return apperrors.NewInvalidProgramIDError(programID, "only letters, digits, '.', '_' and '-' are allowed")
	}
	return nil
}

func (s *sequentialScheme) RoomAt(programID string, index int) (RoomSpec, bool) {
	return RoomSpec{
		Name:     fmt.Sprintf("%s-R%d", programID, index+1),
		Capacity: s.seatsPerRoom,
	}, true
}

func (s *sequentialScheme) TotalCapacity(string) (int, bool) {
	return 0, false
}

// planScheme serves named rooms for programs in the plan and falls back to the
// sequential scheme for everything else.
type planScheme struct {
	plan     *Plan
	fallback Scheme
}

// NewScheme combines a room plan with the sequential fallback. A nil plan
// behaves exactly like NewSequentialScheme.
func NewScheme(plan *Plan, seatsPerRoom int) Scheme {
	fallback := NewSequentialScheme(seatsPerRoom)
	if plan == nil {
		return fallback
	}
	return &planScheme{plan: plan, fallback: fallback}
}

func (s *planScheme) ValidateProgram(programID string) error {
	if _, ok := s.plan.Programs[programID]; ok {
		// Named rooms carry their own labels; any non-empty identifier works.
		if programID == "" {
			return apperrors.NewInvalidProgramIDError(programID, "empty identifier")
		}
		return nil
	}
	return s.fallback.ValidateProgram(programID)
}

func (s *planScheme) RoomAt(programID string, index int) (RoomSpec, bool) {
	pp, ok := s.plan.Programs[programID]
	if !ok {
		return s.fallback.RoomAt(programID, index)
	}
	if index < 0 || index >= len(pp.Rooms) {
		return RoomSpec{}, false
	}
	return pp.Rooms[index], true
}

func (s *planScheme) TotalCapacity(programID string) (int, bool) {
	pp, ok := s.plan.Programs[programID]
	if !ok {
		return s.fallback.TotalCapacity(programID)
	}
	return pp.TotalCapacity(), true
}
