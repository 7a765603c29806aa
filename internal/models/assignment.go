// internal/models/assignment.go
package models

// SeatAssignment binds one applicant to one seat in one room.
// Seat numbers are 1-based and contiguous within a room.
type SeatAssignment struct {
	ProgramID   string `json:"programID"`
	RoomLabel   string `json:"roomLabel"`
	SeatNumber  int    `json:"seatNumber"`
	ExamID      string `json:"examID,omitempty"`
	ApplicantID string `json:"applicantID"`
	FullName    string `json:"fullName"`
	School      string `json:"school"`
	Building    string `json:"building,omitempty"`
	Floor       string `json:"floor,omitempty"`
}

// CheckpointEntry is a previously issued assignment that must survive re-runs.
type CheckpointEntry struct {
	ApplicantID string `json:"applicantID"`
	ProgramID   string `json:"programID"`
	ExamID      string `json:"examID"`
	RoomLabel   string `json:"roomLabel"`
	SeatNumber  int    `json:"seatNumber"`
	Building    string `json:"building,omitempty"`
	Floor       string `json:"floor,omitempty"`
}
