// internal/models/applicant.go
package models

import "strings"

// Status classifies an applicant's eligibility for seat assignment.
type Status string

const (
	StatusActive     Status = "active"
	StatusWithdrawn  Status = "withdrawn"
	StatusIneligible Status = "ineligible"
	StatusUnknown    Status = "unknown"
)

// Eligible reports whether the applicant participates in allocation.
func (s Status) Eligible() bool {
	return s == StatusActive
}

// ApplicantRecord is the normalized representation of one applicant.
// ID is unique across a normalized roster; the normalizer enforces that.
type ApplicantRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	School    string `json:"school"`
	ProgramID string `json:"programID"`
	Status    Status `json:"status"`
}

// RawRow is one tabular input row keyed by column name, as handed over by the
// ingestion layer. Missing optional columns are empty strings.
type RawRow map[string]string

// Get returns the trimmed cell value for a column.
func (r RawRow) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Column identifiers of the input contract.
const (
	ColThaiID    = "applicant.thaiID"
	ColTitle     = "applicant.title"
	ColFirstName = "applicant.firstName"
	ColLastName  = "applicant.lastName"
	ColSchool    = "education.currentSchool"
	ColProgramID = "programID"
	ColStatus    = "status"
)

// RequiredColumns are the columns ingestion must find in the sheet header.
var RequiredColumns = []string{
	ColThaiID, ColTitle, ColFirstName, ColLastName, ColSchool, ColProgramID, ColStatus,
}
