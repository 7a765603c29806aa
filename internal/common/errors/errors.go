// internal/common/errors/errors.go

// Package errors provides standardized error handling for the seating pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Fatal input-validation errors: the run aborts, no partial report.
	ErrCodeInvalidCapacity      ErrorCode = "INVALID_CAPACITY"
	ErrCodeInvalidProgramID     ErrorCode = "INVALID_PROGRAM_ID"
	ErrCodeInvalidSortKey       ErrorCode = "INVALID_SORT_KEY"
	ErrCodePlanCapacityExceeded ErrorCode = "PLAN_CAPACITY_EXCEEDED"
	ErrCodePlanValidationFailed ErrorCode = "PLAN_VALIDATION_FAILED"
	ErrCodeInputFileInvalid     ErrorCode = "INPUT_FILE_INVALID"

	// Collaborator failures around an already-built report.
	ErrCodeExportFailed     ErrorCode = "EXPORT_FAILED"
	ErrCodePublishFailed    ErrorCode = "PUBLISH_FAILED"
	ErrCodeCheckpointFailed ErrorCode = "CHECKPOINT_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error { return e.cause }

// Is matches two StandardErrors by code, so callers can use errors.Is with a
// bare constructor result as the target.
func (e *StandardError) Is(target error) bool {
	var se *StandardError
	if errors.As(target, &se) {
		return e.Code == se.Code
	}
	return false
}

// CodeOf returns the error code carried by err, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsFatal reports whether err should abort the run. Every coded error except the
// retryable collaborator failures is fatal.
func IsFatal(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return !se.Retryable
	}
	return true
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidCapacityError flags a seatsPerRoom below 1.
func NewInvalidCapacityError(seats int) *StandardError {
	return newError(ErrCodeInvalidCapacity, "seats per room must be at least 1",
		fmt.Sprintf("seatsPerRoom: %d", seats), false, nil)
}

// NewInvalidProgramIDError flags a program identifier the naming scheme cannot label.
func NewInvalidProgramIDError(programID, reason string) *StandardError {
	return newError(ErrCodeInvalidProgramID, "program identifier is not usable for room labels",
		fmt.Sprintf("programID: %q, %s", programID, reason), false, nil)
}

// NewInvalidSortKeyError flags an unrecognized sort key in configuration.
func NewInvalidSortKeyError(key string) *StandardError {
	return newError(ErrCodeInvalidSortKey, "unrecognized sort key",
		fmt.Sprintf("sortKey: %q", key), false, nil)
}

// NewPlanCapacityExceededError flags more eligible applicants than a room plan can seat.
func NewPlanCapacityExceededError(programID string, applicants, capacity int) *StandardError {
	return newError(ErrCodePlanCapacityExceeded, "room plan capacity exceeded",
		fmt.Sprintf("programID: %s, applicants: %d, capacity: %d", programID, applicants, capacity), false, nil)
}

// NewPlanValidationFailedError flags a room plan file failing schema validation.
func NewPlanValidationFailedError(details string) *StandardError {
	return newError(ErrCodePlanValidationFailed, "room plan validation failed", details, false, nil)
}

// NewInputFileInvalidError flags an unreadable or malformed input workbook.
func NewInputFileInvalidError(path string, err error) *StandardError {
	return newError(ErrCodeInputFileInvalid, "input file is not usable",
		fmt.Sprintf("path: %s, error: %v", path, err), false, err)
}

// NewExportFailedError wraps a spreadsheet/PDF writer failure.
func NewExportFailedError(target string, err error) *StandardError {
	return newError(ErrCodeExportFailed, "export failed",
		fmt.Sprintf("target: %s, error: %v", target, err), true, err)
}

// NewPublishFailedError wraps a store/lookup publisher failure.
func NewPublishFailedError(target string, err error) *StandardError {
	return newError(ErrCodePublishFailed, "publish failed",
		fmt.Sprintf("target: %s, error: %v", target, err), true, err)
}

// NewCheckpointFailedError wraps a checkpoint load/save failure.
func NewCheckpointFailedError(op string, err error) *StandardError {
	return newError(ErrCodeCheckpointFailed, "checkpoint operation failed",
		fmt.Sprintf("op: %s, error: %v", op, err), true, err)
}
