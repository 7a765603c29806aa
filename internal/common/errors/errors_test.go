package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardError_ErrorString(t *testing.T) {
	err := NewInvalidCapacityError(0)
	assert.Contains(t, err.Error(), "INVALID_CAPACITY")
	assert.Contains(t, err.Error(), "seatsPerRoom: 0")
}

func TestStandardError_IsMatchesByCode(t *testing.T) {
	err := NewPlanCapacityExceededError("m1", 80, 60)
	assert.True(t, errors.Is(err, NewPlanCapacityExceededError("", 0, 0)))
	assert.False(t, errors.Is(err, NewInvalidCapacityError(0)))
}

func TestStandardError_UnwrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewExportFailedError("workbook", cause)
	assert.ErrorIs(t, err, cause)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeInvalidSortKey, CodeOf(NewInvalidSortKeyError("byAge")))
	// Wrapped coded errors still report their code.
	wrapped := fmt.Errorf("run failed: %w", NewCheckpointFailedError("load", nil))
	assert.Equal(t, ErrCodeCheckpointFailed, CodeOf(wrapped))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(NewInvalidProgramIDError("m 1", "space")))
	assert.False(t, IsFatal(NewPublishFailedError("redis", nil)))
	assert.False(t, IsFatal(NewExportFailedError("pdf", nil)))
	// Foreign errors default to fatal.
	assert.True(t, IsFatal(errors.New("plain")))
}
