package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"self reference", NewSelfReferenceError("follow"), CodeSelfReference},
		{"duplicate edge", NewDuplicateEdgeError("follow"), CodeDuplicateEdge},
		{"not found", NewNotFoundError("User", "abc"), CodeNotFound},
		{"storage unavailable", NewStorageUnavailableError(errors.New("conn refused")), CodeStorageUnavailable},
		{"cascade failure", NewCascadeFailureError(errors.New("tx aborted")), CodeCascadeFailure},
		{"validation", NewValidationError("bad input"), CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ErrorCode(tt.err))
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStorageUnavailableError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAppError_PredicatesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("liking post: %w", NewDuplicateEdgeError("like"))

	assert.True(t, IsDuplicateEdge(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsDuplicateEdge(errors.New("plain")))
}

func TestReportStatus_Terminal(t *testing.T) {
	assert.False(t, ReportStatusOpen.Terminal())
	assert.True(t, ReportStatusResolved.Terminal())
	assert.True(t, ReportStatusDismissed.Terminal())
}
