package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Validation, http.StatusBadRequest},
		{Authentication, http.StatusUnauthorized},
		{Authorization, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Conflict, http.StatusBadRequest},
		{Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.kind))
		})
	}
}

func TestKindOf_UnwrapsChains(t *testing.T) {
	base := Forbidden("Not authorized")
	wrapped := fmt.Errorf("add official: %w", base)

	assert.Equal(t, Authorization, KindOf(wrapped))
	assert.True(t, Is(wrapped, Authorization))
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
}

func TestPublic(t *testing.T) {
	status, msg, ok := Public(fmt.Errorf("register: %w", ConflictOf("Email already in use")))
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already in use", msg)

	_, _, ok = Public(errors.New("connection reset"))
	assert.False(t, ok)

	_, _, ok = Public(Wrap(Internal, "store", errors.New("disk full")))
	assert.False(t, ok)
}

func TestError_MessageHidesCauseOnlyInPublic(t *testing.T) {
	err := Wrap(NotFound, "Complaint not found", errors.New("record not found"))
	assert.Equal(t, "Complaint not found: record not found", err.Error())
	assert.ErrorIs(t, err, err.Err)
}
