package failure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", BadRequestFromString("missing room_id"), http.StatusBadRequest},
		{"wrapped bad request", BadRequest(errors.New("invalid date")), http.StatusBadRequest},
		{"not found", NotFound("room not found"), http.StatusNotFound},
		{"unauthorized", Unauthorized("no token"), http.StatusUnauthorized},
		{"forbidden", Forbidden("staff only"), http.StatusForbidden},
		{"internal", InternalError(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("postgrest: timeout"), http.StatusInternalServerError},
		{"wrapped failure", fmt.Errorf("create reservation: %w", NotFound("venue not found")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, BadRequest(nil))
	assert.NoError(t, InternalError(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("guest not found")))
	assert.False(t, IsNotFound(BadRequestFromString("bad")))
}
