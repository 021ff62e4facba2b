package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{RateLimit("too many attempts"), http.StatusBadRequest},
		{Unauthorized("bad credentials"), http.StatusUnauthorized},
		{Forbidden("wrong role"), http.StatusForbidden},
		{NotFound("no such row"), http.StatusNotFound},
		{Conflict("duplicate email"), http.StatusConflict},
		{Internal(fmt.Errorf("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("missing")
	wrapped := fmt.Errorf("outer: %w", appErr)

	got, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, appErr, got)

	_, ok = AsAppError(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestInternalUnwrap(t *testing.T) {
	cause := fmt.Errorf("db down")
	err := Internal(cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "db down")
}
