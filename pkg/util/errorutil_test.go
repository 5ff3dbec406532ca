package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"not found", NewNotFound("project", nil), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", NewUnauthorized("no session"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbidden("not yours"), "FORBIDDEN", http.StatusForbidden},
		{"conflict", NewConflict("duplicate", nil), "CONFLICT", http.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var domainErr *DomainError
			require.ErrorAs(t, tc.err, &domainErr)
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
		})
	}
}

func TestNotFoundMessageNamesResource(t *testing.T) {
	var domainErr *DomainError
	require.ErrorAs(t, NewNotFound("quotation", nil), &domainErr)
	assert.Equal(t, "quotation not found", domainErr.Message)
}

func TestInternalErrorHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused to db at 10.0.0.7")
	var domainErr *DomainError
	require.ErrorAs(t, NewInternalError(cause), &domainErr)

	// The client-facing message never carries the underlying cause.
	assert.Equal(t, "internal server error", domainErr.Message)
	assert.ErrorIs(t, domainErr, cause)
}

func TestToDomainError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("row miss maps to not found", func(t *testing.T) {
		domainErr := ToDomainError(pgx.ErrNoRows)
		require.NotNil(t, domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("existing domain error is preserved", func(t *testing.T) {
		original := NewForbidden("not yours")
		domainErr := ToDomainError(original)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		domainErr := ToDomainError(errors.New("surprise"))
		assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
		assert.Equal(t, "internal server error", domainErr.Message)
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(pgx.ErrNoRows))
	assert.True(t, IsNotFound(NewNotFound("board", nil)))
	assert.False(t, IsNotFound(NewForbidden("no")))
	assert.False(t, IsNotFound(errors.New("other")))
}
