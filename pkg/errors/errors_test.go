package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	err := NotFound("product", 42)

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Contains(t, err.Message, "product with id 42")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestAlreadyExists(t *testing.T) {
	err := AlreadyExists("product", "key", "wid-10001")

	assert.Equal(t, "ALREADY_EXISTS", err.Code)
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Contains(t, err.Message, `key "wid-10001"`)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("count must be a positive integer")

	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "count must be a positive integer", err.Message)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchUnavailable(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := SearchUnavailable(cause)

	assert.Equal(t, "SEARCH_ENGINE_ERROR", err.Code)
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.ErrorIs(t, err, ErrServiceUnavail)
	assert.ErrorIs(t, err, cause)
}

func TestWrap(t *testing.T) {
	err := Wrap(NotFound("brand", 3), "apply patch")

	assert.Contains(t, err.Error(), "apply patch: ")
	assert.True(t, IsNotFound(err))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("product", 1), http.StatusNotFound},
		{"wrapped app error", Wrap(AlreadyExists("product", "key", "x"), "create"), http.StatusConflict},
		{"sentinel not found", ErrNotFound, http.StatusNotFound},
		{"sentinel invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"sentinel conflict", ErrConflict, http.StatusConflict},
		{"sentinel unavailable", ErrServiceUnavail, http.StatusBadGateway},
		{"unknown error", stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestAppError_ErrorIncludesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Internal(cause)

	require.Contains(t, err.Error(), "INTERNAL_ERROR")
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, cause, stderrors.Unwrap(err))
}
