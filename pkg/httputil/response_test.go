package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/CatalogGo/pkg/errors"
	"github.com/utafrali/CatalogGo/pkg/validator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp struct {
		Data  any            `json:"data"`
		Meta  any            `json:"meta"`
		Error *ErrorResponse `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return Response{Data: resp.Data, Meta: resp.Meta, Error: resp.Error}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]string{"name": "Widget"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeEnvelope(t, rec)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil)

	WriteError(rec, req, apperrors.NotFound("product", 42), discardLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "product with id 42")
}

func TestWriteError_WrappedAppErrorKeepsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/1", nil)

	err := apperrors.Wrap(apperrors.AlreadyExists("product", "key", "x"), "update product")
	WriteError(rec, req, err, discardLogger())

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
}

func TestWriteError_UnknownErrorIsOpaque500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/seed", nil)

	WriteError(rec, req, errors.New("pq: connection reset"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	// Internal details never leak into the response body.
	assert.NotContains(t, resp.Error.Message, "connection reset")
}

func TestWriteValidationError_FieldDetails(t *testing.T) {
	type seedRequest struct {
		Count int `validate:"gte=1"`
	}

	err := validator.Validate(&seedRequest{Count: 0})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteValidationError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "Count")
}

func TestParseID(t *testing.T) {
	cases := []struct {
		param string
		want  int64
		ok    bool
	}{
		{"42", 42, true},
		{"abc", 0, false},
		{"0", 0, false},
		{"-5", 0, false},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		id, ok := ParseID(rec, tc.param)

		assert.Equal(t, tc.ok, ok, "param %q", tc.param)
		assert.Equal(t, tc.want, id, "param %q", tc.param)
		if !tc.ok {
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		}
	}
}
