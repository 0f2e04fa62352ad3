package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sofadeal/internal/api/response"
	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
)

func TestWrite_Success(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)

	response.Write(rec, req, logger.NewLogger("debug"), map[string]int{"n": 1}, nil, http.StatusOK)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}

func TestWrite_ErrorBodies(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		category string
	}{
		{apperror.NewValidationError("bad"), 400, "VALIDATION_ERROR"},
		{apperror.NewStaleError(1, 2), 409, "STALE_RESPONSE"},
		{apperror.NewUpstreamError("down", 503, errors.New("secret detail")), 502, "UPSTREAM_ERROR"},
		{errors.New("plain"), 500, "UNKNOWN_ERROR"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)

		response.Write(rec, req, logger.NewLogger("debug"), nil, tc.err, http.StatusOK)

		var body domain.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, tc.status, body.Code)
		assert.Equal(t, tc.category, body.Category)
		assert.NotContains(t, body.Message, "secret detail")
	}
}

func TestDecode(t *testing.T) {
	var v struct{ Query string }

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, response.Decode(httptest.NewRecorder(), req, &v, true))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.Error(t, response.Decode(httptest.NewRecorder(), req, &v, false))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"query":"a=1"}`))
	require.NoError(t, response.Decode(httptest.NewRecorder(), req, &v, false))
	assert.Equal(t, "a=1", v.Query)
}
