package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "sofadeal/internal/errors"
)

func TestMapToHTTPStatus_TypedErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"validation", apperror.NewValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unauthorized", apperror.NewUnauthorizedError("no token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"not found", apperror.NewNotFoundError("product"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperror.NewConflictError("shipped"), http.StatusConflict, "CONFLICT"},
		{"stale", apperror.NewStaleError(1, 2), http.StatusConflict, "STALE_RESPONSE"},
		{"upstream", apperror.NewUpstreamError("list", 503, nil), http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"internal", apperror.NewInternalError("boom", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, category, _ := apperror.MapToHTTPStatus(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.category, category)
		})
	}
}

func TestMapToHTTPStatus_WrappedChain(t *testing.T) {
	err := fmt.Errorf("loading product: %w", apperror.NewNotFoundError("product 42"))

	status, category, msg := apperror.MapToHTTPStatus(err)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", category)
	assert.Contains(t, msg, "product 42")
}

func TestMapToHTTPStatus_HidesServerDetails(t *testing.T) {
	err := apperror.NewUpstreamError("list products", 500, errors.New("dial tcp 10.0.0.3: refused"))

	_, _, msg := apperror.MapToHTTPStatus(err)

	assert.NotContains(t, msg, "10.0.0.3")
	assert.Equal(t, "error loading data from the catalog service", msg)
}

func TestMapToHTTPStatus_UntypedError(t *testing.T) {
	status, category, _ := apperror.MapToHTTPStatus(errors.New("plain"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "UNKNOWN_ERROR", category)
}

func TestUpstreamError_Unwrap(t *testing.T) {
	root := errors.New("timeout")
	err := apperror.NewUpstreamError("get product", 0, root)

	assert.True(t, errors.Is(err, root))
}
