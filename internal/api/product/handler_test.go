package product_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sofadeal/internal/api/product"
	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/pkg/middleware"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProducts(ctx context.Context, viewer string, state domain.FilterState) (domain.Listing, error) {
	args := m.Called(ctx, viewer, state)
	return args.Get(0).(domain.Listing), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, viewer, id string, state domain.FilterState) (domain.ProductViewModel, error) {
	args := m.Called(ctx, viewer, id, state)
	return args.Get(0).(domain.ProductViewModel), args.Error(1)
}

func newMux(svc *MockCatalogService) *http.ServeMux {
	h := product.NewHandler(svc, logger.NewLogger("error"))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/products", h.ListProductsHandler)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProductHandler)
	return mux
}

func TestListProductsHandler_ParsesQueryAndViewer(t *testing.T) {
	svc := new(MockCatalogService)
	want := domain.FilterState{
		CategoryID:  "c1",
		SortBy:      domain.SortPriceLowHigh,
		PriceRange:  domain.PriceAll,
		CurrentPage: 2,
	}
	listing := domain.Listing{
		Items:      []domain.ProductViewModel{{ID: "p1", Name: "Chesterfield"}},
		Page:       2,
		TotalPages: 5,
		Mode:       domain.ModeCatalog,
		Filters:    want,
	}
	svc.On("ListProducts", mock.Anything, "session:abc", want).Return(listing, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/products?categoryId=c1&sortBy=price_low_high&currentPage=2&priceRange=nope", nil)
	req.Header.Set(middleware.SessionHeader, "abc")
	rec := httptest.NewRecorder()
	newMux(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Listing
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "p1", got.Items[0].ID)
	assert.Equal(t, 5, got.TotalPages)
	svc.AssertExpectations(t)
}

func TestListProductsHandler_MapsErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"stale", apperror.NewStaleError(1, 2), http.StatusConflict},
		{"upstream", apperror.NewUpstreamError("catalog down", 500, nil), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockCatalogService)
			svc.On("ListProducts", mock.Anything, mock.Anything, mock.Anything).Return(domain.Listing{}, tc.err)

			rec := httptest.NewRecorder()
			newMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products", nil))

			assert.Equal(t, tc.want, rec.Code)
			var body domain.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.want, body.Code)
		})
	}
}

func TestGetProductHandler(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("GetProduct", mock.Anything, "ip:192.0.2.1", "p9", mock.MatchedBy(func(s domain.FilterState) bool {
		return s.Size == "L"
	})).Return(domain.ProductViewModel{ID: "p9", Name: "Corner Sofa"}, nil)
	svc.On("GetProduct", mock.Anything, mock.Anything, "missing", mock.Anything).
		Return(domain.ProductViewModel{}, apperror.NewNotFoundError("product missing not found"))

	mux := newMux(svc)

	req := httptest.NewRequest(http.MethodGet, "/v1/products/p9?size=L", nil)
	req.RemoteAddr = "192.0.2.1:4000"
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var vm domain.ProductViewModel
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&vm))
	assert.Equal(t, "Corner Sofa", vm.Name)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
