package product

import (
	"context"
	"net/http"

	"sofadeal/internal/api/response"
	"sofadeal/internal/domain"
	"sofadeal/internal/filterstate"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/pkg/middleware"
)

// CatalogService is what the product handlers need from the catalog layer.
type CatalogService interface {
	ListProducts(ctx context.Context, viewer string, state domain.FilterState) (domain.Listing, error)
	GetProduct(ctx context.Context, viewer, id string, state domain.FilterState) (domain.ProductViewModel, error)
}

// Handler serves the product listing and product detail endpoints.
type Handler struct {
	Service CatalogService
	Logger  logger.Logger
}

// NewHandler creates the product handler.
func NewHandler(svc CatalogService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListProductsHandler handles GET /v1/products.
// @Summary List products
// @Description Resolves the filter query and returns one page of product view models. Search texts of two or more characters are served from the search index on a single page.
// @Tags products
// @Produce json
// @Param categoryId query string false "Category id"
// @Param sortBy query string false "price_low_high, price_high_low, rating or created_at"
// @Param size query string false "Variant size"
// @Param material query string false "Variant material"
// @Param priceRange query string false "all, under-500, 500-1000, 1000-2000 or over-2000"
// @Param currentPage query int false "Page number"
// @Param search query string false "Search text"
// @Param X-Session-ID header string false "Shopper session id"
// @Success 200 {object} domain.Listing
// @Failure 409 {object} domain.ErrorResponse "Superseded by a newer request"
// @Failure 502 {object} domain.ErrorResponse "Catalog service failure"
// @Router /products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	state := filterstate.Parse(r.URL.Query())

	listing, err := h.Service.ListProducts(r.Context(), middleware.ViewerID(r), state)
	if err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}
	response.Write(w, r, h.Logger, listing, nil, http.StatusOK)
}

// GetProductHandler handles GET /v1/products/{id}.
// @Summary Get a product
// @Description Returns the view model of one product. size and material pick the displayed variant.
// @Tags products
// @Produce json
// @Param id path string true "Product id"
// @Param size query string false "Preferred variant size"
// @Param material query string false "Preferred variant material"
// @Success 200 {object} domain.ProductViewModel
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 502 {object} domain.ErrorResponse
// @Router /products/{id} [get]
func (h *Handler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	state := filterstate.Parse(r.URL.Query())

	vm, err := h.Service.GetProduct(r.Context(), middleware.ViewerID(r), r.PathValue("id"), state)
	if err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}
	response.Write(w, r, h.Logger, vm, nil, http.StatusOK)
}
