package order

import (
	"context"
	"net/http"

	"sofadeal/internal/api/contact"
	"sofadeal/internal/api/response"
	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/logger"
)

type Service interface {
	List(ctx context.Context, params domain.ListParams) (domain.OrderPage, error)
	Cancel(ctx context.Context, id string) (domain.Order, error)
}

// Handler serves the back-office order endpoints.
type Handler struct {
	Service Service
	Logger  logger.Logger
}

func NewHandler(svc Service, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListHandler handles GET /v1/admin/orders.
// @Summary List orders
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param status query string false "Order status"
// @Success 200 {object} domain.OrderPage
// @Failure 400 {object} domain.ErrorResponse
// @Failure 502 {object} domain.ErrorResponse
// @Router /admin/orders [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), contact.ListParams(r))
	response.Write(w, r, h.Logger, page, err, http.StatusOK)
}

// CancelHandler handles POST /v1/admin/orders/{id}/cancel.
// @Summary Cancel an order
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order id"
// @Success 200 {object} domain.Order
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Order can no longer be cancelled"
// @Router /admin/orders/{id}/cancel [post]
func (h *Handler) CancelHandler(w http.ResponseWriter, r *http.Request) {
	order, err := h.Service.Cancel(r.Context(), r.PathValue("id"))
	response.Write(w, r, h.Logger, order, err, http.StatusOK)
}
