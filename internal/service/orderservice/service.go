package orderservice

import (
	"context"
	"fmt"
	"strings"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Order statuses known to the back office.
var statuses = map[string]bool{
	"pending":    true,
	"paid":       true,
	"processing": true,
	"shipped":    true,
	"delivered":  true,
	"cancelled":  true,
}

// OrderRepository is the remote orders API.
type OrderRepository interface {
	ListOrders(ctx context.Context, params domain.ListParams) (domain.OrderPage, error)
	CancelOrder(ctx context.Context, id string) (domain.Order, error)
}

// Service exposes order listing and cancellation to the back office.
// Order processing itself happens in the remote API.
type Service struct {
	repo   OrderRepository
	logger logger.Logger
}

// NewService creates the order service.
func NewService(repo OrderRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns one page of orders, optionally filtered by status.
func (s *Service) List(ctx context.Context, params domain.ListParams) (domain.OrderPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}
	params.Status = strings.ToLower(strings.TrimSpace(params.Status))
	if params.Status != "" && !statuses[params.Status] {
		return domain.OrderPage{}, apperror.NewValidationError(fmt.Sprintf("unknown order status '%s'", params.Status))
	}

	page, err := s.repo.ListOrders(ctx, params)
	if err != nil {
		return domain.OrderPage{}, err
	}
	if page.Items == nil {
		page.Items = []domain.Order{}
	}
	return page, nil
}

// Cancel cancels an order. The remote API decides; a refusal that comes back as
// an order in a non-cancelled state is reported as a conflict.
func (s *Service) Cancel(ctx context.Context, id string) (domain.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, "/") {
		return domain.Order{}, apperror.NewValidationError("order id is required")
	}

	s.logger.Debug("Cancelling order.", map[string]interface{}{"order_id": id})

	order, err := s.repo.CancelOrder(ctx, id)
	if err != nil {
		s.logger.Warn("Order cancellation failed.", map[string]interface{}{"order_id": id, "error": err.Error()})
		return domain.Order{}, err
	}
	if order.Status != "" && order.Status != "cancelled" {
		return domain.Order{}, apperror.NewConflictError(fmt.Sprintf("order %s is %s and was not cancelled", id, order.Status))
	}

	s.logger.Info("Order cancelled.", map[string]interface{}{"order_id": id})
	return order, nil
}
