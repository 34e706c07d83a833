package services

import (
	"context"
	"fmt"

	"electronics-store/models"

	"go.uber.org/zap"
)

type OrderAdminService struct {
	orders OrderStore
	logger *zap.Logger
}

func NewOrderAdminService(orders OrderStore, logger *zap.Logger) *OrderAdminService {
	return &OrderAdminService{orders: orders, logger: logger}
}

func (s *OrderAdminService) ListOrders(ctx context.Context, status string, page, limit int) (*models.PaginationResponse, error) {
	page, limit, offset := normalizePage(page, limit, 10)

	filter := models.OrderStatus(status)
	if status != "" && !filter.Valid() {
		return nil, models.NewValidationError("status", "unknown order status")
	}

	orders, total, err := s.orders.ListAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	return &models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved successfully",
		Data:    orders,
		Meta:    paginationMeta(page, limit, total),
	}, nil
}

func (s *OrderAdminService) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// UpdateStatus applies one step of the order lifecycle. The write only lands if the
// order still has the status the transition was checked against.
func (s *OrderAdminService) UpdateStatus(ctx context.Context, id int, status string) (*models.Order, error) {
	next := models.OrderStatus(status)
	if !next.Valid() {
		return nil, models.NewValidationError("status", "unknown order status")
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, models.NewValidationError("status",
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	ok, err := s.orders.UpdateStatus(ctx, id, order.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewValidationError("status", "order status changed concurrently, reload and retry")
	}

	s.logger.Info("Order status updated",
		zap.Int("order_id", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)))

	order.Status = next
	return order, nil
}
