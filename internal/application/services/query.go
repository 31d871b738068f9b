package services

import (
	"context"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/domain"
)

// QueryService is the read side: orders and their stored labels.
type QueryService struct {
	orderRepo application.OrderRepository
}

func NewQueryService(orderRepo application.OrderRepository) *QueryService {
	return &QueryService{orderRepo: orderRepo}
}

func (s *QueryService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *QueryService) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.orderRepo.List(ctx, limit, offset)
}

// OrderLabelPath returns the stored label path for a shipped order.
func (s *QueryService) OrderLabelPath(ctx context.Context, id int64) (string, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if order.Status != domain.OrderShipped || order.LabelPath == "" {
		return "", domain.NewInvalidStateError(string(order.Status), string(domain.OrderShipped))
	}
	return order.LabelPath, nil
}
