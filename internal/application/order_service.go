package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

type OrderService struct {
	Orders   repo.OrderRepository
	MaxLimit int
	Logger   *logrus.Logger
}

func NewOrderService(orders repo.OrderRepository, maxLimit int, logger *logrus.Logger) *OrderService {
	return &OrderService{Orders: orders, MaxLimit: maxLimit, Logger: orDiscard(logger)}
}

// AdminOrderQuery holds the raw query string values of the admin listing.
type AdminOrderQuery struct {
	Name  string
	Page  string
	Limit string
}

type OrderPage struct {
	Orders      []entity.Order
	TotalCount  int64
	CurrentPage int
	TotalPages  int
	Limit       int
}

// ListOrders returns the user's orders newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]entity.Order, error) {
	orders, err := s.Orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap("failed to list orders", err)
	}
	return orders, nil
}

// ListForAdmin pages through all orders, optionally filtered by the ordering user's name.
func (s *OrderService) ListForAdmin(ctx context.Context, q AdminOrderQuery) (OrderPage, error) {
	page, limit := helpers.ParsePage(q.Page, q.Limit, s.MaxLimit)
	orders, total, err := s.Orders.ListForAdmin(ctx, repo.OrderFilter{
		Name:   strings.TrimSpace(q.Name),
		Offset: helpers.Offset(page, limit),
		Limit:  limit,
	})
	if err != nil {
		return OrderPage{}, apperror.Wrap("failed to list orders", err)
	}
	return OrderPage{
		Orders:      orders,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  helpers.TotalPages(total, limit),
		Limit:       limit,
	}, nil
}
