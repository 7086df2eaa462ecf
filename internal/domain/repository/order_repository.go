package repository

import (
	"context"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
)

type OrderFilter struct {
	// Name is a case-insensitive substring matched against the ordering user's name.
	Name   string
	Offset int
	Limit  int
}

// OrderRepository is the read side of the order ledger.
type OrderRepository interface {
	// ListByUser returns orders newest first.
	ListByUser(ctx context.Context, userID string) ([]entity.Order, error)
	// ListForAdmin returns one page of orders newest first plus the total match count.
	ListForAdmin(ctx context.Context, filter OrderFilter) ([]entity.Order, int64, error)
}
