package repository

import (
	"context"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
)

// CheckoutUnit exposes the cart and order ledgers inside one transaction.
type CheckoutUnit interface {
	CartLines(ctx context.Context, userID string) ([]entity.CartLine, error)
	CreateOrder(ctx context.Context, o *entity.Order) error
	ClearCart(ctx context.Context, userID string) error
}

// CheckoutTransactor runs fn with checkouts for userID serialized: a second
// call for the same user does not observe the cart until the first commits
// or rolls back. The unit commits only if fn returns nil.
type CheckoutTransactor interface {
	WithinCheckout(ctx context.Context, userID string, fn func(ctx context.Context, unit CheckoutUnit) error) error
}
