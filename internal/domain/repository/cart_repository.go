package repository

import (
	"context"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
)

// CartRepository is the cart ledger, one row per (user, product).
type CartRepository interface {
	// Upsert inserts the line or merges it into the existing row for the same
	// pair (quantity added, price overwritten) and returns the resulting line.
	Upsert(ctx context.Context, line entity.CartLine) (entity.CartLine, error)
	// Delete removes the line; apperror.NotFoundError when the pair has no line.
	Delete(ctx context.Context, userID, productID string) error
	ListByUser(ctx context.Context, userID string) ([]entity.CartLine, error)
	// Clear is idempotent.
	Clear(ctx context.Context, userID string) error
}
