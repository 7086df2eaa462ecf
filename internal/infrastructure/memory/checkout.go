package memory

import (
	"context"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

// CheckoutTransactor serializes checkouts per user with a mutex and buffers
// writes until fn succeeds, so a failed checkout leaves no trace.
type CheckoutTransactor struct {
	s *Store
}

func (t *CheckoutTransactor) WithinCheckout(ctx context.Context, userID string, fn func(ctx context.Context, unit repository.CheckoutUnit) error) error {
	lock := t.s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	t.s.mu.RLock()
	_, ok := t.s.users[userID]
	t.s.mu.RUnlock()
	if !ok {
		return apperror.NewNotFound("user not found")
	}

	unit := &checkoutUnit{s: t.s}
	if err := fn(ctx, unit); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return apperror.Wrap("checkout cancelled", err)
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, o := range unit.orders {
		t.s.orders = append(t.s.orders, o)
	}
	for _, uid := range unit.cleared {
		t.s.clearCart(uid)
	}
	return nil
}

type checkoutUnit struct {
	s       *Store
	orders  []entity.Order
	cleared []string
}

func (u *checkoutUnit) CartLines(_ context.Context, userID string) ([]entity.CartLine, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	return u.s.cartLines(userID), nil
}

func (u *checkoutUnit) CreateOrder(_ context.Context, o *entity.Order) error {
	o.CreatedAt = u.s.now()
	u.orders = append(u.orders, cloneOrder(*o))
	return nil
}

func (u *checkoutUnit) ClearCart(_ context.Context, userID string) error {
	u.cleared = append(u.cleared, userID)
	return nil
}

var _ repository.CheckoutTransactor = (*CheckoutTransactor)(nil)
