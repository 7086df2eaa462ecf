package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

// CheckoutTransactor serializes checkouts per user by locking the user's row
// for the lifetime of the transaction.
type CheckoutTransactor struct {
	pool   TxBeginner
	logger *logrus.Logger
}

func NewCheckoutTransactor(pool TxBeginner, logger *logrus.Logger) *CheckoutTransactor {
	return &CheckoutTransactor{pool: pool, logger: logger}
}

func (t *CheckoutTransactor) WithinCheckout(ctx context.Context, userID string, fn func(ctx context.Context, unit repository.CheckoutUnit) error) (err error) {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return apperror.Wrap("failed to begin checkout", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			t.logger.WithError(rbErr).WithField("user_id", userID).Warn("checkout rollback failed")
		}
	}()

	var locked string
	if err = tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isBadUUID(err) {
			return apperror.NewNotFound("user not found")
		}
		return apperror.Wrap("failed to lock user for checkout", err)
	}

	if err = fn(ctx, &checkoutUnit{tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return apperror.Wrap("failed to commit checkout", err)
	}
	return nil
}

type checkoutUnit struct {
	tx pgx.Tx
}

func (u *checkoutUnit) CartLines(ctx context.Context, userID string) ([]entity.CartLine, error) {
	return listCartLines(ctx, u.tx, userID, true)
}

func (u *checkoutUnit) CreateOrder(ctx context.Context, o *entity.Order) error {
	return insertOrder(ctx, u.tx, o)
}

func (u *checkoutUnit) ClearCart(ctx context.Context, userID string) error {
	return clearCart(ctx, u.tx, userID)
}

var _ repository.CheckoutTransactor = (*CheckoutTransactor)(nil)
