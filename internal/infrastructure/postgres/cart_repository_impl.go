package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

type CartRepository struct {
	pool DBTX
}

func NewCartRepository(pool DBTX) *CartRepository {
	return &CartRepository{pool: pool}
}

const cartColumns = `user_id, product_id, quantity, discounted_price, created_at, updated_at`

func scanCartLine(row pgx.Row) (entity.CartLine, error) {
	var l entity.CartLine
	err := row.Scan(&l.UserID, &l.ProductID, &l.Quantity, &l.DiscountedPrice, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// Upsert relies on the (user_id, product_id) primary key: a second add merges
// into the existing row in a single statement.
func (r *CartRepository) Upsert(ctx context.Context, line entity.CartLine) (entity.CartLine, error) {
	out, err := scanCartLine(r.pool.QueryRow(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity, discounted_price)
		VALUES ($1, $2, $3, $4::numeric)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity,
			discounted_price = EXCLUDED.discounted_price,
			updated_at = now()
		RETURNING `+cartColumns,
		line.UserID, line.ProductID, line.Quantity, line.DiscountedPrice.StringFixed(2)))
	if err != nil {
		if isForeignKeyViolation(err) || isBadUUID(err) {
			return entity.CartLine{}, apperror.NewNotFound("user not found")
		}
		if isOutOfRange(err) {
			return entity.CartLine{}, apperror.NewValidation("quantity too large")
		}
		return entity.CartLine{}, apperror.Wrap("failed to update cart", err)
	}
	return out, nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, productID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil && !isBadUUID(err) {
		return apperror.Wrap("failed to remove cart line", err)
	}
	if err != nil || res.RowsAffected() == 0 {
		return apperror.NewNotFound("product not found in cart")
	}
	return nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]entity.CartLine, error) {
	return listCartLines(ctx, r.pool, userID, false)
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	return clearCart(ctx, r.pool, userID)
}

func listCartLines(ctx context.Context, db DBTX, userID string, forUpdate bool) ([]entity.CartLine, error) {
	q := `SELECT ` + cartColumns + ` FROM cart_items WHERE user_id = $1 ORDER BY created_at, product_id`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	rows, err := db.Query(ctx, q, userID)
	if err != nil {
		if isBadUUID(err) {
			return []entity.CartLine{}, nil
		}
		return nil, apperror.Wrap("failed to list cart lines", err)
	}
	defer rows.Close()

	lines := make([]entity.CartLine, 0)
	for rows.Next() {
		l, err := scanCartLine(rows)
		if err != nil {
			return nil, apperror.Wrap("failed to scan cart line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		if isBadUUID(err) {
			return []entity.CartLine{}, nil
		}
		return nil, apperror.Wrap("failed to list cart lines", err)
	}
	return lines, nil
}

func clearCart(ctx context.Context, db DBTX, userID string) error {
	if _, err := db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil && !isBadUUID(err) {
		return apperror.Wrap("failed to clear cart", err)
	}
	return nil
}

var _ repository.CartRepository = (*CartRepository)(nil)
