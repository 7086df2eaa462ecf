package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `o.id, o.user_id, o.product_ids, o.total_amount, o.status, o.product_details, o.created_at`

func scanOrder(row pgx.Row, extra ...any) (entity.Order, error) {
	var (
		o       entity.Order
		status  string
		details []byte
	)
	dest := append([]any{&o.ID, &o.UserID, &o.ProductIDs, &o.TotalAmount, &status, &details, &o.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return entity.Order{}, err
	}
	o.Status = entity.OrderStatus(status)
	if len(details) > 0 {
		if err := json.Unmarshal(details, &o.ProductDetails); err != nil {
			return entity.Order{}, err
		}
	}
	if o.ProductIDs == nil {
		o.ProductIDs = []string{}
	}
	if o.ProductDetails == nil {
		o.ProductDetails = []entity.ProductSnapshot{}
	}
	return o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id`, userID)
	if err != nil {
		if isBadUUID(err) {
			return []entity.Order{}, nil
		}
		return nil, apperror.Wrap("failed to list orders", err)
	}
	defer rows.Close()

	orders := make([]entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, apperror.Wrap("failed to scan order", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap("failed to list orders", err)
	}
	return orders, nil
}

// ListForAdmin joins the ordering user so the page can be filtered and labelled by user name.
func (r *OrderRepository) ListForAdmin(ctx context.Context, f repository.OrderFilter) ([]entity.Order, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE ($1 = '' OR u.name ILIKE '%' || $1 || '%')`, f.Name).Scan(&total); err != nil {
		return nil, 0, apperror.Wrap("failed to count orders", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE ($1 = '' OR u.name ILIKE '%' || $1 || '%')
		ORDER BY o.created_at DESC, o.id
		OFFSET $2 LIMIT $3`, f.Name, f.Offset, f.Limit)
	if err != nil {
		return nil, 0, apperror.Wrap("failed to list orders", err)
	}
	defer rows.Close()

	orders := make([]entity.Order, 0, f.Limit)
	for rows.Next() {
		var name, email string
		o, err := scanOrder(rows, &name, &email)
		if err != nil {
			return nil, 0, apperror.Wrap("failed to scan order", err)
		}
		o.UserName, o.UserEmail = name, email
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.Wrap("failed to list orders", err)
	}
	return orders, total, nil
}

func insertOrder(ctx context.Context, db DBTX, o *entity.Order) error {
	details, err := json.Marshal(o.ProductDetails)
	if err != nil {
		return apperror.Wrap("failed to encode order snapshot", err)
	}
	err = db.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, product_ids, total_amount, status, product_details)
		VALUES ($1, $2, $3, $4::numeric, $5, $6::jsonb)
		RETURNING created_at`,
		o.ID, o.UserID, o.ProductIDs, o.TotalAmount.StringFixed(2), string(o.Status), string(details),
	).Scan(&o.CreatedAt)
	if err != nil {
		return apperror.Wrap("failed to create order", err)
	}
	return nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
