package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, is_verified, otp, otp_expires_at,
	shipping_location, shipping_phone, avatar_url, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role, &u.IsVerified, &u.OTP, &u.OTPExpiresAt,
		&u.ShippingLocation, &u.ShippingPhone, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, is_verified, otp, otp_expires_at,
			shipping_location, shipping_phone, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password, string(u.Role), u.IsVerified, u.OTP, u.OTPExpiresAt,
		u.ShippingLocation, u.ShippingPhone, u.AvatarURL)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("email already in use")
		}
		return apperror.Wrap("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isBadUUID(err) {
			return nil, apperror.NewNotFound("user not found")
		}
		return nil, apperror.Wrap("failed to load user", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user not found")
		}
		return nil, apperror.Wrap("failed to load user", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperror.Wrap("failed to list users", err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperror.Wrap("failed to scan user", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap("failed to list users", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, role = $4, is_verified = $5, otp = $6, otp_expires_at = $7,
			shipping_location = $8, shipping_phone = $9, avatar_url = $10, updated_at = $11
		WHERE id = $12
	`, u.Name, u.Email, u.Password, string(u.Role), u.IsVerified, u.OTP, u.OTPExpiresAt,
		u.ShippingLocation, u.ShippingPhone, u.AvatarURL, u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("email already in use")
		}
		if isBadUUID(err) {
			return apperror.NewNotFound("user not found")
		}
		return apperror.Wrap("failed to update user", err)
	}

	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("user not found")
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isBadUUID(err) {
			return apperror.NewNotFound("user not found")
		}
		return apperror.Wrap("failed to delete user", err)
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("user not found")
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
