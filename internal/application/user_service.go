package application

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

type UserService struct {
	Users  repo.UserRepository
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Redis: rdb, Logger: orDiscard(logger)}
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   entity.Role
}

func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

type UpdateUserInput struct {
	Name             *string
	ShippingLocation *string
	ShippingPhone    *string
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, apperror.Wrap("failed to list users", err)
	}
	return users, nil
}

// Delete removes the user and its session. Cart lines go with it.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.Users.Delete(ctx, userID); err != nil {
		return apperror.Wrap("failed to delete user", err)
	}
	if s.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Redis, helpers.KeySession(userID)); err != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("drop session failed")
		}
	}
	return nil
}

// Update changes the profile and shipping fields of userID. Only the user themselves or an admin may do so.
func (s *UserService) Update(ctx context.Context, actor Actor, userID string, in UpdateUserInput) (*entity.User, error) {
	if actor.UserID != userID && !actor.IsAdmin() {
		return nil, apperror.NewForbidden("you can only update your own profile")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap("failed to load user", err)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.NewValidation("name must not be empty")
		}
		u.Name = name
	}
	if in.ShippingLocation != nil {
		u.ShippingLocation = strings.TrimSpace(*in.ShippingLocation)
	}
	if in.ShippingPhone != nil {
		u.ShippingPhone = strings.TrimSpace(*in.ShippingPhone)
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, apperror.Wrap("failed to update user", err)
	}

	key := helpers.KeySession(u.ID)
	if s.Redis != nil && s.Redis.Exists(ctx, key).Val() == 1 {
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"name":       u.Name,
			"updated_at": nowRFC3339(),
		})
		if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, pErr := pipe.Exec(ctx); pErr != nil {
			s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return u, nil
}
