package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	handlers "github.com/oksasatya/go-ecommerce-backend/internal/interface/http"
	"github.com/oksasatya/go-ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

// UserModule
// Admin: GET /api/users, DELETE /api/users/:userId
// Protected: PATCH /api/users/:userId (self or admin)
type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Redis: rdb, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.Redis, m.JWT)
	admin := middleware.RequireRole(entity.RoleAdmin)
	{
		auth.GET("/users", admin, m.Handler.List)
		auth.DELETE("/users/:userId", admin, m.Handler.Delete)
		auth.PATCH("/users/:userId", m.Handler.Update)
	}
}
