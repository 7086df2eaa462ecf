package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	handlers "github.com/oksasatya/go-ecommerce-backend/internal/interface/http"
	"github.com/oksasatya/go-ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

// OrderModule
// Protected: POST /api/orders (checkout), GET /api/orders
// Admin: GET /api/orders/admin?page&limit&name
type OrderModule struct {
	Handler *handlers.OrderHandler
	Redis   *redis.Client
	JWT     *helpers.JWTManager
}

func NewOrderModule(h *handlers.OrderHandler, rdb *redis.Client, jwt *helpers.JWTManager) *OrderModule {
	return &OrderModule{Handler: h, Redis: rdb, JWT: jwt}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.Redis, m.JWT)
	checkoutLimiter := middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByUserID(), nil)
	{
		auth.POST("/orders", checkoutLimiter, m.Handler.Place)
		auth.GET("/orders", m.Handler.List)
		auth.GET("/orders/admin", middleware.RequireRole(entity.RoleAdmin), m.Handler.ListAdmin)
	}
}
