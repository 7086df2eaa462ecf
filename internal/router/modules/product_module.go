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

// ProductModule
// Public: GET /api/products, /api/products/search, /api/products/:id
// Admin: POST /api/products, PATCH|DELETE /api/products/:id
type ProductModule struct {
	Handler *handlers.ProductHandler
	Redis   *redis.Client
	JWT     *helpers.JWTManager
}

func NewProductModule(h *handlers.ProductHandler, rdb *redis.Client, jwt *helpers.JWTManager) *ProductModule {
	return &ProductModule{Handler: h, Redis: rdb, JWT: jwt}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	browse := middleware.RateLimit(m.Redis, 240, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/products", browse, m.Handler.List)
	rg.GET("/products/search", browse, m.Handler.Search)
	rg.GET("/products/:id", browse, m.Handler.Get)

	admin := protected(rg, m.Redis, m.JWT)
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		admin.POST("/products", m.Handler.Create)
		admin.PATCH("/products/:id", m.Handler.Update)
		admin.DELETE("/products/:id", m.Handler.Delete)
	}
}
