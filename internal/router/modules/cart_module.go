package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-ecommerce-backend/internal/interface/http"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

// CartModule serves the caller's own cart. All routes are protected.
type CartModule struct {
	Handler *handlers.CartHandler
	Redis   *redis.Client
	JWT     *helpers.JWTManager
}

func NewCartModule(h *handlers.CartHandler, rdb *redis.Client, jwt *helpers.JWTManager) *CartModule {
	return &CartModule{Handler: h, Redis: rdb, JWT: jwt}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.Redis, m.JWT)
	{
		auth.GET("/users/cart", m.Handler.List)
		auth.PATCH("/users/cart/add", m.Handler.Add)
		auth.DELETE("/users/cart/remove", m.Handler.Remove)
		auth.DELETE("/users/cart", m.Handler.Clear)
	}
}
