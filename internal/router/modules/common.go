package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

// protected returns a group that requires a live session and applies the
// soft per-IP and per-user limits shared by all authenticated routes.
func protected(rg *gin.RouterGroup, rdb *redis.Client, jwt *helpers.JWTManager) *gin.RouterGroup {
	g := rg.Group("/")
	g.Use(middleware.Auth(rdb, jwt))
	g.Use(
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	return g
}
