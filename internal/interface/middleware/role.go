package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/pkg/response"
)

// RequireRole must run after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := entity.Role(c.GetString(CtxUserRole))
		for _, r := range roles {
			if current == r {
				c.Next()
				return
			}
		}
		response.Error[any](c, http.StatusForbidden, "admin access required", nil)
		c.Abort()
	}
}
