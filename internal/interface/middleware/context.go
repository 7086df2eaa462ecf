package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

// Keys set on the gin context by Auth and RequestIDMiddleware.
const (
	CtxUserID    = "userID"
	CtxUserName  = "userName"
	CtxUserEmail = "userEmail"
	CtxUserRole  = "userRole"
	CtxRequestID = "request_id"
	CtxRealIP    = "real_ip"
)

// AccessToken returns the bearer token from the Authorization header, falling
// back to the access_token cookie.
func AccessToken(c *gin.Context) string {
	if h := strings.TrimSpace(c.GetHeader("Authorization")); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if token, err := c.Cookie(helpers.AccessCookie); err == nil {
		return token
	}
	return ""
}

func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
