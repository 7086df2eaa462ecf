package router

import "github.com/gin-gonic/gin"

// Module is a feature area (auth, cart, orders, ...) that mounts its own routes.
type Module interface {
	Register(rg *gin.RouterGroup)
}
