package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/application"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/go-ecommerce-backend/pkg/response"
	"github.com/oksasatya/go-ecommerce-backend/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateUserRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=120"`
	ShippingLocation *string `json:"shippingLocation" binding:"omitempty,max=255"`
	ShippingPhone    *string `json:"shippingPhone" binding:"omitempty,phone"`
}

// List GET /api/users (admin)
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", map[string]any{"totalCount": len(users)})
}

// Delete DELETE /api/users/:userId (admin)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("userId")}, "user deleted", nil)
}

// Update PATCH /api/users/:userId (self or admin)
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	actor := application.Actor{UserID: middleware.UserID(c), Role: entity.Role(c.GetString(middleware.CtxUserRole))}
	u, err := h.Svc.Update(c.Request.Context(), actor, c.Param("userId"), application.UpdateUserInput{
		Name:             req.Name,
		ShippingLocation: req.ShippingLocation,
		ShippingPhone:    req.ShippingPhone,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}
