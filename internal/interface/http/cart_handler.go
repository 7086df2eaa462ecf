package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/application"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/go-ecommerce-backend/pkg/response"
	"github.com/oksasatya/go-ecommerce-backend/pkg/validation"
)

type CartHandler struct {
	Svc    *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(svc *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Svc: svc, Logger: logger}
}

// quantity and discountedPrice may be JSON numbers or numeric strings.
type addToCartRequest struct {
	ProductID       string          `json:"productId" binding:"required,objectid"`
	Quantity        json.RawMessage `json:"quantity" binding:"required"`
	DiscountedPrice json.RawMessage `json:"discountedPrice" binding:"required"`
}

type removeFromCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type cartView struct {
	Items []entity.CartLine `json:"items"`
	Total string            `json:"total"`
}

// List GET /api/users/cart
func (h *CartHandler) List(c *gin.Context) {
	lines, err := h.Svc.ListLines(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cartView{Items: lines, Total: entity.CartTotal(lines).StringFixed(2)}, "cart", nil)
}

// Add PATCH /api/users/cart/add
func (h *CartHandler) Add(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	line, err := h.Svc.AddLine(c.Request.Context(), middleware.UserID(c), application.AddLineInput{
		ProductID:       req.ProductID,
		Quantity:        rawNumber(req.Quantity),
		DiscountedPrice: rawNumber(req.DiscountedPrice),
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, line, "product added to cart", nil)
}

// Remove DELETE /api/users/cart/remove
func (h *CartHandler) Remove(c *gin.Context) {
	var req removeFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	removed, err := h.Svc.RemoveLine(c.Request.Context(), middleware.UserID(c), req.ProductID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"productId": removed}, "product removed from cart", nil)
}

// Clear DELETE /api/users/cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"cleared": true}, "cart cleared", nil)
}
