package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/application"
	"github.com/oksasatya/go-ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/go-ecommerce-backend/pkg/response"
)

type OrderHandler struct {
	Checkout *application.CheckoutService
	Orders   *application.OrderService
	Logger   *logrus.Logger
}

func NewOrderHandler(checkout *application.CheckoutService, orders *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Checkout: checkout, Orders: orders, Logger: logger}
}

// Place POST /api/orders
func (h *OrderHandler) Place(c *gin.Context) {
	order, err := h.Checkout.PlaceOrder(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, order, "order placed", nil)
}

// List GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.Orders.ListOrders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	totalPages := 0
	if len(orders) > 0 {
		totalPages = 1
	}
	response.Page(c, orders, int64(len(orders)), 1, totalPages)
}

// ListAdmin GET /api/orders/admin?page&limit&name
func (h *OrderHandler) ListAdmin(c *gin.Context) {
	page, err := h.Orders.ListForAdmin(c.Request.Context(), application.AdminOrderQuery{
		Name:  c.Query("name"),
		Page:  c.Query("page"),
		Limit: c.Query("limit"),
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Page(c, page.Orders, page.TotalCount, page.CurrentPage, page.TotalPages)
}
