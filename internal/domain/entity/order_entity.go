package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is an append-only purchase record. ProductDetails is written once at
// checkout and never recomputed from the catalog.
type Order struct {
	ID             string            `json:"id"`
	UserID         string            `json:"userId"`
	ProductIDs     []string          `json:"productIds"`
	TotalAmount    decimal.Decimal   `json:"totalAmount"`
	Status         OrderStatus       `json:"status"`
	ProductDetails []ProductSnapshot `json:"productDetails"`
	CreatedAt      time.Time         `json:"createdAt"`

	// Populated by admin listings only.
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
}

// ProductSnapshot is the denormalized product copy stored on an order.
type ProductSnapshot struct {
	ID     string          `json:"_id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Images []ProductImage  `json:"images"`
}
