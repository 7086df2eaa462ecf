package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product lives in the catalog (document) store. Its identifier space is the
// store's native ObjectID hex and is independent from the relational stores.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	Stock           int             `json:"stock"`
	Images          []ProductImage  `json:"images"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type ProductImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// ValidProductID reports whether id is syntactically a catalog identifier.
func ValidProductID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Snapshot copies the fields an order keeps as its point-in-time receipt.
func (p Product) Snapshot() ProductSnapshot {
	images := make([]ProductImage, len(p.Images))
	copy(images, p.Images)
	return ProductSnapshot{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Images: images,
	}
}
