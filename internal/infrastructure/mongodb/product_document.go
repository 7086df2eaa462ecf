package mongodb

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
)

type productDocument struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	Name            string               `bson:"name"`
	Description     string               `bson:"description"`
	Category        string               `bson:"category"`
	Price           primitive.Decimal128 `bson:"price"`
	DiscountedPrice primitive.Decimal128 `bson:"discountedPrice"`
	Stock           int                  `bson:"stock"`
	Images          []imageDocument      `bson:"images"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

type imageDocument struct {
	URL     string `bson:"url"`
	AltText string `bson:"altText"`
}

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	out, err := primitive.ParseDecimal128(d.StringFixed(2))
	if err != nil {
		return primitive.NewDecimal128(0, 0)
	}
	return out
}

func fromDecimal128(d primitive.Decimal128) decimal.Decimal {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return out
}

func toProductDocument(p *entity.Product) (productDocument, error) {
	doc := productDocument{
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Price:           toDecimal128(p.Price),
		DiscountedPrice: toDecimal128(p.DiscountedPrice),
		Stock:           p.Stock,
		Images:          make([]imageDocument, 0, len(p.Images)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.ID != "" {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return productDocument{}, err
		}
		doc.ID = oid
	}
	for _, img := range p.Images {
		doc.Images = append(doc.Images, imageDocument{URL: img.URL, AltText: img.AltText})
	}
	return doc, nil
}

func (d productDocument) toEntity() entity.Product {
	p := entity.Product{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Description:     d.Description,
		Category:        d.Category,
		Price:           fromDecimal128(d.Price),
		DiscountedPrice: fromDecimal128(d.DiscountedPrice),
		Stock:           d.Stock,
		Images:          make([]entity.ProductImage, 0, len(d.Images)),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	for _, img := range d.Images {
		p.Images = append(p.Images, entity.ProductImage{URL: img.URL, AltText: img.AltText})
	}
	return p
}
