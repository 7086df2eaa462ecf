package repository

import (
	"context"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
)

type ProductFilter struct {
	Name     string
	Category string
	Page     int
	Limit    int
}

// ProductRepository is the catalog store client.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// FindByIDs returns the products that exist among ids; missing ids are simply absent.
	FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]entity.Product, int64, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}

// ProductSearchIndex is the full-text side index of the catalog.
type ProductSearchIndex interface {
	Index(ctx context.Context, p *entity.Product) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.Product, error)
}
