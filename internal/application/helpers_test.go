package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/infrastructure/memory"
)

func seedUser(t *testing.T, store *memory.Store, name string) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, Email: name + "@example.com", Role: entity.RoleUser, IsVerified: true}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func seedProduct(t *testing.T, store *memory.Store, name, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Images: []entity.ProductImage{{URL: "https://cdn/" + name + ".png", AltText: "Image 1"}},
	}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}
