package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/go-ecommerce-backend/config"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
	mongoinfra "github.com/oksasatya/go-ecommerce-backend/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/go-ecommerce-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

// seed creates a verified admin account and a few catalog products.
// It is safe to run repeatedly.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.AppName+"-seed", 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	email := getenv("SEED_ADMIN_EMAIL", "admin@example.com")
	password := getenv("SEED_ADMIN_PASSWORD", "password123")

	users := pginfra.NewUserRepository(pool)
	if _, err := users.GetByEmail(ctx, email); apperror.IsNotFound(err) {
		hash, err := helpers.HashPassword(password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		admin := &entity.User{Name: "Admin", Email: email, Password: hash, Role: entity.RoleAdmin, IsVerified: true}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		logger.WithField("user_id", admin.ID).Infof("seeded admin %s", email)
	} else if err != nil {
		log.Fatalf("failed to look up admin: %v", err)
	} else {
		logger.Infof("admin %s already exists", email)
	}

	mdb, err := mongoinfra.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = mdb.Client().Disconnect(context.Background()) }()

	products := mongoinfra.NewProductRepository(mdb, cfg.MongoProductsCollection)
	if err := products.CreateIndexes(ctx); err != nil {
		log.Fatalf("failed to create product indexes: %v", err)
	}
	if _, total, err := products.List(ctx, repository.ProductFilter{Page: 1, Limit: 1}); err != nil {
		log.Fatalf("failed to count products: %v", err)
	} else if total > 0 {
		logger.Infof("catalog already has %d products", total)
		return
	}

	catalog := []entity.Product{
		{Name: "Desk Lamp", Category: "home", Description: "Adjustable LED desk lamp", Price: decimal.RequireFromString("24.90"), DiscountedPrice: decimal.RequireFromString("19.90"), Stock: 40},
		{Name: "Ceramic Mug", Category: "kitchen", Description: "350ml stoneware mug", Price: decimal.RequireFromString("9.50"), DiscountedPrice: decimal.RequireFromString("9.50"), Stock: 120},
		{Name: "Notebook A5", Category: "stationery", Description: "Dotted, 160 pages", Price: decimal.RequireFromString("6.00"), DiscountedPrice: decimal.RequireFromString("5.00"), Stock: 300},
	}
	for i := range catalog {
		if err := products.Create(ctx, &catalog[i]); err != nil {
			log.Fatalf("failed to seed product %q: %v", catalog[i].Name, err)
		}
		logger.WithField("product_id", catalog[i].ID).Infof("seeded product %s", catalog[i].Name)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
