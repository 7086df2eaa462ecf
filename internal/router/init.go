package router

import (
	"context"

	"github.com/oksasatya/go-ecommerce-backend/internal/application"
	"github.com/oksasatya/go-ecommerce-backend/internal/container"
	repo "github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
	mongoinfra "github.com/oksasatya/go-ecommerce-backend/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/go-ecommerce-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ecommerce-backend/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-ecommerce-backend/internal/interface/http"
	"github.com/oksasatya/go-ecommerce-backend/internal/router/modules"
)

type moduleDeps struct {
	Auth    *handlers.AuthHandler
	User    *handlers.UserHandler
	Cart    *handlers.CartHandler
	Product *handlers.ProductHandler
	Order   *handlers.OrderHandler
}

// emailPublisher keeps a missing RabbitMQ connection a nil interface.
func emailPublisher(c *container.Container) application.EmailPublisher {
	if c.RabbitPub != nil {
		return c.RabbitPub
	}
	return nil
}

func productIndex(c *container.Container) repo.ProductSearchIndex {
	if c.ES == nil {
		return nil
	}
	return search.NewProductIndex(c.ES, c.Cfg.ESProductsIndex, c.Logger)
}

func buildDeps(c *container.Container) moduleDeps {
	cfg := c.Cfg

	users := pginfra.NewUserRepository(c.PG)
	products := mongoinfra.NewProductRepository(c.Mongo, cfg.MongoProductsCollection)

	authSvc := application.NewAuthService(users, c.JWT, c.Redis, emailPublisher(c), c.Logger, application.AuthOptions{
		CompanyName: cfg.CompanyName,
		OTPTTL:      cfg.OTPTTL,
		SessionTTL:  cfg.RefreshTTL,
	})
	userSvc := application.NewUserService(users, c.Redis, c.Logger)
	cartSvc := application.NewCartService(pginfra.NewCartRepository(c.PG), c.Logger)
	productSvc := application.NewProductService(
		products,
		productIndex(c),
		application.GCSImages{Client: c.GCS, Bucket: cfg.GCSBucket},
		c.Redis,
		c.Logger,
		application.ProductOptions{CacheTTL: cfg.ProductCacheTTL, MaxLimit: cfg.ProductsPageMax},
	)
	checkoutSvc := application.NewCheckoutService(pginfra.NewCheckoutTransactor(c.PG, c.Logger), products, c.Logger)
	orderSvc := application.NewOrderService(pginfra.NewOrderRepository(c.PG), cfg.OrdersPageMax, c.Logger)

	return moduleDeps{
		Auth:    handlers.NewAuthHandler(authSvc, c.Logger, cfg.CookieDomain, cfg.CookieSecure),
		User:    handlers.NewUserHandler(userSvc, c.Logger),
		Cart:    handlers.NewCartHandler(cartSvc, c.Logger),
		Product: handlers.NewProductHandler(productSvc, c.Logger),
		Order:   handlers.NewOrderHandler(checkoutSvc, orderSvc, c.Logger),
	}
}

// InitModules wires every feature module into the registry.
// Call once during startup, after main has opened the store clients.
func InitModules(r *Registry, c *container.Container) {
	deps := buildDeps(c)

	r.Add(modules.NewAuthModule(deps.Auth, c.Redis, c.JWT))
	r.Add(modules.NewUserModule(deps.User, c.Redis, c.JWT))
	r.Add(modules.NewCartModule(deps.Cart, c.Redis, c.JWT))
	r.Add(modules.NewProductModule(deps.Product, c.Redis, c.JWT))
	r.Add(modules.NewOrderModule(deps.Order, c.Redis, c.JWT))
	r.Add(modules.NewHealthModule(map[string]modules.Check{
		"postgres": c.PG.Ping,
		"redis":    func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() },
		"mongo":    func(ctx context.Context) error { return c.Mongo.Client().Ping(ctx, nil) },
	}))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
