package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/go-ecommerce-backend/config"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

// Container holds the store clients opened by cmd/main.go. main owns their
// lifecycle; the router only reads them to build repositories and services.
// Optional clients (GCS, ES, RabbitPub) are nil when unavailable.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	PG     *pgxpool.Pool
	Mongo  *mongo.Database
	Redis  *redis.Client
	JWT    *helpers.JWTManager

	GCS       *storage.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher
}
