package infra

import (
	"context"

	"github.com/tnqbao/gau-file-metadata/config"
	"github.com/tnqbao/gau-file-metadata/infra/produce"
)

// Infra bundles the external clients the service talks to. It is built once
// at startup and passed down explicitly; there is no package-level instance.
type Infra struct {
	Postgres *PostgresClient
	Redis    *RedisClient
	Logger   *LoggerClient
	RabbitMQ *RabbitMQClient
	Minio    *MinioClient
	Produce  *produce.Produce
}

func InitInfra(cfg *config.Config) *Infra {
	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	if rabbitMQ == nil {
		panic("Failed to initialize RabbitMQ service")
	}

	produceService := produce.InitProduce(rabbitMQ.Channel)
	if produceService == nil {
		panic("Failed to initialize Produce service")
	}

	minio := InitMinioClient(cfg.EnvConfig)
	if minio == nil {
		panic("Failed to initialize MinIO service")
	}

	return &Infra{
		Postgres: postgres,
		Redis:    redis,
		Logger:   logger,
		RabbitMQ: rabbitMQ,
		Minio:    minio,
		Produce:  produceService,
	}
}

// InitAPIInfra builds the clients the API server uses. Unlike the
// consumer, the API keeps serving when a backing service is down: a
// client that fails to initialize is logged and left nil, the handlers
// answer 503 for store operations and /health reports "not connected".
// RabbitMQ and the produce layer are not initialized; the API never
// publishes.
func InitAPIInfra(cfg *config.Config) *Infra {
	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	return &Infra{
		Logger:   logger,
		Postgres: initOrDegrade(logger, "Postgres", func() *PostgresClient { return InitPostgresClient(cfg.EnvConfig) }),
		Redis:    initOrDegrade(logger, "Redis", func() *RedisClient { return InitRedisClient(cfg.EnvConfig) }),
		Minio:    initOrDegrade(logger, "MinIO", func() *MinioClient { return InitMinioClient(cfg.EnvConfig) }),
	}
}

func initOrDegrade[T any](logger *LoggerClient, name string, init func() *T) (client *T) {
	defer func() {
		if r := recover(); r != nil {
			logger.WarningWithContextf(context.Background(),
				"Failed to initialize %s client: %v (continuing without it)", name, r)
			client = nil
		}
	}()
	return init()
}
