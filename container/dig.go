package container

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"message-printer/config"
	"message-printer/internal/repository"
	"message-printer/internal/service"
	"message-printer/pkg"
)

// Resources is everything a command needs from the container. Backend
// clients are only present for the configured source kind.
type Resources struct {
	dig.In

	Printer    *service.MessagePrinter
	Source     service.MessageSource
	Prometheus *pkg.Prometheus
	Registry   *prometheus.Registry
	Scheduler  *pkg.Scheduler
	Postgres   *pkg.PostgresRepository `optional:"true"`
	Redis      *pkg.RedisClient        `optional:"true"`
}

// GetRegisteredShutdowns returns close funcs of the backend clients that
// were built.
func (r Resources) GetRegisteredShutdowns() map[string]func() {
	closers := make(map[string]func())
	if r.Postgres != nil {
		closers[pkg.PostgresService] = r.Postgres.ShutdownFunc
	}
	if r.Redis != nil {
		closers[pkg.RedisClientService] = r.Redis.ShutdownFunc
	}
	return closers
}

type schedulerParams struct {
	dig.In

	Redis *pkg.RedisClient `optional:"true"`
}

// BuildContainer wires the printer to the source selected by
// cfg.Source.Kind. Printed lines go to out.
func BuildContainer(father context.Context, logger *zap.Logger, cfg *config.Config, out io.Writer) *dig.Container {
	container := dig.New()
	provide(container, "logger", func() *zap.Logger { return logger })
	provide(container, "config", func() *config.Config { return cfg })
	provide(container, "prometheus", func() (*prometheus.Registry, *pkg.Prometheus, error) {
		registry := prometheus.NewRegistry()
		prom := pkg.NewPrometheus()
		if err := prom.Register(registry); err != nil {
			return nil, nil, err
		}
		return registry, prom, nil
	})

	switch cfg.Source.Kind {
	case config.SourceStatic:
		provide(container, service.MessageSourceService, func() service.MessageSource {
			return repository.NewStaticSource(cfg.Source.Message)
		})
	case config.SourcePostgres:
		provide(container, pkg.PostgresService, func() (*pkg.PostgresRepository, error) {
			return newPostgres(logger, cfg.DB)
		})
		provide(container, service.MessageSourceService, func(postgres *pkg.PostgresRepository) service.MessageSource {
			return repository.NewPostgresSource(postgres, cfg.Source.Key, logger)
		})
	case config.SourceRedis:
		provide(container, pkg.RedisClientService, func() (*pkg.RedisClient, error) {
			return newRedis(father, logger, cfg.Redis)
		})
		provide(container, service.MessageSourceService, func(client *pkg.RedisClient) service.MessageSource {
			return repository.NewRedisSource(client, cfg.Redis.KeyPrefix, cfg.Source.Key, logger)
		})
	default:
		provide(container, service.MessageSourceService, func() (service.MessageSource, error) {
			return nil, fmt.Errorf("unknown message source kind %q", cfg.Source.Kind)
		})
	}

	provide(container, service.MessagePrinterService, func(source service.MessageSource, prom *pkg.Prometheus) (*service.MessagePrinter, error) {
		return service.NewMessagePrinterWithSource(out, logger, source, service.WithMetrics(prom, cfg.Source.Kind))
	})
	provide(container, pkg.CronPackage, func(deps schedulerParams) *pkg.Scheduler {
		var rdb *redis.Client
		if deps.Redis != nil {
			rdb = deps.Redis.Client
		}
		return pkg.NewScheduler(rdb, logger)
	})

	return container
}

func provide(container *dig.Container, name string, constructor any) {
	if err := container.Provide(constructor); err != nil {
		log.Fatalf("failed to provide %s %v", name, err)
	}
}

func newPostgres(logger *zap.Logger, cfg config.DBConfig) (*pkg.PostgresRepository, error) {
	postgres, err := pkg.NewPostgres(logger, cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, cfg.SSLMode)
	if err != nil {
		return nil, err
	}
	if cfg.SkipMigrations {
		return postgres, nil
	}
	if err := pkg.NewMigrations(postgres.GetDB().DB, logger).Migrate(pkg.MigrationsTable); err != nil {
		postgres.ShutdownFunc()
		return nil, err
	}
	return postgres, nil
}

func newRedis(father context.Context, logger *zap.Logger, cfg config.RedisConfig) (*pkg.RedisClient, error) {
	client := pkg.NewRedisClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	}, logger)

	ctx, cancel := context.WithTimeout(father, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		client.ShutdownFunc()
		return nil, err
	}
	return client, nil
}
