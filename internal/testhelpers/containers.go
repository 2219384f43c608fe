package testhelpers

import (
	"context"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"message-printer/config"
)

type PostgresContainer struct {
	*postgres.PostgresContainer
	DBConfig config.DBConfig
}

func CreatePostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	const (
		testUser     = "testuser"
		testPassword = "testpassword"
		testDB       = "testdb"
	)
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		postgres.WithDatabase(testDB),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		),
	)
	if err != nil {
		return nil, err
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		return nil, err
	}
	return &PostgresContainer{
		PostgresContainer: pgContainer,
		DBConfig: config.DBConfig{
			Host:     host,
			Port:     port.Port(),
			Username: testUser,
			Password: testPassword,
			Database: testDB,
			SSLMode:  "disable",
		},
	}, nil
}

type RedisContainer struct {
	testcontainers.Container
	RedisConfig config.RedisConfig
}

func CreateRedisContainer(ctx context.Context) (*RedisContainer, error) {
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		return nil, err
	}
	return &RedisContainer{
		Container: redisContainer,
		RedisConfig: config.RedisConfig{
			Addr:      endpoint,
			KeyPrefix: "message:",
		},
	}, nil
}
