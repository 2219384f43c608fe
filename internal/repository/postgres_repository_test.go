package repository

import (
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"message-printer/internal/testhelpers"
	"message-printer/pkg"
)

type PostgresSourceTestSuite struct {
	suite.Suite
	pgContainer *testhelpers.PostgresContainer
	ctx         context.Context
	postgres    *pkg.PostgresRepository
}

func (suite *PostgresSourceTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	pgContainer, err := testhelpers.CreatePostgresContainer(suite.ctx)
	if err != nil {
		log.Fatal(err)
	}
	suite.pgContainer = pgContainer

	logger := zap.NewNop()
	cfg := pgContainer.DBConfig
	postgres, err := pkg.NewPostgres(logger, cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, cfg.SSLMode)
	suite.Require().NoError(err)
	suite.Require().NoError(pkg.NewMigrations(postgres.GetDB().DB, logger).Migrate(pkg.MigrationsTable))
	suite.postgres = postgres
}

func (suite *PostgresSourceTestSuite) TearDownSuite() {
	suite.postgres.ShutdownFunc()
	if err := suite.pgContainer.Terminate(suite.ctx); err != nil {
		log.Fatalf("error terminating postgres container: %s", err)
	}
}

func (suite *PostgresSourceTestSuite) TestSeededMessage() {
	source := NewPostgresSource(suite.postgres, "employee", zap.NewNop())

	message, err := source.GetMessage(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("Hello, Employee!", message)
}

func (suite *PostgresSourceTestSuite) TestSaveReplaces() {
	source := NewPostgresSource(suite.postgres, "manager", zap.NewNop())
	suite.Require().NoError(source.Save(suite.ctx, "Hello, Manager!"))
	suite.Require().NoError(source.Save(suite.ctx, ""))

	message, err := source.GetMessage(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("", message)
}

func (suite *PostgresSourceTestSuite) TestMissingKey() {
	source := NewPostgresSource(suite.postgres, "nobody", zap.NewNop())

	_, err := source.GetMessage(suite.ctx)
	suite.ErrorIs(err, ErrMessageNotFound)
}

func TestPostgresSourceTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container is not started in short mode")
	}
	suite.Run(t, new(PostgresSourceTestSuite))
}
