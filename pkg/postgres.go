package pkg

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const PostgresService = "postgres"

type PostgresRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostgres(logger *zap.Logger, host, port, user, password, dbname, sslMode string) (*PostgresRepository, error) {
	dataSourceName := "host=" + host + " port=" + port + " user=" + user + " password=" + password + " dbname=" + dbname + " sslmode=" + sslMode
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres %s:%s: %w", host, port, err)
	}
	return &PostgresRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *PostgresRepository) ShutdownFunc() {
	if err := r.db.Close(); err != nil {
		r.logger.Error("failed to close postgres", zap.Error(err))
		return
	}
	r.logger.Info("postgres closed")
}

func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}
