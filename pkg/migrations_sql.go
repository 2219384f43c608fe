package pkg

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const MigrationsTable = "goose_db_version"

type Migrations struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewMigrations(db *sql.DB, logger *zap.Logger) *Migrations {
	return &Migrations{
		db:     db,
		logger: logger,
	}
}

// Migrate applies the embedded migrations, recording versions in tableName.
func (m *Migrations) Migrate(tableName string) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetTableName(tableName)

	if err := goose.Up(m.db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, err := goose.GetDBVersion(m.db)
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}
	m.logger.Info("migrations applied", zap.Int64("version", version))

	return nil
}
