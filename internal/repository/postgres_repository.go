package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"message-printer/pkg"
)

const (
	selectMessageQuery = `select text from messages where key = $1`
	upsertMessageQuery = `insert into messages (key, text, updated_at)
values ($1, $2, now())
on conflict (key) do update set text = excluded.text, updated_at = excluded.updated_at`
)

// PostgresSource reads the message stored under key in the messages table.
type PostgresSource struct {
	postgres *pkg.PostgresRepository
	key      string
	logger   *zap.Logger
}

func NewPostgresSource(postgres *pkg.PostgresRepository, key string, logger *zap.Logger) *PostgresSource {
	return &PostgresSource{
		postgres: postgres,
		key:      key,
		logger:   logger,
	}
}

func (repo *PostgresSource) GetMessage(ctx context.Context) (string, error) {
	var text string
	err := repo.postgres.GetDB().GetContext(ctx, &text, selectMessageQuery, repo.key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: key %q", ErrMessageNotFound, repo.key)
	}
	if err != nil {
		repo.logger.Error("failed to select message", zap.String("key", repo.key), zap.Error(err))
		return "", fmt.Errorf("select message %q: %w", repo.key, err)
	}
	return text, nil
}

// Save stores text under the source key, replacing any previous text.
func (repo *PostgresSource) Save(ctx context.Context, text string) error {
	if _, err := repo.postgres.GetDB().ExecContext(ctx, upsertMessageQuery, repo.key, text); err != nil {
		return fmt.Errorf("save message %q: %w", repo.key, err)
	}
	return nil
}
