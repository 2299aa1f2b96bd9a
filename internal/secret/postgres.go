package secret

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ovaphlow/pitchfork/service-auth-go/internal/secret/repo"
)

// PostgresSource reads secrets from the app_secrets table, one row per locator.
type PostgresSource struct {
	repo *repo.SecretRepo
}

func NewPostgresSource(db *sqlx.DB) *PostgresSource {
	return &PostgresSource{repo: repo.NewSecretRepo(db)}
}

func (s *PostgresSource) Fetch(ctx context.Context, locator string) (string, error) {
	v, err := s.repo.GetValue(ctx, locator)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("app_secrets %s: %w", locator, ErrSecretNotFound)
		}
		return "", fmt.Errorf("app_secrets %s: %w", locator, err)
	}
	return v, nil
}
