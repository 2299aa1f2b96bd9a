package repo

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// NOTE: expected table schema (Postgres example):
// CREATE TABLE app_secrets (
//   name VARCHAR(255) PRIMARY KEY,
//   value TEXT NOT NULL,
//   updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
// );

type SecretRepo struct {
	db *sqlx.DB
}

func NewSecretRepo(db *sqlx.DB) *SecretRepo {
	return &SecretRepo{db: db}
}

// GetValue returns the value stored under name or sql.ErrNoRows.
func (r *SecretRepo) GetValue(ctx context.Context, name string) (string, error) {
	var value string
	query := `SELECT value FROM app_secrets WHERE name = $1`
	if err := r.db.GetContext(ctx, &value, query, name); err != nil {
		return "", err
	}
	return value, nil
}
