package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-auth-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-auth-go/internal/config"
	"github.com/ovaphlow/pitchfork/service-auth-go/internal/router"
	"github.com/ovaphlow/pitchfork/service-auth-go/internal/secret"
	"github.com/ovaphlow/pitchfork/service-auth-go/pkg/database"
)

// newApp wires the secret backend, loads the secrets and returns the HTTP
// handler. No handler is returned unless the secrets are in memory, so the
// caller never opens a listener without them. cleanup is always non-nil.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (http.Handler, func(), error) {
	src, cleanup, err := newSecretSource(ctx, cfg)
	if err != nil {
		return nil, cleanup, fmt.Errorf("secret backend: %w", err)
	}

	secrets, err := secret.NewService(secret.NewSecretConfig(src, cfg.SecretNamePrefix), cfg.JWTSecretNamePostfix, logger)
	if err != nil {
		return nil, cleanup, fmt.Errorf("secret service: %w", err)
	}
	if err := secrets.LoadSecrets(ctx); err != nil {
		return nil, cleanup, err
	}

	authHandler := auth.NewHandler(auth.NewService(secrets, logger), logger, cfg.Production())
	return router.RegisterRoutes(logger, authHandler), cleanup, nil
}

// newSecretSource builds the configured backend. The returned func releases
// whatever the backend holds open.
func newSecretSource(ctx context.Context, cfg *config.Config) (secret.Source, func(), error) {
	noop := func() {}
	switch cfg.SecretBackend {
	case config.BackendEnv:
		return secret.NewEnvSource(), noop, nil
	case config.BackendPostgres:
		db, err := database.Connect(ctx, database.ConfigFromEnv())
		if err != nil {
			return nil, noop, err
		}
		return secret.NewPostgresSource(db), func() { _ = db.Close() }, nil
	case config.BackendVault:
		src, err := secret.NewVaultSource(secret.VaultConfig{
			Address: cfg.VaultConfig.Address,
			Token:   cfg.VaultConfig.Token,
			Mount:   cfg.VaultConfig.Mount,
			Field:   cfg.VaultConfig.Field,
			Timeout: cfg.VaultConfig.Timeout,
		})
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown secret backend %q", cfg.SecretBackend)
	}
}
