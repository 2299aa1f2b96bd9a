package secret

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// JWTSecretName is the registry name of the session-token signing key.
const JWTSecretName = "jwtSecret"

// sentinel errors for common failure modes
var (
	ErrNotInitialized      = errors.New("secret config not initialized, call LoadSecrets first")
	ErrSecretNotFound      = errors.New("secret not found")
	ErrInvalidRegistration = errors.New("secret name and locator are required")
	ErrMissingPostfix      = errors.New("JWT_SECRET_NAME_POSTFIX environment variable is required")
)

// Service exposes the signing secret to the rest of the process. LoadSecrets
// must succeed before Get returns anything.
type Service struct {
	cfg    *SecretConfig
	logger *zap.SugaredLogger
}

// NewService registers the JWT signing secret under postfix.
func NewService(cfg *SecretConfig, postfix string, logger *zap.SugaredLogger) (*Service, error) {
	if postfix == "" {
		logger.Error("Environment variable JWT_SECRET_NAME_POSTFIX is not set")
		return nil, ErrMissingPostfix
	}
	if err := cfg.AddSecret(JWTSecretName, postfix); err != nil {
		logger.Errorw("Error initializing secret config", "err", err)
		return nil, fmt.Errorf("failed to initialize secret config: %w", err)
	}
	return &Service{cfg: cfg, logger: logger}, nil
}

// LoadSecrets fetches all registered secrets from the backend.
func (s *Service) LoadSecrets(ctx context.Context) error {
	s.logger.Info("Loading secrets")
	if err := s.cfg.Initialize(ctx); err != nil {
		s.logger.Errorw("Failed to load secrets", "err", err)
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	s.logger.Info("Secrets loaded successfully")
	return nil
}

// Get returns the loaded value for key.
func (s *Service) Get(key string) (string, error) {
	err := ErrNotInitialized
	if values := s.cfg.Get(); values != nil {
		v, ok := values[key]
		if ok {
			return v, nil
		}
		err = fmt.Errorf("secret %q: %w", key, ErrSecretNotFound)
	}
	s.logger.Errorw("Failed to get secret", "key", key, "err", err)
	return "", fmt.Errorf("failed to get secret %q: %w", key, err)
}
