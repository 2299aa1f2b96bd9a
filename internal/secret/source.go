package secret

import (
	"context"
	"fmt"
	"os"
)

// Source fetches a single secret value from a backend by locator.
type Source interface {
	Fetch(ctx context.Context, locator string) (string, error)
}

// EnvSource resolves locators as environment variable names. It is meant for
// local development where no secret backend is reachable.
type EnvSource struct {
	lookup func(string) (string, bool)
}

func NewEnvSource() *EnvSource {
	return &EnvSource{lookup: os.LookupEnv}
}

func (s *EnvSource) Fetch(_ context.Context, locator string) (string, error) {
	v, ok := s.lookup(locator)
	if !ok {
		return "", fmt.Errorf("env %s: %w", locator, ErrSecretNotFound)
	}
	return v, nil
}
