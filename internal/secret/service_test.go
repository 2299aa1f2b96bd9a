package secret

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mapSource struct {
	values map[string]string
	err    error
	calls  []string
}

func (m *mapSource) Fetch(_ context.Context, locator string) (string, error) {
	m.calls = append(m.calls, locator)
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.values[locator]
	if !ok {
		return "", ErrSecretNotFound
	}
	return v, nil
}

func TestNewService_MissingPostfix(t *testing.T) {
	cfg := NewSecretConfig(&mapSource{}, "")
	_, err := NewService(cfg, "", zaptest.NewLogger(t).Sugar())
	require.ErrorIs(t, err, ErrMissingPostfix)
}

func TestNewService_RegistersJWTSecret(t *testing.T) {
	src := &mapSource{values: map[string]string{"auth-JWT_SECRET_TEST": "secret-value"}}
	cfg := NewSecretConfig(src, "auth-")
	svc, err := NewService(cfg, "JWT_SECRET_TEST", zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	require.NoError(t, svc.LoadSecrets(context.Background()))
	assert.Equal(t, []string{"auth-JWT_SECRET_TEST"}, src.calls)

	v, err := svc.Get(JWTSecretName)
	require.NoError(t, err)
	assert.Equal(t, "secret-value", v)
}

func TestService_LoadSecretsFailure(t *testing.T) {
	src := &mapSource{err: errors.New("Initialization failed")}
	svc, err := NewService(NewSecretConfig(src, ""), "JWT_SECRET_TEST", zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	err = svc.LoadSecrets(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load secrets")
	assert.Contains(t, err.Error(), "Initialization failed")

	// nothing is published after a failed load
	_, err = svc.Get(JWTSecretName)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestService_Get(t *testing.T) {
	src := &mapSource{values: map[string]string{"JWT_SECRET_TEST": "secret-value"}}
	svc, err := NewService(NewSecretConfig(src, ""), "JWT_SECRET_TEST", zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	t.Run("before load", func(t *testing.T) {
		_, err := svc.Get(JWTSecretName)
		assert.ErrorIs(t, err, ErrNotInitialized)
	})

	require.NoError(t, svc.LoadSecrets(context.Background()))

	t.Run("unknown key", func(t *testing.T) {
		_, err := svc.Get("other")
		assert.ErrorIs(t, err, ErrSecretNotFound)
		assert.Contains(t, err.Error(), `failed to get secret "other"`)
	})

	t.Run("known key", func(t *testing.T) {
		v, err := svc.Get(JWTSecretName)
		require.NoError(t, err)
		assert.Equal(t, "secret-value", v)
	})
}

func TestSecretConfig(t *testing.T) {
	src := &mapSource{values: map[string]string{"p-a": "1", "p-b": "2"}}
	cfg := NewSecretConfig(src, "p-")

	assert.ErrorIs(t, cfg.AddSecret("", "a"), ErrInvalidRegistration)
	assert.ErrorIs(t, cfg.AddSecret("a", ""), ErrInvalidRegistration)
	require.NoError(t, cfg.AddSecret("a", "a"))
	require.NoError(t, cfg.AddSecret("b", "b"))

	assert.Nil(t, cfg.Get())
	require.NoError(t, cfg.Initialize(context.Background()))

	got := cfg.Get()
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got)

	// callers get a copy
	got["a"] = "mutated"
	assert.Equal(t, "1", cfg.Get()["a"])
}

func TestSecretConfig_PartialFailure(t *testing.T) {
	src := &mapSource{values: map[string]string{"a": "1"}}
	cfg := NewSecretConfig(src, "")
	require.NoError(t, cfg.AddSecret("a", "a"))
	require.NoError(t, cfg.AddSecret("b", "b"))

	err := cfg.Initialize(context.Background())
	require.ErrorIs(t, err, ErrSecretNotFound)
	assert.Nil(t, cfg.Get())
}

func TestEnvSource(t *testing.T) {
	src := &EnvSource{lookup: func(k string) (string, bool) {
		if k == "JWT_SECRET" {
			return "from-env", true
		}
		return "", false
	}}

	v, err := src.Fetch(context.Background(), "JWT_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)

	_, err = src.Fetch(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}
