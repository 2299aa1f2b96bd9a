package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Secret backends understood by the service.
const (
	BackendEnv      = "env"
	BackendVault    = "vault"
	BackendPostgres = "postgres"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port            string        `envconfig:"PORT" default:"3000"`
	Env             string        `envconfig:"APP_ENV" default:"development"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	// JWTSecretNamePostfix locates the signing secret in the backend.
	JWTSecretNamePostfix string `envconfig:"JWT_SECRET_NAME_POSTFIX" required:"true"`
	SecretNamePrefix     string `envconfig:"SECRET_NAME_PREFIX"`
	SecretBackend        string `envconfig:"SECRET_BACKEND" default:"vault"`

	VaultConfig
}

type VaultConfig struct {
	Address string        `envconfig:"VAULT_ADDR" default:"http://127.0.0.1:8200"`
	Token   string        `envconfig:"VAULT_TOKEN"`
	Mount   string        `envconfig:"VAULT_KV_MOUNT" default:"secret"`
	Field   string        `envconfig:"VAULT_SECRET_FIELD" default:"value"`
	Timeout time.Duration `envconfig:"VAULT_TIMEOUT" default:"10s"`
}

// Load reads Config from the environment. A missing JWT_SECRET_NAME_POSTFIX
// or an unknown SECRET_BACKEND is an error.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.JWTSecretNamePostfix == "" {
		return nil, fmt.Errorf("load config: JWT_SECRET_NAME_POSTFIX environment variable is required")
	}
	switch c.SecretBackend {
	case BackendEnv, BackendVault, BackendPostgres:
	default:
		return nil, fmt.Errorf("load config: unknown SECRET_BACKEND %q", c.SecretBackend)
	}
	return &c, nil
}

// Production reports whether cookies should carry the Secure flag.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}
