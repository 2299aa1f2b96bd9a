package secret

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
)

// VaultConfig holds configuration for reading secrets from a Vault KV v2 mount.
type VaultConfig struct {
	Address string
	Token   string
	// Mount is the KV v2 mount path, "secret" when empty.
	Mount string
	// Field is the key inside the secret's data holding the value, "value" when empty.
	Field   string
	Timeout time.Duration
}

// VaultSource reads each locator as a KV v2 secret path under Mount.
type VaultSource struct {
	client *api.Client
	mount  string
	field  string
}

// NewVaultSource creates a Vault client with the given configuration.
func NewVaultSource(cfg VaultConfig) (*VaultSource, error) {
	config := api.DefaultConfig()
	config.Address = cfg.Address
	if cfg.Timeout > 0 {
		config.Timeout = cfg.Timeout
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	if cfg.Token != "" {
		client.SetToken(cfg.Token)
	}

	mount := strings.Trim(cfg.Mount, "/")
	if mount == "" {
		mount = "secret"
	}
	field := cfg.Field
	if field == "" {
		field = "value"
	}
	return &VaultSource{client: client, mount: mount, field: field}, nil
}

// Fetch reads <mount>/data/<locator> and returns the configured field.
func (s *VaultSource) Fetch(ctx context.Context, locator string) (string, error) {
	path := fmt.Sprintf("%s/data/%s", s.mount, strings.TrimPrefix(locator, "/"))
	sec, err := s.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return "", fmt.Errorf("vault read %s: %w", path, err)
	}
	if sec == nil || sec.Data == nil {
		return "", fmt.Errorf("vault read %s: %w", path, ErrSecretNotFound)
	}

	// KV v2 nests the payload under "data"; it is nil for deleted versions.
	data, ok := sec.Data["data"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("vault read %s: %w", path, ErrSecretNotFound)
	}
	raw, ok := data[s.field]
	if !ok {
		return "", fmt.Errorf("vault read %s field %q: %w", path, s.field, ErrSecretNotFound)
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("vault read %s field %q: value is %T, want string", path, s.field, raw)
	}
	return v, nil
}
