package secret

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// SecretConfig keeps a registry of named secrets and the values loaded for
// them. Secrets are registered before Initialize; after Initialize the loaded
// set is only ever read.
type SecretConfig struct {
	src    Source
	prefix string

	mu       sync.RWMutex
	locators map[string]string
	values   map[string]string
}

// NewSecretConfig returns a registry backed by src. prefix is prepended to
// every locator suffix passed to AddSecret.
func NewSecretConfig(src Source, prefix string) *SecretConfig {
	return &SecretConfig{src: src, prefix: prefix, locators: map[string]string{}}
}

// AddSecret registers name to be loaded from prefix+locatorSuffix.
func (c *SecretConfig) AddSecret(name, locatorSuffix string) error {
	if name == "" || locatorSuffix == "" {
		return fmt.Errorf("add secret %q: %w", name, ErrInvalidRegistration)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locators[name] = c.prefix + locatorSuffix
	return nil
}

// Initialize fetches every registered secret. The loaded set is published
// only when all fetches succeed.
func (c *SecretConfig) Initialize(ctx context.Context) error {
	c.mu.RLock()
	locators := maps.Clone(c.locators)
	c.mu.RUnlock()

	loaded := make(map[string]string, len(locators))
	for name, locator := range locators {
		v, err := c.src.Fetch(ctx, locator)
		if err != nil {
			return fmt.Errorf("fetch %q: %w", name, err)
		}
		loaded[name] = v
	}

	c.mu.Lock()
	c.values = loaded
	c.mu.Unlock()
	return nil
}

// Get returns a copy of the loaded secrets, or nil before Initialize.
func (c *SecretConfig) Get() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.values == nil {
		return nil
	}
	return maps.Clone(c.values)
}
