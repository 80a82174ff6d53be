// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package session

import (
	"fmt"
	"time"
)

// Config bounds the manager's session cache and write-through.
type Config struct {
	// MaxOpen is the number of sessions kept in memory. Evicted sessions
	// are rehydrated from the store on next use.
	// Default: 10000.
	MaxOpen int `koanf:"max_open"`

	// IdleTTL drops a cached session after this long without access.
	// Default: 30m.
	IdleTTL time.Duration `koanf:"idle_ttl"`

	// WriteTimeout bounds one record write.
	// Default: 2s.
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		MaxOpen:      10000,
		IdleTTL:      30 * time.Minute,
		WriteTimeout: 2 * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxOpen <= 0 {
		return fmt.Errorf("session.max_open must be positive, got %d", c.MaxOpen)
	}
	if c.IdleTTL <= 0 {
		return fmt.Errorf("session.idle_ttl must be positive, got %s", c.IdleTTL)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("session.write_timeout must be positive, got %s", c.WriteTimeout)
	}
	return nil
}
