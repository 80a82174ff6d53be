// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package events

import "fmt"

// Topic is the default behavior topic.
const Topic = "tigana.behavior"

// Config configures the in-process stream.
type Config struct {
	Enabled bool   `koanf:"enabled"`
	Topic   string `koanf:"topic"`

	// Buffer is the per-subscriber channel size. Publishes beyond it wait
	// for the consumer.
	// Default: 256.
	Buffer int64 `koanf:"buffer"`
}

// DefaultConfig enables the stream on Topic.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Topic:   Topic,
		Buffer:  256,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Topic == "" {
		return fmt.Errorf("events topic is required")
	}
	if c.Buffer < 0 {
		return fmt.Errorf("events buffer must be >= 0, got %d", c.Buffer)
	}
	return nil
}
