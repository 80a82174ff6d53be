// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package config

import (
	"fmt"

	"github.com/tomtom215/tigana/internal/logging"
	"github.com/tomtom215/tigana/internal/validation"
)

// Validate checks every section.
func (c *Config) Validate() error {
	checks := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateStorage,
		c.Session.Validate,
		c.Recommend.Validate,
		c.Favorites.Validate,
		c.Events.Validate,
		c.validatePromo,
		c.validateShipping,
		c.validateSecurity,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("server.environment must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if verr := validation.ValidateStruct(c.Storage); verr != nil {
		return fmt.Errorf("storage: %w", verr)
	}
	if c.Storage.WriteTimeout <= 0 {
		return fmt.Errorf("storage.write_timeout must be positive, got %s", c.Storage.WriteTimeout)
	}
	return nil
}

func (c *Config) validatePromo() error {
	seen := make(map[string]bool, len(c.Promo.Offers))
	for i := range c.Promo.Offers {
		o := &c.Promo.Offers[i]
		if verr := validation.ValidateStruct(o); verr != nil {
			return fmt.Errorf("promo.offers[%d]: %w", i, verr)
		}
		if seen[o.Code] {
			return fmt.Errorf("promo.offers[%d]: duplicate code %q", i, o.Code)
		}
		seen[o.Code] = true
	}
	return nil
}

func (c *Config) validateShipping() error {
	if c.Shipping.FreeThreshold < 0 || c.Shipping.FlatRate < 0 {
		return fmt.Errorf("shipping amounts must be non-negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("security.cors_origins must list at least one origin")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	if c.Security.TrackingRate <= 0 || c.Security.TrackingBurst <= 0 {
		return fmt.Errorf("security.tracking_rate and tracking_burst must be positive")
	}
	if c.Security.MaxBodyBytes <= 0 {
		return fmt.Errorf("security.max_body_bytes must be positive, got %d", c.Security.MaxBodyBytes)
	}
	return nil
}
