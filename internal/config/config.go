// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package config

import (
	"time"

	"github.com/tomtom215/tigana/internal/cart"
	"github.com/tomtom215/tigana/internal/events"
	"github.com/tomtom215/tigana/internal/promo"
	"github.com/tomtom215/tigana/internal/recommend"
	"github.com/tomtom215/tigana/internal/session"
	"github.com/tomtom215/tigana/internal/storage"
	"github.com/tomtom215/tigana/internal/tracker"
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig        `koanf:"server"`
	Logging   LoggingConfig       `koanf:"logging"`
	Catalog   CatalogConfig       `koanf:"catalog"`
	Storage   storage.Config      `koanf:"storage"`
	Session   session.Config      `koanf:"session"`
	Recommend recommend.Config    `koanf:"recommend"`
	Favorites tracker.Config      `koanf:"favorites"`
	Events    events.Config       `koanf:"events"`
	Promo     PromoConfig         `koanf:"promo"`
	Shipping  cart.ShippingPolicy `koanf:"shipping"`
	Security  SecurityConfig      `koanf:"security"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging or production
}

// LoggingConfig mirrors logging.Config for file and env loading.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// CatalogConfig points at an optional catalog file. Empty uses the
// catalog compiled into the binary.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// PromoConfig lists the promotion codes on offer. Validity windows start
// when the process starts.
type PromoConfig struct {
	Offers []promo.Offer `koanf:"offers"`
}

// SecurityConfig holds the public surface limits.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// TrackingRate and TrackingBurst bound behavior tracking calls per
	// session (events per second).
	TrackingRate  float64 `koanf:"tracking_rate"`
	TrackingBurst int     `koanf:"tracking_burst"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// Defaults returns the configuration used before any file or env layer.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Storage:   storage.DefaultConfig(),
		Session:   session.DefaultConfig(),
		Recommend: *recommend.DefaultConfig(),
		Favorites: tracker.DefaultConfig(),
		Events:    events.DefaultConfig(),
		Promo:     PromoConfig{Offers: promo.DefaultOffers()},
		Shipping:  cart.DefaultShippingPolicy(),
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			TrackingRate:    5,
			TrackingBurst:   20,
			MaxBodyBytes:    1 << 20,
		},
	}
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr returns host:port for the listener.
func (c *Config) Addr() string {
	return joinHostPort(c.Server.Host, c.Server.Port)
}
