// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config selects and configures the session store.
type Config struct {
	Backend string        `koanf:"backend" validate:"oneof=memory badger sqlite redis"`
	Badger  BadgerConfig  `koanf:"badger"`
	SQLite  SQLiteConfig  `koanf:"sqlite"`
	Redis   RedisConfig   `koanf:"redis"`
	Breaker BreakerConfig `koanf:"breaker"`

	// WriteTimeout bounds a single write-through.
	// Default: 2s.
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// DefaultConfig returns a badger store under ./data/sessions.
func DefaultConfig() Config {
	return Config{
		Backend: BackendBadger,
		Badger: BadgerConfig{
			Path:       "./data/sessions",
			GCRatio:    0.5,
			GCInterval: 10 * time.Minute,
		},
		SQLite: SQLiteConfig{Path: "./data/sessions.db"},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "tigana:",
		},
		Breaker:      DefaultBreakerConfig(),
		WriteTimeout: 2 * time.Second,
	}
}

// Open creates the configured backend, wrapped in a breaker when enabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Backend {
	case BackendMemory:
		store = NewMemoryStore()
	case BackendBadger:
		store, err = OpenBadger(cfg.Badger)
	case BackendSQLite:
		store, err = OpenSQLite(ctx, cfg.SQLite)
	case BackendRedis:
		store, err = OpenRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	logger.Info().Str("backend", cfg.Backend).Bool("breaker", cfg.Breaker.Enabled).Msg("session store ready")
	if cfg.Breaker.Enabled {
		return NewBreakerStore(store, "storage-"+cfg.Backend, cfg.Breaker, logger), nil
	}
	return store, nil
}
