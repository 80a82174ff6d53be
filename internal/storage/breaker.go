// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/tigana/internal/metrics"
)

// ErrUnavailable is returned while the breaker rejects writes.
var ErrUnavailable = errors.New("store unavailable")

// BreakerConfig configures the write circuit breaker.
type BreakerConfig struct {
	Enabled bool `koanf:"enabled"`

	// FailureThreshold is the number of consecutive write failures that
	// opens the breaker.
	// Default: 5.
	FailureThreshold uint32 `koanf:"failure_threshold"`

	// MaxRequests is the number of trial writes allowed while half-open.
	// Default: 1.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval clears the closed-state counts. Zero never clears them.
	Interval time.Duration `koanf:"interval"`

	// Timeout is how long the breaker stays open before trying again.
	// Default: 30s.
	Timeout time.Duration `koanf:"timeout"`
}

// DefaultBreakerConfig returns the production breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		MaxRequests:      1,
		Timeout:          30 * time.Second,
	}
}

// BreakerStore routes writes through a circuit breaker so a failing backend
// fails fast instead of stalling every mutation. Reads pass straight through.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[struct{}]
}

// NewBreakerStore wraps next. name labels logs and metrics.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreakerStore(next Store, name string, cfg BreakerConfig, logger zerolog.Logger) *BreakerStore {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("storage circuit breaker state changed")
			metrics.RecordBreakerTransition(name, from.String(), to.String(), stateCode(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &BreakerStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (b *BreakerStore) Get(ctx context.Context, key string) ([]byte, error) {
	return b.next.Get(ctx, key)
}

func (b *BreakerStore) Put(ctx context.Context, key string, value []byte) error {
	return b.execute(func() error { return b.next.Put(ctx, key, value) })
}

func (b *BreakerStore) Delete(ctx context.Context, key string) error {
	return b.execute(func() error { return b.next.Delete(ctx, key) })
}

func (b *BreakerStore) Close() error {
	return b.next.Close()
}

// RunGC forwards to the wrapped store when it collects.
func (b *BreakerStore) RunGC() error {
	if c, ok := b.next.(Collector); ok {
		return c.RunGC()
	}
	return nil
}

// Unwrap returns the wrapped store.
func (b *BreakerStore) Unwrap() Store {
	return b.next
}

// State returns the breaker's current state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerStore) execute(fn func() error) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func stateCode(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
