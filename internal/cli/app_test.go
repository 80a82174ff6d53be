// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/tigana/internal/config"
	"github.com/tomtom215/tigana/internal/storage"
)

func memoryAppConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Storage.Backend = storage.BackendMemory
	cfg.Security.RateLimitDisabled = true
	cfg.Security.TrackingRate = 0
	return cfg
}

func TestNewApp_WiresEventStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, memoryAppConfig(), zerolog.Nop(), appOptions{withEvents: true})
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.consumer)
	require.NotNil(t, a.publisher)
	_, collects := a.gcInterval()
	assert.False(t, collects, "memory store has no GC loop")

	handler, err := a.handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	go func() { _ = a.consumer.Run(ctx) }()

	// Events published before the consumer subscribes are dropped by the
	// in-process transport, so keep viewing until one arrives.
	deadline := time.Now().Add(3 * time.Second)
	for a.consumer.Stats().Total == 0 && time.Now().Before(deadline) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/shopper-1/track/view",
			strings.NewReader(`{"product_id":"1"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		time.Sleep(10 * time.Millisecond)
	}
	assert.Positive(t, a.consumer.Stats().Total)
}

func TestNewApp_OfflineHasNoEvents(t *testing.T) {
	a, err := newApp(context.Background(), memoryAppConfig(), zerolog.Nop(), appOptions{})
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.consumer)
	assert.Nil(t, a.pubsub)
}

func TestNewApp_BadgerGetsGC(t *testing.T) {
	cfg := memoryAppConfig()
	cfg.Storage.Backend = storage.BackendBadger
	cfg.Storage.Badger.InMemory = true
	cfg.Storage.Badger.GCInterval = time.Minute

	a, err := newApp(context.Background(), cfg, zerolog.Nop(), appOptions{})
	require.NoError(t, err)
	defer a.Close()

	interval, ok := a.gcInterval()
	assert.True(t, ok)
	assert.Equal(t, time.Minute, interval)
}

func TestNewApp_BadCatalogPath(t *testing.T) {
	cfg := memoryAppConfig()
	cfg.Catalog.Path = "/nonexistent/catalog.yaml"

	_, err := newApp(context.Background(), cfg, zerolog.Nop(), appOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}
