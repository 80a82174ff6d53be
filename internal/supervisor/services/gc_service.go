// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Collector reclaims backend space. Satisfied by *storage.BadgerStore and
// *storage.BreakerStore.
type Collector interface {
	RunGC() error
}

// StorageGCService calls RunGC on a fixed interval. A failed pass is logged
// and retried on the next tick; it never stops the service.
type StorageGCService struct {
	collector Collector
	interval  time.Duration
	logger    zerolog.Logger
	name      string
}

// NewStorageGCService creates the GC loop. Non-positive intervals become
// ten minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStorageGCService(collector Collector, interval time.Duration, logger zerolog.Logger) *StorageGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StorageGCService{
		collector: collector,
		interval:  interval,
		logger:    logger.With().Str("component", "storage-gc").Logger(),
		name:      "storage-gc",
	}
}

// Serve implements suture.Service.
func (s *StorageGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.collect()
		}
	}
}

func (s *StorageGCService) collect() {
	start := time.Now()
	if err := s.collector.RunGC(); err != nil {
		s.logger.Warn().Err(err).Msg("Storage GC pass failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("Storage GC pass complete")
}

// String implements fmt.Stringer for suture's logs.
func (s *StorageGCService) String() string {
	return s.name
}
