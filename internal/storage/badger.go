// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/tomtom215/tigana/internal/logging"
)

// BadgerConfig tunes the embedded BadgerDB backend.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool `koanf:"in_memory"`

	// SyncWrites fsyncs every write.
	SyncWrites bool `koanf:"sync_writes"`

	// Compression enables Snappy block compression.
	Compression bool `koanf:"compression"`

	// GCRatio is the discard ratio passed to value log GC.
	// Default: 0.5.
	GCRatio float64 `koanf:"gc_ratio"`

	// GCInterval is how often the GC service runs.
	// Default: 10m.
	GCInterval time.Duration `koanf:"gc_interval"`

	// TTL expires records that have not been rewritten. Zero keeps them.
	TTL time.Duration `koanf:"ttl"`
}

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	config BadgerConfig
	mu     sync.RWMutex
	closed bool
}

// OpenBadger opens (or creates) the database described by cfg.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("badger path is required")
	}
	if cfg.GCRatio <= 0 || cfg.GCRatio >= 1 {
		cfg.GCRatio = 0.5
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	if cfg.Compression {
		opts.Compression = options.Snappy
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("badger store opened")
	return &BadgerStore{db: db, config: cfg}, nil
}

func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("badger get %s: %w", key, err)
	}
	return out, nil
}

func (s *BadgerStore) Put(_ context.Context, key string, value []byte) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value)
		if s.config.TTL > 0 {
			e = e.WithTTL(s.config.TTL)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("badger put %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Delete(_ context.Context, key string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("badger delete %s: %w", key, err)
	}
	return nil
}

// RunGC reclaims value log space until Badger reports nothing to rewrite.
func (s *BadgerStore) RunGC() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.config.InMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(s.config.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// GCInterval returns the configured GC period.
func (s *BadgerStore) GCInterval() time.Duration {
	if s.config.GCInterval <= 0 {
		return 10 * time.Minute
	}
	return s.config.GCInterval
}

func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *BadgerStore) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}
