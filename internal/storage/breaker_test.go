// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package storage

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// flakyStore fails writes while failing is set.
type flakyStore struct {
	*MemoryStore
	failing atomic.Bool
	puts    atomic.Int32
}

var errDisk = errors.New("disk unavailable")

func (f *flakyStore) Put(ctx context.Context, key string, value []byte) error {
	f.puts.Add(1)
	if f.failing.Load() {
		return errDisk
	}
	return f.MemoryStore.Put(ctx, key, value)
}

func TestBreakerStore_OpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	inner := &flakyStore{MemoryStore: NewMemoryStore()}
	inner.failing.Store(true)
	b := NewBreakerStore(inner, "test-open", BreakerConfig{
		FailureThreshold: 3,
		Timeout:          time.Hour,
	}, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := b.Put(ctx, "k", []byte("v")); !errors.Is(err, errDisk) {
			t.Fatalf("Put() #%d error = %v, want backend error", i, err)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %s, want open", b.State())
	}

	err := b.Put(ctx, "k", []byte("v"))
	if !errors.Is(err, ErrUnavailable) || !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Put() while open error = %v, want ErrUnavailable", err)
	}
	if got := inner.puts.Load(); got != 3 {
		t.Errorf("backend saw %d writes, want 3", got)
	}

	// Reads bypass the breaker.
	if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() while open error = %v, want ErrNotFound", err)
	}
}

func TestBreakerStore_RecoversAfterTimeout(t *testing.T) {
	t.Parallel()

	inner := &flakyStore{MemoryStore: NewMemoryStore()}
	inner.failing.Store(true)
	b := NewBreakerStore(inner, "test-recover", BreakerConfig{
		FailureThreshold: 1,
		Timeout:          20 * time.Millisecond,
	}, zerolog.Nop())
	ctx := context.Background()

	_ = b.Put(ctx, "k", []byte("v"))
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %s, want open", b.State())
	}

	inner.failing.Store(false)
	time.Sleep(40 * time.Millisecond)

	if err := b.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put() after timeout error = %v", err)
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %s, want closed", b.State())
	}
	if got, _ := b.Get(ctx, "k"); string(got) != "v" {
		t.Errorf("Get() = %q, want v", got)
	}
}

func TestBreakerStore_ForwardsGC(t *testing.T) {
	t.Parallel()

	bs, err := OpenBadger(BadgerConfig{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	b := NewBreakerStore(bs, "test-gc", DefaultBreakerConfig(), zerolog.Nop())
	defer b.Close()

	if err := b.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
	if b.Unwrap() != Store(bs) {
		t.Error("Unwrap() did not return the wrapped store")
	}
}
