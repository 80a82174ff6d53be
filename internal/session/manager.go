// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

// Package session binds a cart and a tracker to one shopper and keeps them
// in step with the key-value store.
//
// A Manager hydrates sessions on first use and caches them. Each record
// (cart, preferences, behavior) is read once at open; a missing record
// starts from defaults, and an unreadable or malformed one is logged,
// counted and replaced by defaults. Every mutation afterwards writes the
// affected record through and publishes a behavior event.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/cache"
	"github.com/tomtom215/tigana/internal/cart"
	"github.com/tomtom215/tigana/internal/catalog"
	"github.com/tomtom215/tigana/internal/metrics"
	"github.com/tomtom215/tigana/internal/storage"
	"github.com/tomtom215/tigana/internal/tracker"
	"github.com/tomtom215/tigana/internal/validation"
)

// idRule keeps ids usable inside "session:{id}:{record}" keys.
const idRule = "required,max=128,printascii,excludesall=: /"

// Manager opens and caches sessions.
type Manager struct {
	cfg        Config
	trackerCfg tracker.Config
	store      storage.Store
	products   *catalog.Store
	publisher  Publisher
	logger     zerolog.Logger

	mu       sync.Mutex
	sessions *cache.LRU[*Session]
	opening  map[string]*opening
}

// opening is an in-flight hydration. Concurrent Opens of the same id wait on
// done and share s; other ids are not blocked by it.
type opening struct {
	done chan struct{}
	s    *Session
}

// NewManager returns a manager writing to store. publisher may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewManager(
	cfg Config,
	trackerCfg tracker.Config,
	store storage.Store,
	products *catalog.Store,
	publisher Publisher,
	logger zerolog.Logger,
) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := trackerCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil || products == nil {
		return nil, errors.New("session manager needs a store and a catalog")
	}
	return &Manager{
		cfg:        cfg,
		trackerCfg: trackerCfg,
		store:      store,
		products:   products,
		publisher:  publisher,
		logger:     logger.With().Str("component", "session").Logger(),
		sessions:   cache.NewLRU[*Session](cfg.MaxOpen, cfg.IdleTTL),
		opening:    make(map[string]*opening),
	}, nil
}

// ValidID reports whether id can name a session.
func ValidID(id string) bool {
	return validation.GetValidator().Var(id, idRule) == nil
}

// Open returns the cached session for id, hydrating it from the store on
// first use. It fails only for invalid ids; storage problems degrade to
// default records. Store reads run outside the manager lock, and concurrent
// Opens of one id share a single hydration.
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	m.mu.Lock()
	if s, ok := m.sessions.Get(id); ok {
		m.mu.Unlock()
		return s, nil
	}
	if op, ok := m.opening[id]; ok {
		m.mu.Unlock()
		select {
		case <-op.done:
			return op.s, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	op := &opening{done: make(chan struct{})}
	m.opening[id] = op
	m.mu.Unlock()

	s := m.newSession(ctx, id)

	m.mu.Lock()
	// Reset drops the in-flight entry; a session hydrated before the reset
	// is handed to its waiters but not cached.
	if m.opening[id] == op {
		delete(m.opening, id)
		m.sessions.Add(id, s)
		metrics.SessionsOpen.Set(float64(m.sessions.Len()))
	}
	m.mu.Unlock()

	op.s = s
	close(op.done)
	s.logger.Debug().Int("cart_lines", s.cart.State().Len()).Msg("Session opened")
	return s, nil
}

// newSession builds and hydrates the session for id and wires its
// write-through listeners.
func (m *Manager) newSession(ctx context.Context, id string) *Session {
	logger := m.logger.With().Str("session_id", id).Logger()
	s := &Session{
		id:       id,
		products: m.products,
		logger:   logger,
		cart:     cart.New(logger),
		tracker:  tracker.New(m.trackerCfg, m.products, logger),
		openedAt: time.Now(),
	}
	m.hydrate(ctx, s)

	w := &writer{
		id:        id,
		store:     m.store,
		publisher: m.publisher,
		timeout:   m.cfg.WriteTimeout,
		logger:    logger,
	}
	s.cart.OnChange(w.cartChanged)
	s.tracker.OnChange(w.trackerChanged)
	return s
}

// Forget drops id from the cache. Persisted records are kept.
func (m *Manager) Forget(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	ok := m.sessions.Remove(id)
	metrics.SessionsOpen.Set(float64(m.sessions.Len()))
	return ok
}

// Reset deletes id's persisted records and drops it from the cache.
func (m *Manager) Reset(ctx context.Context, id string) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions.Remove(id)
	delete(m.opening, id)
	metrics.SessionsOpen.Set(float64(m.sessions.Len()))
	for _, kind := range storage.RecordKinds {
		if err := m.store.Delete(ctx, storage.SessionKey(id, kind)); err != nil {
			return fmt.Errorf("reset %s: %w", kind, err)
		}
	}
	return nil
}

// Len returns the number of cached sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// hydrate loads the three records into s without notifying listeners.
func (m *Manager) hydrate(ctx context.Context, s *Session) {
	if rec, ok := readRecord(ctx, m, s, storage.RecordCart, func() cartRecord { return cartRecord{} }); ok {
		s.cart.Load(m.resolveLines(s, rec.Items))
	}

	behavior, _ := readRecord(ctx, m, s, storage.RecordBehavior, func() tracker.Behavior { return tracker.Behavior{} })
	prefs, _ := readRecord(ctx, m, s, storage.RecordPreferences, tracker.DefaultPreferences)
	s.tracker.Load(behavior, prefs)
}

// resolveLines swaps stored product snapshots for current catalog entries
// and drops ids the catalog no longer has.
func (m *Manager) resolveLines(s *Session, lines []cart.Line) []cart.Line {
	out := make([]cart.Line, 0, len(lines))
	for _, l := range lines {
		p, ok := m.products.ByID(l.Product.ID)
		if !ok {
			s.logger.Warn().Str("product_id", l.Product.ID).Msg("Dropping unknown product from stored cart")
			continue
		}
		out = append(out, cart.Line{Product: p, Quantity: l.Quantity})
	}
	return out
}

// readRecord returns the stored record of kind, or fresh() when it is
// absent, unreadable or fails its schema. ok reports a successful load.
func readRecord[T any](ctx context.Context, m *Manager, s *Session, kind storage.RecordKind, fresh func() T) (T, bool) {
	data, err := m.store.Get(ctx, storage.SessionKey(s.id, kind))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fresh(), false
	case err != nil:
		return fallback(s, kind, "read_error", err, fresh)
	}

	if err := storage.CheckRecord(kind, data); err != nil {
		return fallback(s, kind, "invalid", err, fresh)
	}
	v := fresh()
	if err := json.Unmarshal(data, &v); err != nil {
		return fallback(s, kind, "decode", err, fresh)
	}
	return v, true
}

func fallback[T any](s *Session, kind storage.RecordKind, reason string, err error, fresh func() T) (T, bool) {
	metrics.RecordHydrationFallback(string(kind), reason)
	s.logger.Warn().Err(err).
		Str("record", string(kind)).
		Str("reason", reason).
		Msg("Discarding stored record, using defaults")
	return fresh(), false
}
