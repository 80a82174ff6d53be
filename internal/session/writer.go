// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package session

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/cart"
	"github.com/tomtom215/tigana/internal/events"
	"github.com/tomtom215/tigana/internal/metrics"
	"github.com/tomtom215/tigana/internal/storage"
	"github.com/tomtom215/tigana/internal/tracker"
)

// Publisher receives behavior events. *events.Publisher implements it.
type Publisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

// cartRecord is the persisted cart. Aggregates are never stored.
type cartRecord struct {
	Items []cart.Line `json:"items"`
}

// writer persists and announces one session's mutations. Its methods are
// registered as cart and tracker listeners and run under those locks.
type writer struct {
	id        string
	store     storage.Store
	publisher Publisher
	timeout   time.Duration
	logger    zerolog.Logger
}

func (w *writer) cartChanged(a cart.Action, s cart.State) {
	metrics.CartMutations.WithLabelValues(string(a.Kind())).Inc()
	w.put(storage.RecordCart, cartRecord{Items: s.Items()})
	w.publish(events.FromCart(w.id, a))
}

//nolint:gocritic // hugeParam: Change carries record snapshots by value
func (w *writer) trackerChanged(c tracker.Change) {
	metrics.TrackerEvents.WithLabelValues(string(c.Event.Kind)).Inc()
	if c.BehaviorChanged {
		w.put(storage.RecordBehavior, &c.Behavior)
	}
	if c.PreferencesChanged {
		w.put(storage.RecordPreferences, &c.Preferences)
	}
	w.publish(events.FromTracker(w.id, c.Event))
}

// put writes one record. Failures are logged and counted only; the
// in-memory state stays authoritative.
func (w *writer) put(kind storage.RecordKind, v any) {
	data, err := json.Marshal(v)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		err = w.store.Put(ctx, storage.SessionKey(w.id, kind), data)
		cancel()
	}
	metrics.RecordStorageWrite(string(kind), err)
	if err != nil {
		w.logger.Warn().Err(err).Str("record", string(kind)).Msg("Session write failed")
	}
}

//nolint:gocritic // hugeParam: events are small value records
func (w *writer) publish(ev events.Event) {
	if w.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	// Publisher logs and counts its own failures.
	_ = w.publisher.Publish(ctx, ev)
}
