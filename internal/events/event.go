// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/tigana/internal/cart"
	"github.com/tomtom215/tigana/internal/tracker"
)

// Source identifies which engine produced an event.
type Source string

const (
	SourceCart    Source = "cart"
	SourceTracker Source = "tracker"
)

// Event is one behavior record on the stream.
type Event struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Source     Source    `json:"source"`
	Kind       string    `json:"kind"`
	ProductID  string    `json:"product_id,omitempty"`
	Category   string    `json:"category,omitempty"`
	Query      string    `json:"query,omitempty"`
	Seconds    float64   `json:"seconds,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// FromTracker converts a tracker mutation.
func FromTracker(sessionID string, ev tracker.Event) Event {
	return Event{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Source:     SourceTracker,
		Kind:       string(ev.Kind),
		ProductID:  ev.ProductID,
		Category:   string(ev.Category),
		Query:      ev.Query,
		Seconds:    ev.Seconds,
		OccurredAt: time.Now().UTC(),
	}
}

// FromCart converts a dispatched cart action.
func FromCart(sessionID string, a cart.Action) Event {
	e := Event{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Source:     SourceCart,
		Kind:       string(a.Kind()),
		OccurredAt: time.Now().UTC(),
	}
	switch act := a.(type) {
	case cart.AddToCart:
		e.ProductID = act.Product.ID
		e.Category = string(act.Product.Category)
		e.Quantity = act.Quantity
	case cart.RemoveFromCart:
		e.ProductID = act.ProductID
	case cart.UpdateQuantity:
		e.ProductID = act.ProductID
		e.Quantity = act.Quantity
	}
	return e
}

// Marshal encodes the event payload.
func (e *Event) Marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", e.ID, err)
	}
	return data, nil
}

// Unmarshal decodes an event payload.
func Unmarshal(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	if e.Kind == "" {
		return Event{}, fmt.Errorf("unmarshal event: missing kind")
	}
	return e, nil
}
