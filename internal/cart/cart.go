// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package cart

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/catalog"
)

// Listener is called after a mutation with the action and resulting state.
// Listeners run synchronously under the cart lock and must not call back
// into the same Cart.
type Listener func(a Action, s State)

// Cart owns one session's state and serializes dispatches.
type Cart struct {
	mu        sync.Mutex
	state     State
	listeners []Listener
	logger    zerolog.Logger
}

// New returns an empty cart.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(logger zerolog.Logger) *Cart {
	return &Cart{logger: logger.With().Str("component", "cart").Logger()}
}

// OnChange registers l for every mutation except LoadCart.
func (c *Cart) OnChange(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Dispatch applies a and notifies listeners. Hydration (LoadCart) does not
// notify, so loading never writes back what was just read. A nil action is
// a no-op.
func (c *Cart) Dispatch(a Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if a == nil {
		return c.state
	}

	c.state = Reduce(c.state, a)
	c.logger.Debug().
		Str("action", string(a.Kind())).
		Int("lines", c.state.Len()).
		Int("total_items", c.state.TotalItems()).
		Msg("Cart action applied")

	if a.Kind() != KindLoad {
		for _, l := range c.listeners {
			l(a, c.state)
		}
	}
	return c.state
}

// AddToCart adds quantity of p. Callers wanting the default pass 1.
//
//nolint:gocritic // hugeParam: products are passed by value like every catalog read
func (c *Cart) AddToCart(p catalog.Product, quantity int) State {
	return c.Dispatch(AddToCart{Product: p, Quantity: quantity})
}

// RemoveFromCart removes productID's line.
func (c *Cart) RemoveFromCart(productID string) State {
	return c.Dispatch(RemoveFromCart{ProductID: productID})
}

// UpdateQuantity sets productID's quantity.
func (c *Cart) UpdateQuantity(productID string, quantity int) State {
	return c.Dispatch(UpdateQuantity{ProductID: productID, Quantity: quantity})
}

// Clear empties the cart.
func (c *Cart) Clear() State {
	return c.Dispatch(ClearCart{})
}

// Load hydrates the cart from persisted lines.
func (c *Cart) Load(lines []Line) State {
	return c.Dispatch(LoadCart{Lines: lines})
}

// State returns the current snapshot.
func (c *Cart) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Total returns the current total price.
func (c *Cart) Total() float64 { return c.State().TotalPrice() }

// ItemCount returns the current total quantity.
func (c *Cart) ItemCount() int { return c.State().TotalItems() }
