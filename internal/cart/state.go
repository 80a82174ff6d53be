// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

// Package cart implements the shopping cart as a pure reducer over a closed
// action set, plus a thin Cart shell that serializes dispatches and notifies
// listeners after every mutation.
//
// Aggregates are never stored independently of the lines: every State is
// built by newState, which folds the line list.
package cart

import "github.com/tomtom215/tigana/internal/catalog"

// Line is one (product, quantity) pair. Quantity is always positive inside
// a State.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price * quantity.
func (l *Line) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// State is an immutable cart snapshot. The zero value is an empty cart.
type State struct {
	items      []Line
	totalItems int
	totalPrice float64
}

func newState(items []Line) State {
	s := State{items: items}
	for i := range items {
		s.totalItems += items[i].Quantity
		s.totalPrice += items[i].Subtotal()
	}
	return s
}

// Items returns a copy of the lines in first-added order.
func (s State) Items() []Line {
	out := make([]Line, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of distinct lines.
func (s State) Len() int { return len(s.items) }

// TotalItems is the sum of all quantities.
func (s State) TotalItems() int { return s.totalItems }

// TotalPrice is the sum of price * quantity.
func (s State) TotalPrice() float64 { return s.totalPrice }

// IsEmpty reports whether the cart has no lines.
func (s State) IsEmpty() bool { return len(s.items) == 0 }

// Quantity returns the quantity held for productID, or 0.
func (s State) Quantity(productID string) int {
	if i := s.index(productID); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

// Contains reports whether productID has a line.
func (s State) Contains(productID string) bool {
	return s.index(productID) >= 0
}

func (s State) index(productID string) int {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
