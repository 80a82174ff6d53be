// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package cart

import "github.com/tomtom215/tigana/internal/catalog"

// ActionKind names an action for logs, metrics and events.
type ActionKind string

const (
	KindAdd    ActionKind = "add_to_cart"
	KindRemove ActionKind = "remove_from_cart"
	KindUpdate ActionKind = "update_quantity"
	KindClear  ActionKind = "clear_cart"
	KindLoad   ActionKind = "load_cart"
)

// Action is a cart transition. The set is closed: only the types in this
// file implement it.
type Action interface {
	Kind() ActionKind
	apply(State) State
}

// AddToCart increments the product's line by Quantity, appending a line if
// none exists. A resulting quantity <= 0 removes the line.
type AddToCart struct {
	Product  catalog.Product
	Quantity int
}

// RemoveFromCart drops the product's line. Absent ids are a no-op.
type RemoveFromCart struct {
	ProductID string
}

// UpdateQuantity sets an absolute quantity. Quantity <= 0 removes the line;
// absent ids are a no-op.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// ClearCart empties the cart.
type ClearCart struct{}

// LoadCart replaces the cart with hydrated lines. Lines with a non-positive
// quantity are dropped and repeated products are merged into the first line.
type LoadCart struct {
	Lines []Line
}

func (AddToCart) Kind() ActionKind      { return KindAdd }
func (RemoveFromCart) Kind() ActionKind { return KindRemove }
func (UpdateQuantity) Kind() ActionKind { return KindUpdate }
func (ClearCart) Kind() ActionKind      { return KindClear }
func (LoadCart) Kind() ActionKind       { return KindLoad }

// Reduce is the pure transition function. It never fails and never mutates
// s; unchanged transitions return s itself.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

func (a AddToCart) apply(s State) State {
	i := s.index(a.Product.ID)
	if i < 0 {
		if a.Quantity <= 0 {
			return s
		}
		items := make([]Line, len(s.items), len(s.items)+1)
		copy(items, s.items)
		return newState(append(items, Line{Product: a.Product, Quantity: a.Quantity}))
	}

	next := s.items[i].Quantity + a.Quantity
	if next <= 0 {
		return RemoveFromCart{ProductID: a.Product.ID}.apply(s)
	}
	items := s.Items()
	items[i].Quantity = next
	return newState(items)
}

func (a RemoveFromCart) apply(s State) State {
	i := s.index(a.ProductID)
	if i < 0 {
		return s
	}
	items := make([]Line, 0, len(s.items)-1)
	items = append(items, s.items[:i]...)
	items = append(items, s.items[i+1:]...)
	return newState(items)
}

func (a UpdateQuantity) apply(s State) State {
	if a.Quantity <= 0 {
		return RemoveFromCart{ProductID: a.ProductID}.apply(s)
	}
	i := s.index(a.ProductID)
	if i < 0 {
		return s
	}
	items := s.Items()
	items[i].Quantity = a.Quantity
	return newState(items)
}

func (ClearCart) apply(State) State {
	return State{}
}

func (a LoadCart) apply(State) State {
	items := make([]Line, 0, len(a.Lines))
	seen := make(map[string]int, len(a.Lines))
	for _, l := range a.Lines {
		if l.Quantity <= 0 {
			continue
		}
		if at, ok := seen[l.Product.ID]; ok {
			items[at].Quantity += l.Quantity
			continue
		}
		seen[l.Product.ID] = len(items)
		items = append(items, l)
	}
	return newState(items)
}
