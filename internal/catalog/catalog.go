// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

// Package catalog holds the fixed product collection and its read-only
// queries. A Store never changes after construction, so it is safe to share
// between goroutines without locking.
package catalog

import (
	"fmt"
	"strings"

	"github.com/tomtom215/tigana/internal/validation"
)

// Store is an immutable, validated product collection in catalog order.
type Store struct {
	products []Product
	byID     map[string]int
}

// NewStore validates products and builds a Store. Catalog order is kept as
// given and is the iteration order for every query.
func NewStore(products []Product) (*Store, error) {
	s := &Store{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(s.products, products)

	for i := range s.products {
		p := &s.products[i]
		if verr := validation.ValidateStruct(p); verr != nil {
			return nil, fmt.Errorf("%w %q: %s", ErrInvalidProduct, p.ID, verr.Error())
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
		}
		s.byID[p.ID] = i
	}
	return s, nil
}

// Len returns the number of products.
func (s *Store) Len() int { return len(s.products) }

// All returns every product in catalog order.
func (s *Store) All() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// ByID returns the product with id and whether it exists.
func (s *Store) ByID(id string) (Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

// MustByID is ByID returning ErrProductNotFound for unknown ids.
func (s *Store) MustByID(id string) (Product, error) {
	p, ok := s.ByID(id)
	if !ok {
		return Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, id)
	}
	return p, nil
}

// ByCategory returns the products in category c.
func (s *Store) ByCategory(c Category) []Product {
	return s.filter(func(p *Product) bool { return p.Category == c })
}

// BestSellers returns the products flagged as best sellers.
func (s *Store) BestSellers() []Product {
	return s.filter(func(p *Product) bool { return p.IsBestSeller })
}

// NewArrivals returns the products flagged as new arrivals.
func (s *Store) NewArrivals() []Product {
	return s.filter(func(p *Product) bool { return p.IsNewArrival })
}

// Search returns the products whose name, description or category contains
// query, case-insensitively. An empty query matches everything.
func (s *Store) Search(query string) []Product {
	q := strings.ToLower(query)
	return s.filter(func(p *Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(string(p.Category)), q)
	})
}

func (s *Store) filter(keep func(*Product) bool) []Product {
	out := make([]Product, 0, len(s.products))
	for i := range s.products {
		if keep(&s.products[i]) {
			out = append(out, s.products[i])
		}
	}
	return out
}
