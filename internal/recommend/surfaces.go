// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package recommend

import (
	"sort"

	"github.com/tomtom215/tigana/internal/cart"
	"github.com/tomtom215/tigana/internal/catalog"
)

// Similar returns products that share a category, an origin or an exact
// feature with productID, best rated first. Unknown ids yield an empty list.
func (e *Engine) Similar(productID string) []catalog.Product {
	e.requestCount.Add(1)
	current, ok := e.lookup.ByID(productID)
	if !ok {
		return []catalog.Product{}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := e.collect(func(p *catalog.Product) bool {
		if p.ID == current.ID {
			return false
		}
		return p.Category == current.Category ||
			p.Origin == current.Origin ||
			sharesFeature(p.Features, current.Features)
	})
	rankBy(out, func(p *catalog.Product) float64 {
		return p.Rating*10 + flag(p.IsBestSeller, 20)
	})
	return take(out, e.config.Limits.Similar)
}

// ForCategory returns the top products inside category.
func (e *Engine) ForCategory(category catalog.Category) []catalog.Product {
	e.requestCount.Add(1)
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := e.collect(func(p *catalog.Product) bool { return p.Category == category })
	rankBy(out, func(p *catalog.Product) float64 {
		return p.Rating*10 + flag(p.IsBestSeller, 20) + float64(p.ReviewCount)/10
	})
	return take(out, e.config.Limits.Category)
}

// Trending returns best sellers and new arrivals, new arrivals weighted
// slightly higher.
func (e *Engine) Trending() []catalog.Product {
	e.requestCount.Add(1)
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := e.collect(func(p *catalog.Product) bool { return p.IsBestSeller || p.IsNewArrival })
	rankBy(out, func(p *catalog.Product) float64 {
		return flag(p.IsNewArrival, 30) + flag(p.IsBestSeller, 25) + p.Rating*5
	})
	return take(out, e.config.Limits.Trending)
}

// Complementary returns cross-sell suggestions for a cart: products not in
// the cart, from a category the cart lacks, sharing at least one feature with
// a cart product. Empty carts get nothing.
func (e *Engine) Complementary(lines []cart.Line) []catalog.Product {
	e.requestCount.Add(1)
	if len(lines) == 0 {
		return []catalog.Product{}
	}

	inCart := make(map[string]struct{}, len(lines))
	categories := make(map[catalog.Category]struct{}, len(lines))
	features := make(map[string]struct{})
	for _, l := range lines {
		inCart[l.Product.ID] = struct{}{}
		categories[l.Product.Category] = struct{}{}
		for _, f := range l.Product.Features {
			features[f] = struct{}{}
		}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := e.collect(func(p *catalog.Product) bool {
		if _, ok := inCart[p.ID]; ok {
			return false
		}
		if _, ok := categories[p.Category]; ok {
			return false
		}
		for _, f := range p.Features {
			if _, ok := features[f]; ok {
				return true
			}
		}
		return false
	})
	rankBy(out, func(p *catalog.Product) float64 { return p.Rating })
	return take(out, e.config.Limits.Complementary)
}

func (e *Engine) collect(keep func(*catalog.Product) bool) []catalog.Product {
	out := make([]catalog.Product, 0)
	for i := range e.products {
		if keep(&e.products[i]) {
			out = append(out, e.products[i])
		}
	}
	return out
}

// rankBy sorts descending by rank, keeping catalog order on ties.
func rankBy(products []catalog.Product, rank func(*catalog.Product) float64) {
	scores := make(map[string]float64, len(products))
	for i := range products {
		scores[products[i].ID] = rank(&products[i])
	}
	sort.SliceStable(products, func(i, j int) bool {
		return scores[products[i].ID] > scores[products[j].ID]
	})
}

func sharesFeature(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func flag(b bool, points float64) float64 {
	if b {
		return points
	}
	return 0
}
