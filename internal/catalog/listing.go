// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package catalog

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder selects the listing order.
type SortOrder string

const (
	SortName      SortOrder = "name"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
	SortPopular   SortOrder = "popular"
)

// ParseSortOrder validates s. The empty string selects SortName.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return SortName, nil
	case SortName, SortPriceLow, SortPriceHigh, SortRating, SortPopular:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// ListOptions filters and orders a listing. Nil price bounds are open.
type ListOptions struct {
	Category Category
	Query    string
	MinPrice *float64
	MaxPrice *float64
	Sort     SortOrder
}

// List applies the storefront listing rules: search narrows first, then
// category, then the inclusive price window, then a stable sort.
func (s *Store) List(opts ListOptions) []Product {
	var out []Product
	if opts.Query != "" {
		out = s.Search(opts.Query)
	} else {
		out = s.All()
	}

	filtered := out[:0]
	for i := range out {
		p := &out[i]
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		if opts.MinPrice != nil && p.Price < *opts.MinPrice {
			continue
		}
		if opts.MaxPrice != nil && p.Price > *opts.MaxPrice {
			continue
		}
		filtered = append(filtered, *p)
	}

	sortProducts(filtered, opts.Sort)
	return filtered
}

// PopularityScore is the listing "popular" key.
func PopularityScore(p *Product) float64 {
	score := float64(p.ReviewCount) / 10
	if p.IsBestSeller {
		score += 10
	}
	return score
}

var (
	nameCollator     *collate.Collator
	nameCollatorOnce sync.Once
	nameCollatorMu   sync.Mutex
)

// compareNames orders product names the way a reader of English expects,
// ignoring case before falling back to it. Collator is not goroutine safe.
func compareNames(a, b string) int {
	nameCollatorOnce.Do(func() {
		nameCollator = collate.New(language.English)
	})
	nameCollatorMu.Lock()
	defer nameCollatorMu.Unlock()
	return nameCollator.CompareString(a, b)
}

func sortProducts(ps []Product, order SortOrder) {
	var less func(i, j int) bool
	switch order {
	case SortPriceLow:
		less = func(i, j int) bool { return ps[i].Price < ps[j].Price }
	case SortPriceHigh:
		less = func(i, j int) bool { return ps[i].Price > ps[j].Price }
	case SortRating:
		less = func(i, j int) bool { return ps[i].Rating > ps[j].Rating }
	case SortPopular:
		less = func(i, j int) bool { return PopularityScore(&ps[i]) > PopularityScore(&ps[j]) }
	default:
		less = func(i, j int) bool { return compareNames(ps[i].Name, ps[j].Name) < 0 }
	}
	sort.SliceStable(ps, less)
}
