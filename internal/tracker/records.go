// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package tracker

import "github.com/tomtom215/tigana/internal/catalog"

// Behavior is the implicit signal gathered from a session.
type Behavior struct {
	ProductViews        Counter[int]     `json:"product_views"`
	CategoryViews       Counter[int]     `json:"category_views"`
	SearchQueries       []string         `json:"search_queries"`
	CartAdditions       Counter[int]     `json:"cart_additions"`
	TimeSpentOnProducts Counter[float64] `json:"time_spent_on_products"`
}

// Clone returns a deep copy.
func (b *Behavior) Clone() Behavior {
	return Behavior{
		ProductViews:        b.ProductViews.Clone(),
		CategoryViews:       b.CategoryViews.Clone(),
		SearchQueries:       cloneStrings(b.SearchQueries),
		CartAdditions:       b.CartAdditions.Clone(),
		TimeSpentOnProducts: b.TimeSpentOnProducts.Clone(),
	}
}

// DefaultPriceRange is the price window of a fresh session.
var DefaultPriceRange = catalog.PriceRange{0, 100}

// Preferences is the explicit and derived preference state of a session.
type Preferences struct {
	FavoriteCategories  []catalog.Category `json:"favorite_categories"`
	ViewedProducts      []string           `json:"viewed_products"`
	PurchaseHistory     []string           `json:"purchase_history"`
	PriceRange          catalog.PriceRange `json:"price_range"`
	DietaryRestrictions []string           `json:"dietary_restrictions"`
	SearchHistory       []string           `json:"search_history"`
	Wishlist            []string           `json:"wishlist"`
}

// DefaultPreferences returns the preferences of a fresh session.
func DefaultPreferences() Preferences {
	return Preferences{
		FavoriteCategories:  []catalog.Category{},
		ViewedProducts:      []string{},
		PurchaseHistory:     []string{},
		PriceRange:          DefaultPriceRange,
		DietaryRestrictions: []string{},
		SearchHistory:       []string{},
		Wishlist:            []string{},
	}
}

// Clone returns a deep copy.
func (p *Preferences) Clone() Preferences {
	fav := make([]catalog.Category, len(p.FavoriteCategories))
	copy(fav, p.FavoriteCategories)
	return Preferences{
		FavoriteCategories:  fav,
		ViewedProducts:      cloneStrings(p.ViewedProducts),
		PurchaseHistory:     cloneStrings(p.PurchaseHistory),
		PriceRange:          p.PriceRange,
		DietaryRestrictions: cloneStrings(p.DietaryRestrictions),
		SearchHistory:       cloneStrings(p.SearchHistory),
		Wishlist:            cloneStrings(p.Wishlist),
	}
}

// InWishlist reports wishlist membership.
func (p *Preferences) InWishlist(productID string) bool {
	return indexOf(p.Wishlist, productID) >= 0
}

// Profile is what the recommendation engine needs from a session.
type Profile struct {
	FavoriteCategories []catalog.Category
	ViewedProducts     []string
	PriceRange         catalog.PriceRange
	SearchHistory      []string
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func indexOf(list []string, v string) int {
	for i := range list {
		if list[i] == v {
			return i
		}
	}
	return -1
}

// moveToFront returns list with v first, any earlier copy removed, capped
// at limit entries.
func moveToFront(list []string, v string, limit int) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, v)
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// prepend returns list with v first, capped at limit. Duplicates are kept.
func prepend(list []string, v string, limit int) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, v)
	out = append(out, list...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
