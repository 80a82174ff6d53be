// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package tracker

import (
	"sort"

	"github.com/tomtom215/tigana/internal/catalog"
)

// uniformBonusCategories receive the flat cart bonus in AttributionUniform.
// Mixed is deliberately absent.
var uniformBonusCategories = []catalog.Category{
	catalog.CategoryDates,
	catalog.CategoryFigs,
	catalog.CategoryApricots,
	catalog.CategoryRaisins,
}

// CategoryScore is one ranked category.
type CategoryScore struct {
	Category catalog.Category `json:"category"`
	Score    float64          `json:"score"`
}

// ProductLookup resolves product ids. *catalog.Store implements it.
type ProductLookup interface {
	ByID(id string) (catalog.Product, bool)
}

// scoreCategories ranks categories by views*2 plus half the cart additions,
// distributed according to mode. Ties keep first-encountered order: view
// order first, then the order in which the cart signal introduced a key.
func scoreCategories(b *Behavior, mode CartAttribution, products ProductLookup) []CategoryScore {
	var scores []CategoryScore
	at := make(map[catalog.Category]int)
	add := func(c catalog.Category, v float64) {
		i, ok := at[c]
		if !ok {
			i = len(scores)
			at[c] = i
			scores = append(scores, CategoryScore{Category: c})
		}
		scores[i].Score += v
	}

	for _, e := range b.CategoryViews.entries {
		add(catalog.Category(e.Key), float64(e.Value)*2)
	}

	for _, e := range b.CartAdditions.entries {
		bonus := float64(e.Value) * 0.5
		switch mode {
		case AttributionPerCategory:
			if products == nil {
				continue
			}
			if p, ok := products.ByID(e.Key); ok {
				add(p.Category, bonus)
			}
		default:
			for _, c := range uniformBonusCategories {
				add(c, bonus)
			}
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}
