// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package catalog

import "testing"

func ptr(f float64) *float64 { return &f }

func TestList(t *testing.T) {
	t.Parallel()

	s := mustDefault(t)
	tests := []struct {
		name string
		opts ListOptions
		want string
	}{
		{"name order", ListOptions{}, "4,8,7,6,5,1,9,10,3,2"},
		{"price low", ListOptions{Sort: SortPriceLow}, "7,2,8,3,5,4,1,6,10,9"},
		{"price high", ListOptions{Sort: SortPriceHigh}, "9,6,10,1,4,5,3,8,2,7"},
		{"rating stable ties", ListOptions{Sort: SortRating}, "1,6,9,3,5,4,2,8,7,10"},
		{"popular", ListOptions{Sort: SortPopular}, "9,1,7,5,3,8,4,10,2,6"},
		{"category", ListOptions{Category: CategoryFigs, Sort: SortPriceLow}, "3,4"},
		{"search then category", ListOptions{Query: "medjool", Category: CategoryMixed}, "9"},
		{"price window", ListOptions{MinPrice: ptr(13.99), MaxPrice: ptr(16.99), Sort: SortPriceLow}, "8,3,5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ids(s.List(tt.opts)); got != tt.want {
				t.Errorf("List() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	t.Parallel()

	if o, err := ParseSortOrder(""); err != nil || o != SortName {
		t.Errorf("ParseSortOrder(\"\") = %v, %v", o, err)
	}
	if _, err := ParseSortOrder("cheapest"); err == nil {
		t.Error("ParseSortOrder(cheapest) should fail")
	}
}
