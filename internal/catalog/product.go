// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package catalog

// Category is one of the fixed product categories.
type Category string

const (
	CategoryDates    Category = "dates"
	CategoryFigs     Category = "figs"
	CategoryApricots Category = "apricots"
	CategoryRaisins  Category = "raisins"
	CategoryMixed    Category = "mixed"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryDates, CategoryFigs, CategoryApricots, CategoryRaisins, CategoryMixed}

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }

// ParseCategory returns the category named s and whether it is known.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// NutritionFacts is per-serving nutrition information.
type NutritionFacts struct {
	Calories int    `json:"calories" yaml:"calories" validate:"gte=0"`
	Protein  string `json:"protein" yaml:"protein"`
	Carbs    string `json:"carbs" yaml:"carbs"`
	Fiber    string `json:"fiber" yaml:"fiber"`
	Sugar    string `json:"sugar" yaml:"sugar"`
	Fat      string `json:"fat" yaml:"fat"`
}

// Product is an immutable catalog entry. Callers must treat Features and
// Images as read-only; they are shared with the store.
//
// OriginalPrice and Discount are optional; zero means absent.
type Product struct {
	ID               string         `json:"id" yaml:"id" validate:"required"`
	Name             string         `json:"name" yaml:"name" validate:"required"`
	Category         Category       `json:"category" yaml:"category" validate:"required,category"`
	Price            float64        `json:"price" yaml:"price" validate:"gt=0"`
	OriginalPrice    float64        `json:"original_price,omitempty" yaml:"original_price" validate:"omitempty,gtefield=Price"`
	Discount         int            `json:"discount,omitempty" yaml:"discount" validate:"gte=0,lte=100"`
	Images           []string       `json:"images,omitempty" yaml:"images"`
	Description      string         `json:"description" yaml:"description"`
	ShortDescription string         `json:"short_description" yaml:"short_description"`
	Weight           string         `json:"weight" yaml:"weight"`
	Origin           string         `json:"origin" yaml:"origin"`
	Features         []string       `json:"features" yaml:"features" validate:"dive,required"`
	NutritionFacts   NutritionFacts `json:"nutrition_facts" yaml:"nutrition_facts"`
	InStock          bool           `json:"in_stock" yaml:"in_stock"`
	StockQuantity    int            `json:"stock_quantity" yaml:"stock_quantity" validate:"gte=0"`
	Rating           float64        `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	ReviewCount      int            `json:"review_count" yaml:"review_count" validate:"gte=0"`
	IsBestSeller     bool           `json:"is_best_seller" yaml:"is_best_seller"`
	IsNewArrival     bool           `json:"is_new_arrival" yaml:"is_new_arrival"`
}

// HasFeature reports whether p carries the exact feature tag f.
func (p *Product) HasFeature(f string) bool {
	for _, have := range p.Features {
		if have == f {
			return true
		}
	}
	return false
}

// PriceRange is an inclusive [min, max] price window.
type PriceRange [2]float64

// Min returns the lower bound.
func (r PriceRange) Min() float64 { return r[0] }

// Max returns the upper bound.
func (r PriceRange) Max() float64 { return r[1] }

// Contains reports whether price lies inside the window, bounds included.
func (r PriceRange) Contains(price float64) bool {
	return price >= r[0] && price <= r[1]
}
