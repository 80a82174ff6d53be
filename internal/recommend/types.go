// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package recommend

import (
	"github.com/tomtom215/tigana/internal/catalog"
)

// Reason strings shown next to a personalized recommendation.
const (
	ReasonPriceRange  = "Perfect price for you"
	ReasonSearchMatch = "Matches your searches"
	ReasonBestSeller  = "Popular choice"
	ReasonHighRating  = "Highly rated"
	ReasonPremium     = "Premium quality"
	ReasonFallback    = "Great choice for you"

	// ReasonSeparator joins the leading reasons into one display string.
	ReasonSeparator = " • "
)

// Surface names a recommendation list. Used for metrics and memo keys.
type Surface string

const (
	SurfacePersonalized  Surface = "personalized"
	SurfaceSimilar       Surface = "similar"
	SurfaceCategory      Surface = "category"
	SurfaceTrending      Surface = "trending"
	SurfaceComplementary Surface = "complementary"
)

// Input is the shopper profile that drives personalized scoring. Its field
// set matches tracker.Profile so a profile converts directly.
type Input struct {
	FavoriteCategories []catalog.Category
	ViewedProducts     []string
	PriceRange         catalog.PriceRange
	SearchHistory      []string
}

// Recommendation is a product with an explanation and a confidence in [0, 1].
type Recommendation struct {
	Product    catalog.Product `json:"product"`
	Reason     string          `json:"reason"`
	Confidence float64         `json:"confidence"`
}

// Scored is the full breakdown behind a personalized recommendation.
type Scored struct {
	Product catalog.Product `json:"product"`
	Score   float64         `json:"score"`
	Reasons []string        `json:"reasons"`
}

// Catalog is the read side of the product store the engine ranks over.
type Catalog interface {
	All() []catalog.Product
	ByID(id string) (catalog.Product, bool)
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	Requests   int64 `json:"requests"`
	MemoHits   int64 `json:"memo_hits"`
	MemoMisses int64 `json:"memo_misses"`
}
