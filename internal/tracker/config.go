// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package tracker

import "fmt"

// CartAttribution selects how cart additions feed favorite categories.
type CartAttribution string

const (
	// AttributionUniform adds half of every product's cart additions to each
	// of dates, figs, apricots and raisins, whatever was added. This keeps
	// rankings compatible with sessions recorded by earlier storefronts.
	AttributionUniform CartAttribution = "uniform"

	// AttributionPerCategory adds half of a product's cart additions to that
	// product's own category only.
	AttributionPerCategory CartAttribution = "per_category"
)

// Config bounds the tracked histories.
type Config struct {
	CartAttribution    CartAttribution `koanf:"cart_attribution"`
	ViewedLimit        int             `koanf:"viewed_limit"`
	SearchQueryLimit   int             `koanf:"search_query_limit"`
	SearchHistoryLimit int             `koanf:"search_history_limit"`
	ProfileSearchTerms int             `koanf:"profile_search_terms"`
	FavoriteCount      int             `koanf:"favorite_count"`
}

// DefaultConfig returns the storefront defaults.
func DefaultConfig() Config {
	return Config{
		CartAttribution:    AttributionUniform,
		ViewedLimit:        50,
		SearchQueryLimit:   50,
		SearchHistoryLimit: 20,
		ProfileSearchTerms: 5,
		FavoriteCount:      3,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.CartAttribution {
	case AttributionUniform, AttributionPerCategory:
	default:
		return fmt.Errorf("favorites.cart_attribution must be %q or %q, got %q",
			AttributionUniform, AttributionPerCategory, c.CartAttribution)
	}
	if c.ViewedLimit <= 0 {
		return fmt.Errorf("tracker.viewed_limit must be positive, got %d", c.ViewedLimit)
	}
	if c.SearchQueryLimit <= 0 {
		return fmt.Errorf("tracker.search_query_limit must be positive, got %d", c.SearchQueryLimit)
	}
	if c.SearchHistoryLimit <= 0 {
		return fmt.Errorf("tracker.search_history_limit must be positive, got %d", c.SearchHistoryLimit)
	}
	if c.ProfileSearchTerms < 0 {
		return fmt.Errorf("tracker.profile_search_terms must be non-negative, got %d", c.ProfileSearchTerms)
	}
	if c.FavoriteCount <= 0 {
		return fmt.Errorf("tracker.favorite_count must be positive, got %d", c.FavoriteCount)
	}
	return nil
}
