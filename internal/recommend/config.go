// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits caps the length of each surface's result.
	Limits LimitsConfig `koanf:"limits" json:"limits"`

	// Weights are the points each personalized rule contributes.
	Weights RuleWeights `koanf:"weights" json:"weights"`

	// SuppressRecent is how many of the most recently viewed products are
	// excluded from personalized results.
	// Default: 10.
	SuppressRecent int `koanf:"suppress_recent" json:"suppress_recent"`

	// MinScore is the floor below which a product is not recommended.
	// Default: 20.
	MinScore float64 `koanf:"min_score" json:"min_score"`

	// HighRating is the rating at or above which the high rating rule fires.
	// Default: 4.7.
	HighRating float64 `koanf:"high_rating" json:"high_rating"`

	// DiscountOver is the discount percentage a product must exceed for the
	// discount rule to fire.
	// Default: 15.
	DiscountOver int `koanf:"discount_over" json:"discount_over"`

	// PremiumMarkers are lower-case substrings of a feature that mark a
	// product as premium.
	PremiumMarkers []string `koanf:"premium_markers" json:"premium_markers"`

	// MaxReasons is how many reasons are joined into the displayed reason.
	// Default: 2.
	MaxReasons int `koanf:"max_reasons" json:"max_reasons"`

	// Memo controls caching of personalized results.
	Memo MemoConfig `koanf:"memo" json:"memo"`
}

// LimitsConfig contains result sizes per surface.
type LimitsConfig struct {
	Personalized  int `koanf:"personalized" json:"personalized"`
	Similar       int `koanf:"similar" json:"similar"`
	Category      int `koanf:"category" json:"category"`
	Trending      int `koanf:"trending" json:"trending"`
	Complementary int `koanf:"complementary" json:"complementary"`
}

// RuleWeights holds the score contribution of each personalized rule.
type RuleWeights struct {
	FavoriteCategory float64 `koanf:"favorite_category" json:"favorite_category"`
	PriceRange       float64 `koanf:"price_range" json:"price_range"`
	SearchMatch      float64 `koanf:"search_match" json:"search_match"`
	BestSeller       float64 `koanf:"best_seller" json:"best_seller"`
	HighRating       float64 `koanf:"high_rating" json:"high_rating"`
	Premium          float64 `koanf:"premium" json:"premium"`
	Discount         float64 `koanf:"discount" json:"discount"`
}

// MemoConfig contains caching parameters.
type MemoConfig struct {
	// Enabled controls whether personalized results are memoized.
	// Default: true.
	Enabled bool `koanf:"enabled" json:"enabled"`

	// MaxEntries is the maximum number of cached inputs.
	// Default: 1024.
	MaxEntries int `koanf:"max_entries" json:"max_entries"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `koanf:"ttl" json:"ttl"`
}

// DefaultConfig returns the storefront's standard ranking rules.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			Personalized:  8,
			Similar:       4,
			Category:      6,
			Trending:      6,
			Complementary: 3,
		},
		Weights: RuleWeights{
			FavoriteCategory: 40,
			PriceRange:       20,
			SearchMatch:      25,
			BestSeller:       15,
			HighRating:       10,
			Premium:          10,
			Discount:         15,
		},
		SuppressRecent: 10,
		MinScore:       20,
		HighRating:     4.7,
		DiscountOver:   15,
		PremiumMarkers: []string{"organic", "premium", "no sulfur", "sun-dried"},
		MaxReasons:     2,
		Memo: MemoConfig{
			Enabled:    true,
			MaxEntries: 1024,
			TTL:        5 * time.Minute,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	limits := []struct {
		name  string
		value int
	}{
		{"limits.personalized", c.Limits.Personalized},
		{"limits.similar", c.Limits.Similar},
		{"limits.category", c.Limits.Category},
		{"limits.trending", c.Limits.Trending},
		{"limits.complementary", c.Limits.Complementary},
	}
	for _, l := range limits {
		if l.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", l.name, l.value)
		}
	}

	weights := map[string]float64{
		"weights.favorite_category": c.Weights.FavoriteCategory,
		"weights.price_range":       c.Weights.PriceRange,
		"weights.search_match":      c.Weights.SearchMatch,
		"weights.best_seller":       c.Weights.BestSeller,
		"weights.high_rating":       c.Weights.HighRating,
		"weights.premium":           c.Weights.Premium,
		"weights.discount":          c.Weights.Discount,
	}
	for name, w := range weights {
		if w < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", name, w)
		}
	}

	if c.SuppressRecent < 0 {
		return fmt.Errorf("suppress_recent must be non-negative, got %d", c.SuppressRecent)
	}
	if c.MinScore < 0 {
		return fmt.Errorf("min_score must be non-negative, got %f", c.MinScore)
	}
	if c.HighRating < 0 || c.HighRating > 5 {
		return fmt.Errorf("high_rating must be in [0, 5], got %f", c.HighRating)
	}
	if c.DiscountOver < 0 || c.DiscountOver > 100 {
		return fmt.Errorf("discount_over must be in [0, 100], got %d", c.DiscountOver)
	}
	if c.MaxReasons <= 0 {
		return fmt.Errorf("max_reasons must be positive, got %d", c.MaxReasons)
	}
	if c.Memo.Enabled {
		if c.Memo.MaxEntries <= 0 {
			return fmt.Errorf("memo.max_entries must be positive when memo is enabled, got %d", c.Memo.MaxEntries)
		}
		if c.Memo.TTL <= 0 {
			return fmt.Errorf("memo.ttl must be positive when memo is enabled, got %s", c.Memo.TTL)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.PremiumMarkers = append([]string(nil), c.PremiumMarkers...)
	return &clone
}
