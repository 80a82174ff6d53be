// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

// Package recommend turns catalog data plus a shopper's tracked behavior and
// cart into ranked, explained product suggestions.
//
// # Surfaces
//
// The engine exposes five read-only surfaces:
//
//   - Recommend: personalized list scored by additive rules, each rule that
//     fires contributing a weight and a human-readable reason
//   - Similar: products sharing a category, origin or feature with a given one
//   - ForCategory: best products inside one category
//   - Trending: best sellers and new arrivals
//   - Complementary: cross-sell for a cart, other categories with shared features
//
// # Determinism
//
// Every surface is a pure function of the catalog, the engine configuration
// and the caller's input. All rankings use stable sorts so ties keep catalog
// order. The optional memo caches personalized results keyed on a digest of
// the input and is purged whenever the configuration changes, so it never
// alters output.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, logger)
//	if err != nil {
//	    return err
//	}
//	recs := engine.Recommend(recommend.Input(tracker.Profile()))
//
// # Thread Safety
//
// The engine is safe for concurrent use. Configuration updates take an
// exclusive lock; scoring takes a shared one.
package recommend
