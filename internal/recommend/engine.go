// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package recommend

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/cache"
	"github.com/tomtom215/tigana/internal/catalog"
)

// Engine ranks catalog products for a shopper. It is safe for concurrent use.
type Engine struct {
	mu       sync.RWMutex
	config   *Config
	logger   zerolog.Logger
	products []catalog.Product
	lookup   Catalog
	memo     *cache.LRU[[]Recommendation]

	requestCount atomic.Int64
	memoHits     atomic.Int64
	memoMisses   atomic.Int64
}

// NewEngine creates a recommendation engine over a catalog snapshot.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, products Catalog, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if products == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	e := &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		products: products.All(),
		lookup:   products,
	}
	e.memo = newMemo(e.config)
	return e, nil
}

func newMemo(cfg *Config) *cache.LRU[[]Recommendation] {
	if !cfg.Memo.Enabled {
		return nil
	}
	return cache.NewLRU[[]Recommendation](cfg.Memo.MaxEntries, cfg.Memo.TTL)
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config.Clone()
}

// UpdateConfig swaps the configuration and drops memoized results.
func (e *Engine) UpdateConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.config = cfg.Clone()
	e.memo = newMemo(e.config)

	e.logger.Info().
		Float64("min_score", cfg.MinScore).
		Int("suppress_recent", cfg.SuppressRecent).
		Bool("memo", cfg.Memo.Enabled).
		Msg("recommendation config updated")
	return nil
}

// GetMetrics returns a snapshot of request and memo counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		Requests:   e.requestCount.Load(),
		MemoHits:   e.memoHits.Load(),
		MemoMisses: e.memoMisses.Load(),
	}
}

// Recommend returns the personalized list for input: products outside the
// recently viewed window that clear the score floor, ordered by confidence.
func (e *Engine) Recommend(input Input) []Recommendation {
	e.requestCount.Add(1)

	e.mu.RLock()
	defer e.mu.RUnlock()

	var key string
	if e.memo != nil {
		key = memoKey(input, e.config.SuppressRecent)
		if recs, ok := e.memo.Get(key); ok {
			e.memoHits.Add(1)
			return copyRecommendations(recs)
		}
		e.memoMisses.Add(1)
	}

	recs := e.personalized(input)

	if e.memo != nil {
		e.memo.Add(key, copyRecommendations(recs))
	}

	e.logger.Debug().
		Int("favorites", len(input.FavoriteCategories)).
		Int("viewed", len(input.ViewedProducts)).
		Int("results", len(recs)).
		Msg("personalized recommendations computed")
	return recs
}

// Explain returns every candidate's score and full reason list, unfiltered
// and in catalog order.
func (e *Engine) Explain(input Input) []Scored {
	e.mu.RLock()
	defer e.mu.RUnlock()

	suppressed := recentSet(input.ViewedProducts, e.config.SuppressRecent)
	terms := lowerAll(input.SearchHistory)

	out := make([]Scored, 0, len(e.products))
	for i := range e.products {
		p := &e.products[i]
		if _, skip := suppressed[p.ID]; skip {
			continue
		}
		score, reasons := e.score(p, input, terms)
		out = append(out, Scored{Product: *p, Score: score, Reasons: reasons})
	}
	return out
}

// memoKey digests the parts of input that influence personalized output.
// Only the suppression window of viewed products matters. Every list is
// written as its length followed by length-prefixed elements, so no two
// distinct inputs encode to the same bytes.
func memoKey(input Input, window int) string {
	viewed := input.ViewedProducts
	if len(viewed) > window {
		viewed = viewed[:window]
	}

	buf := make([]byte, 0, 256)
	buf = binary.AppendUvarint(buf, uint64(len(input.FavoriteCategories)))
	for _, c := range input.FavoriteCategories {
		buf = appendString(buf, string(c))
	}
	buf = binary.AppendUvarint(buf, uint64(len(viewed)))
	for _, id := range viewed {
		buf = appendString(buf, id)
	}
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(input.PriceRange.Min()))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(input.PriceRange.Max()))
	buf = binary.AppendUvarint(buf, uint64(len(input.SearchHistory)))
	for _, s := range input.SearchHistory {
		buf = appendString(buf, s)
	}
	return strconv.FormatUint(xxhash.Sum64(buf), 16)
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func copyRecommendations(in []Recommendation) []Recommendation {
	out := make([]Recommendation, len(in))
	copy(out, in)
	return out
}

func take[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
