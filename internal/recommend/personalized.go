// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/tigana/internal/catalog"
)

// personalized scores every unsuppressed product. Caller holds e.mu.
func (e *Engine) personalized(input Input) []Recommendation {
	suppressed := recentSet(input.ViewedProducts, e.config.SuppressRecent)
	terms := lowerAll(input.SearchHistory)

	recs := make([]Recommendation, 0, len(e.products))
	for i := range e.products {
		p := &e.products[i]
		if _, skip := suppressed[p.ID]; skip {
			continue
		}

		score, reasons := e.score(p, input, terms)
		if score < e.config.MinScore {
			continue
		}

		recs = append(recs, Recommendation{
			Product:    *p,
			Reason:     e.displayReason(reasons),
			Confidence: math.Min(score/100, 1),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	return take(recs, e.config.Limits.Personalized)
}

// score applies the rules in display order. terms are the lower-cased
// search history.
func (e *Engine) score(p *catalog.Product, input Input, terms []string) (float64, []string) {
	w := e.config.Weights
	var score float64
	var reasons []string

	if containsCategory(input.FavoriteCategories, p.Category) {
		score += w.FavoriteCategory
		reasons = append(reasons, "You love "+string(p.Category))
	}
	if input.PriceRange.Contains(p.Price) {
		score += w.PriceRange
		reasons = append(reasons, ReasonPriceRange)
	}
	if matchesSearch(p, terms) {
		score += w.SearchMatch
		reasons = append(reasons, ReasonSearchMatch)
	}
	if p.IsBestSeller {
		score += w.BestSeller
		reasons = append(reasons, ReasonBestSeller)
	}
	if p.Rating >= e.config.HighRating {
		score += w.HighRating
		reasons = append(reasons, ReasonHighRating)
	}
	if e.isPremium(p) {
		score += w.Premium
		reasons = append(reasons, ReasonPremium)
	}
	if p.Discount > e.config.DiscountOver {
		score += w.Discount
		reasons = append(reasons, fmt.Sprintf("%d%% off", p.Discount))
	}
	return score, reasons
}

func (e *Engine) displayReason(reasons []string) string {
	if len(reasons) == 0 {
		return ReasonFallback
	}
	return strings.Join(take(reasons, e.config.MaxReasons), ReasonSeparator)
}

func (e *Engine) isPremium(p *catalog.Product) bool {
	for _, f := range p.Features {
		lf := strings.ToLower(f)
		for _, marker := range e.config.PremiumMarkers {
			if strings.Contains(lf, marker) {
				return true
			}
		}
	}
	return false
}

// matchesSearch reports whether any keyword of p contains any term.
func matchesSearch(p *catalog.Product, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	keywords := make([]string, 0, 3+len(p.Features))
	keywords = append(keywords,
		strings.ToLower(p.Name),
		strings.ToLower(string(p.Category)),
		strings.ToLower(p.Origin),
	)
	for _, f := range p.Features {
		keywords = append(keywords, strings.ToLower(f))
	}

	for _, term := range terms {
		for _, kw := range keywords {
			if strings.Contains(kw, term) {
				return true
			}
		}
	}
	return false
}

func recentSet(viewed []string, window int) map[string]struct{} {
	recent := take(viewed, window)
	set := make(map[string]struct{}, len(recent))
	for _, id := range recent {
		set[id] = struct{}{}
	}
	return set
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func containsCategory(list []catalog.Category, c catalog.Category) bool {
	for _, have := range list {
		if have == c {
			return true
		}
	}
	return false
}
