// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tigana/internal/catalog"
	"github.com/tomtom215/tigana/internal/metrics"
	"github.com/tomtom215/tigana/internal/recommend"
)

// PersonalizedRecommendations handles GET /sessions/{sid}/recommendations.
func (h *Handler) PersonalizedRecommendations(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}

	start := time.Now()
	recs := h.deps.Engine.Recommend(recommend.Input(s.Profile()))
	metrics.RecordRecommendation(string(recommend.SurfacePersonalized), time.Since(start), len(recs))

	NewResponseWriter(w, r).List(recs, len(recs))
}

// ExplainRecommendations handles GET /sessions/{sid}/recommendations/explain:
// every candidate with its raw score and full reason list.
func (h *Handler) ExplainRecommendations(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	scored := h.deps.Engine.Explain(recommend.Input(s.Profile()))
	NewResponseWriter(w, r).List(scored, len(scored))
}

// SimilarProducts handles GET /sessions/{sid}/recommendations/similar/{id}.
// Unknown ids yield an empty list.
func (h *Handler) SimilarProducts(w http.ResponseWriter, r *http.Request) {
	h.serveSurface(w, r, recommend.SurfaceSimilar, func() []catalog.Product {
		return h.deps.Engine.Similar(chi.URLParam(r, "id"))
	})
}

// ComplementaryProducts handles GET /sessions/{sid}/recommendations/complementary.
func (h *Handler) ComplementaryProducts(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	h.serveSurface(w, r, recommend.SurfaceComplementary, func() []catalog.Product {
		return h.deps.Engine.Complementary(s.Cart().Items())
	})
}

// TrendingProducts handles GET /sessions/{sid}/recommendations/trending.
func (h *Handler) TrendingProducts(w http.ResponseWriter, r *http.Request) {
	h.serveSurface(w, r, recommend.SurfaceTrending, h.deps.Engine.Trending)
}

// CategoryRecommendations handles GET /categories/{category}/recommendations.
func (h *Handler) CategoryRecommendations(w http.ResponseWriter, r *http.Request) {
	c, ok := catalog.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		NewResponseWriter(w, r).NotFound(ErrCodeNotFound, "Unknown category")
		return
	}
	h.serveSurface(w, r, recommend.SurfaceCategory, func() []catalog.Product {
		return h.deps.Engine.ForCategory(c)
	})
}

func (h *Handler) serveSurface(w http.ResponseWriter, r *http.Request, surface recommend.Surface, list func() []catalog.Product) {
	start := time.Now()
	products := list()
	metrics.RecordRecommendation(string(surface), time.Since(start), len(products))
	NewResponseWriter(w, r).List(products, len(products))
}

// Chat handles POST /chat with a canned FAQ answer.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	answer := h.deps.FAQ.Respond(req.Message)
	metrics.FAQResponses.WithLabelValues(string(answer.Route)).Inc()
	NewResponseWriter(w, r).Success(answer)
}

// Offers handles GET /offers: promotions still valid now.
func (h *Handler) Offers(w http.ResponseWriter, r *http.Request) {
	offers := h.deps.Promos.Active(h.deps.Clock())
	NewResponseWriter(w, r).List(offers, len(offers))
}
