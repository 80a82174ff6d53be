// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/tigana/internal/session"
)

// NewRouter mounts every route on a chi router.
//
// Route layout:
//
//	/health, /metrics                      process probes
//	/api/v1/products, /search, /categories catalog reads
//	/api/v1/sessions/{sid}/...             cart, tracking, preferences, recommendations
//	/api/v1/chat, /api/v1/offers           FAQ answers and active promotions
func NewRouter(h *Handler, mw *Middleware) http.Handler {
	if mw == nil {
		mw = NewMiddleware(nil)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.Recoverer)
	r.Use(PrometheusMetrics)
	r.Use(RequestLogger)
	r.Use(SecurityHeaders())
	r.Use(mw.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(mw.LimitBody())
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/health", h.Health)

		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/search", h.Search)
		r.Get("/categories", h.Categories)
		r.Get("/categories/{category}/products", h.ProductsByCategory)
		r.Get("/categories/{category}/recommendations", h.CategoryRecommendations)

		r.Post("/chat", h.Chat)
		r.Get("/offers", h.Offers)

		r.Route("/sessions/{sid}", func(r chi.Router) {
			r.Use(validSessionID)
			r.Use(SessionContext)

			r.Delete("/", h.ResetSession)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.GetCart)
				r.Delete("/", h.ClearCart)
				r.Post("/items", h.AddCartItem)
				r.Patch("/items/{id}", h.UpdateCartItem)
				r.Delete("/items/{id}", h.RemoveCartItem)
				r.Get("/summary", h.CartSummary)
				r.Post("/promo", h.ApplyPromo)
				r.Delete("/promo", h.RemovePromo)
			})

			r.Route("/track", func(r chi.Router) {
				r.Use(mw.TrackingThrottle())
				r.Post("/view", h.TrackView)
				r.Post("/search", h.TrackSearch)
				r.Post("/time", h.TrackTime)
			})

			r.Put("/wishlist/{id}", h.AddToWishlist)
			r.Delete("/wishlist/{id}", h.RemoveFromWishlist)
			r.Post("/favorites/{category}", h.ToggleFavorite)
			r.Get("/preferences", h.GetPreferences)
			r.Put("/preferences/price-range", h.UpdatePriceRange)
			r.Put("/preferences/dietary", h.UpdateDietary)
			r.Get("/behavior", h.GetBehavior)
			r.Post("/purchases", h.RecordPurchase)

			r.Route("/recommendations", func(r chi.Router) {
				r.Get("/", h.PersonalizedRecommendations)
				r.Get("/explain", h.ExplainRecommendations)
				r.Get("/similar/{id}", h.SimilarProducts)
				r.Get("/complementary", h.ComplementaryProducts)
				r.Get("/trending", h.TrendingProducts)
			})
		})
	})

	return r
}

func validSessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.ValidID(chi.URLParam(r, "sid")) {
			WriteError(w, r, http.StatusBadRequest, ErrCodeInvalidSession, "Invalid session id")
			return
		}
		next.ServeHTTP(w, r)
	})
}
