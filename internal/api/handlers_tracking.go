// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tigana/internal/catalog"
	"github.com/tomtom215/tigana/internal/session"
	"github.com/tomtom215/tigana/internal/tracker"
)

// ProfileView is the session's preference state as served.
type ProfileView struct {
	Preferences        tracker.Preferences     `json:"preferences"`
	FavoriteCategories []catalog.Category      `json:"favorite_categories"`
	CategoryScores     []tracker.CategoryScore `json:"category_scores"`
}

func newProfileView(s *session.Session) ProfileView {
	scores := s.CategoryScores()
	if scores == nil {
		scores = []tracker.CategoryScore{}
	}
	favorites := s.Profile().FavoriteCategories
	if favorites == nil {
		favorites = []catalog.Category{}
	}
	return ProfileView{
		Preferences:        s.Preferences(),
		FavoriteCategories: favorites,
		CategoryScores:     scores,
	}
}

// TrackView handles POST /sessions/{sid}/track/view and returns the viewed
// product.
func (h *Handler) TrackView(w http.ResponseWriter, r *http.Request) {
	var req TrackViewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	rw := NewResponseWriter(w, r)
	p, err := s.ViewProduct(req.ProductID)
	if err != nil {
		respondDomainError(rw, r, err)
		return
	}
	rw.Success(p)
}

// TrackSearch handles POST /sessions/{sid}/track/search.
func (h *Handler) TrackSearch(w http.ResponseWriter, r *http.Request) {
	var req TrackSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	s.TrackSearch(req.Query)
	NewResponseWriter(w, r).NoContent()
}

// TrackTime handles POST /sessions/{sid}/track/time.
func (h *Handler) TrackTime(w http.ResponseWriter, r *http.Request) {
	var req TrackTimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	if err := s.TrackTime(req.ProductID, req.Seconds); err != nil {
		respondDomainError(NewResponseWriter(w, r), r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// AddToWishlist handles PUT /sessions/{sid}/wishlist/{id}.
func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	rw := NewResponseWriter(w, r)
	if err := s.AddToWishlist(chi.URLParam(r, "id")); err != nil {
		respondDomainError(rw, r, err)
		return
	}
	rw.Success(s.Preferences().Wishlist)
}

// RemoveFromWishlist handles DELETE /sessions/{sid}/wishlist/{id}.
func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	s.RemoveFromWishlist(chi.URLParam(r, "id"))
	NewResponseWriter(w, r).Success(s.Preferences().Wishlist)
}

// ToggleFavorite handles POST /sessions/{sid}/favorites/{category}.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	rw := NewResponseWriter(w, r)
	if err := s.ToggleFavorite(catalog.Category(chi.URLParam(r, "category"))); err != nil {
		respondDomainError(rw, r, err)
		return
	}
	rw.Success(newProfileView(s))
}

// UpdatePriceRange handles PUT /sessions/{sid}/preferences/price-range.
func (h *Handler) UpdatePriceRange(w http.ResponseWriter, r *http.Request) {
	var req PriceRangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	rw := NewResponseWriter(w, r)
	if err := s.UpdatePriceRange(catalog.PriceRange{req.Min, req.Max}); err != nil {
		respondDomainError(rw, r, err)
		return
	}
	rw.Success(newProfileView(s))
}

// UpdateDietary handles PUT /sessions/{sid}/preferences/dietary.
func (h *Handler) UpdateDietary(w http.ResponseWriter, r *http.Request) {
	var req DietaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	if req.Restrictions == nil {
		req.Restrictions = []string{}
	}
	s.UpdateDietaryRestrictions(req.Restrictions)
	NewResponseWriter(w, r).Success(newProfileView(s))
}

// GetPreferences handles GET /sessions/{sid}/preferences.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	NewResponseWriter(w, r).Success(newProfileView(s))
}

// GetBehavior handles GET /sessions/{sid}/behavior.
func (h *Handler) GetBehavior(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	NewResponseWriter(w, r).Success(s.Behavior())
}

// RecordPurchase handles POST /sessions/{sid}/purchases. Every id must
// resolve before any is recorded.
func (h *Handler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rw := NewResponseWriter(w, r)
	for _, id := range req.ProductIDs {
		if _, ok := h.deps.Catalog.ByID(id); !ok {
			rw.NotFound(ErrCodeProductNotFound, "Product not found: "+id)
			return
		}
	}
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	for _, id := range req.ProductIDs {
		if err := s.RecordPurchase(id); err != nil {
			respondDomainError(rw, r, err)
			return
		}
	}
	rw.Success(newProfileView(s))
}

// ResetSession handles DELETE /sessions/{sid}. Stored records are removed
// and the session is dropped from memory.
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if err := h.deps.Sessions.Reset(r.Context(), chi.URLParam(r, "sid")); err != nil {
		respondDomainError(rw, r, err)
		return
	}
	rw.NoContent()
}
