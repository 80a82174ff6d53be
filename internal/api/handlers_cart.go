// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tigana/internal/cart"
	"github.com/tomtom215/tigana/internal/catalog"
	"github.com/tomtom215/tigana/internal/metrics"
	"github.com/tomtom215/tigana/internal/promo"
)

// LineView is one cart line as served.
type LineView struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
}

// CartView is the cart as served.
type CartView struct {
	Items      []LineView `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
	PromoCode  string     `json:"promo_code,omitempty"`
}

// SummaryView is the checkout summary plus the applied promotion.
type SummaryView struct {
	cart.Summary
	Promo *promo.Discount `json:"promo,omitempty"`
}

func newCartView(s cart.State, promoCode string) CartView {
	items := s.Items()
	view := CartView{
		Items:      make([]LineView, len(items)),
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
		PromoCode:  promoCode,
	}
	for i := range items {
		view.Items[i] = LineView{
			Product:  items[i].Product,
			Quantity: items[i].Quantity,
			Subtotal: items[i].Subtotal(),
		}
	}
	return view
}

// GetCart handles GET /sessions/{sid}/cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	NewResponseWriter(w, r).Success(newCartView(s.Cart(), s.PromoCode()))
}

// AddCartItem handles POST /sessions/{sid}/cart/items.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	s := h.openSession(w, r)
	if s == nil {
		return
	}
	rw := NewResponseWriter(w, r)
	state, err := s.AddToCart(req.ProductID, req.Quantity)
	if err != nil {
		respondDomainError(rw, r, err)
		return
	}
	rw.Success(newCartView(state, s.PromoCode()))
}

// UpdateCartItem handles PATCH /sessions/{sid}/cart/items/{id}. A quantity
// of zero or less removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	state := s.UpdateQuantity(chi.URLParam(r, "id"), *req.Quantity)
	NewResponseWriter(w, r).Success(newCartView(state, s.PromoCode()))
}

// RemoveCartItem handles DELETE /sessions/{sid}/cart/items/{id}. Removing
// an absent product is not an error.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	state := s.RemoveFromCart(chi.URLParam(r, "id"))
	NewResponseWriter(w, r).Success(newCartView(state, s.PromoCode()))
}

// ClearCart handles DELETE /sessions/{sid}/cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	NewResponseWriter(w, r).Success(newCartView(s.ClearCart(), ""))
}

// CartSummary handles GET /sessions/{sid}/cart/summary.
func (h *Handler) CartSummary(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	sum, discount := s.Summary(h.deps.Promos, h.deps.Shipping, h.deps.Clock())
	NewResponseWriter(w, r).Success(SummaryView{Summary: sum, Promo: discount})
}

// ApplyPromo handles POST /sessions/{sid}/cart/promo.
func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req ApplyPromoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := h.openSession(w, r)
	if s == nil {
		return
	}

	rw := NewResponseWriter(w, r)
	discount, err := s.ApplyPromo(h.deps.Promos, req.Code, h.deps.Clock())
	metrics.PromoApplications.WithLabelValues(promoResult(err)).Inc()
	if err != nil {
		respondDomainError(rw, r, err)
		return
	}
	rw.Success(discount)
}

// RemovePromo handles DELETE /sessions/{sid}/cart/promo.
func (h *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	s := h.openSession(w, r)
	if s == nil {
		return
	}
	s.RemovePromo()
	NewResponseWriter(w, r).NoContent()
}

func promoResult(err error) string {
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, promo.ErrUnknownCode):
		return "unknown"
	case errors.Is(err, promo.ErrNotEligible):
		return "not_eligible"
	case errors.Is(err, promo.ErrExpired):
		return "expired"
	}
	return "error"
}
