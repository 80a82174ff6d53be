// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tigana/internal/catalog"
)

// ListProducts handles GET /products.
//
// Query parameters: category, q, min_price, max_price and sort (name,
// price-low, price-high, rating, popular). Price bounds are inclusive and
// open when omitted.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()

	req := ProductListRequest{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		Sort:     q.Get("sort"),
	}
	var err error
	if req.MinPrice, err = floatQuery(r, "min_price"); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if req.MaxPrice, err = floatQuery(r, "max_price"); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MaxPrice < *req.MinPrice {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, "max_price must be greater than or equal to min_price")
		return
	}

	order, err := catalog.ParseSortOrder(req.Sort)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	products := h.deps.Catalog.List(catalog.ListOptions{
		Category: catalog.Category(req.Category),
		Query:    req.Query,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Sort:     order,
	})
	rw.List(products, len(products))
}

// GetProduct handles GET /products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := h.deps.Catalog.ByID(chi.URLParam(r, "id"))
	if !ok {
		rw.NotFound(ErrCodeProductNotFound, "Product not found")
		return
	}
	rw.Success(p)
}

// ProductsByCategory handles GET /categories/{category}/products.
func (h *Handler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := catalog.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		rw.NotFound(ErrCodeNotFound, "Unknown category")
		return
	}
	products := h.deps.Catalog.ByCategory(c)
	rw.List(products, len(products))
}

// Search handles GET /search?q=. Matching is a case-insensitive substring
// test on name, description and category.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req := SearchRequest{Query: r.URL.Query().Get("q")}
	if !validateRequest(rw, &req) {
		return
	}
	products := h.deps.Catalog.Search(req.Query)
	rw.List(products, len(products))
}

// Categories handles GET /categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).List(catalog.Categories, len(catalog.Categories))
}
