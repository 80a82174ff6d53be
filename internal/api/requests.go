// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package api

// Request structs are validated with go-playground/validator before any
// state is touched. Field names in error details come from the json tags.

// ProductListRequest holds the query parameters of GET /products.
type ProductListRequest struct {
	Category string   `json:"category" validate:"omitempty,category"`
	Query    string   `json:"q" validate:"max=200"`
	MinPrice *float64 `json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice *float64 `json:"max_price" validate:"omitempty,gte=0"`
	Sort     string   `json:"sort" validate:"omitempty,oneof=name price-low price-high rating popular"`
}

// SearchRequest holds the query parameters of GET /search.
type SearchRequest struct {
	Query string `json:"q" validate:"required,max=200"`
}

// AddToCartRequest is the body of POST /sessions/{sid}/cart/items.
// A missing quantity means one.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1,lte=999"`
}

// UpdateQuantityRequest is the body of PATCH /sessions/{sid}/cart/items/{id}.
// Zero or negative quantities remove the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=999"`
}

// ApplyPromoRequest is the body of POST /sessions/{sid}/cart/promo.
type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

// TrackViewRequest is the body of POST /sessions/{sid}/track/view.
type TrackViewRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
}

// TrackSearchRequest is the body of POST /sessions/{sid}/track/search.
// Blank queries are accepted and ignored.
type TrackSearchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

// TrackTimeRequest is the body of POST /sessions/{sid}/track/time.
type TrackTimeRequest struct {
	ProductID string  `json:"product_id" validate:"required,max=64"`
	Seconds   float64 `json:"seconds" validate:"gte=0,lte=86400"`
}

// PriceRangeRequest is the body of PUT /sessions/{sid}/preferences/price-range.
type PriceRangeRequest struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// DietaryRequest is the body of PUT /sessions/{sid}/preferences/dietary.
type DietaryRequest struct {
	Restrictions []string `json:"restrictions" validate:"max=20,dive,required,max=64"`
}

// PurchaseRequest is the body of POST /sessions/{sid}/purchases.
type PurchaseRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1,max=100,dive,required,max=64"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}
