// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package cart

import "math"

// ShippingPolicy is the flat-rate shipping rule shown at checkout.
type ShippingPolicy struct {
	FreeThreshold float64 `koanf:"free_threshold" json:"free_threshold"`
	FlatRate      float64 `koanf:"flat_rate" json:"flat_rate"`
}

// DefaultShippingPolicy is free shipping from 50, otherwise 8.99.
func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{FreeThreshold: 50, FlatRate: 8.99}
}

// Summary is the checkout view of a cart. Money fields are rounded to cents.
type Summary struct {
	ItemCount            int     `json:"item_count"`
	Subtotal             float64 `json:"subtotal"`
	Discount             float64 `json:"discount"`
	Shipping             float64 `json:"shipping"`
	AmountToFreeShipping float64 `json:"amount_to_free_shipping"`
	Total                float64 `json:"total"`
}

// Summarize prices s under policy. Shipping is based on the undiscounted
// subtotal and an empty cart ships free; discount is subtracted last and
// never drives the total negative.
func Summarize(s State, policy ShippingPolicy, discount float64) Summary {
	subtotal := s.TotalPrice()
	sum := Summary{
		ItemCount: s.TotalItems(),
		Subtotal:  roundCents(subtotal),
		Discount:  roundCents(discount),
	}
	switch {
	case s.IsEmpty():
		sum.AmountToFreeShipping = roundCents(policy.FreeThreshold)
	case subtotal < policy.FreeThreshold:
		sum.Shipping = roundCents(policy.FlatRate)
		sum.AmountToFreeShipping = roundCents(policy.FreeThreshold - subtotal)
	}
	sum.Total = roundCents(math.Max(0, subtotal+sum.Shipping-discount))
	return sum
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
