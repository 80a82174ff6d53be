// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package promo

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is how an offer's value is applied.
type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
)

// Offer is a promo code definition. When Rule is empty the eligibility
// expression is derived from MinOrder and FirstOrderOnly.
type Offer struct {
	Code           string        `koanf:"code" json:"code" validate:"required"`
	Kind           Kind          `koanf:"kind" json:"kind" validate:"oneof=percentage fixed"`
	Value          float64       `koanf:"value" json:"value" validate:"gt=0"`
	MinOrder       float64       `koanf:"min_order" json:"min_order" validate:"gte=0"`
	FirstOrderOnly bool          `koanf:"first_order_only" json:"first_order_only"`
	ValidFor       time.Duration `koanf:"valid_for" json:"-" validate:"gt=0"`
	Description    string        `koanf:"description" json:"description"`
	Rule           string        `koanf:"rule" json:"-"`

	// ValidUntil is set when the offer joins a Book.
	ValidUntil time.Time `koanf:"-" json:"valid_until"`
}

// Expression returns the CEL eligibility rule for the offer.
func (o *Offer) Expression() string {
	if o.Rule != "" {
		return o.Rule
	}
	expr := fmt.Sprintf("subtotal >= %s", strconv.FormatFloat(o.MinOrder, 'f', -1, 64))
	if !hasFraction(o.MinOrder) {
		expr += ".0"
	}
	if o.FirstOrderOnly {
		expr += " && first_order"
	}
	return expr
}

// Amount is the discount o grants on subtotal, never more than subtotal.
func (o *Offer) Amount(subtotal float64) float64 {
	var amount float64
	switch o.Kind {
	case KindPercentage:
		amount = subtotal * o.Value / 100
	case KindFixed:
		amount = o.Value
	}
	if amount > subtotal {
		amount = subtotal
	}
	return roundCents(amount)
}

const day = 24 * time.Hour

// DefaultOffers is the storefront's standing promotion set.
func DefaultOffers() []Offer {
	return []Offer{
		{
			Code:           "WELCOME20",
			Kind:           KindPercentage,
			Value:          20,
			MinOrder:       25,
			FirstOrderOnly: true,
			ValidFor:       30 * day,
			Description:    "New customer exclusive: 20% off your first order over $25",
		},
		{
			Code:        "BULK15",
			Kind:        KindPercentage,
			Value:       15,
			MinOrder:    75,
			ValidFor:    60 * day,
			Description: "Bulk discount: 15% off orders over $75",
		},
		{
			Code:        "SEASONAL10",
			Kind:        KindPercentage,
			Value:       10,
			MinOrder:    50,
			ValidFor:    15 * day,
			Description: "Seasonal special: 10% off orders over $50",
		},
		{
			Code:        "FREESHIP",
			Kind:        KindFixed,
			Value:       8.99,
			MinOrder:    35,
			ValidFor:    45 * day,
			Description: "Free shipping on orders over $35 (saves $8.99)",
		},
	}
}
