// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package promo

import "errors"

var (
	// ErrUnknownCode is returned for codes that are not in the book.
	ErrUnknownCode = errors.New("unknown promo code")

	// ErrNotEligible is returned when the order does not satisfy the code's rule.
	ErrNotEligible = errors.New("order not eligible for promo code")

	// ErrExpired is returned once a code is past its validity window.
	ErrExpired = errors.New("promo code expired")
)
