// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package session

import "errors"

var (
	// ErrInvalidID is returned for session ids that cannot be used as keys.
	ErrInvalidID = errors.New("invalid session id")

	// ErrUnknownCategory is returned when toggling a category outside the catalog.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidPriceRange is returned for negative or inverted ranges.
	ErrInvalidPriceRange = errors.New("invalid price range")
)
