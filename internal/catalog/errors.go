// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package catalog

import "errors"

var (
	// ErrProductNotFound is returned by lookups that must resolve an id.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateID is returned when two catalog entries share an id.
	ErrDuplicateID = errors.New("duplicate product id")

	// ErrInvalidProduct wraps struct validation failures at load time.
	ErrInvalidProduct = errors.New("invalid product")
)
