// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

/*
Package storage persists per-session records in a key-value store.

# Backends

  - memory: process-local map, used by tests and the offline CLI
  - badger: embedded BadgerDB, the default for a single node
  - sqlite: one table in an embedded SQLite file (pure Go driver)
  - redis: shared store for several storefront nodes

All backends implement Store. Open picks one from Config and, when enabled,
wraps it in a circuit breaker so a failing backend stops absorbing writes
until it recovers.

# Keys

Records are namespaced per session:

	session:{id}:tigana-cart
	session:{id}:tigana-preferences
	session:{id}:tigana-behavior

# Hydration

Stored records are JSON. CheckRecord validates a payload against the
record's JSON Schema before it is decoded, so malformed state is rejected
as a whole and the caller falls back to defaults.
*/
package storage
