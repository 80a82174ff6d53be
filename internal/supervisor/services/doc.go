// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

// Package services adapts long-running components to suture.Service
// (Serve(ctx) error plus String for log identification).
//
//   - HTTPServerService: *http.Server with graceful shutdown
//   - StorageGCService: periodic RunGC on the session store
//   - EventConsumerService: the behavior event consumer loop
//
// The wrappers depend on small interfaces rather than the concrete packages
// so they can be tested with fakes.
package services
