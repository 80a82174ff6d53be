// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

/*
Package supervisor runs the long-lived parts of the process under a
suture/v4 supervisor tree.

	tigana (root)
	├── data-layer     storage GC (badger value log)
	├── events-layer   behavior event consumer
	└── api-layer      HTTP server

Supervisor events (restarts, backoff, panics) are logged through
sutureslog with an slog logger that writes to zerolog
(logging.NewSlogLogger).

Usage:

	tree := supervisor.NewTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    ...
	}

Service wrappers live in the services subpackage.
*/
package supervisor
