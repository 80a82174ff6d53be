// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

/*
Package config loads the service configuration in three layers with Koanf:

 1. Defaults from the struct returned by Defaults
 2. An optional YAML file (TIGANA_CONFIG_PATH, ./config.yaml or /etc/tigana/config.yaml)
 3. Environment variables prefixed with TIGANA_

Environment keys map to config paths by dropping the prefix, lower-casing
and turning double underscores into dots:

	TIGANA_SERVER__PORT=8080               -> server.port
	TIGANA_STORAGE__BACKEND=sqlite         -> storage.backend
	TIGANA_STORAGE__BADGER__PATH=/var/lib  -> storage.badger.path
	TIGANA_FAVORITES__CART_ATTRIBUTION=per_category
	TIGANA_SECURITY__CORS_ORIGINS=https://a.example,https://b.example

List-valued keys accept comma-separated strings from the environment.
The merged result is validated before it is returned.

# Example YAML

	server:
	  port: 8080
	storage:
	  backend: badger
	  badger:
	    path: /var/lib/tigana/sessions
	recommend:
	  limits:
	    personalized: 10
	favorites:
	  cart_attribution: per_category
*/
package config
