// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

// Package main is the entry point for the Tigana server.
//
// Tigana serves the storefront API for a dried fruit shop: catalog browsing
// and search, per-session carts with promo codes, behavior tracking,
// personalized recommendations and a canned FAQ assistant.
//
// # Commands
//
//	tigana serve                       # run the HTTP server under the supervisor tree
//	tigana catalog validate [file]     # check a catalog file
//	tigana catalog list --category figs
//	tigana recommend <session-id>      # offline recommendations for a stored session
//	tigana chat "do you ship abroad?"
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (TIGANA_ prefix, "__" separates nested keys)
//   - Config file (--config, $TIGANA_CONFIG_PATH, ./config.yaml, /etc/tigana/config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// serve shuts down gracefully on SIGINT and SIGTERM: the HTTP server drains
// in-flight requests, the event consumer stops, then the session store is
// closed.
//
// # Exit Codes
//
//	0  success
//	1  the command failed (invalid catalog, server error)
//	2  bad invocation (unreadable config, invalid arguments)
package main

import (
	"fmt"
	"os"

	"github.com/tomtom215/tigana/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tigana:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
