// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

// Package cli implements the tigana command tree. Commands write results
// through OutputFormatter (text or JSON) and report failures as ExitError so
// main can map them to process exit codes.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tomtom215/tigana/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // text or json
	ConfigPath string // empty searches the default locations
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the tigana command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tigana",
		Short: "Tigana - dried fruit storefront core",
		Long: `Tigana serves the dried fruit storefront API: catalog browsing, per-session
carts, behavior tracking, personalized recommendations and the FAQ assistant.

Run "tigana serve" to start the HTTP server. The other commands work offline
against the same configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "",
		"config file (default: $"+config.ConfigPathEnvVar+", ./config.yaml, /etc/tigana/config.yaml)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewRecommendCommand(opts))
	cmd.AddCommand(NewChatCommand(opts))

	return cmd
}

// loadConfig reads the configuration selected by --config.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.LoadFrom(opts.ConfigPath)
	}
	return config.Load()
}
