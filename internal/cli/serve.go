// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/tigana/internal/config"
	"github.com/tomtom215/tigana/internal/events"
	"github.com/tomtom215/tigana/internal/logging"
	"github.com/tomtom215/tigana/internal/supervisor"
	"github.com/tomtom215/tigana/internal/supervisor/services"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP server",
		Long: `Start the REST API under a supervisor tree.

The tree runs the HTTP server, the behavior event consumer (when events are
enabled) and the badger value log GC (when the badger backend is selected).
SIGINT or SIGTERM shuts everything down gracefully.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	initLogging(cfg, opts.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.Logger()
	logger.Info().
		Str("addr", cfg.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("storage", cfg.Storage.Backend).
		Bool("events", cfg.Events.Enabled).
		Msg("Starting Tigana")

	a, err := newApp(ctx, cfg, logger, appOptions{withEvents: true})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to initialize", err)
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("Error closing resources")
		}
	}()

	if cfg.Security.RateLimitDisabled {
		logger.Warn().Msg("Rate limiting is DISABLED; only use this for local testing")
	}

	handler, err := a.handler()
	if err != nil {
		return WrapExitError(ExitFailure, "failed to build router", err)
	}
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger("supervisor"), treeCfg)

	if interval, ok := a.gcInterval(); ok {
		if collector, ok := a.store.(services.Collector); ok {
			tree.AddDataService(services.NewStorageGCService(collector, interval, logger))
			logger.Info().Dur("interval", interval).Msg("Storage GC added to supervisor tree")
		}
	}
	if a.consumer != nil {
		a.consumer.OnEvent(func(ev events.Event) {
			logger.Debug().
				Str("session_id", ev.SessionID).
				Str("source", string(ev.Source)).
				Str("kind", ev.Kind).
				Msg("Behavior event")
		})
		tree.AddEventService(services.NewEventConsumerService(a.consumer))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logger.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// The tree returns once ctx is canceled and every service has stopped
	// or outlived ShutdownTimeout.
	serveErr := <-tree.ServeBackground(ctx)
	if ctx.Err() != nil || errors.Is(serveErr, context.Canceled) {
		serveErr = nil
	}
	if serveErr != nil {
		logger.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logger.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if serveErr != nil {
		return WrapExitError(ExitFailure, "server stopped with an error", serveErr)
	}
	logger.Info().Msg("Tigana stopped gracefully")
	return nil
}

// initLogging applies the logging section; --verbose forces debug.
func initLogging(cfg *config.Config, verbose bool) {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Logging.Level
	lc.Format = cfg.Logging.Format
	lc.Caller = cfg.Logging.Caller
	if verbose {
		lc.Level = "debug"
	}
	logging.Init(lc)
}
