// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/tigana/internal/logging"
	"github.com/tomtom215/tigana/internal/recommend"
	"github.com/tomtom215/tigana/internal/session"
)

// RecommendReport is the result of the recommend command.
type RecommendReport struct {
	SessionID       string                     `json:"session_id"`
	Recommendations []recommend.Recommendation `json:"recommendations,omitempty"`
	Explained       []recommend.Scored         `json:"explained,omitempty"`
}

// NewRecommendCommand creates the recommend command.
func NewRecommendCommand(rootOpts *RootOptions) *cobra.Command {
	var explain bool
	cmd := &cobra.Command{
		Use:   "recommend <session-id>",
		Short: "Print personalized recommendations for a stored session",
		Long: `Hydrate a session from the configured store and run the personalized
recommender over its profile, without starting the server.

The badger backend takes a directory lock, so stop the server first or point
--config at a sqlite or redis store.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, rootOpts, args[0], explain)
		},
	}
	cmd.Flags().BoolVar(&explain, "explain", false, "print every scored product with its reasons")
	return cmd
}

func runRecommend(cmd *cobra.Command, opts *RootOptions, sessionID string, explain bool) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := loadConfig(opts)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeConfig, "failed to load configuration", err)
	}

	a, err := newApp(cmd.Context(), cfg, commandLogger(opts), appOptions{})
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeStorage, "failed to initialize", err)
	}
	defer a.Close()

	s, err := a.sessions.Open(cmd.Context(), sessionID)
	if err != nil {
		if errors.Is(err, session.ErrInvalidID) {
			return f.Fail(ExitCommandError, ErrCodeSession, "invalid session id", err)
		}
		return f.Fail(ExitFailure, ErrCodeSession, "failed to open session", err)
	}

	input := recommend.Input(s.Profile())
	report := RecommendReport{SessionID: s.ID()}
	if explain {
		report.Explained = a.engine.Explain(input)
	} else {
		report.Recommendations = a.engine.Recommend(input)
	}
	f.VerboseLog("Profile: %d favorite categories, %d viewed, %d searches",
		len(input.FavoriteCategories), len(input.ViewedProducts), len(input.SearchHistory))

	return f.Success(report, func(w io.Writer) {
		if explain {
			for i := range report.Explained {
				sc := &report.Explained[i]
				fmt.Fprintf(w, "%2d. %-28s %6.1f  %s\n", i+1, sc.Product.Name, sc.Score, strings.Join(sc.Reasons, ", "))
			}
			return
		}
		for i := range report.Recommendations {
			r := &report.Recommendations[i]
			fmt.Fprintf(w, "%2d. %-28s %3.0f%%  %s\n", i+1, r.Product.Name, r.Confidence*100, r.Reason)
		}
	})
}

// commandLogger keeps offline commands quiet unless --verbose is set.
func commandLogger(opts *RootOptions) zerolog.Logger {
	if !opts.Verbose {
		return zerolog.Nop()
	}
	return logging.Logger().Level(zerolog.DebugLevel)
}
