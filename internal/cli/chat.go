// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/tigana/internal/faq"
)

// NewChatCommand creates the chat command.
func NewChatCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>...",
		Short: "Ask the FAQ assistant a question",
		Long: `Answer a shopper question with the storefront FAQ assistant. Multiple
arguments are joined with spaces.`,
		Example:       `  tigana chat "how long does shipping take?"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			message := strings.Join(args, " ")
			if strings.TrimSpace(message) == "" {
				return f.Fail(ExitCommandError, ErrCodeArgument, "message is empty", nil)
			}

			answer := faq.New(commandLogger(rootOpts)).Respond(message)
			f.VerboseLog("Matched route %s", answer.Route)
			return f.Success(answer, func(w io.Writer) {
				fmt.Fprintln(w, answer.Message)
				if len(answer.QuickReplies) > 0 {
					fmt.Fprintf(w, "\nTry: %s\n", strings.Join(answer.QuickReplies, " | "))
				}
			})
		},
	}
}
