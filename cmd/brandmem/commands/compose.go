// ABOUTME: CLI command that composes the AI context document for a business
// ABOUTME: Supports default, lightweight, and full modes plus a token estimate
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/brand-memory/internal/core"
	"github.com/harper/brand-memory/internal/models"
)

// NewComposeCmd creates compose command
func NewComposeCmd() *cobra.Command {
	var (
		full        bool
		lightweight bool
		showMeta    bool
	)

	cmd := &cobra.Command{
		Use:   "compose <business-id>",
		Short: "Compose the AI context document for a business",
		Long: `Compose the AI context document for a business.

By default every section except recent performance is included, capped by the
configured limits. --lightweight keeps only business context and tone.
--full adds recent performance.

Examples:
  brandmem compose acme
  brandmem compose acme --lightweight
  brandmem compose acme --full --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			var opts models.ComposeOptions
			switch {
			case lightweight:
				opts = core.LightweightComposeOptions()
			case full:
				opts = core.FullComposeOptions()
			default:
				opts = a.cfg.ComposeOptions()
			}

			composed, err := a.memory.Composer.Compose(cmd.Context(), args[0], opts)
			if err != nil {
				return fmt.Errorf("composing context: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), composed)
			}

			fmt.Fprint(cmd.OutOrStdout(), composed.Document)
			if showMeta && !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n~%d tokens, components: %s\n",
					composed.TokenEstimate, orNone(composed.IncludedComponents...))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Include every section, recent performance too")
	cmd.Flags().BoolVar(&lightweight, "lightweight", false, "Business context and tone only")
	cmd.Flags().BoolVar(&showMeta, "meta", false, "Print token estimate and components to stderr")
	cmd.MarkFlagsMutuallyExclusive("full", "lightweight")

	cmd.AddCommand(newComposeEstimateCmd())
	return cmd
}

func newComposeEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <business-id>",
		Short: "Estimate the token cost of a full context without composing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tokens, err := a.memory.Composer.EstimateTokenUsage(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("estimating tokens: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]int{"estimated_tokens": tokens})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", tokens)
			return nil
		},
	}
}
