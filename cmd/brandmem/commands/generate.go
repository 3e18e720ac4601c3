// ABOUTME: CLI command that drafts content with the composed context as the system prompt
// ABOUTME: Requires OPENAI_API_KEY; the context is composed in full mode
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/brand-memory/internal/llm"
)

// NewGenerateCmd creates generate command
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <business-id> <prompt...>",
		Short: "Draft content in the business's voice",
		Long: `Draft content in the business's voice.

The full context document is sent as the system prompt, followed by your request.

Examples:
  brandmem generate acme "Write an Instagram caption for our autumn sale"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			client, err := a.llmClient()
			if err != nil {
				return err
			}
			if client == nil {
				return llm.ErrMissingAPIKey
			}

			ctx := cmd.Context()
			composed, err := a.memory.Composer.ComposeFull(ctx, args[0])
			if err != nil {
				return fmt.Errorf("composing context: %w", err)
			}
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "Context: ~%d tokens\n", composed.TokenEstimate)
			}

			draft, err := client.Generate(ctx, composed.Document, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"content":        draft,
					"context_tokens": composed.TokenEstimate,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), draft)
			return nil
		},
	}

	return cmd
}
