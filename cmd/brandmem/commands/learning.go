// ABOUTME: CLI commands to store, list, and dismiss learnings
// ABOUTME: Learnings are plain-language insights with optional recommendations
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/brand-memory/internal/core"
)

// NewLearningCmd creates learning command
func NewLearningCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learning",
		Short: "Manage learnings",
		Long: `Manage learnings: insights about what works for a business.

Examples:
  brandmem learning add acme "Morning posts get twice the reach" --recommendation "Post before 9am"
  brandmem learning list acme --all
  brandmem learning dismiss learning_1234`,
	}

	cmd.AddCommand(newLearningAddCmd(), newLearningListCmd(), newLearningDismissCmd())
	return cmd
}

func newLearningAddCmd() *cobra.Command {
	var (
		category, recommendation string
		confidence               float64
		dataPoints               int
	)

	cmd := &cobra.Command{
		Use:   "add <business-id> <insight>",
		Short: "Store a learning",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			learning, err := a.memory.Patterns.StoreLearning(cmd.Context(), args[0], core.StoreLearningInput{
				Category:       category,
				Insight:        args[1],
				DataPoints:     dataPoints,
				Confidence:     confidence,
				Recommendation: recommendation,
			})
			if err != nil {
				return fmt.Errorf("storing learning: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), learning)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Stored learning %s\n", learning.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category (e.g. timing, content)")
	cmd.Flags().StringVar(&recommendation, "recommendation", "", "What to do about it")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.5, "Confidence 0-1")
	cmd.Flags().IntVar(&dataPoints, "data-points", 0, "Observations behind the insight")
	return cmd
}

func newLearningListCmd() *cobra.Command {
	var (
		all   bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list <business-id>",
		Short: "List learnings, highest confidence first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			learnings, err := a.memory.Patterns.GetLearnings(cmd.Context(), args[0], all, limit)
			if err != nil {
				return fmt.Errorf("listing learnings: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), learnings)
			}
			if len(learnings) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No learnings found")
				}
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tCONFIDENCE\tINSIGHT\tCREATED\n")
			for _, l := range learnings {
				insight := truncate(l.Insight, 50)
				if l.IsDismissed {
					insight += " (dismissed)"
				}
				fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n", l.ID, l.Confidence, insight, formatTime(l.CreatedAt))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include dismissed learnings")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum results (0 = all)")
	return cmd
}

func newLearningDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <learning-id>",
		Short: "Permanently hide a learning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.memory.Patterns.DismissLearning(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("dismissing learning: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Dismissed learning %s\n", args[0])
			}
			return nil
		},
	}
}
