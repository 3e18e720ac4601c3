// ABOUTME: CLI commands to store, list, and retire content patterns
// ABOUTME: Also exposes the confidence formula for quick what-if checks
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/brand-memory/internal/core"
	"github.com/harper/brand-memory/internal/models"
)

// NewPatternCmd creates pattern command
func NewPatternCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Manage content patterns",
		Long: `Manage content patterns: topics, formats, hooks, and calls to action
that have performed well for a business.

Examples:
  brandmem pattern add acme topic "behind the scenes" --samples 12 --variance 0.3
  brandmem pattern list acme --type hook
  brandmem pattern deactivate pattern_1234
  brandmem pattern score 8 0.5`,
	}

	cmd.AddCommand(newPatternAddCmd(), newPatternListCmd(), newPatternDeactivateCmd(), newPatternScoreCmd())
	return cmd
}

func newPatternAddCmd() *cobra.Command {
	var (
		campaignType, platform string
		engagement, reach      float64
		samples                int
		confidence, variance   float64
		examples               []string
	)

	cmd := &cobra.Command{
		Use:   "add <business-id> <topic|format|hook|cta> <value>",
		Short: "Store a pattern",
		Long: `Store a pattern. When --variance is given the confidence score is computed
from --samples and --variance; otherwise --confidence is used as given.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			patternType, err := models.ParsePatternType(args[1])
			if err != nil {
				return err
			}
			in := core.StorePatternInput{
				PatternType:  patternType,
				PatternValue: args[2],
				Scope:        models.PatternScope{CampaignType: campaignType, Platform: platform},
				Metrics: models.PerformanceMetrics{
					AvgEngagementRate: engagement,
					AvgReach:          reach,
					SampleSize:        samples,
					ConfidenceScore:   confidence,
				},
				Examples: examples,
			}
			if cmd.Flags().Changed("variance") {
				in.Variance = &variance
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			pattern, err := a.memory.Patterns.StorePattern(cmd.Context(), args[0], in)
			if err != nil {
				return fmt.Errorf("storing pattern: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), pattern)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Stored pattern %s (confidence %.2f)\n", pattern.ID, pattern.PerformanceMetrics.ConfidenceScore)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&campaignType, "campaign-type", "", "Scope to a campaign type")
	cmd.Flags().StringVar(&platform, "platform", "", "Scope to a platform")
	cmd.Flags().Float64Var(&engagement, "engagement", 0, "Average engagement rate")
	cmd.Flags().Float64Var(&reach, "reach", 0, "Average reach")
	cmd.Flags().IntVar(&samples, "samples", 0, "Sample size")
	cmd.Flags().Float64Var(&confidence, "confidence", 0, "Confidence 0-1")
	cmd.Flags().Float64Var(&variance, "variance", 0, "Performance variance (computes confidence)")
	cmd.Flags().StringArrayVar(&examples, "example", nil, "Example post (repeatable)")
	return cmd
}

func newPatternListCmd() *cobra.Command {
	var (
		patternType, campaignType, platform string
		minConfidence                       float64
		limit                               int
	)

	cmd := &cobra.Command{
		Use:   "list <business-id>",
		Short: "List active patterns, highest confidence first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := models.PatternFilter{
				CampaignType:  campaignType,
				Platform:      platform,
				MinConfidence: minConfidence,
				Limit:         limit,
			}
			if patternType != "" {
				pt, err := models.ParsePatternType(patternType)
				if err != nil {
					return err
				}
				filter.PatternType = pt
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			patterns, err := a.memory.Patterns.GetPatterns(cmd.Context(), args[0], filter)
			if err != nil {
				return fmt.Errorf("listing patterns: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), patterns)
			}
			if len(patterns) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No patterns found")
				}
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tTYPE\tVALUE\tCONFIDENCE\tSAMPLES\n")
			for _, p := range patterns {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\n", p.ID, p.PatternType, truncate(p.PatternValue, 40),
					p.PerformanceMetrics.ConfidenceScore, p.PerformanceMetrics.SampleSize)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&patternType, "type", "", "Filter by type (topic, format, hook, cta)")
	cmd.Flags().StringVar(&campaignType, "campaign-type", "", "Filter by campaign type")
	cmd.Flags().StringVar(&platform, "platform", "", "Filter by platform")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "Minimum confidence")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum results (0 = all)")
	return cmd
}

func newPatternDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <pattern-id>",
		Short: "Retire a pattern so it is no longer used",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.memory.Patterns.DeactivatePattern(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("deactivating pattern: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Deactivated pattern %s\n", args[0])
			}
			return nil
		},
	}
}

func newPatternScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <sample-size> <variance>",
		Short: "Compute the confidence score for a sample size and variance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n int
			var variance float64
			if _, err := fmt.Sscan(args[0], &n); err != nil {
				return fmt.Errorf("sample size must be an integer: %w", err)
			}
			if err := validatePositiveInt(n, "sample size"); err != nil {
				return err
			}
			if _, err := fmt.Sscan(args[1], &variance); err != nil {
				return fmt.Errorf("variance must be a number: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", core.ConfidenceScore(n, variance))
			return nil
		},
	}
}
