// ABOUTME: CLI command to record campaign outcomes
// ABOUTME: Successful outcomes extend preferences; reports are mined for learnings when an LLM is configured
package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/harper/brand-memory/internal/models"
)

// NewCampaignCmd creates campaign command
func NewCampaignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Record campaign outcomes",
		Long: `Record how campaigns performed so preferences and learnings improve.

Examples:
  brandmem campaign record acme --type seasonal --platform instagram --days 14 --success
  brandmem campaign record acme --type launch --report "Reels beat photos 3 to 1"`,
	}

	cmd.AddCommand(newCampaignRecordCmd())
	return cmd
}

func newCampaignRecordCmd() *cobra.Command {
	var (
		campaignType string
		platforms    []string
		contentTypes []string
		days         int
		success      bool
		report       string
	)

	cmd := &cobra.Command{
		Use:   "record <business-id>",
		Short: "Record a measured campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			outcome := models.CampaignOutcome{
				CampaignType:  campaignType,
				Platforms:     platforms,
				ContentTypes:  contentTypes,
				DurationDays:  days,
				WasSuccessful: success,
			}
			if err := a.memory.Profiles.LearnFromCampaign(ctx, args[0], outcome); err != nil {
				return fmt.Errorf("recording outcome: %w", err)
			}

			var learnings []models.Learning
			if report != "" {
				scribe := a.scribe()
				if scribe == nil {
					if !quiet {
						log.Println("[CLI] Warning: OPENAI_API_KEY not set - report not analysed")
					}
				} else {
					learnings, err = scribe.RecordOutcome(ctx, args[0], report)
					if err != nil {
						log.Printf("[CLI] Warning: learning extraction failed: %v", err)
					}
				}
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]any{"recorded": true, "learnings": learnings})
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Outcome recorded for %s\n", args[0])
				for _, l := range learnings {
					fmt.Fprintf(cmd.OutOrStdout(), "  • %s\n", l.Insight)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&campaignType, "type", "", "Campaign type")
	cmd.Flags().StringArrayVar(&platforms, "platform", nil, "Platform (repeatable)")
	cmd.Flags().StringArrayVar(&contentTypes, "content-type", nil, "Content type (repeatable)")
	cmd.Flags().IntVar(&days, "days", 0, "Duration in days")
	cmd.Flags().BoolVar(&success, "success", false, "The campaign met its goals")
	cmd.Flags().StringVar(&report, "report", "", "Free-text outcome report to mine for learnings")
	return cmd
}
