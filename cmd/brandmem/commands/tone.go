// ABOUTME: CLI commands for tone presets, custom tones, and plain-language adjustment
// ABOUTME: Adjust accepts commands like "make it funnier" or "switch to bold"
package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/brand-memory/internal/core"
	"github.com/harper/brand-memory/internal/models"
)

// NewToneCmd creates tone command
func NewToneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tone",
		Short: "View and adjust tone",
		Long: `View and adjust a business's tone.

Tone is either a named preset or a custom description, plus three axes:
formality (1-5), humor (0-3), and enthusiasm (1-5).

Examples:
  brandmem tone show acme
  brandmem tone preset acme casual
  brandmem tone custom acme "warm but precise" --formality 4 --humor 1
  brandmem tone adjust acme "make it much funnier"
  brandmem tone recommend restaurant`,
	}

	cmd.AddCommand(
		newToneShowCmd(),
		newTonePresetCmd(),
		newToneCustomCmd(),
		newToneAdjustCmd(),
		newToneApplyAllCmd(),
		newToneRecommendCmd(),
		newTonePresetsCmd(),
	)
	return cmd
}

func printTone(cmd *cobra.Command, tone *models.ToneConfiguration) error {
	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), tone)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Preset\t%s\n", orNone(tone.Preset))
	if tone.CustomDescription != "" {
		fmt.Fprintf(w, "Custom\t%s\n", tone.CustomDescription)
	}
	fmt.Fprintf(w, "Formality\t%d/%d\n", tone.Axes.Formality, models.FormalityMax)
	fmt.Fprintf(w, "Humor\t%d/%d\n", tone.Axes.Humor, models.HumorMax)
	fmt.Fprintf(w, "Enthusiasm\t%d/%d\n", tone.Axes.Enthusiasm, models.EnthusiasmMax)
	fmt.Fprintf(w, "Apply to all\t%t\n", tone.ApplyToAllContent)
	w.Flush()
	for _, e := range tone.Examples {
		fmt.Fprintf(cmd.OutOrStdout(), "  • %s\n", e)
	}
	return nil
}

func newToneShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <business-id>",
		Short: "Show the current tone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tone, err := a.memory.Tone.GetTone(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("getting tone: %w", err)
			}
			if tone == nil {
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "No tone set. Pick one with: brandmem tone preset %s <preset>\n", args[0])
				}
				return nil
			}
			return printTone(cmd, tone)
		},
	}
}

func newTonePresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preset <business-id> <preset>",
		Short: "Switch to a named preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tone, err := a.memory.Tone.SetPreset(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("setting preset: %w", err)
			}
			return printTone(cmd, tone)
		},
	}
}

func newToneCustomCmd() *cobra.Command {
	var formality, humor, enthusiasm int

	cmd := &cobra.Command{
		Use:   "custom <business-id> <description>",
		Short: "Set a custom tone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := models.CustomToneInput{Description: args[1]}
			if cmd.Flags().Changed("formality") {
				input.Formality = &formality
			}
			if cmd.Flags().Changed("humor") {
				input.Humor = &humor
			}
			if cmd.Flags().Changed("enthusiasm") {
				input.Enthusiasm = &enthusiasm
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tone, err := a.memory.Tone.SetCustom(cmd.Context(), args[0], input)
			if err != nil {
				return fmt.Errorf("setting custom tone: %w", err)
			}
			return printTone(cmd, tone)
		},
	}

	cmd.Flags().IntVar(&formality, "formality", models.DefaultCustomFormality, "Formality 1-5")
	cmd.Flags().IntVar(&humor, "humor", models.DefaultCustomHumor, "Humor 0-3")
	cmd.Flags().IntVar(&enthusiasm, "enthusiasm", models.DefaultCustomEnthusiasm, "Enthusiasm 1-5")
	return cmd
}

func newToneAdjustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <business-id> <command...>",
		Short: "Adjust tone with a plain-language command",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			adjustment, err := a.memory.Tone.AdjustNaturally(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return fmt.Errorf("adjusting tone: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), adjustment)
			}
			for _, change := range adjustment.ChangesDescription {
				fmt.Fprintln(cmd.OutOrStdout(), change)
			}
			return nil
		},
	}
}

func newToneApplyAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply-all <business-id> <true|false>",
		Short: "Toggle whether the tone applies to all content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var apply bool
			switch args[1] {
			case "true", "on", "yes":
				apply = true
			case "false", "off", "no":
			default:
				return fmt.Errorf("expected true or false, got %q", args[1])
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tone, err := a.memory.Tone.SetApplyToAllContent(cmd.Context(), args[0], apply)
			if err != nil {
				return fmt.Errorf("updating tone: %w", err)
			}
			return printTone(cmd, tone)
		},
	}
}

func newToneRecommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <business-type>",
		Short: "Recommend a preset for a business type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), core.RecommendPreset(args[0]))
			return nil
		},
	}
}

func newTonePresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := models.TonePresets()
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), presets)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tF/H/E\tDESCRIPTION\n")
			for _, p := range presets {
				fmt.Fprintf(w, "%s\t%d/%d/%d\t%s\n", p.ID, p.Axes.Formality, p.Axes.Humor, p.Axes.Enthusiasm, p.Description)
			}
			return w.Flush()
		},
	}
}
