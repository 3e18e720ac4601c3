// ABOUTME: CLI commands to view and update business profiles
// ABOUTME: Covers identity fields and campaign preferences
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/brand-memory/internal/models"
)

// NewProfileCmd creates profile command
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <business-id>",
		Short: "View and manage business profiles",
		Long: `View and manage a business profile.

The profile stores who the business is: name, industry, type, location,
audience, selling proposition, and brand personality, plus voice samples
and campaign preferences.

Examples:
  brandmem profile acme
  brandmem profile acme --format json
  brandmem profile set acme --name "Acme Bakery" --industry bakery
  brandmem profile prefs acme --platform instagram --duration 14`,
		Args: cobra.ExactArgs(1),
		RunE: runProfileShow,
	}

	cmd.AddCommand(newProfileSetCmd(), newProfilePrefsCmd(), newProfileListCmd())
	return cmd
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	profile, err := a.memory.Profiles.GetProfile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting profile: %w", err)
	}

	if profile == nil {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No profile found. Create one with: brandmem profile set %s --name \"Your Business\"\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), profile)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FIELD\tVALUE\n")
	fmt.Fprintf(w, "-----\t-----\n")
	fmt.Fprintf(w, "Business\t%s\n", profile.BusinessID)
	fmt.Fprintf(w, "Name\t%s\n", orNone(profile.Name))
	fmt.Fprintf(w, "Industry\t%s\n", orNone(profile.Industry))
	fmt.Fprintf(w, "Type\t%s\n", orNone(profile.BusinessType))
	if profile.Location != nil {
		fmt.Fprintf(w, "Location\t%s\n", orNone(profile.Location.String()))
	}
	fmt.Fprintf(w, "Audience\t%s\n", truncate(orNone(profile.TargetAudience), 60))
	fmt.Fprintf(w, "USP\t%s\n", truncate(orNone(profile.UniqueSellingProposition), 60))
	fmt.Fprintf(w, "Personality\t%s\n", truncate(orNone(profile.BrandPersonality), 60))
	fmt.Fprintf(w, "Voice Samples\t%d\n", len(profile.VoiceSamples))
	prefs := profile.CampaignPreferences
	fmt.Fprintf(w, "Campaign Types\t%s\n", orNone(prefs.PreferredCampaignTypes...))
	fmt.Fprintf(w, "Platforms\t%s\n", orNone(prefs.PreferredPlatforms...))
	fmt.Fprintf(w, "Content Types\t%s\n", orNone(prefs.PreferredContentTypes...))
	fmt.Fprintf(w, "Updated\t%s\n", formatTime(profile.UpdatedAt))
	w.Flush()

	if verbose && len(profile.VoiceSamples) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nVoice Samples:\n")
		for _, vs := range profile.VoiceSamples {
			fmt.Fprintf(cmd.OutOrStdout(), "  • [%s] %s\n", vs.ID, vs.Text)
		}
	}
	return nil
}

func newProfileSetCmd() *cobra.Command {
	var (
		name, industry, businessType string
		city, state, country         string
		audience, usp, personality   string
	)

	cmd := &cobra.Command{
		Use:   "set <business-id>",
		Short: "Create or update profile fields",
		Long: `Create or update profile fields. Only flags you pass are changed.

Examples:
  brandmem profile set acme --name "Acme Bakery"
  brandmem profile set acme --type restaurant --city Portland --state OR`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			update := models.ProfileUpdate{}
			setIfChanged := func(flag string, dst **string, value string) {
				if flags.Changed(flag) {
					v := value
					*dst = &v
				}
			}
			setIfChanged("name", &update.Name, name)
			setIfChanged("industry", &update.Industry, industry)
			setIfChanged("type", &update.BusinessType, businessType)
			setIfChanged("audience", &update.TargetAudience, audience)
			setIfChanged("usp", &update.UniqueSellingProposition, usp)
			setIfChanged("personality", &update.BrandPersonality, personality)
			if flags.Changed("city") || flags.Changed("state") || flags.Changed("country") {
				update.Location = &models.Location{City: city, State: state, Country: country}
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			profile, err := a.memory.Profiles.UpsertProfile(cmd.Context(), args[0], update)
			if err != nil {
				return fmt.Errorf("saving profile: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), profile)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Profile %s updated\n", profile.BusinessID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Business name")
	cmd.Flags().StringVar(&industry, "industry", "", "Industry")
	cmd.Flags().StringVar(&businessType, "type", "", "Business type (e.g. restaurant, retail, b2b-saas)")
	cmd.Flags().StringVar(&city, "city", "", "City")
	cmd.Flags().StringVar(&state, "state", "", "State or region")
	cmd.Flags().StringVar(&country, "country", "", "Country")
	cmd.Flags().StringVar(&audience, "audience", "", "Target audience")
	cmd.Flags().StringVar(&usp, "usp", "", "Unique selling proposition")
	cmd.Flags().StringVar(&personality, "personality", "", "Brand personality")
	return cmd
}

func newProfilePrefsCmd() *cobra.Command {
	var (
		campaignTypes, platforms, contentTypes []string
		avoid, include                         []string
		durations                              []int
	)

	cmd := &cobra.Command{
		Use:   "prefs <business-id>",
		Short: "Replace campaign preference sets",
		Long: `Replace campaign preference sets. Each flag you pass replaces that set.

Examples:
  brandmem profile prefs acme --platform instagram --platform facebook
  brandmem profile prefs acme --avoid politics --duration 7 --duration 14`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			update := models.CampaignPreferencesUpdate{}
			if flags.Changed("campaign-type") {
				update.PreferredCampaignTypes = &campaignTypes
			}
			if flags.Changed("platform") {
				update.PreferredPlatforms = &platforms
			}
			if flags.Changed("content-type") {
				update.PreferredContentTypes = &contentTypes
			}
			if flags.Changed("duration") {
				update.PreferredDurations = &durations
			}
			if flags.Changed("avoid") {
				update.AvoidTopics = &avoid
			}
			if flags.Changed("include") {
				update.MustIncludeTopics = &include
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if err := a.memory.Profiles.UpdateCampaignPreferences(ctx, args[0], update); err != nil {
				return fmt.Errorf("saving preferences: %w", err)
			}
			prefs, err := a.memory.Profiles.GetCampaignPreferences(ctx, args[0])
			if err != nil {
				return fmt.Errorf("reading preferences: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), prefs)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Campaign preferences updated\n")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&campaignTypes, "campaign-type", nil, "Preferred campaign type (repeatable)")
	cmd.Flags().StringArrayVar(&platforms, "platform", nil, "Preferred platform (repeatable)")
	cmd.Flags().StringArrayVar(&contentTypes, "content-type", nil, "Preferred content type (repeatable)")
	cmd.Flags().IntSliceVar(&durations, "duration", nil, "Preferred duration in days (repeatable)")
	cmd.Flags().StringArrayVar(&avoid, "avoid", nil, "Topic to avoid (repeatable)")
	cmd.Flags().StringArrayVar(&include, "include", nil, "Topic to always include (repeatable)")
	return cmd
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List businesses with a stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ids, err := a.store.ListBusinessIDs(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing businesses: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), ids)
			}
			if len(ids) == 0 && !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "No businesses found")
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
