// ABOUTME: CLI commands to add and remove voice samples
// ABOUTME: Samples are exemplar writing the generator imitates
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewVoiceCmd creates voice command
func NewVoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voice",
		Short: "Manage voice samples",
		Long: `Manage voice samples, exemplar writing the AI should imitate.

Examples:
  brandmem voice add acme "Fresh out of the oven and ready for you!"
  brandmem voice add acme --file post.txt --tag instagram
  brandmem voice remove acme vs_1234`,
	}

	cmd.AddCommand(newVoiceAddCmd(), newVoiceRemoveCmd())
	return cmd
}

func newVoiceAddCmd() *cobra.Command {
	var (
		file string
		tags []string
	)

	cmd := &cobra.Command{
		Use:   "add <business-id> [text]",
		Short: "Add a voice sample",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading file: %w", err)
				}
				text = string(data)
			case len(args) > 1:
				text = args[1]
			default:
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = string(data)
			}
			text = strings.TrimSpace(text)

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			sample, err := a.memory.Profiles.AddVoiceSample(cmd.Context(), args[0], text, tags)
			if err != nil {
				return fmt.Errorf("adding voice sample: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), sample)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Added voice sample %s\n", sample.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read sample from file")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tags for the sample (comma-separated or repeated)")
	return cmd
}

func newVoiceRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <business-id> <sample-id>",
		Short: "Remove a voice sample",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.memory.Profiles.RemoveVoiceSample(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("removing voice sample: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed voice sample %s\n", args[1])
			}
			return nil
		},
	}
}
