// ABOUTME: Root command and global flags for the brandmem CLI
// ABOUTME: Wires every subcommand and enforces verbose/quiet exclusivity
package commands

import (
	"github.com/spf13/cobra"
)

// Global flags shared by all commands
var (
	verbose      bool
	quiet        bool
	outputFormat string
	dbPath       string
)

const banner = `
██████╗ ██████╗  █████╗ ███╗   ██╗██████╗ ███╗   ███╗███████╗███╗   ███╗
██╔══██╗██╔══██╗██╔══██╗████╗  ██║██╔══██╗████╗ ████║██╔════╝████╗ ████║
██████╔╝██████╔╝███████║██╔██╗ ██║██║  ██║██╔████╔██║█████╗  ██╔████╔██║
██╔══██╗██╔══██╗██╔══██║██║╚██╗██║██║  ██║██║╚██╔╝██║██╔══╝  ██║╚██╔╝██║
██████╔╝██║  ██║██║  ██║██║ ╚████║██████╔╝██║ ╚═╝ ██║███████╗██║ ╚═╝ ██║
╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═════╝ ╚═╝     ╚═╝╚══════╝╚═╝     ╚═╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brandmem",
		Short: "Brand memory for AI content generation",
		Long: banner + `

Brand memory keeps what an AI writer needs to sound like a business:
its profile and voice samples, a tone it can adjust in plain language,
the content patterns and insights that have worked, and the campaign
preferences learned over time. Compose turns all of it into one
instruction document for a generation call.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json)")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: $XDG_DATA_HOME/brandmem/brandmem.db)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewProfileCmd(),
		NewVoiceCmd(),
		NewToneCmd(),
		NewPatternCmd(),
		NewLearningCmd(),
		NewCampaignCmd(),
		NewComposeCmd(),
		NewGenerateCmd(),
		NewExportCmd(),
		NewServeCmd(),
		NewMCPCmd(),
		NewInstallSkillCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
