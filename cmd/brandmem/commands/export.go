// ABOUTME: CLI command to export everything stored for a business
// ABOUTME: Writes YAML, JSON, or Markdown to a file or stdout
package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harper/brand-memory/internal/storage/sqlite"
)

// NewExportCmd creates export command
func NewExportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <business-id>",
		Short: "Export a business's memory",
		Long: `Export the profile, tone, patterns, and learnings for a business.

Examples:
  brandmem export acme
  brandmem export acme --as markdown --output acme.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			businessID := args[0]

			if output != "" {
				switch format {
				case "yaml":
					err = a.store.ExportToYAML(ctx, businessID, output)
				case "json":
					err = a.store.ExportToJSON(ctx, businessID, output)
				case "markdown", "md":
					err = a.store.ExportToMarkdown(ctx, businessID, output)
				default:
					return fmt.Errorf("unknown export format %q (use yaml, json, or markdown)", format)
				}
				if err != nil {
					return err
				}
				if !quiet {
					log.Printf("[CLI] Exported %s to %s", businessID, output)
				}
				return nil
			}

			data, err := a.store.Export(ctx, businessID)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(data); err != nil {
					return fmt.Errorf("encoding YAML: %w", err)
				}
				return enc.Close()
			case "json":
				return printJSON(w, data)
			case "markdown", "md":
				sqlite.WriteMarkdown(w, data)
				return nil
			default:
				return fmt.Errorf("unknown export format %q (use yaml, json, or markdown)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "as", "yaml", "Export format: yaml, json, markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
