// ABOUTME: Serve command starts the HTTP API
// ABOUTME: Shuts down gracefully on SIGINT/SIGTERM after pending learning extraction finishes
package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/brand-memory/internal/api"
)

// NewServeCmd creates serve command
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

The listen address defaults to the configured http_addr (":8080").`,
		Example: `  brandmem serve
  brandmem serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			opts := []api.Option{api.WithExporter(a.store)}
			if scribe := a.scribe(); scribe != nil {
				opts = append(opts, api.WithScribe(scribe))
			} else if !quiet {
				log.Println("[CLI] Warning: OPENAI_API_KEY not set - outcome reports will not be analysed")
			}
			server := api.NewServer(a.memory, opts...)

			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}
