// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents read and teach brand memory via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/brand-memory/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs brandmem as an MCP (Model Context Protocol) server so agents can
compose business context, adjust tone, and record what worked.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  brandmem mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "brandmem": {
  #       "command": "brandmem",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	scribe := a.scribe()
	if scribe == nil {
		log.Println("Warning: OPENAI_API_KEY not set - outcome reports will not be analysed")
	} else if verbose {
		log.Println("OpenAI client and Scribe initialized")
	}

	server := mcpserver.NewMCPServer("Brand Memory", versionInfo.Version)
	handlers := mcp.RegisterTools(server, a.memory, scribe)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Brand memory MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}
	case err = <-serverErr:
	}

	// Pending outcome reports finish before the store closes
	handlers.Shutdown()
	if cerr := a.Close(); cerr != nil {
		log.Printf("Warning: Error closing storage: %v", cerr)
	}

	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	if !quiet {
		log.Println("Shutdown complete")
	}
	return nil
}
