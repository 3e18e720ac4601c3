// ABOUTME: Standalone entry point for the brand memory MCP server with stdio transport
// ABOUTME: Loads config, opens storage, and registers every brand memory tool
package main

import (
	"log"

	"github.com/harper/brand-memory/internal/config"
	"github.com/harper/brand-memory/internal/core"
	"github.com/harper/brand-memory/internal/llm"
	"github.com/harper/brand-memory/internal/mcp"
	"github.com/harper/brand-memory/internal/storage/sqlite"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	memory := core.NewMemory(store)

	var scribe *core.Scribe
	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - outcome reports will not be analysed")
	} else {
		client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
			APIKey:     cfg.OpenAIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			ChatModel:  cfg.ChatModel,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
			Timeout:    cfg.Timeout,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
		} else {
			scribe = core.NewScribe(client, memory.Patterns)
		}
	}

	server := mcpserver.NewMCPServer("Brand Memory", "0.1.0")
	handlers := mcp.RegisterTools(server, memory, scribe)
	defer handlers.Shutdown()

	log.Println("Brand memory MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Printf("Server error: %v", err)
	}
}
