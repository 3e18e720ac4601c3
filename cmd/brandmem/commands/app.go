// ABOUTME: Shared wiring for CLI commands: config, storage, and memory components
// ABOUTME: Every command opens the store through here so --db and config apply uniformly
package commands

import (
	"fmt"
	"log"

	"github.com/harper/brand-memory/internal/config"
	"github.com/harper/brand-memory/internal/core"
	"github.com/harper/brand-memory/internal/llm"
	"github.com/harper/brand-memory/internal/storage/sqlite"
	"github.com/joho/godotenv"
)

// app bundles what a command needs
type app struct {
	cfg    *config.Config
	store  *sqlite.Storage
	memory *core.Memory
}

// openApp loads .env and config, then opens the store. Callers must Close.
func openApp() (*app, error) {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	if verbose {
		log.Printf("[CLI] Using database %s", store.Path())
	}

	return &app{cfg: cfg, store: store, memory: core.NewMemory(store)}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// llmClient returns nil with no error when no API key is configured
func (a *app) llmClient() (*llm.OpenAIClient, error) {
	if a.cfg.OpenAIKey == "" {
		return nil, nil
	}
	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:     a.cfg.OpenAIKey,
		BaseURL:    a.cfg.OpenAIBaseURL,
		ChatModel:  a.cfg.ChatModel,
		MaxRetries: a.cfg.MaxRetries,
		RetryDelay: a.cfg.RetryDelay,
		Timeout:    a.cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}
	return client, nil
}

// scribe returns a Scribe when an LLM client is available, nil otherwise
func (a *app) scribe() *core.Scribe {
	client, err := a.llmClient()
	if err != nil {
		log.Printf("[CLI] Warning: %v", err)
		return nil
	}
	if client == nil {
		return nil
	}
	return core.NewScribe(client, a.memory.Patterns)
}
