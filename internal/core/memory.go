// ABOUTME: Memory bundles the brand memory components over one shared store
// ABOUTME: Used by the CLI, MCP server, and HTTP API to avoid repeating the wiring
package core

import "github.com/harper/brand-memory/internal/storage"

// Memory holds the wired components for one store
type Memory struct {
	Profiles *BusinessProfileStore
	Tone     *ToneModel
	Patterns *PatternLearner
	Composer *ContextComposer
}

// NewMemory wires every component to the given store
func NewMemory(store storage.Store) *Memory {
	profiles := NewBusinessProfileStore(store)
	tone := NewToneModel(store)
	patterns := NewPatternLearner(store, store)
	return &Memory{
		Profiles: profiles,
		Tone:     tone,
		Patterns: patterns,
		Composer: NewContextComposer(profiles, tone, patterns),
	}
}
