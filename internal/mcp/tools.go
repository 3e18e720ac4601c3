// ABOUTME: MCP tool definitions and registration for the brand memory server
// ABOUTME: Defines JSON schemas for the ten tools that read and write business memory
package mcp

import (
	"github.com/harper/brand-memory/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

var businessIDProperty = map[string]interface{}{
	"type":        "string",
	"description": "Business identifier",
}

func stringArray(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": description,
	}
}

// RegisterTools registers all MCP tools with the server. scribe may be nil.
func RegisterTools(server *mcpserver.MCPServer, memory *core.Memory, scribe *core.Scribe) *Handlers {
	handlers := NewHandlers(memory, scribe)

	// 1. compose_context - Build the instruction document for content generation
	server.AddTool(mcp.Tool{
		Name:        "compose_context",
		Description: "Compose everything known about a business (profile, voice, tone, patterns, preferences, insights) into one instruction document for content generation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"business_id": businessIDProperty,
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"default", "lightweight", "full"},
					"description": "lightweight = profile and tone only, full = every section with raised caps (default: default)",
					"default":     "default",
				},
				"include_payload": map[string]interface{}{
					"type":        "boolean",
					"description": "Also return the structured payload (default: false)",
				},
			},
			Required: []string{"business_id"},
		},
	}, handlers.ComposeContext)

	// 2. estimate_context_tokens - Pre-flight token estimate
	server.AddTool(mcp.Tool{
		Name:        "estimate_context_tokens",
		Description: "Estimate how many tokens a composed context would use for a business without composing it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"business_id": businessIDProperty,
			},
			Required: []string{"business_id"},
		},
	}, handlers.EstimateContextTokens)

	// 3. get_business_profile - Read the stored profile
	server.AddTool(mcp.Tool{
		Name:        "get_business_profile",
		Description: "Get the stored business profile with voice samples and campaign preferences.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"business_id": businessIDProperty,
			},
			Required: []string{"business_id"},
		},
	}, handlers.GetBusinessProfile)

	// 4. update_business_profile - Partial profile update
	server.AddTool(mcp.Tool{
		Name:        "update_business_profile",
		Description: "Create or update a business profile. All fields are optional - only provided fields will be updated.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"business_id":                businessIDProperty,
				"name":                       map[string]interface{}{"type": "string", "description": "Business name"},
				"industry":                   map[string]interface{}{"type": "string", "description": "Industry (e.g., 'bakery')"},
				"business_type":              map[string]interface{}{"type": "string", "description": "Business type (e.g., 'restaurant', 'b2b-saas')"},
				"city":                       map[string]interface{}{"type": "string", "description": "City"},
				"state":                      map[string]interface{}{"type": "string", "description": "State or region"},
				"country":                    map[string]interface{}{"type": "string", "description": "Country"},
				"target_audience":            map[string]interface{}{"type": "string", "description": "Who the business sells to"},
				"unique_selling_proposition": map[string]interface{}{"type": "string", "description": "What sets the business apart"},
				"brand_personality":          map[string]interface{}{"type": "string", "description": "Brand personality in a few words"},
			},
			Required: []string{"business_id"},
		},
	}, handlers.UpdateBusinessProfile)

	// 5. add_voice_sample - Append exemplar writing
	server.AddTool(mcp.Tool{
		Name:        "add_voice_sample",
		Description: "Add a sample of the business's writing to imitate. The business profile must exist.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"business_id": businessIDProperty,
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Sample text written in the business's voice",
				},
				"tags": stringArray("Optional tags (e.g., 'instagram', 'promo')"),
			},
			Required: []string{"business_id", "text"},
		},
	}, handlers.AddVoiceSample)

	// 6. adjust_tone - Natural-language tone adjustment
	server.AddTool(mcp.Tool{
		Name:        "adjust_tone",
		Description: "Adjust the business's tone with a plain-language command such as 'make it funnier' or 'switch to professional'.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"business_id": businessIDProperty,
				"command": map[string]interface{}{
					"type":        "string",
					"description": "Tone adjustment command",
				},
			},
			Required: []string{"business_id", "command"},
		},
	}, handlers.AdjustTone)

	// 7. set_tone_preset - Select a named preset
	server.AddTool(mcp.Tool{
		Name:        "set_tone_preset",
		Description: "Set the business's tone to a named preset: casual, professional, funny, inspirational, bold, friendly, authoritative, or conversational.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"business_id": businessIDProperty,
				"preset": map[string]interface{}{
					"type":        "string",
					"description": "Preset identifier",
				},
			},
			Required: []string{"business_id", "preset"},
		},
	}, handlers.SetTonePreset)

	// 8. store_pattern - Record a discovered content pattern
	server.AddTool(mcp.Tool{
		Name:        "store_pattern",
		Description: "Store a content pattern (topic, format, hook, or cta) that has performed well. Confidence is computed from sample_size and variance when variance is given.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"business_id":         businessIDProperty,
				"pattern_type":        map[string]interface{}{"type": "string", "enum": []string{"topic", "format", "hook", "cta"}, "description": "Pattern category"},
				"pattern_value":       map[string]interface{}{"type": "string", "description": "The pattern itself (e.g., 'behind the scenes')"},
				"campaign_type":       map[string]interface{}{"type": "string", "description": "Optional campaign type scope"},
				"platform":            map[string]interface{}{"type": "string", "description": "Optional platform scope"},
				"avg_engagement_rate": map[string]interface{}{"type": "number", "description": "Average engagement rate"},
				"avg_reach":           map[string]interface{}{"type": "number", "description": "Average reach"},
				"sample_size":         map[string]interface{}{"type": "number", "description": "Number of observations"},
				"confidence":          map[string]interface{}{"type": "number", "description": "Confidence 0-1 (ignored when variance is given)"},
				"variance":            map[string]interface{}{"type": "number", "description": "Performance variance; triggers computed confidence"},
				"examples":            stringArray("Example posts using the pattern"),
			},
			Required: []string{"business_id", "pattern_type", "pattern_value"},
		},
	}, handlers.StorePattern)

	// 9. record_campaign_outcome - Feed back a measured campaign
	server.AddTool(mcp.Tool{
		Name:        "record_campaign_outcome",
		Description: "Record how a campaign performed. Successful campaigns extend the campaign preferences; an optional report is mined for learnings in the background.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"business_id":    businessIDProperty,
				"campaign_type":  map[string]interface{}{"type": "string", "description": "Campaign type"},
				"platforms":      stringArray("Platforms the campaign ran on"),
				"content_types":  stringArray("Content types used"),
				"duration_days":  map[string]interface{}{"type": "number", "description": "Campaign length in days"},
				"was_successful": map[string]interface{}{"type": "boolean", "description": "Whether the campaign met its goals"},
				"report":         map[string]interface{}{"type": "string", "description": "Optional free-text outcome report"},
			},
			Required: []string{"business_id", "was_successful"},
		},
	}, handlers.RecordCampaignOutcome)

	// 10. store_learning - Record a derived insight
	server.AddTool(mcp.Tool{
		Name:        "store_learning",
		Description: "Store a plain-language insight about what works for the business, with an optional recommendation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"business_id":    businessIDProperty,
				"insight":        map[string]interface{}{"type": "string", "description": "The insight"},
				"category":       map[string]interface{}{"type": "string", "description": "Optional category (e.g., 'timing')"},
				"recommendation": map[string]interface{}{"type": "string", "description": "Optional recommendation"},
				"confidence":     map[string]interface{}{"type": "number", "description": "Confidence 0-1 (default: 0.5)"},
				"data_points":    map[string]interface{}{"type": "number", "description": "Observations behind the insight"},
			},
			Required: []string{"business_id", "insight"},
		},
	}, handlers.StoreLearning)

	return handlers
}
