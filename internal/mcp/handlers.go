// ABOUTME: MCP tool handler implementations for the brand memory server
// ABOUTME: Each handler validates arguments, calls a memory component, and returns JSON text
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/harper/brand-memory/internal/core"
	"github.com/harper/brand-memory/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	memory *core.Memory
	scribe *core.Scribe // Optional; mines outcome reports for learnings
}

// NewHandlers creates handlers over the wired memory components
func NewHandlers(memory *core.Memory, scribe *core.Scribe) *Handlers {
	return &Handlers{memory: memory, scribe: scribe}
}

// ComposeContext handles the compose_context tool
func (h *Handlers) ComposeContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	businessID, err := request.RequireString("business_id")
	if err != nil {
		return mcp.NewToolResultError("business_id argument is required and must be a string"), nil
	}

	var composed *models.ComposedContext
	switch mode := request.GetString("mode", "default"); mode {
	case "default":
		composed, err = h.memory.Composer.Compose(ctx, businessID, models.DefaultComposeOptions())
	case "lightweight":
		composed, err = h.memory.Composer.ComposeLightweight(ctx, businessID)
	case "full":
		composed, err = h.memory.Composer.ComposeFull(ctx, businessID)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q (want default, lightweight, or full)", mode)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("compose failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"document":            composed.Document,
		"token_estimate":      composed.TokenEstimate,
		"included_components": composed.IncludedComponents,
	}
	if request.GetBool("include_payload", false) {
		response["payload"] = composed.Payload
	}
	return jsonResult(response)
}

// EstimateContextTokens handles the estimate_context_tokens tool
func (h *Handlers) EstimateContextTokens(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	businessID, err := request.RequireString("business_id")
	if err != nil {
		return mcp.NewToolResultError("business_id argument is required and must be a string"), nil
	}

	estimate, err := h.memory.Composer.EstimateTokenUsage(ctx, businessID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("estimate failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"estimated_tokens": estimate})
}

// GetBusinessProfile handles the get_business_profile tool
func (h *Handlers) GetBusinessProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	businessID, err := request.RequireString("business_id")
	if err != nil {
		return mcp.NewToolResultError("business_id argument is required and must be a string"), nil
	}

	profile, err := h.memory.Profiles.GetProfile(ctx, businessID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load profile: %v", err)), nil
	}

	// A missing profile is not an error
	response := map[string]interface{}{
		"found":   profile != nil,
		"profile": profile,
	}
	return jsonResult(response)
}

// UpdateBusinessProfile handles the update_business_profile tool
func (h *Handlers) UpdateBusinessProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	businessID, err := request.RequireString("business_id")
	if err != nil {
		return mcp.NewToolResultError("business_id argument is required and must be a string"), nil
	}

	args := request.GetArguments()
	update := models.ProfileUpdate{
		Name:                     optionalString(args, "name"),
		Industry:                 optionalString(args, "industry"),
		BusinessType:             optionalString(args, "business_type"),
		TargetAudience:           optionalString(args, "target_audience"),
		UniqueSellingProposition: optionalString(args, "unique_selling_proposition"),
		BrandPersonality:         optionalString(args, "brand_personality"),
	}
	city, state, country := optionalString(args, "city"), optionalString(args, "state"), optionalString(args, "country")
	if city != nil || state != nil || country != nil {
		update.Location = &models.Location{City: deref(city), State: deref(state), Country: deref(country)}
	}

	profile, err := h.memory.Profiles.UpsertProfile(ctx, businessID, update)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save profile: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}

// AddVoiceSample handles the add_voice_sample tool
func (h *Handlers) AddVoiceSample(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	businessID, err := request.RequireString("business_id")
	if err != nil {
		return mcp.NewToolResultError("business_id argument is required and must be a string"), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	sample, err := h.memory.Profiles.AddVoiceSample(ctx, businessID, text, stringSlice(request.GetArguments(), "tags"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add voice sample: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"success": true,
		"sample":  sample,
	})
}

// AdjustTone handles the adjust_tone tool
func (h *Handlers) AdjustTone(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	businessID, err := request.RequireString("business_id")
	if err != nil {
		return mcp.NewToolResultError("business_id argument is required and must be a string"), nil
	}
	command, err := request.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError("command argument is required and must be a string"), nil
	}

	adjustment, err := h.memory.Tone.AdjustNaturally(ctx, businessID, command)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to adjust tone: %v", err)), nil
	}
	return jsonResult(adjustment)
}

// SetTonePreset handles the set_tone_preset tool
func (h *Handlers) SetTonePreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	businessID, err := request.RequireString("business_id")
	if err != nil {
		return mcp.NewToolResultError("business_id argument is required and must be a string"), nil
	}
	preset, err := request.RequireString("preset")
	if err != nil {
		return mcp.NewToolResultError("preset argument is required and must be a string"), nil
	}

	tone, err := h.memory.Tone.SetPreset(ctx, businessID, preset)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set preset: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"success": true,
		"tone":    tone,
	})
}

// StorePattern handles the store_pattern tool
func (h *Handlers) StorePattern(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	businessID, err := request.RequireString("business_id")
	if err != nil {
		return mcp.NewToolResultError("business_id argument is required and must be a string"), nil
	}
	rawType, err := request.RequireString("pattern_type")
	if err != nil {
		return mcp.NewToolResultError("pattern_type argument is required and must be a string"), nil
	}
	patternType, err := models.ParsePatternType(rawType)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := request.RequireString("pattern_value")
	if err != nil {
		return mcp.NewToolResultError("pattern_value argument is required and must be a string"), nil
	}

	args := request.GetArguments()
	in := core.StorePatternInput{
		PatternType:  patternType,
		PatternValue: value,
		Scope: models.PatternScope{
			CampaignType: request.GetString("campaign_type", ""),
			Platform:     request.GetString("platform", ""),
		},
		Metrics: models.PerformanceMetrics{
			AvgEngagementRate: request.GetFloat("avg_engagement_rate", 0),
			AvgReach:          request.GetFloat("avg_reach", 0),
			SampleSize:        request.GetInt("sample_size", 0),
			ConfidenceScore:   request.GetFloat("confidence", 0),
		},
		Examples: stringSlice(args, "examples"),
	}
	if _, ok := args["variance"]; ok {
		variance := request.GetFloat("variance", 0)
		in.Variance = &variance
	}

	pattern, err := h.memory.Patterns.StorePattern(ctx, businessID, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store pattern: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"success": true,
		"pattern": pattern,
	})
}

// RecordCampaignOutcome handles the record_campaign_outcome tool
func (h *Handlers) RecordCampaignOutcome(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	businessID, err := request.RequireString("business_id")
	if err != nil {
		return mcp.NewToolResultError("business_id argument is required and must be a string"), nil
	}
	successful, err := request.RequireBool("was_successful")
	if err != nil {
		return mcp.NewToolResultError("was_successful argument is required and must be a boolean"), nil
	}

	args := request.GetArguments()
	outcome := models.CampaignOutcome{
		CampaignType:  request.GetString("campaign_type", ""),
		Platforms:     stringSlice(args, "platforms"),
		ContentTypes:  stringSlice(args, "content_types"),
		DurationDays:  request.GetInt("duration_days", 0),
		WasSuccessful: successful,
	}
	if err := h.memory.Profiles.LearnFromCampaign(ctx, businessID, outcome); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record outcome: %v", err)), nil
	}

	// Learning extraction runs in the background and never fails the call
	reportQueued := false
	if report := request.GetString("report", ""); report != "" && h.scribe != nil {
		h.scribe.RecordOutcomeAsync(businessID, report)
		reportQueued = true
	}

	preferences, err := h.memory.Profiles.GetCampaignPreferences(ctx, businessID)
	if err != nil {
		log.Printf("[MCP] Warning: failed to reload preferences for %s: %v", businessID, err)
	}
	return jsonResult(map[string]interface{}{
		"success":              true,
		"campaign_preferences": preferences,
		"report_queued":        reportQueued,
	})
}

// StoreLearning handles the store_learning tool
func (h *Handlers) StoreLearning(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	businessID, err := request.RequireString("business_id")
	if err != nil {
		return mcp.NewToolResultError("business_id argument is required and must be a string"), nil
	}
	insight, err := request.RequireString("insight")
	if err != nil {
		return mcp.NewToolResultError("insight argument is required and must be a string"), nil
	}

	learning, err := h.memory.Patterns.StoreLearning(ctx, businessID, core.StoreLearningInput{
		Category:       request.GetString("category", ""),
		Insight:        insight,
		Recommendation: request.GetString("recommendation", ""),
		Confidence:     request.GetFloat("confidence", 0.5),
		DataPoints:     request.GetInt("data_points", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store learning: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"success":  true,
		"learning": learning,
	})
}

// Shutdown waits for pending background outcome processing
func (h *Handlers) Shutdown() {
	if h.scribe == nil {
		return
	}
	log.Println("[MCP] Waiting for pending Scribe operations to complete...")
	h.scribe.Wait()
	log.Println("[MCP] All Scribe operations completed")
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// optionalString returns nil when the key is absent so partial updates keep prior values
func optionalString(args map[string]any, key string) *string {
	raw, ok := args[key]
	if !ok {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// stringSlice extracts a string array argument, skipping non-string items
func stringSlice(args map[string]any, key string) []string {
	if val, ok := args[key]; ok {
		if arr, ok := val.([]interface{}); ok {
			result := make([]string, 0, len(arr))
			for _, item := range arr {
				if str, ok := item.(string); ok {
					result = append(result, str)
				}
			}
			return result
		}
	}
	return []string{}
}
