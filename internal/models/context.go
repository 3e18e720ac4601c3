// ABOUTME: Context payload types produced by composition and consumed by generation
// ABOUTME: Derived per request and never persisted
package models

// Component names reported in ComposedContext.IncludedComponents
const (
	ComponentBusinessContext     = "business_context"
	ComponentVoiceSamples        = "voice_samples"
	ComponentTone                = "tone"
	ComponentPatterns            = "patterns"
	ComponentCampaignPreferences = "campaign_preferences"
	ComponentRecentPerformance   = "recent_performance"
	ComponentLearnings           = "learnings"
)

// BusinessContext is the flattened, identifier-free profile projection
type BusinessContext struct {
	Name                     string   `json:"name,omitempty"`
	Industry                 string   `json:"industry,omitempty"`
	BusinessType             string   `json:"business_type,omitempty"`
	Location                 string   `json:"location,omitempty"`
	TargetAudience           string   `json:"target_audience,omitempty"`
	UniqueSellingProposition string   `json:"unique_selling_proposition,omitempty"`
	BrandPersonality         string   `json:"brand_personality,omitempty"`
	VoiceSamples             []string `json:"voice_samples,omitempty"`
}

// HasIdentity reports whether any descriptive field is set (voice samples excluded)
func (b BusinessContext) HasIdentity() bool {
	return b.Name != "" || b.Industry != "" || b.BusinessType != "" || b.Location != "" ||
		b.TargetAudience != "" || b.UniqueSellingProposition != "" || b.BrandPersonality != ""
}

// ContextSummary is a cheap existence/size probe of a business profile
type ContextSummary struct {
	HasContext       bool   `json:"has_context"`
	BusinessName     string `json:"business_name,omitempty"`
	Industry         string `json:"industry,omitempty"`
	VoiceSampleCount int    `json:"voice_sample_count"`
	HasPreferences   bool   `json:"has_preferences"`
}

// ToneContext is the read-only tone projection used in composition
type ToneContext struct {
	Preset            string   `json:"preset,omitempty"`
	CustomDescription string   `json:"custom_description,omitempty"`
	Formality         int      `json:"formality"`
	Humor             int      `json:"humor"`
	Enthusiasm        int      `json:"enthusiasm"`
	Examples          []string `json:"examples"`
}

// PatternContext is the values-only pattern projection with fixed per-category caps
type PatternContext struct {
	Topics  []string `json:"topics"`
	Formats []string `json:"formats"`
	Hooks   []string `json:"hooks"`
	CTAs    []string `json:"ctas"`
}

// Count returns the total number of pattern values
func (p PatternContext) Count() int {
	return len(p.Topics) + len(p.Formats) + len(p.Hooks) + len(p.CTAs)
}

// LearningContext is the projection of a learning used in composition
type LearningContext struct {
	Insight        string `json:"insight"`
	Recommendation string `json:"recommendation,omitempty"`
}

// PerformanceSummary is pass-through recent performance data from an external source
type PerformanceSummary struct {
	Period     string   `json:"period,omitempty"`
	Highlights []string `json:"highlights"`
}

// ContextPayload is the in-memory merge of everything known about a business
type ContextPayload struct {
	BusinessContext     BusinessContext     `json:"business_context"`
	Tone                *ToneContext        `json:"tone,omitempty"`
	Patterns            PatternContext      `json:"patterns"`
	CampaignPreferences CampaignPreferences `json:"campaign_preferences"`
	RecentPerformance   *PerformanceSummary `json:"recent_performance,omitempty"`
	Learnings           []LearningContext   `json:"learnings"`
}

// ComposeOptions toggles which sections are fetched and caps list sizes
type ComposeOptions struct {
	IncludeBusinessContext     bool `json:"include_business_context"`
	IncludeTone                bool `json:"include_tone"`
	IncludePatterns            bool `json:"include_patterns"`
	IncludeCampaignPreferences bool `json:"include_campaign_preferences"`
	IncludeRecentPerformance   bool `json:"include_recent_performance"`
	IncludeLearnings           bool `json:"include_learnings"`
	MaxLearnings               int  `json:"max_learnings"`
	MaxPatterns                int  `json:"max_patterns"`
	MaxVoiceSamples            int  `json:"max_voice_samples"`
}

// Default caps
const (
	DefaultMaxLearnings    = 5
	DefaultMaxPatterns     = 10
	DefaultMaxVoiceSamples = 5
)

// DefaultComposeOptions includes every section except recent performance
func DefaultComposeOptions() ComposeOptions {
	return ComposeOptions{
		IncludeBusinessContext:     true,
		IncludeTone:                true,
		IncludePatterns:            true,
		IncludeCampaignPreferences: true,
		IncludeRecentPerformance:   false,
		IncludeLearnings:           true,
		MaxLearnings:               DefaultMaxLearnings,
		MaxPatterns:                DefaultMaxPatterns,
		MaxVoiceSamples:            DefaultMaxVoiceSamples,
	}
}

// ComposedContext is the rendered document plus diagnostics
type ComposedContext struct {
	Document           string         `json:"document"`
	Payload            ContextPayload `json:"payload"`
	TokenEstimate      int            `json:"token_estimate"`
	IncludedComponents []string       `json:"included_components"`
}
