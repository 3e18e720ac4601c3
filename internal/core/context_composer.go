// ABOUTME: ContextComposer merges everything known about a business into one instruction document
// ABOUTME: Leaf reads fan out concurrently and degrade to empty sections on failure
package core

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/harper/brand-memory/internal/models"
	"golang.org/x/sync/errgroup"
)

// Caps used by ComposeFull
const (
	FullMaxLearnings = 10
	FullMaxPatterns  = 15
)

// Pre-flight token estimate weights
const (
	estimateProfileTokens     = 150
	estimateVoiceSampleTokens = 50
	estimateToneTokens        = 100
	estimateToneExampleTokens = 30
	estimatePreferencesTokens = 50
)

// ClosingInstructions ends every composed document
const ClosingInstructions = `## Instructions
Apply the business context, voice, and tone preferences above to every piece of content you generate from here on, not only the first one.
Favor the successful patterns and campaign preferences where they fit, and do not contradict the key insights.`

// PerformanceSource supplies recent performance highlights from outside this system
type PerformanceSource interface {
	RecentPerformance(ctx context.Context, businessID string) (*models.PerformanceSummary, error)
}

// ContextComposer assembles the per-request context document
type ContextComposer struct {
	profiles    *BusinessProfileStore
	tones       *ToneModel
	patterns    *PatternLearner
	performance PerformanceSource
}

// NewContextComposer creates a composer over the three memory components
func NewContextComposer(profiles *BusinessProfileStore, tones *ToneModel, patterns *PatternLearner) *ContextComposer {
	return &ContextComposer{
		profiles: profiles,
		tones:    tones,
		patterns: patterns,
	}
}

// SetPerformanceSource enables the recent performance section
func (c *ContextComposer) SetPerformanceSource(source PerformanceSource) {
	c.performance = source
}

// GetContextPayload reads every requested section concurrently. Only an invalid
// business id is an error; a failed read leaves its section empty.
func (c *ContextComposer) GetContextPayload(ctx context.Context, businessID string, opts models.ComposeOptions) (*models.ContextPayload, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, err
	}
	opts = withDefaultCaps(opts)

	payload := &models.ContextPayload{
		Patterns: models.PatternContext{
			Topics:  []string{},
			Formats: []string{},
			Hooks:   []string{},
			CTAs:    []string{},
		},
		Learnings: []models.LearningContext{},
	}

	var g errgroup.Group

	if opts.IncludeBusinessContext {
		g.Go(func() error {
			bc, err := c.profiles.GetContextForAI(ctx, businessID)
			if err != nil {
				log.Printf("[Composer] Business context unavailable for %s: %v", businessID, err)
				return nil
			}
			if bc != nil {
				bc.VoiceSamples = lastN(bc.VoiceSamples, opts.MaxVoiceSamples)
				payload.BusinessContext = *bc
			}
			return nil
		})
	}

	if opts.IncludeTone {
		g.Go(func() error {
			tone, err := c.tones.GetToneForAI(ctx, businessID)
			if err != nil {
				log.Printf("[Composer] Tone unavailable for %s: %v", businessID, err)
				return nil
			}
			payload.Tone = tone
			return nil
		})
	}

	if opts.IncludePatterns {
		g.Go(func() error {
			pc, err := c.patterns.GetPatternsForAI(ctx, businessID)
			if err != nil {
				log.Printf("[Composer] Patterns unavailable for %s: %v", businessID, err)
				return nil
			}
			payload.Patterns = capPatterns(pc, opts.MaxPatterns)
			return nil
		})
	}

	if opts.IncludeCampaignPreferences {
		g.Go(func() error {
			prefs, err := c.profiles.GetCampaignPreferences(ctx, businessID)
			if err != nil {
				log.Printf("[Composer] Campaign preferences unavailable for %s: %v", businessID, err)
				return nil
			}
			payload.CampaignPreferences = prefs
			return nil
		})
	}

	if opts.IncludeRecentPerformance && c.performance != nil {
		g.Go(func() error {
			perf, err := c.performance.RecentPerformance(ctx, businessID)
			if err != nil {
				log.Printf("[Composer] Recent performance unavailable for %s: %v", businessID, err)
				return nil
			}
			payload.RecentPerformance = perf
			return nil
		})
	}

	if opts.IncludeLearnings {
		g.Go(func() error {
			learnings, err := c.patterns.GetLearningsForAI(ctx, businessID, opts.MaxLearnings)
			if err != nil {
				log.Printf("[Composer] Learnings unavailable for %s: %v", businessID, err)
				return nil
			}
			payload.Learnings = learnings
			return nil
		})
	}

	// Goroutines never return errors; each one owns a distinct payload field
	_ = g.Wait()

	return payload, nil
}

// Compose reads and renders the context document
func (c *ContextComposer) Compose(ctx context.Context, businessID string, opts models.ComposeOptions) (*models.ComposedContext, error) {
	payload, err := c.GetContextPayload(ctx, businessID, opts)
	if err != nil {
		return nil, err
	}

	document := FormatDocument(payload)
	return &models.ComposedContext{
		Document:           document,
		Payload:            *payload,
		TokenEstimate:      EstimateTokens(document),
		IncludedComponents: IncludedComponents(payload),
	}, nil
}

// ComposeLightweight includes business context and tone only
func (c *ContextComposer) ComposeLightweight(ctx context.Context, businessID string) (*models.ComposedContext, error) {
	return c.Compose(ctx, businessID, LightweightComposeOptions())
}

// ComposeFull includes every section with raised caps
func (c *ContextComposer) ComposeFull(ctx context.Context, businessID string) (*models.ComposedContext, error) {
	return c.Compose(ctx, businessID, FullComposeOptions())
}

// LightweightComposeOptions turns on business context and tone only
func LightweightComposeOptions() models.ComposeOptions {
	return models.ComposeOptions{
		IncludeBusinessContext: true,
		IncludeTone:            true,
		MaxLearnings:           models.DefaultMaxLearnings,
		MaxPatterns:            models.DefaultMaxPatterns,
		MaxVoiceSamples:        models.DefaultMaxVoiceSamples,
	}
}

// FullComposeOptions turns on every section
func FullComposeOptions() models.ComposeOptions {
	return models.ComposeOptions{
		IncludeBusinessContext:     true,
		IncludeTone:                true,
		IncludePatterns:            true,
		IncludeCampaignPreferences: true,
		IncludeRecentPerformance:   true,
		IncludeLearnings:           true,
		MaxLearnings:               FullMaxLearnings,
		MaxPatterns:                FullMaxPatterns,
		MaxVoiceSamples:            models.DefaultMaxVoiceSamples,
	}
}

// EstimateTokenUsage is a coarse pre-flight estimate from existence and count probes
func (c *ContextComposer) EstimateTokenUsage(ctx context.Context, businessID string) (int, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return 0, err
	}

	total := 0

	summary, err := c.profiles.GetContextSummary(ctx, businessID)
	if err != nil {
		log.Printf("[Composer] Profile summary unavailable for %s: %v", businessID, err)
	} else if summary.HasContext {
		total += estimateProfileTokens + estimateVoiceSampleTokens*summary.VoiceSampleCount
		if summary.HasPreferences {
			total += estimatePreferencesTokens
		}
	}

	tone, err := c.tones.GetTone(ctx, businessID)
	if err != nil {
		log.Printf("[Composer] Tone unavailable for %s: %v", businessID, err)
	} else if tone != nil {
		total += estimateToneTokens + estimateToneExampleTokens*len(tone.Examples)
	}

	return total, nil
}

// EstimateTokens approximates tokens as ceil(characters/4), counting runes not bytes
func EstimateTokens(document string) int {
	return (utf8.RuneCountInString(document) + 3) / 4
}

// IncludedComponents names the sections that ended up non-empty, in document order
func IncludedComponents(p *models.ContextPayload) []string {
	included := []string{}
	if p.BusinessContext.HasIdentity() {
		included = append(included, models.ComponentBusinessContext)
	}
	if len(p.BusinessContext.VoiceSamples) > 0 {
		included = append(included, models.ComponentVoiceSamples)
	}
	if p.Tone != nil {
		included = append(included, models.ComponentTone)
	}
	if p.Patterns.Count() > 0 {
		included = append(included, models.ComponentPatterns)
	}
	if !p.CampaignPreferences.IsEmpty() {
		included = append(included, models.ComponentCampaignPreferences)
	}
	if hasPerformance(p.RecentPerformance) {
		included = append(included, models.ComponentRecentPerformance)
	}
	if len(p.Learnings) > 0 {
		included = append(included, models.ComponentLearnings)
	}
	return included
}

func withDefaultCaps(opts models.ComposeOptions) models.ComposeOptions {
	if opts.MaxLearnings <= 0 {
		opts.MaxLearnings = models.DefaultMaxLearnings
	}
	if opts.MaxPatterns <= 0 {
		opts.MaxPatterns = models.DefaultMaxPatterns
	}
	if opts.MaxVoiceSamples <= 0 {
		opts.MaxVoiceSamples = models.DefaultMaxVoiceSamples
	}
	return opts
}

// capPatterns keeps at most max values, filling topics, formats, hooks, then ctas
func capPatterns(pc models.PatternContext, max int) models.PatternContext {
	remaining := max
	take := func(values []string) []string {
		n := len(values)
		if n > remaining {
			n = remaining
		}
		remaining -= n
		return append([]string{}, values[:n]...)
	}
	return models.PatternContext{
		Topics:  take(pc.Topics),
		Formats: take(pc.Formats),
		Hooks:   take(pc.Hooks),
		CTAs:    take(pc.CTAs),
	}
}

// lastN keeps the most recent n items in their original order
func lastN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return append([]string{}, items[len(items)-n:]...)
}

func hasPerformance(p *models.PerformanceSummary) bool {
	return p != nil && (p.Period != "" || len(p.Highlights) > 0)
}

// FormatDocument renders the payload in fixed section order, omitting empty sections.
// A payload with nothing in it renders as the closing instructions alone.
func FormatDocument(p *models.ContextPayload) string {
	var sections []string

	if p.BusinessContext.HasIdentity() {
		sections = append(sections, formatBusinessContext(p.BusinessContext))
	}
	if len(p.BusinessContext.VoiceSamples) > 0 {
		sections = append(sections, formatVoiceSamples(p.BusinessContext.VoiceSamples))
	}
	if p.Tone != nil {
		sections = append(sections, formatTone(p.Tone))
	}
	if p.Patterns.Count() > 0 {
		sections = append(sections, formatPatterns(p.Patterns))
	}
	if !p.CampaignPreferences.IsEmpty() {
		sections = append(sections, formatCampaignPreferences(p.CampaignPreferences))
	}
	if hasPerformance(p.RecentPerformance) {
		sections = append(sections, formatPerformance(p.RecentPerformance))
	}
	if len(p.Learnings) > 0 {
		sections = append(sections, formatLearnings(p.Learnings))
	}

	sections = append(sections, ClosingInstructions)
	return strings.Join(sections, "\n\n")
}

func formatBusinessContext(bc models.BusinessContext) string {
	var sb strings.Builder
	sb.WriteString("## Business Context")
	writeLine(&sb, "Business", bc.Name)
	writeLine(&sb, "Industry", bc.Industry)
	writeLine(&sb, "Type", bc.BusinessType)
	writeLine(&sb, "Location", bc.Location)
	writeLine(&sb, "Target Audience", bc.TargetAudience)
	writeLine(&sb, "Unique Selling Proposition", bc.UniqueSellingProposition)
	writeLine(&sb, "Brand Personality", bc.BrandPersonality)
	return sb.String()
}

func formatVoiceSamples(samples []string) string {
	var sb strings.Builder
	sb.WriteString("## Voice Samples\nWrite in a voice similar to these examples:")
	for _, s := range samples {
		sb.WriteString(fmt.Sprintf("\n- %q", s))
	}
	return sb.String()
}

var (
	formalityLabels  = map[int]string{1: "very casual", 2: "casual", 3: "balanced", 4: "professional", 5: "very formal"}
	humorLabels      = map[int]string{0: "no humor", 1: "light humor", 2: "playful", 3: "very funny"}
	enthusiasmLabels = map[int]string{1: "calm", 2: "measured", 3: "upbeat", 4: "enthusiastic", 5: "high energy"}
)

func formatTone(t *models.ToneContext) string {
	var sb strings.Builder
	sb.WriteString("## Tone Preferences")
	if t.Preset != "" {
		if preset, ok := models.LookupPreset(t.Preset); ok {
			sb.WriteString(fmt.Sprintf("\nPreset: %s (%s)", preset.ID, preset.Description))
		} else {
			sb.WriteString(fmt.Sprintf("\nPreset: %s", t.Preset))
		}
	}
	if t.CustomDescription != "" {
		sb.WriteString(fmt.Sprintf("\nCustom tone: %s", t.CustomDescription))
	}
	sb.WriteString(fmt.Sprintf("\nFormality: %d/%d (%s)", t.Formality, models.FormalityMax, formalityLabels[t.Formality]))
	sb.WriteString(fmt.Sprintf("\nHumor: %d/%d (%s)", t.Humor, models.HumorMax, humorLabels[t.Humor]))
	sb.WriteString(fmt.Sprintf("\nEnthusiasm: %d/%d (%s)", t.Enthusiasm, models.EnthusiasmMax, enthusiasmLabels[t.Enthusiasm]))
	if len(t.Examples) > 0 {
		sb.WriteString("\nExample phrases:")
		for _, e := range t.Examples {
			sb.WriteString(fmt.Sprintf("\n- %q", e))
		}
	}
	return sb.String()
}

func formatPatterns(pc models.PatternContext) string {
	var sb strings.Builder
	sb.WriteString("## Successful Patterns")
	groups := []struct {
		title  string
		values []string
	}{
		{"Topics that resonate", pc.Topics},
		{"Formats that perform well", pc.Formats},
		{"Hooks that grab attention", pc.Hooks},
		{"Calls to action that convert", pc.CTAs},
	}
	for _, g := range groups {
		if len(g.values) == 0 {
			continue
		}
		sb.WriteString("\n### " + g.title)
		for _, v := range g.values {
			sb.WriteString("\n- " + v)
		}
	}
	return sb.String()
}

func formatCampaignPreferences(prefs models.CampaignPreferences) string {
	var sb strings.Builder
	sb.WriteString("## Campaign Preferences")
	writeLine(&sb, "Preferred campaign types", strings.Join(prefs.PreferredCampaignTypes, ", "))
	writeLine(&sb, "Preferred platforms", strings.Join(prefs.PreferredPlatforms, ", "))
	writeLine(&sb, "Preferred content types", strings.Join(prefs.PreferredContentTypes, ", "))
	if len(prefs.PreferredDurations) > 0 {
		days := make([]string, len(prefs.PreferredDurations))
		for i, d := range prefs.PreferredDurations {
			days[i] = fmt.Sprintf("%d", d)
		}
		writeLine(&sb, "Preferred durations", strings.Join(days, ", ")+" days")
	}
	writeLine(&sb, "Avoid topics", strings.Join(prefs.AvoidTopics, ", "))
	writeLine(&sb, "Always include", strings.Join(prefs.MustIncludeTopics, ", "))
	return sb.String()
}

func formatPerformance(p *models.PerformanceSummary) string {
	var sb strings.Builder
	sb.WriteString("## Recent Performance")
	writeLine(&sb, "Period", p.Period)
	for _, h := range p.Highlights {
		sb.WriteString("\n- " + h)
	}
	return sb.String()
}

func formatLearnings(learnings []models.LearningContext) string {
	var sb strings.Builder
	sb.WriteString("## Key Insights")
	for _, l := range learnings {
		sb.WriteString("\n- " + l.Insight)
		if l.Recommendation != "" {
			sb.WriteString(" (Recommendation: " + l.Recommendation + ")")
		}
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString("\n" + label + ": " + value)
}
