// ABOUTME: Natural-language tone command parsing and pure tone transitions
// ABOUTME: Ordered rules resolve exactly one intent; preset switches win over axis nudges
package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harper/brand-memory/internal/models"
)

// ToneIntentKind distinguishes preset switches from single-axis nudges
type ToneIntentKind int

const (
	IntentAxis ToneIntentKind = iota
	IntentPreset
)

// ToneIntent is the single change resolved from a command
type ToneIntent struct {
	Kind     ToneIntentKind
	Preset   string
	Axis     models.ToneAxis
	Delta    int
	Fallback bool
}

type axisRule struct {
	axis     models.ToneAxis
	increase []string
	decrease []string
}

// Axis rules in priority order: humor, formality, enthusiasm
var axisRules = []axisRule{
	{
		axis:     models.AxisHumor,
		increase: []string{"funnier", "more humor", "more humorous", "more funny", "more playful", "add humor", "add some humor", "more jokes"},
		decrease: []string{"less funny", "more serious", "less humor", "less humorous", "less playful", "tone down the humor", "no jokes"},
	},
	{
		axis:     models.AxisFormality,
		increase: []string{"more professional", "more formal", "less casual", "more polished", "more buttoned-up"},
		decrease: []string{"less formal", "more casual", "less professional", "more relaxed", "less stiff"},
	},
	{
		axis:     models.AxisEnthusiasm,
		increase: []string{"more enthusiastic", "more energetic", "more excited", "more exciting", "more energy", "less reserved", "more hype"},
		decrease: []string{"less enthusiastic", "less energetic", "less excited", "less exciting", "less energy", "more reserved", "calmer"},
	},
}

var intensifier = regexp.MustCompile(`\b(much|way)\b`)

type presetMatcher struct {
	id      string
	pattern *regexp.Regexp
}

var presetMatchers = buildPresetMatchers()

func buildPresetMatchers() []presetMatcher {
	presets := models.TonePresets()
	matchers := make([]presetMatcher, 0, len(presets))
	for _, p := range presets {
		alt := regexp.QuoteMeta(p.ID)
		if name := strings.ToLower(p.DisplayName); name != p.ID {
			alt += "|" + regexp.QuoteMeta(name)
		}
		matchers = append(matchers, presetMatcher{
			id:      p.ID,
			pattern: regexp.MustCompile(`\b(?:` + alt + `)\b`),
		})
	}
	return matchers
}

// ParseToneCommand resolves a command to exactly one intent. Unrecognised text
// falls back to decreasing formality by one.
func ParseToneCommand(text string) ToneIntent {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if id, ok := matchPreset(normalized); ok {
		return ToneIntent{Kind: IntentPreset, Preset: id}
	}

	magnitude := 1
	if intensifier.MatchString(normalized) {
		magnitude = 2
	}

	for _, rule := range axisRules {
		if containsAny(normalized, rule.increase) {
			return ToneIntent{Kind: IntentAxis, Axis: rule.axis, Delta: magnitude}
		}
		if containsAny(normalized, rule.decrease) {
			return ToneIntent{Kind: IntentAxis, Axis: rule.axis, Delta: -magnitude}
		}
	}

	return ToneIntent{Kind: IntentAxis, Axis: models.AxisFormality, Delta: -1, Fallback: true}
}

// matchPreset finds the earliest preset id or display name appearing as a whole
// word. A name right after "more" or "less" is a comparison and is left to the
// axis rules.
func matchPreset(normalized string) (string, bool) {
	bestID, bestPos := "", -1
	for _, m := range presetMatchers {
		for _, loc := range m.pattern.FindAllStringIndex(normalized, -1) {
			if isComparative(normalized[:loc[0]]) {
				continue
			}
			if bestPos < 0 || loc[0] < bestPos {
				bestID, bestPos = m.id, loc[0]
			}
			break
		}
	}
	return bestID, bestPos >= 0
}

func isComparative(before string) bool {
	words := strings.Fields(before)
	if len(words) == 0 {
		return false
	}
	last := words[len(words)-1]
	return last == "more" || last == "less"
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// ApplyToneIntent is the pure transition from one tone state to the next.
// prev is never modified.
func ApplyToneIntent(prev *models.ToneConfiguration, intent ToneIntent) (*models.ToneConfiguration, string) {
	next := prev.Clone()

	if intent.Kind == IntentPreset {
		preset, ok := models.LookupPreset(intent.Preset)
		if ok {
			next.Preset = preset.ID
			next.CustomDescription = ""
			next.Axes = preset.Axes
			next.Examples = preset.Examples
			return next, fmt.Sprintf("Switched to %s preset", preset.DisplayName)
		}
		intent = ToneIntent{Kind: IntentAxis, Axis: models.AxisFormality, Delta: -1, Fallback: true}
	}

	old := prev.Axes.Get(intent.Axis)
	next.Axes = prev.Axes.With(intent.Axis, old+intent.Delta)
	next.Preset = ""

	verb := "Increased"
	if intent.Delta < 0 {
		verb = "Decreased"
	}
	return next, fmt.Sprintf("%s %s from %d to %d", verb, intent.Axis, old, next.Axes.Get(intent.Axis))
}
