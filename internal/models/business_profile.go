// ABOUTME: BusinessProfile represents who a business is and what it prefers
// ABOUTME: Includes voice samples, campaign preferences, and partial-update types
package models

import (
	"strings"
	"time"
)

// Known business types. The set is open; these are the ones presets recommend for.
const (
	BusinessTypeLocalService         = "local-service"
	BusinessTypeRetail               = "retail"
	BusinessTypeRestaurant           = "restaurant"
	BusinessTypeB2BSaaS              = "b2b-saas"
	BusinessTypeProfessionalServices = "professional-services"
	BusinessTypeEcommerce            = "ecommerce"
)

// Location is an optional city/state/country triple
type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// String joins the non-empty parts as "City, State, Country"
func (l Location) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.City, l.State, l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// VoiceSample is exemplar writing to imitate. Samples are appended or removed, never edited.
type VoiceSample struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CampaignPreferences holds set-valued preferences learned or edited for a business
type CampaignPreferences struct {
	PreferredCampaignTypes []string `json:"preferred_campaign_types"`
	PreferredPlatforms     []string `json:"preferred_platforms"`
	PreferredContentTypes  []string `json:"preferred_content_types"`
	PreferredDurations     []int    `json:"preferred_durations"`
	AvoidTopics            []string `json:"avoid_topics,omitempty"`
	MustIncludeTopics      []string `json:"must_include_topics,omitempty"`
}

// IsEmpty reports whether no preference has been recorded
func (p CampaignPreferences) IsEmpty() bool {
	return len(p.PreferredCampaignTypes) == 0 &&
		len(p.PreferredPlatforms) == 0 &&
		len(p.PreferredContentTypes) == 0 &&
		len(p.PreferredDurations) == 0 &&
		len(p.AvoidTopics) == 0 &&
		len(p.MustIncludeTopics) == 0
}

// Normalize removes duplicates from every set, keeping first occurrences
func (p *CampaignPreferences) Normalize() {
	p.PreferredCampaignTypes = UnionStrings(nil, p.PreferredCampaignTypes...)
	p.PreferredPlatforms = UnionStrings(nil, p.PreferredPlatforms...)
	p.PreferredContentTypes = UnionStrings(nil, p.PreferredContentTypes...)
	p.PreferredDurations = UnionInts(nil, p.PreferredDurations...)
	p.AvoidTopics = UnionStrings(nil, p.AvoidTopics...)
	p.MustIncludeTopics = UnionStrings(nil, p.MustIncludeTopics...)
}

// BusinessProfile is the one-per-business identity record
type BusinessProfile struct {
	BusinessID               string              `json:"business_id"`
	Name                     string              `json:"name"`
	Industry                 string              `json:"industry"`
	BusinessType             string              `json:"business_type"`
	Location                 *Location           `json:"location,omitempty"`
	TargetAudience           string              `json:"target_audience"`
	UniqueSellingProposition string              `json:"unique_selling_proposition"`
	BrandPersonality         string              `json:"brand_personality"`
	VoiceSamples             []VoiceSample       `json:"voice_samples"`
	CampaignPreferences      CampaignPreferences `json:"campaign_preferences"`
	CreatedAt                time.Time           `json:"created_at"`
	UpdatedAt                time.Time           `json:"updated_at"`
}

// ProfileUpdate is a partial profile edit; nil fields keep their prior value
type ProfileUpdate struct {
	Name                     *string   `json:"name,omitempty"`
	Industry                 *string   `json:"industry,omitempty"`
	BusinessType             *string   `json:"business_type,omitempty"`
	Location                 *Location `json:"location,omitempty"`
	TargetAudience           *string   `json:"target_audience,omitempty"`
	UniqueSellingProposition *string   `json:"unique_selling_proposition,omitempty"`
	BrandPersonality         *string   `json:"brand_personality,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Industry == nil && u.BusinessType == nil && u.Location == nil &&
		u.TargetAudience == nil && u.UniqueSellingProposition == nil && u.BrandPersonality == nil
}

// Apply merges the update into the profile
func (u ProfileUpdate) Apply(p *BusinessProfile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Industry != nil {
		p.Industry = *u.Industry
	}
	if u.BusinessType != nil {
		p.BusinessType = *u.BusinessType
	}
	if u.Location != nil {
		loc := *u.Location
		p.Location = &loc
	}
	if u.TargetAudience != nil {
		p.TargetAudience = *u.TargetAudience
	}
	if u.UniqueSellingProposition != nil {
		p.UniqueSellingProposition = *u.UniqueSellingProposition
	}
	if u.BrandPersonality != nil {
		p.BrandPersonality = *u.BrandPersonality
	}
}

// CampaignPreferencesUpdate is a field-wise partial edit of CampaignPreferences.
// A non-nil field replaces the stored set (deduplicated).
type CampaignPreferencesUpdate struct {
	PreferredCampaignTypes *[]string `json:"preferred_campaign_types,omitempty"`
	PreferredPlatforms     *[]string `json:"preferred_platforms,omitempty"`
	PreferredContentTypes  *[]string `json:"preferred_content_types,omitempty"`
	PreferredDurations     *[]int    `json:"preferred_durations,omitempty"`
	AvoidTopics            *[]string `json:"avoid_topics,omitempty"`
	MustIncludeTopics      *[]string `json:"must_include_topics,omitempty"`
}

// Apply merges the update into prefs
func (u CampaignPreferencesUpdate) Apply(prefs *CampaignPreferences) {
	if u.PreferredCampaignTypes != nil {
		prefs.PreferredCampaignTypes = UnionStrings(nil, *u.PreferredCampaignTypes...)
	}
	if u.PreferredPlatforms != nil {
		prefs.PreferredPlatforms = UnionStrings(nil, *u.PreferredPlatforms...)
	}
	if u.PreferredContentTypes != nil {
		prefs.PreferredContentTypes = UnionStrings(nil, *u.PreferredContentTypes...)
	}
	if u.PreferredDurations != nil {
		prefs.PreferredDurations = UnionInts(nil, *u.PreferredDurations...)
	}
	if u.AvoidTopics != nil {
		prefs.AvoidTopics = UnionStrings(nil, *u.AvoidTopics...)
	}
	if u.MustIncludeTopics != nil {
		prefs.MustIncludeTopics = UnionStrings(nil, *u.MustIncludeTopics...)
	}
}

// CampaignOutcome is the feedback recorded after a campaign has been measured
type CampaignOutcome struct {
	CampaignType  string   `json:"campaign_type"`
	Platforms     []string `json:"platforms"`
	ContentTypes  []string `json:"content_types"`
	DurationDays  int      `json:"duration_days"`
	WasSuccessful bool     `json:"was_successful"`
}

// UnionStrings appends items not already present in set. Empty strings are skipped.
func UnionStrings(set []string, items ...string) []string {
	out := make([]string, 0, len(set)+len(items))
	seen := make(map[string]bool, len(set)+len(items))
	for _, s := range append(append([]string{}, set...), items...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// UnionInts appends items not already present in set
func UnionInts(set []int, items ...int) []int {
	out := make([]int, 0, len(set)+len(items))
	seen := make(map[int]bool, len(set)+len(items))
	for _, n := range append(append([]int{}, set...), items...) {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
