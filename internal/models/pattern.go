// ABOUTME: ContentPattern and Learning represent what has worked for a business
// ABOUTME: Patterns carry performance metrics and a derived confidence score
package models

import (
	"fmt"
	"time"
)

// PatternType classifies a discovered content pattern
type PatternType string

const (
	PatternTopic  PatternType = "topic"
	PatternFormat PatternType = "format"
	PatternHook   PatternType = "hook"
	PatternCTA    PatternType = "cta"
)

// ParsePatternType validates a pattern type string
func ParsePatternType(s string) (PatternType, error) {
	switch PatternType(s) {
	case PatternTopic, PatternFormat, PatternHook, PatternCTA:
		return PatternType(s), nil
	}
	return "", fmt.Errorf("%w: unknown pattern type %q", ErrValidation, s)
}

// PerformanceMetrics summarises how a pattern has performed
type PerformanceMetrics struct {
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgReach          float64 `json:"avg_reach"`
	SampleSize        int     `json:"sample_size"`
	ConfidenceScore   float64 `json:"confidence_score"`
}

// MetricsUpdate is a field-wise partial edit of PerformanceMetrics
type MetricsUpdate struct {
	AvgEngagementRate *float64 `json:"avg_engagement_rate,omitempty"`
	AvgReach          *float64 `json:"avg_reach,omitempty"`
	SampleSize        *int     `json:"sample_size,omitempty"`
	ConfidenceScore   *float64 `json:"confidence_score,omitempty"`
}

// Apply merges the update into m. The confidence score is only changed when supplied.
func (u MetricsUpdate) Apply(m *PerformanceMetrics) {
	if u.AvgEngagementRate != nil {
		m.AvgEngagementRate = *u.AvgEngagementRate
	}
	if u.AvgReach != nil {
		m.AvgReach = *u.AvgReach
	}
	if u.SampleSize != nil {
		m.SampleSize = *u.SampleSize
	}
	if u.ConfidenceScore != nil {
		m.ConfidenceScore = *u.ConfidenceScore
	}
}

// PatternScope optionally narrows a pattern to a campaign type and/or platform
type PatternScope struct {
	CampaignType string `json:"campaign_type,omitempty"`
	Platform     string `json:"platform,omitempty"`
}

// ContentPattern is a discovered, confidence-scored content trait
type ContentPattern struct {
	ID                 string             `json:"id"`
	BusinessID         string             `json:"business_id"`
	PatternType        PatternType        `json:"pattern_type"`
	PatternValue       string             `json:"pattern_value"`
	CampaignType       string             `json:"campaign_type,omitempty"`
	Platform           string             `json:"platform,omitempty"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
	Examples           []string           `json:"examples"`
	IsActive           bool               `json:"is_active"`
	DiscoveredAt       time.Time          `json:"discovered_at"`
	LastValidatedAt    time.Time          `json:"last_validated_at"`
}

// PatternFilter narrows pattern retrieval; zero values do not filter
type PatternFilter struct {
	PatternType   PatternType `json:"pattern_type,omitempty"`
	CampaignType  string      `json:"campaign_type,omitempty"`
	Platform      string      `json:"platform,omitempty"`
	MinConfidence float64     `json:"min_confidence,omitempty"`
	Limit         int         `json:"limit,omitempty"`
}

// Learning is a plain-language derived insight with an optional recommendation
type Learning struct {
	ID             string    `json:"id"`
	BusinessID     string    `json:"business_id"`
	Category       string    `json:"category"`
	Insight        string    `json:"insight"`
	DataPoints     int       `json:"data_points"`
	Confidence     float64   `json:"confidence"`
	Recommendation string    `json:"recommendation,omitempty"`
	IsDismissed    bool      `json:"is_dismissed"`
	CreatedAt      time.Time `json:"created_at"`
}
