// ABOUTME: PatternLearner stores, scores, and retrieves what has worked for a business
// ABOUTME: Also manages learnings, the free-text sibling of patterns
package core

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/harper/brand-memory/internal/models"
	"github.com/harper/brand-memory/internal/storage"
)

// Per-category caps for the AI projection
const (
	MaxAITopics  = 5
	MaxAIFormats = 3
	MaxAIHooks   = 5
	MaxAICTAs    = 3
)

// ConfidenceSaturation is the sample size at which volume stops adding confidence
const ConfidenceSaturation = 10

// ConfidenceScore weighs volume and consistency equally:
// (min(n/10, 1) + max(0, 1-variance)) / 2
func ConfidenceScore(sampleSize int, variance float64) float64 {
	sampleScore := math.Min(float64(sampleSize)/ConfidenceSaturation, 1)
	if sampleScore < 0 {
		sampleScore = 0
	}
	varianceScore := math.Max(0, 1-variance)
	if varianceScore > 1 {
		varianceScore = 1
	}
	return (sampleScore + varianceScore) / 2
}

// StorePatternInput describes a new pattern. When Variance is set the confidence
// score is computed from it and the sample size.
type StorePatternInput struct {
	PatternType  models.PatternType
	PatternValue string
	Scope        models.PatternScope
	Metrics      models.PerformanceMetrics
	Variance     *float64
	Examples     []string
	Inactive     bool
}

// PatternDiscoverer finds candidate patterns for a business. Implementations are pluggable.
type PatternDiscoverer interface {
	Discover(ctx context.Context, businessID string) ([]StorePatternInput, error)
}

// NoopDiscoverer never finds anything
type NoopDiscoverer struct{}

// Discover returns no patterns
func (NoopDiscoverer) Discover(context.Context, string) ([]StorePatternInput, error) {
	return nil, nil
}

// PatternLearner is the pattern and learning component
type PatternLearner struct {
	patterns   storage.PatternStore
	learnings  storage.LearningStore
	discoverer PatternDiscoverer
}

// NewPatternLearner creates a pattern component with no discovery
func NewPatternLearner(patterns storage.PatternStore, learnings storage.LearningStore) *PatternLearner {
	return &PatternLearner{
		patterns:   patterns,
		learnings:  learnings,
		discoverer: NoopDiscoverer{},
	}
}

// SetDiscoverer replaces the pattern discoverer
func (l *PatternLearner) SetDiscoverer(d PatternDiscoverer) {
	if d == nil {
		d = NoopDiscoverer{}
	}
	l.discoverer = d
}

// StorePattern inserts a new pattern. Equal values are not merged.
func (l *PatternLearner) StorePattern(ctx context.Context, businessID string, in StorePatternInput) (*models.ContentPattern, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, err
	}
	patternType, err := models.ParsePatternType(string(in.PatternType))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.PatternValue) == "" {
		return nil, fmt.Errorf("%w: pattern value is empty", models.ErrValidation)
	}

	metrics := in.Metrics
	if in.Variance != nil {
		metrics.ConfidenceScore = ConfidenceScore(metrics.SampleSize, *in.Variance)
	}
	if metrics.ConfidenceScore < 0 || metrics.ConfidenceScore > 1 {
		return nil, fmt.Errorf("%w: confidence score must be between 0 and 1, got %v", models.ErrValidation, metrics.ConfidenceScore)
	}

	now := time.Now().UTC()
	pattern := &models.ContentPattern{
		ID:                 newID("pattern"),
		BusinessID:         businessID,
		PatternType:        patternType,
		PatternValue:       in.PatternValue,
		CampaignType:       in.Scope.CampaignType,
		Platform:           in.Scope.Platform,
		PerformanceMetrics: metrics,
		Examples:           append([]string{}, in.Examples...),
		IsActive:           !in.Inactive,
		DiscoveredAt:       now,
		LastValidatedAt:    now,
	}
	if err := l.patterns.InsertPattern(ctx, pattern); err != nil {
		return nil, fmt.Errorf("failed to store pattern: %w", err)
	}
	return pattern, nil
}

// GetPatterns returns active patterns, highest confidence first
func (l *PatternLearner) GetPatterns(ctx context.Context, businessID string, filter models.PatternFilter) ([]models.ContentPattern, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, err
	}
	patterns, err := l.patterns.ListPatterns(ctx, businessID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get patterns: %w", err)
	}
	return patterns, nil
}

// GetTopPatterns returns up to limit active patterns of one type
func (l *PatternLearner) GetTopPatterns(ctx context.Context, businessID string, patternType models.PatternType, limit int) ([]models.ContentPattern, error) {
	if limit <= 0 {
		return []models.ContentPattern{}, nil
	}
	return l.GetPatterns(ctx, businessID, models.PatternFilter{PatternType: patternType, Limit: limit})
}

// GetPattern returns a pattern by id whether or not it is active
func (l *PatternLearner) GetPattern(ctx context.Context, patternID string) (*models.ContentPattern, error) {
	pattern, err := l.patterns.GetPattern(ctx, patternID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pattern: %w", err)
	}
	return pattern, nil
}

// UpdatePatternPerformance merges new metrics and refreshes the validation time.
// The confidence score only changes when the update supplies one.
func (l *PatternLearner) UpdatePatternPerformance(ctx context.Context, patternID string, update models.MetricsUpdate) error {
	if update.ConfidenceScore != nil && (*update.ConfidenceScore < 0 || *update.ConfidenceScore > 1) {
		return fmt.Errorf("%w: confidence score must be between 0 and 1", models.ErrValidation)
	}
	pattern, err := l.requirePattern(ctx, patternID)
	if err != nil {
		return err
	}

	update.Apply(&pattern.PerformanceMetrics)
	pattern.LastValidatedAt = time.Now().UTC()

	if err := l.patterns.UpdatePattern(ctx, pattern); err != nil {
		return fmt.Errorf("failed to update pattern: %w", err)
	}
	return nil
}

// DeactivatePattern hides a pattern from retrieval. There is no reactivation.
func (l *PatternLearner) DeactivatePattern(ctx context.Context, patternID string) error {
	pattern, err := l.requirePattern(ctx, patternID)
	if err != nil {
		return err
	}
	if !pattern.IsActive {
		return nil
	}
	pattern.IsActive = false
	if err := l.patterns.UpdatePattern(ctx, pattern); err != nil {
		return fmt.Errorf("failed to deactivate pattern: %w", err)
	}
	return nil
}

// GetPatternsForAI returns pattern values grouped by type with fixed caps
func (l *PatternLearner) GetPatternsForAI(ctx context.Context, businessID string) (models.PatternContext, error) {
	pc := models.PatternContext{
		Topics:  []string{},
		Formats: []string{},
		Hooks:   []string{},
		CTAs:    []string{},
	}

	groups := []struct {
		patternType models.PatternType
		limit       int
		dst         *[]string
	}{
		{models.PatternTopic, MaxAITopics, &pc.Topics},
		{models.PatternFormat, MaxAIFormats, &pc.Formats},
		{models.PatternHook, MaxAIHooks, &pc.Hooks},
		{models.PatternCTA, MaxAICTAs, &pc.CTAs},
	}
	for _, g := range groups {
		patterns, err := l.GetTopPatterns(ctx, businessID, g.patternType, g.limit)
		if err != nil {
			return pc, err
		}
		for _, p := range patterns {
			*g.dst = append(*g.dst, p.PatternValue)
		}
	}
	return pc, nil
}

// DiscoverPatterns runs the discoverer and stores whatever it returns
func (l *PatternLearner) DiscoverPatterns(ctx context.Context, businessID string) ([]models.ContentPattern, error) {
	candidates, err := l.discoverer.Discover(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("pattern discovery failed: %w", err)
	}
	stored := make([]models.ContentPattern, 0, len(candidates))
	for _, c := range candidates {
		p, err := l.StorePattern(ctx, businessID, c)
		if err != nil {
			return stored, err
		}
		stored = append(stored, *p)
	}
	return stored, nil
}

// StoreLearningInput describes a new learning
type StoreLearningInput struct {
	Category       string
	Insight        string
	DataPoints     int
	Confidence     float64
	Recommendation string
}

// StoreLearning inserts a new learning
func (l *PatternLearner) StoreLearning(ctx context.Context, businessID string, in StoreLearningInput) (*models.Learning, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Insight) == "" {
		return nil, fmt.Errorf("%w: insight is empty", models.ErrValidation)
	}
	if in.Confidence < 0 || in.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence must be between 0 and 1, got %v", models.ErrValidation, in.Confidence)
	}

	learning := &models.Learning{
		ID:             newID("learning"),
		BusinessID:     businessID,
		Category:       in.Category,
		Insight:        in.Insight,
		DataPoints:     in.DataPoints,
		Confidence:     in.Confidence,
		Recommendation: in.Recommendation,
		CreatedAt:      time.Now().UTC(),
	}
	if err := l.learnings.InsertLearning(ctx, learning); err != nil {
		return nil, fmt.Errorf("failed to store learning: %w", err)
	}
	return learning, nil
}

// DismissLearning permanently hides a learning. Dismissing twice is a no-op.
func (l *PatternLearner) DismissLearning(ctx context.Context, learningID string) error {
	learning, err := l.learnings.GetLearning(ctx, learningID)
	if err != nil {
		return fmt.Errorf("failed to get learning: %w", err)
	}
	if learning == nil {
		return fmt.Errorf("%w: learning %s", models.ErrNotFound, learningID)
	}
	if learning.IsDismissed {
		return nil
	}
	learning.IsDismissed = true
	if err := l.learnings.UpdateLearning(ctx, learning); err != nil {
		return fmt.Errorf("failed to dismiss learning: %w", err)
	}
	return nil
}

// GetLearnings lists learnings, highest confidence first
func (l *PatternLearner) GetLearnings(ctx context.Context, businessID string, includeDismissed bool, limit int) ([]models.Learning, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, err
	}
	learnings, err := l.learnings.ListLearnings(ctx, businessID, includeDismissed, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get learnings: %w", err)
	}
	return learnings, nil
}

// GetLearningsForAI returns up to limit undismissed insights with their recommendations
func (l *PatternLearner) GetLearningsForAI(ctx context.Context, businessID string, limit int) ([]models.LearningContext, error) {
	out := []models.LearningContext{}
	if limit <= 0 {
		return out, nil
	}
	learnings, err := l.GetLearnings(ctx, businessID, false, limit)
	if err != nil {
		return out, err
	}
	for _, learning := range learnings {
		out = append(out, models.LearningContext{
			Insight:        learning.Insight,
			Recommendation: learning.Recommendation,
		})
	}
	return out, nil
}

func (l *PatternLearner) requirePattern(ctx context.Context, patternID string) (*models.ContentPattern, error) {
	pattern, err := l.GetPattern(ctx, patternID)
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, fmt.Errorf("%w: pattern %s", models.ErrNotFound, patternID)
	}
	return pattern, nil
}
