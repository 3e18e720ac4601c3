// ABOUTME: Tests for PatternLearner
// ABOUTME: Covers the confidence formula, retrieval ordering, deactivation, and learnings
package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/harper/brand-memory/internal/models"
)

func TestConfidenceScore(t *testing.T) {
	tests := []struct {
		sampleSize int
		variance   float64
		want       float64
	}{
		{10, 0, 1.0},
		{0, 1, 0.0},
		{5, 0.2, 0.65},
		{20, 0, 1.0},
		{10, 2.5, 0.5},
		{3, 0.5, 0.4},
		{-4, -1, 0.5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d,var=%v", tt.sampleSize, tt.variance), func(t *testing.T) {
			got := ConfidenceScore(tt.sampleSize, tt.variance)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ConfidenceScore(%d, %v) = %v, want %v", tt.sampleSize, tt.variance, got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("ConfidenceScore out of [0,1]: %v", got)
			}
		})
	}
}

func storeTestPattern(t *testing.T, l *PatternLearner, businessID string, pt models.PatternType, value string, confidence float64) *models.ContentPattern {
	t.Helper()
	p, err := l.StorePattern(context.Background(), businessID, StorePatternInput{
		PatternType:  pt,
		PatternValue: value,
		Metrics:      models.PerformanceMetrics{ConfidenceScore: confidence, SampleSize: 5},
	})
	if err != nil {
		t.Fatalf("StorePattern(%s) error = %v", value, err)
	}
	return p
}

func TestPatternLearner_StorePattern(t *testing.T) {
	mem := newTestMemory(t)
	ctx := context.Background()

	variance := 0.2
	p, err := mem.Patterns.StorePattern(ctx, "acme", StorePatternInput{
		PatternType:  models.PatternHook,
		PatternValue: "question hooks",
		Scope:        models.PatternScope{Platform: "instagram"},
		Metrics:      models.PerformanceMetrics{SampleSize: 5, AvgEngagementRate: 0.04},
		Variance:     &variance,
	})
	if err != nil {
		t.Fatalf("StorePattern() error = %v", err)
	}
	if !p.IsActive {
		t.Error("new pattern should be active")
	}
	if math.Abs(p.PerformanceMetrics.ConfidenceScore-0.65) > 1e-9 {
		t.Errorf("ConfidenceScore = %v, want 0.65", p.PerformanceMetrics.ConfidenceScore)
	}

	// Same value again is a separate row
	_ = storeTestPattern(t, mem.Patterns, "acme", models.PatternHook, "question hooks", 0.5)
	all, _ := mem.Patterns.GetPatterns(ctx, "acme", models.PatternFilter{})
	if len(all) != 2 {
		t.Errorf("GetPatterns() = %d patterns, want 2", len(all))
	}

	tests := []struct {
		name string
		in   StorePatternInput
	}{
		{"unknown type", StorePatternInput{PatternType: "meme", PatternValue: "x"}},
		{"empty value", StorePatternInput{PatternType: models.PatternTopic, PatternValue: " "}},
		{"confidence above one", StorePatternInput{PatternType: models.PatternTopic, PatternValue: "x",
			Metrics: models.PerformanceMetrics{ConfidenceScore: 1.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := mem.Patterns.StorePattern(ctx, "acme", tt.in); !errors.Is(err, models.ErrValidation) {
				t.Errorf("StorePattern() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestPatternLearner_GetTopPatterns(t *testing.T) {
	mem := newTestMemory(t)
	ctx := context.Background()

	storeTestPattern(t, mem.Patterns, "acme", models.PatternTopic, "low", 0.2)
	storeTestPattern(t, mem.Patterns, "acme", models.PatternTopic, "high", 0.9)
	storeTestPattern(t, mem.Patterns, "acme", models.PatternTopic, "mid", 0.5)
	storeTestPattern(t, mem.Patterns, "acme", models.PatternCTA, "order now", 0.99)
	storeTestPattern(t, mem.Patterns, "other", models.PatternTopic, "elsewhere", 1.0)

	top, err := mem.Patterns.GetTopPatterns(ctx, "acme", models.PatternTopic, 2)
	if err != nil {
		t.Fatalf("GetTopPatterns() error = %v", err)
	}
	if len(top) != 2 || top[0].PatternValue != "high" || top[1].PatternValue != "mid" {
		t.Errorf("GetTopPatterns() = %v", top)
	}

	none, _ := mem.Patterns.GetTopPatterns(ctx, "acme", models.PatternTopic, 0)
	if len(none) != 0 {
		t.Errorf("GetTopPatterns(limit 0) = %v, want empty", none)
	}
}

func TestPatternLearner_DeactivatePattern(t *testing.T) {
	mem := newTestMemory(t)
	ctx := context.Background()

	p := storeTestPattern(t, mem.Patterns, "acme", models.PatternFormat, "carousel", 0.8)

	for i := 0; i < 2; i++ {
		if err := mem.Patterns.DeactivatePattern(ctx, p.ID); err != nil {
			t.Fatalf("DeactivatePattern() call %d error = %v", i+1, err)
		}
	}

	active, _ := mem.Patterns.GetPatterns(ctx, "acme", models.PatternFilter{})
	if len(active) != 0 {
		t.Errorf("GetPatterns() = %v, want none after deactivation", active)
	}
	pc, _ := mem.Patterns.GetPatternsForAI(ctx, "acme")
	if pc.Count() != 0 {
		t.Errorf("GetPatternsForAI() = %+v, want empty", pc)
	}

	audit, err := mem.Patterns.GetPattern(ctx, p.ID)
	if err != nil || audit == nil {
		t.Fatalf("GetPattern() = %v, %v", audit, err)
	}
	if audit.IsActive {
		t.Error("audited pattern should be inactive")
	}

	if err := mem.Patterns.DeactivatePattern(ctx, "pattern_missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("DeactivatePattern(missing) error = %v, want ErrNotFound", err)
	}
}

func TestPatternLearner_UpdatePatternPerformance(t *testing.T) {
	mem := newTestMemory(t)
	ctx := context.Background()

	p := storeTestPattern(t, mem.Patterns, "acme", models.PatternTopic, "sourdough", 0.3)

	sampleSize := 50
	reach := 1200.0
	if err := mem.Patterns.UpdatePatternPerformance(ctx, p.ID, models.MetricsUpdate{
		SampleSize: &sampleSize,
		AvgReach:   &reach,
	}); err != nil {
		t.Fatalf("UpdatePatternPerformance() error = %v", err)
	}

	got, _ := mem.Patterns.GetPattern(ctx, p.ID)
	if got.PerformanceMetrics.SampleSize != 50 || got.PerformanceMetrics.AvgReach != 1200 {
		t.Errorf("metrics = %+v", got.PerformanceMetrics)
	}
	if got.PerformanceMetrics.ConfidenceScore != 0.3 {
		t.Errorf("ConfidenceScore = %v, want unchanged 0.3", got.PerformanceMetrics.ConfidenceScore)
	}
	if got.LastValidatedAt.Before(p.LastValidatedAt) {
		t.Error("LastValidatedAt should be refreshed")
	}

	score := 0.9
	_ = mem.Patterns.UpdatePatternPerformance(ctx, p.ID, models.MetricsUpdate{ConfidenceScore: &score})
	got, _ = mem.Patterns.GetPattern(ctx, p.ID)
	if got.PerformanceMetrics.ConfidenceScore != 0.9 {
		t.Errorf("ConfidenceScore = %v, want 0.9", got.PerformanceMetrics.ConfidenceScore)
	}

	bad := 2.0
	if err := mem.Patterns.UpdatePatternPerformance(ctx, p.ID, models.MetricsUpdate{ConfidenceScore: &bad}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("UpdatePatternPerformance(2.0) error = %v, want ErrValidation", err)
	}
}

func TestPatternLearner_GetPatternsForAICaps(t *testing.T) {
	mem := newTestMemory(t)
	ctx := context.Background()

	counts := map[models.PatternType]int{
		models.PatternTopic:  7,
		models.PatternFormat: 4,
		models.PatternHook:   6,
		models.PatternCTA:    5,
	}
	for pt, n := range counts {
		for i := 0; i < n; i++ {
			storeTestPattern(t, mem.Patterns, "acme", pt, fmt.Sprintf("%s-%d", pt, i), float64(i)/10)
		}
	}

	pc, err := mem.Patterns.GetPatternsForAI(ctx, "acme")
	if err != nil {
		t.Fatalf("GetPatternsForAI() error = %v", err)
	}
	if len(pc.Topics) != MaxAITopics || len(pc.Formats) != MaxAIFormats || len(pc.Hooks) != MaxAIHooks || len(pc.CTAs) != MaxAICTAs {
		t.Errorf("caps = %d/%d/%d/%d", len(pc.Topics), len(pc.Formats), len(pc.Hooks), len(pc.CTAs))
	}
	if pc.Topics[0] != "topic-6" {
		t.Errorf("Topics[0] = %q, want highest confidence topic-6", pc.Topics[0])
	}
}

type fixedDiscoverer []StorePatternInput

func (d fixedDiscoverer) Discover(context.Context, string) ([]StorePatternInput, error) {
	return d, nil
}

func TestPatternLearner_DiscoverPatterns(t *testing.T) {
	mem := newTestMemory(t)
	ctx := context.Background()

	found, err := mem.Patterns.DiscoverPatterns(ctx, "acme")
	if err != nil || len(found) != 0 {
		t.Fatalf("DiscoverPatterns() with noop = %v, %v", found, err)
	}

	mem.Patterns.SetDiscoverer(fixedDiscoverer{
		{PatternType: models.PatternTopic, PatternValue: "behind the scenes", Metrics: models.PerformanceMetrics{ConfidenceScore: 0.6}},
	})
	found, err = mem.Patterns.DiscoverPatterns(ctx, "acme")
	if err != nil {
		t.Fatalf("DiscoverPatterns() error = %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("DiscoverPatterns() = %d, want 1", len(found))
	}
	stored, _ := mem.Patterns.GetPatterns(ctx, "acme", models.PatternFilter{})
	if len(stored) != 1 || stored[0].PatternValue != "behind the scenes" {
		t.Errorf("stored = %v", stored)
	}
}

func TestPatternLearner_Learnings(t *testing.T) {
	mem := newTestMemory(t)
	ctx := context.Background()

	low, err := mem.Patterns.StoreLearning(ctx, "acme", StoreLearningInput{Insight: "Weekends are quiet", Confidence: 0.3})
	if err != nil {
		t.Fatalf("StoreLearning() error = %v", err)
	}
	_, _ = mem.Patterns.StoreLearning(ctx, "acme", StoreLearningInput{
		Insight: "Photos of bread win", Recommendation: "Lead with a photo", Confidence: 0.9,
	})

	ai, err := mem.Patterns.GetLearningsForAI(ctx, "acme", 5)
	if err != nil {
		t.Fatalf("GetLearningsForAI() error = %v", err)
	}
	want := []models.LearningContext{
		{Insight: "Photos of bread win", Recommendation: "Lead with a photo"},
		{Insight: "Weekends are quiet"},
	}
	if len(ai) != len(want) || ai[0] != want[0] || ai[1] != want[1] {
		t.Errorf("GetLearningsForAI() = %v, want %v", ai, want)
	}

	for i := 0; i < 2; i++ {
		if err := mem.Patterns.DismissLearning(ctx, low.ID); err != nil {
			t.Fatalf("DismissLearning() error = %v", err)
		}
	}
	ai, _ = mem.Patterns.GetLearningsForAI(ctx, "acme", 5)
	if len(ai) != 1 {
		t.Errorf("GetLearningsForAI() after dismiss = %v", ai)
	}
	all, _ := mem.Patterns.GetLearnings(ctx, "acme", true, 0)
	if len(all) != 2 {
		t.Errorf("GetLearnings(includeDismissed) = %d, want 2", len(all))
	}

	if err := mem.Patterns.DismissLearning(ctx, "learning_missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("DismissLearning(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := mem.Patterns.StoreLearning(ctx, "acme", StoreLearningInput{Insight: ""}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("StoreLearning(empty) error = %v, want ErrValidation", err)
	}
}
