// ABOUTME: Tests for the unified Storage layer
// ABOUTME: Covers tone upserts, pattern filtering and ordering, and learning listing
package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/brand-memory/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStorageWithPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "brandmem.db")
	store, err := NewStorageWithPath(dbPath)
	if err != nil {
		t.Fatalf("NewStorageWithPath() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if store.Path() != dbPath {
		t.Errorf("Path() = %v, want %v", store.Path(), dbPath)
	}
}

func TestToneStore(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	tone, err := store.GetTone(ctx, "acme")
	if err != nil {
		t.Fatalf("GetTone() error = %v", err)
	}
	if tone != nil {
		t.Fatal("GetTone() should return nil when no tone exists")
	}

	cfg := &models.ToneConfiguration{
		BusinessID:        "acme",
		Preset:            models.PresetCasual,
		Axes:              models.ToneAxes{Formality: 2, Humor: 1, Enthusiasm: 3},
		Examples:          []string{"hey there"},
		ApplyToAllContent: true,
	}
	if err := store.SaveTone(ctx, cfg); err != nil {
		t.Fatalf("SaveTone() error = %v", err)
	}

	cfg.Preset = ""
	cfg.CustomDescription = "dry wit"
	cfg.Axes = models.ToneAxes{Formality: 4, Humor: 3, Enthusiasm: 1}
	cfg.ApplyToAllContent = false
	if err := store.SaveTone(ctx, cfg); err != nil {
		t.Fatalf("SaveTone() update error = %v", err)
	}

	got, err := store.GetTone(ctx, "acme")
	if err != nil {
		t.Fatalf("GetTone() error = %v", err)
	}
	if got.Preset != "" || got.CustomDescription != "dry wit" {
		t.Errorf("Preset/Custom = %q/%q, want \"\"/dry wit", got.Preset, got.CustomDescription)
	}
	if got.Axes != (models.ToneAxes{Formality: 4, Humor: 3, Enthusiasm: 1}) {
		t.Errorf("Axes = %+v", got.Axes)
	}
	if got.ApplyToAllContent {
		t.Error("ApplyToAllContent = true, want false")
	}
	if len(got.Examples) != 1 || got.Examples[0] != "hey there" {
		t.Errorf("Examples = %v", got.Examples)
	}
}

func TestToneStoreRejectsOutOfRange(t *testing.T) {
	store := newTestStorage(t)

	err := store.SaveTone(context.Background(), &models.ToneConfiguration{
		BusinessID: "acme",
		Axes:       models.ToneAxes{Formality: 1, Humor: 7, Enthusiasm: 1},
	})
	if !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("SaveTone() error = %v, want wrapped ErrStoreUnavailable", err)
	}
}

func seedPatterns(t *testing.T, store *Storage) {
	t.Helper()
	base := time.Now().UTC().Add(-time.Hour)
	patterns := []models.ContentPattern{
		{ID: "p1", PatternType: models.PatternTopic, PatternValue: "sourdough", Platform: "instagram",
			PerformanceMetrics: models.PerformanceMetrics{ConfidenceScore: 0.9, SampleSize: 12}},
		{ID: "p2", PatternType: models.PatternTopic, PatternValue: "pastries",
			PerformanceMetrics: models.PerformanceMetrics{ConfidenceScore: 0.4, SampleSize: 3}},
		{ID: "p3", PatternType: models.PatternHook, PatternValue: "question opener", Platform: "instagram",
			PerformanceMetrics: models.PerformanceMetrics{ConfidenceScore: 0.7, SampleSize: 8}},
		{ID: "p4", PatternType: models.PatternCTA, PatternValue: "order ahead", CampaignType: "promo",
			PerformanceMetrics: models.PerformanceMetrics{ConfidenceScore: 0.6, SampleSize: 6}},
	}
	for i := range patterns {
		patterns[i].BusinessID = "acme"
		patterns[i].IsActive = true
		patterns[i].DiscoveredAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.InsertPattern(context.Background(), &patterns[i]); err != nil {
			t.Fatalf("InsertPattern(%s) error = %v", patterns[i].ID, err)
		}
	}
}

func TestListPatterns(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	seedPatterns(t, store)

	tests := []struct {
		name   string
		filter models.PatternFilter
		want   []string
	}{
		{"all ordered by confidence", models.PatternFilter{}, []string{"p1", "p3", "p4", "p2"}},
		{"by type", models.PatternFilter{PatternType: models.PatternTopic}, []string{"p1", "p2"}},
		{"by platform", models.PatternFilter{Platform: "instagram"}, []string{"p1", "p3"}},
		{"by campaign type", models.PatternFilter{CampaignType: "promo"}, []string{"p4"}},
		{"min confidence", models.PatternFilter{MinConfidence: 0.65}, []string{"p1", "p3"}},
		{"limit", models.PatternFilter{Limit: 2}, []string{"p1", "p3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListPatterns(ctx, "acme", tt.filter)
			if err != nil {
				t.Fatalf("ListPatterns() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ListPatterns() returned %d patterns, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("pattern[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestUpdatePatternDeactivates(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	seedPatterns(t, store)

	p, err := store.GetPattern(ctx, "p1")
	if err != nil || p == nil {
		t.Fatalf("GetPattern() = %v, %v", p, err)
	}
	p.IsActive = false
	if err := store.UpdatePattern(ctx, p); err != nil {
		t.Fatalf("UpdatePattern() error = %v", err)
	}

	active, _ := store.ListPatterns(ctx, "acme", models.PatternFilter{})
	for _, a := range active {
		if a.ID == "p1" {
			t.Error("inactive pattern p1 returned by ListPatterns")
		}
	}

	// Inactive rows stay readable by id
	again, err := store.GetPattern(ctx, "p1")
	if err != nil || again == nil {
		t.Fatalf("GetPattern() after deactivate = %v, %v", again, err)
	}
	if again.IsActive {
		t.Error("IsActive = true, want false")
	}

	missing, err := store.GetPattern(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("GetPattern(nope) = %v, %v, want nil, nil", missing, err)
	}
}

func TestLearnings(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	learnings := []models.Learning{
		{ID: "l1", Insight: "Weekend posts do better", Confidence: 0.5},
		{ID: "l2", Insight: "Photos beat text", Confidence: 0.9, Recommendation: "Lead with a photo"},
		{ID: "l3", Insight: "Stale insight", Confidence: 0.95, IsDismissed: true},
	}
	for i := range learnings {
		learnings[i].BusinessID = "acme"
		if err := store.InsertLearning(ctx, &learnings[i]); err != nil {
			t.Fatalf("InsertLearning() error = %v", err)
		}
	}

	got, err := store.ListLearnings(ctx, "acme", false, 0)
	if err != nil {
		t.Fatalf("ListLearnings() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "l2" || got[1].ID != "l1" {
		t.Errorf("ListLearnings() = %v, want [l2 l1]", got)
	}

	all, _ := store.ListLearnings(ctx, "acme", true, 0)
	if len(all) != 3 || all[0].ID != "l3" {
		t.Errorf("ListLearnings(includeDismissed) = %v", all)
	}

	limited, _ := store.ListLearnings(ctx, "acme", false, 1)
	if len(limited) != 1 {
		t.Errorf("ListLearnings(limit 1) returned %d", len(limited))
	}

	l, err := store.GetLearning(ctx, "l1")
	if err != nil || l == nil {
		t.Fatalf("GetLearning() = %v, %v", l, err)
	}
	l.IsDismissed = true
	if err := store.UpdateLearning(ctx, l); err != nil {
		t.Fatalf("UpdateLearning() error = %v", err)
	}
	got, _ = store.ListLearnings(ctx, "acme", false, 0)
	if len(got) != 1 {
		t.Errorf("after dismiss ListLearnings() = %v, want 1", got)
	}
}
