// ABOUTME: Tests for the Scribe outcome learner
// ABOUTME: Uses a stub extractor in place of the completion service
package core

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/brand-memory/internal/llm"
)

type stubExtractor struct {
	candidates []llm.LearningCandidate
	err        error
	calls      int
}

func (s *stubExtractor) ExtractLearnings(context.Context, string) ([]llm.LearningCandidate, error) {
	s.calls++
	return s.candidates, s.err
}

func TestScribe_RecordOutcome(t *testing.T) {
	mem := newTestMemory(t)
	extractor := &stubExtractor{candidates: []llm.LearningCandidate{
		{Category: "timing", Insight: "Mornings win", Recommendation: "Post before 9am", Confidence: 1.4, DataPoints: 12},
		{Insight: "   "},
		{Insight: "Reels beat photos", Confidence: -0.2},
	}}
	scribe := NewScribe(extractor, mem.Patterns)

	stored, err := scribe.RecordOutcome(context.Background(), "acme", "Morning reels did great this month")
	if err != nil {
		t.Fatalf("RecordOutcome() error = %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored = %d, want 2 (blank insight skipped)", len(stored))
	}
	if stored[0].Confidence != 1 || stored[1].Confidence != 0 {
		t.Errorf("confidences = %v, %v, want clamped 1 and 0", stored[0].Confidence, stored[1].Confidence)
	}

	learnings, _ := mem.Patterns.GetLearnings(context.Background(), "acme", false, 0)
	if len(learnings) != 2 {
		t.Errorf("GetLearnings() = %d, want 2", len(learnings))
	}
}

func TestScribe_EmptyReportSkipsExtraction(t *testing.T) {
	mem := newTestMemory(t)
	extractor := &stubExtractor{}
	scribe := NewScribe(extractor, mem.Patterns)

	stored, err := scribe.RecordOutcome(context.Background(), "acme", "  ")
	if err != nil || len(stored) != 0 {
		t.Errorf("RecordOutcome(empty) = %v, %v", stored, err)
	}
	if extractor.calls != 0 {
		t.Errorf("extractor called %d times, want 0", extractor.calls)
	}
}

func TestScribe_ExtractionFailure(t *testing.T) {
	mem := newTestMemory(t)
	scribe := NewScribe(&stubExtractor{err: errors.New("rate limited")}, mem.Patterns)

	if _, err := scribe.RecordOutcome(context.Background(), "acme", "report"); err == nil {
		t.Error("RecordOutcome() should surface extraction failure")
	}
}

func TestScribe_RecordOutcomeAsync(t *testing.T) {
	mem := newTestMemory(t)
	scribe := NewScribe(&stubExtractor{candidates: []llm.LearningCandidate{{Insight: "Async works", Confidence: 0.5}}}, mem.Patterns)

	scribe.RecordOutcomeAsync("acme", "report")
	scribe.Wait()

	learnings, _ := mem.Patterns.GetLearnings(context.Background(), "acme", false, 0)
	if len(learnings) != 1 {
		t.Errorf("GetLearnings() = %d, want 1", len(learnings))
	}
}
