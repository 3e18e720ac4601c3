// ABOUTME: Scribe turns free-text campaign outcome reports into stored learnings
// ABOUTME: Uses the completion service for extraction; failures never reach composition
package core

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/harper/brand-memory/internal/llm"
	"github.com/harper/brand-memory/internal/models"
)

// LearningExtractor proposes learnings from an outcome report
type LearningExtractor interface {
	ExtractLearnings(ctx context.Context, report string) ([]llm.LearningCandidate, error)
}

// Scribe is a background agent that learns from campaign reports
type Scribe struct {
	extractor LearningExtractor
	learner   *PatternLearner
	wg        sync.WaitGroup
}

// NewScribe creates a new Scribe agent
func NewScribe(extractor LearningExtractor, learner *PatternLearner) *Scribe {
	return &Scribe{
		extractor: extractor,
		learner:   learner,
	}
}

// RecordOutcome extracts learnings from the report and stores them
func (s *Scribe) RecordOutcome(ctx context.Context, businessID, report string) ([]models.Learning, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(report) == "" {
		return []models.Learning{}, nil
	}

	candidates, err := s.extractor.ExtractLearnings(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to extract learnings: %w", err)
	}

	stored := make([]models.Learning, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c.Insight) == "" {
			continue
		}
		learning, err := s.learner.StoreLearning(ctx, businessID, StoreLearningInput{
			Category:       c.Category,
			Insight:        c.Insight,
			Recommendation: c.Recommendation,
			DataPoints:     max(c.DataPoints, 0),
			Confidence:     min(max(c.Confidence, 0), 1),
		})
		if err != nil {
			return stored, fmt.Errorf("failed to store learning: %w", err)
		}
		stored = append(stored, *learning)
	}

	log.Printf("[Scribe] Stored %d learnings for %s", len(stored), businessID)
	return stored, nil
}

// RecordOutcomeAsync runs RecordOutcome in the background, logging any failure
func (s *Scribe) RecordOutcomeAsync(businessID, report string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.RecordOutcome(context.Background(), businessID, report); err != nil {
			log.Printf("[Scribe] Error recording outcome for %s: %v", businessID, err)
		}
	}()
}

// Wait blocks until background work has finished
func (s *Scribe) Wait() {
	s.wg.Wait()
}
