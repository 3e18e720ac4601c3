// ABOUTME: Repository interfaces for the brand memory stores
// ABOUTME: Components receive these by injection; sqlite provides the implementation
package storage

import (
	"context"

	"github.com/harper/brand-memory/internal/models"
)

// ProfileStore persists business profiles and their voice samples.
// Get methods return (nil, nil) when nothing is stored yet.
type ProfileStore interface {
	GetProfile(ctx context.Context, businessID string) (*models.BusinessProfile, error)
	SaveProfile(ctx context.Context, profile *models.BusinessProfile) error
	AddVoiceSample(ctx context.Context, businessID string, sample models.VoiceSample) error
	DeleteVoiceSample(ctx context.Context, businessID, sampleID string) error
}

// ToneStore persists one tone configuration per business
type ToneStore interface {
	GetTone(ctx context.Context, businessID string) (*models.ToneConfiguration, error)
	SaveTone(ctx context.Context, tone *models.ToneConfiguration) error
}

// PatternStore persists content patterns
type PatternStore interface {
	InsertPattern(ctx context.Context, pattern *models.ContentPattern) error
	GetPattern(ctx context.Context, patternID string) (*models.ContentPattern, error)
	// ListPatterns returns active patterns ordered by confidence descending
	ListPatterns(ctx context.Context, businessID string, filter models.PatternFilter) ([]models.ContentPattern, error)
	UpdatePattern(ctx context.Context, pattern *models.ContentPattern) error
}

// LearningStore persists derived learnings
type LearningStore interface {
	InsertLearning(ctx context.Context, learning *models.Learning) error
	GetLearning(ctx context.Context, learningID string) (*models.Learning, error)
	// ListLearnings returns learnings ordered by confidence descending; limit <= 0 means no limit
	ListLearnings(ctx context.Context, businessID string, includeDismissed bool, limit int) ([]models.Learning, error)
	UpdateLearning(ctx context.Context, learning *models.Learning) error
}

// Store is the aggregate of all repositories
type Store interface {
	ProfileStore
	ToneStore
	PatternStore
	LearningStore
	Close() error
}
