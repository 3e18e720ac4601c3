// ABOUTME: Unified Storage layer that wraps all SQLite stores
// ABOUTME: Implements storage.Store for profiles, tones, patterns, and learnings
package sqlite

import (
	"context"
	"fmt"

	"github.com/harper/brand-memory/internal/models"
	"github.com/harper/brand-memory/internal/storage"
)

var _ storage.Store = (*Storage)(nil)

// Storage manages all persistent brand memory using SQLite
type Storage struct {
	db        *DB
	profiles  *ProfileStore
	tones     *ToneStore
	patterns  *PatternStore
	learnings *LearningStore
}

// NewStorage initializes storage at the default XDG location
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:        db,
		profiles:  NewProfileStore(db),
		tones:     NewToneStore(db),
		patterns:  NewPatternStore(db),
		learnings: NewLearningStore(db),
	}
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// GetProfile returns the profile for a business, or nil if none exists
func (s *Storage) GetProfile(ctx context.Context, businessID string) (*models.BusinessProfile, error) {
	return s.profiles.Get(ctx, businessID)
}

// SaveProfile upserts a business profile
func (s *Storage) SaveProfile(ctx context.Context, profile *models.BusinessProfile) error {
	return s.profiles.Save(ctx, profile)
}

// AddVoiceSample appends a voice sample to an existing profile
func (s *Storage) AddVoiceSample(ctx context.Context, businessID string, sample models.VoiceSample) error {
	return s.profiles.AddVoiceSample(ctx, businessID, sample)
}

// DeleteVoiceSample removes a voice sample by id
func (s *Storage) DeleteVoiceSample(ctx context.Context, businessID, sampleID string) error {
	return s.profiles.DeleteVoiceSample(ctx, businessID, sampleID)
}

// ListBusinessIDs returns every business with a stored profile
func (s *Storage) ListBusinessIDs(ctx context.Context) ([]string, error) {
	return s.profiles.ListBusinessIDs(ctx)
}

// GetTone returns the tone configuration, or nil if none is set
func (s *Storage) GetTone(ctx context.Context, businessID string) (*models.ToneConfiguration, error) {
	return s.tones.Get(ctx, businessID)
}

// SaveTone upserts a tone configuration
func (s *Storage) SaveTone(ctx context.Context, tone *models.ToneConfiguration) error {
	return s.tones.Save(ctx, tone)
}

// InsertPattern stores a new content pattern
func (s *Storage) InsertPattern(ctx context.Context, pattern *models.ContentPattern) error {
	return s.patterns.Insert(ctx, pattern)
}

// GetPattern returns a pattern by id, or nil if not found
func (s *Storage) GetPattern(ctx context.Context, patternID string) (*models.ContentPattern, error) {
	return s.patterns.Get(ctx, patternID)
}

// ListPatterns returns active patterns matching the filter
func (s *Storage) ListPatterns(ctx context.Context, businessID string, filter models.PatternFilter) ([]models.ContentPattern, error) {
	return s.patterns.List(ctx, businessID, filter)
}

// UpdatePattern rewrites a stored pattern
func (s *Storage) UpdatePattern(ctx context.Context, pattern *models.ContentPattern) error {
	return s.patterns.Update(ctx, pattern)
}

// InsertLearning stores a new learning
func (s *Storage) InsertLearning(ctx context.Context, learning *models.Learning) error {
	return s.learnings.Insert(ctx, learning)
}

// GetLearning returns a learning by id, or nil if not found
func (s *Storage) GetLearning(ctx context.Context, learningID string) (*models.Learning, error) {
	return s.learnings.Get(ctx, learningID)
}

// ListLearnings returns learnings for a business
func (s *Storage) ListLearnings(ctx context.Context, businessID string, includeDismissed bool, limit int) ([]models.Learning, error) {
	return s.learnings.List(ctx, businessID, includeDismissed, limit)
}

// UpdateLearning rewrites a stored learning
func (s *Storage) UpdateLearning(ctx context.Context, learning *models.Learning) error {
	return s.learnings.Update(ctx, learning)
}
