// ABOUTME: Shared fixtures for component tests
// ABOUTME: In-memory SQLite memory and a store that always fails
package core

import (
	"context"
	"testing"

	"github.com/harper/brand-memory/internal/models"
	"github.com/harper/brand-memory/internal/storage"
	"github.com/harper/brand-memory/internal/storage/sqlite"
)

func newTestMemory(t *testing.T) *Memory {
	t.Helper()
	store, err := sqlite.NewStorageInMemory()
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return NewMemory(store)
}

// failingStore reports the store as unreachable on every call
type failingStore struct{}

var _ storage.Store = failingStore{}

func (failingStore) GetProfile(context.Context, string) (*models.BusinessProfile, error) {
	return nil, models.ErrStoreUnavailable
}
func (failingStore) SaveProfile(context.Context, *models.BusinessProfile) error {
	return models.ErrStoreUnavailable
}
func (failingStore) AddVoiceSample(context.Context, string, models.VoiceSample) error {
	return models.ErrStoreUnavailable
}
func (failingStore) DeleteVoiceSample(context.Context, string, string) error {
	return models.ErrStoreUnavailable
}
func (failingStore) GetTone(context.Context, string) (*models.ToneConfiguration, error) {
	return nil, models.ErrStoreUnavailable
}
func (failingStore) SaveTone(context.Context, *models.ToneConfiguration) error {
	return models.ErrStoreUnavailable
}
func (failingStore) InsertPattern(context.Context, *models.ContentPattern) error {
	return models.ErrStoreUnavailable
}
func (failingStore) GetPattern(context.Context, string) (*models.ContentPattern, error) {
	return nil, models.ErrStoreUnavailable
}
func (failingStore) ListPatterns(context.Context, string, models.PatternFilter) ([]models.ContentPattern, error) {
	return nil, models.ErrStoreUnavailable
}
func (failingStore) UpdatePattern(context.Context, *models.ContentPattern) error {
	return models.ErrStoreUnavailable
}
func (failingStore) InsertLearning(context.Context, *models.Learning) error {
	return models.ErrStoreUnavailable
}
func (failingStore) GetLearning(context.Context, string) (*models.Learning, error) {
	return nil, models.ErrStoreUnavailable
}
func (failingStore) ListLearnings(context.Context, string, bool, int) ([]models.Learning, error) {
	return nil, models.ErrStoreUnavailable
}
func (failingStore) UpdateLearning(context.Context, *models.Learning) error {
	return models.ErrStoreUnavailable
}
func (failingStore) Close() error { return nil }

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
