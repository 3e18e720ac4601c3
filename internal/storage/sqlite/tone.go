// ABOUTME: Tone configuration storage operations for SQLite
// ABOUTME: One row per business, upserted on every change
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/harper/brand-memory/internal/models"
)

// ToneStore handles tone configuration persistence
type ToneStore struct {
	db *DB
}

// NewToneStore creates a new ToneStore
func NewToneStore(db *DB) *ToneStore {
	return &ToneStore{db: db}
}

// Get retrieves the tone configuration, returning nil if none is set
func (s *ToneStore) Get(ctx context.Context, businessID string) (*models.ToneConfiguration, error) {
	var (
		tone         models.ToneConfiguration
		examplesJSON string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT business_id, preset, custom_description, formality, humor, enthusiasm,
		       examples, apply_to_all_content, created_at, updated_at
		FROM tone_configurations
		WHERE business_id = ?
	`, businessID).Scan(&tone.BusinessID, &tone.Preset, &tone.CustomDescription,
		&tone.Axes.Formality, &tone.Axes.Humor, &tone.Axes.Enthusiasm,
		&examplesJSON, &tone.ApplyToAllContent, &tone.CreatedAt, &tone.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get tone", err)
	}

	tone.Examples = decodeStrings(examplesJSON)
	return &tone, nil
}

// Save upserts the tone configuration
func (s *ToneStore) Save(ctx context.Context, tone *models.ToneConfiguration) error {
	examplesJSON, err := encodeJSON(tone.Examples)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	createdAt := tone.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := tone.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tone_configurations (business_id, preset, custom_description, formality, humor,
			enthusiasm, examples, apply_to_all_content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(business_id) DO UPDATE SET
			preset = excluded.preset,
			custom_description = excluded.custom_description,
			formality = excluded.formality,
			humor = excluded.humor,
			enthusiasm = excluded.enthusiasm,
			examples = excluded.examples,
			apply_to_all_content = excluded.apply_to_all_content,
			updated_at = excluded.updated_at
	`, tone.BusinessID, tone.Preset, tone.CustomDescription, tone.Axes.Formality, tone.Axes.Humor,
		tone.Axes.Enthusiasm, examplesJSON, boolToInt(tone.ApplyToAllContent), createdAt, updatedAt)
	if err != nil {
		return storeErr("save tone", err)
	}
	return nil
}
