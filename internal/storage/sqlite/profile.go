// ABOUTME: Business profile storage operations for SQLite
// ABOUTME: Upserts one row per business and keeps voice samples in insertion order
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/harper/brand-memory/internal/models"
)

// ProfileStore handles business profile persistence
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a new ProfileStore
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Get retrieves a profile with its voice samples, returning nil if not found
func (s *ProfileStore) Get(ctx context.Context, businessID string) (*models.BusinessProfile, error) {
	var (
		profile   models.BusinessProfile
		location  sql.NullString
		prefsJSON string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT business_id, name, industry, business_type, location, target_audience,
		       unique_selling_proposition, brand_personality, campaign_preferences,
		       created_at, updated_at
		FROM business_profiles
		WHERE business_id = ?
	`, businessID).Scan(&profile.BusinessID, &profile.Name, &profile.Industry, &profile.BusinessType,
		&location, &profile.TargetAudience, &profile.UniqueSellingProposition, &profile.BrandPersonality,
		&prefsJSON, &profile.CreatedAt, &profile.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get profile", err)
	}

	if location.Valid && location.String != "" {
		var loc models.Location
		if err := json.Unmarshal([]byte(location.String), &loc); err == nil {
			profile.Location = &loc
		}
	}

	if err := json.Unmarshal([]byte(prefsJSON), &profile.CampaignPreferences); err != nil {
		profile.CampaignPreferences = models.CampaignPreferences{}
	}
	profile.CampaignPreferences.Normalize()

	samples, err := s.listVoiceSamples(ctx, businessID)
	if err != nil {
		return nil, err
	}
	profile.VoiceSamples = samples

	return &profile, nil
}

func (s *ProfileStore) listVoiceSamples(ctx context.Context, businessID string) ([]models.VoiceSample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, tags, created_at
		FROM voice_samples
		WHERE business_id = ?
		ORDER BY seq ASC
	`, businessID)
	if err != nil {
		return nil, storeErr("list voice samples", err)
	}
	defer func() { _ = rows.Close() }()

	samples := []models.VoiceSample{}
	for rows.Next() {
		var (
			sample   models.VoiceSample
			tagsJSON string
		)
		if err := rows.Scan(&sample.ID, &sample.Text, &tagsJSON, &sample.CreatedAt); err != nil {
			return nil, storeErr("scan voice sample", err)
		}
		sample.Tags = decodeStrings(tagsJSON)
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate voice samples", err)
	}
	return samples, nil
}

// Save upserts the profile row. Voice samples are managed separately.
func (s *ProfileStore) Save(ctx context.Context, profile *models.BusinessProfile) error {
	var location sql.NullString
	if profile.Location != nil {
		data, err := json.Marshal(profile.Location)
		if err != nil {
			return err
		}
		location = sql.NullString{String: string(data), Valid: true}
	}

	prefs := profile.CampaignPreferences
	prefs.Normalize()
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	createdAt := profile.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := profile.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO business_profiles (business_id, name, industry, business_type, location,
			target_audience, unique_selling_proposition, brand_personality, campaign_preferences,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(business_id) DO UPDATE SET
			name = excluded.name,
			industry = excluded.industry,
			business_type = excluded.business_type,
			location = excluded.location,
			target_audience = excluded.target_audience,
			unique_selling_proposition = excluded.unique_selling_proposition,
			brand_personality = excluded.brand_personality,
			campaign_preferences = excluded.campaign_preferences,
			updated_at = excluded.updated_at
	`, profile.BusinessID, profile.Name, profile.Industry, profile.BusinessType, location,
		profile.TargetAudience, profile.UniqueSellingProposition, profile.BrandPersonality,
		string(prefsJSON), createdAt, updatedAt)
	if err != nil {
		return storeErr("save profile", err)
	}
	return nil
}

// AddVoiceSample appends a sample after any existing ones
func (s *ProfileStore) AddVoiceSample(ctx context.Context, businessID string, sample models.VoiceSample) error {
	tagsJSON, err := encodeJSON(sample.Tags)
	if err != nil {
		return err
	}
	createdAt := sample.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO voice_samples (id, business_id, seq, text, tags, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM voice_samples WHERE business_id = ?), ?, ?, ?)
	`, sample.ID, businessID, businessID, sample.Text, tagsJSON, createdAt)
	if err != nil {
		return storeErr("add voice sample", err)
	}
	return nil
}

// DeleteVoiceSample removes a sample; deleting a missing sample is not an error
func (s *ProfileStore) DeleteVoiceSample(ctx context.Context, businessID, sampleID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM voice_samples WHERE business_id = ? AND id = ?
	`, businessID, sampleID)
	if err != nil {
		return storeErr("delete voice sample", err)
	}
	return nil
}

// ListBusinessIDs returns every business that has a profile
func (s *ProfileStore) ListBusinessIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT business_id FROM business_profiles ORDER BY business_id`)
	if err != nil {
		return nil, storeErr("list businesses", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr("scan business id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
