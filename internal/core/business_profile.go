// ABOUTME: BusinessProfileStore manages who a business is and what it prefers
// ABOUTME: Partial upserts, voice samples, success-gated preference learning, and AI projections
package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harper/brand-memory/internal/models"
	"github.com/harper/brand-memory/internal/storage"
)

// BusinessProfileStore is the profile component. Absence of a profile is never an error
// except where a voice sample needs one to attach to.
type BusinessProfileStore struct {
	store storage.ProfileStore
}

// NewBusinessProfileStore creates a profile component over the given repository
func NewBusinessProfileStore(store storage.ProfileStore) *BusinessProfileStore {
	return &BusinessProfileStore{store: store}
}

// GetProfile returns the profile, or nil if the business has none yet
func (b *BusinessProfileStore) GetProfile(ctx context.Context, businessID string) (*models.BusinessProfile, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, err
	}
	profile, err := b.store.GetProfile(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// UpsertProfile merges the update into the stored profile, creating it on first write
func (b *BusinessProfileStore) UpsertProfile(ctx context.Context, businessID string, update models.ProfileUpdate) (*models.BusinessProfile, error) {
	profile, err := b.loadOrNew(ctx, businessID)
	if err != nil {
		return nil, err
	}

	update.Apply(profile)
	profile.UpdatedAt = time.Now().UTC()

	if err := b.store.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// AddVoiceSample appends a sample of the business's writing. Samples are not deduplicated.
func (b *BusinessProfileStore) AddVoiceSample(ctx context.Context, businessID, text string, tags []string) (*models.VoiceSample, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: voice sample text is empty", models.ErrValidation)
	}
	if err := b.requireProfile(ctx, businessID); err != nil {
		return nil, err
	}

	sample := models.VoiceSample{
		ID:        newID("vs"),
		Text:      text,
		Tags:      models.UnionStrings(nil, tags...),
		CreatedAt: time.Now().UTC(),
	}
	if err := b.store.AddVoiceSample(ctx, businessID, sample); err != nil {
		return nil, fmt.Errorf("failed to add voice sample: %w", err)
	}
	return &sample, nil
}

// RemoveVoiceSample deletes a sample by id. Removing an unknown sample is a no-op.
func (b *BusinessProfileStore) RemoveVoiceSample(ctx context.Context, businessID, sampleID string) error {
	if err := b.requireProfile(ctx, businessID); err != nil {
		return err
	}
	if err := b.store.DeleteVoiceSample(ctx, businessID, sampleID); err != nil {
		return fmt.Errorf("failed to remove voice sample: %w", err)
	}
	return nil
}

// UpdateCampaignPreferences merges a partial preferences edit, creating the profile if needed
func (b *BusinessProfileStore) UpdateCampaignPreferences(ctx context.Context, businessID string, update models.CampaignPreferencesUpdate) error {
	profile, err := b.loadOrNew(ctx, businessID)
	if err != nil {
		return err
	}

	update.Apply(&profile.CampaignPreferences)
	profile.UpdatedAt = time.Now().UTC()

	if err := b.store.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to save campaign preferences: %w", err)
	}
	return nil
}

// LearnFromCampaign reinforces preferences from a successful campaign.
// Unsuccessful outcomes are ignored entirely.
func (b *BusinessProfileStore) LearnFromCampaign(ctx context.Context, businessID string, outcome models.CampaignOutcome) error {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return err
	}
	if !outcome.WasSuccessful {
		return nil
	}

	profile, err := b.loadOrNew(ctx, businessID)
	if err != nil {
		return err
	}

	prefs := &profile.CampaignPreferences
	prefs.PreferredCampaignTypes = models.UnionStrings(prefs.PreferredCampaignTypes, outcome.CampaignType)
	if outcome.DurationDays > 0 {
		prefs.PreferredDurations = models.UnionInts(prefs.PreferredDurations, outcome.DurationDays)
	}
	prefs.PreferredPlatforms = models.UnionStrings(prefs.PreferredPlatforms, outcome.Platforms...)
	prefs.PreferredContentTypes = models.UnionStrings(prefs.PreferredContentTypes, outcome.ContentTypes...)
	profile.UpdatedAt = time.Now().UTC()

	if err := b.store.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to save learned preferences: %w", err)
	}
	return nil
}

// GetContextSummary is a cheap existence and size probe
func (b *BusinessProfileStore) GetContextSummary(ctx context.Context, businessID string) (models.ContextSummary, error) {
	profile, err := b.GetProfile(ctx, businessID)
	if err != nil || profile == nil {
		return models.ContextSummary{}, err
	}
	return models.ContextSummary{
		HasContext:       true,
		BusinessName:     profile.Name,
		Industry:         profile.Industry,
		VoiceSampleCount: len(profile.VoiceSamples),
		HasPreferences:   !profile.CampaignPreferences.IsEmpty(),
	}, nil
}

// GetContextForAI returns the flattened, identifier-free projection, or nil without a profile
func (b *BusinessProfileStore) GetContextForAI(ctx context.Context, businessID string) (*models.BusinessContext, error) {
	profile, err := b.GetProfile(ctx, businessID)
	if err != nil || profile == nil {
		return nil, err
	}

	bc := &models.BusinessContext{
		Name:                     profile.Name,
		Industry:                 profile.Industry,
		BusinessType:             profile.BusinessType,
		TargetAudience:           profile.TargetAudience,
		UniqueSellingProposition: profile.UniqueSellingProposition,
		BrandPersonality:         profile.BrandPersonality,
		VoiceSamples:             make([]string, 0, len(profile.VoiceSamples)),
	}
	if profile.Location != nil {
		bc.Location = profile.Location.String()
	}
	for _, vs := range profile.VoiceSamples {
		bc.VoiceSamples = append(bc.VoiceSamples, vs.Text)
	}
	return bc, nil
}

// GetCampaignPreferences returns the stored preferences; empty without a profile
func (b *BusinessProfileStore) GetCampaignPreferences(ctx context.Context, businessID string) (models.CampaignPreferences, error) {
	profile, err := b.GetProfile(ctx, businessID)
	if err != nil || profile == nil {
		return models.CampaignPreferences{}, err
	}
	return profile.CampaignPreferences, nil
}

func (b *BusinessProfileStore) requireProfile(ctx context.Context, businessID string) error {
	profile, err := b.GetProfile(ctx, businessID)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("%w: no profile for business %s", models.ErrNotFound, businessID)
	}
	return nil
}

func (b *BusinessProfileStore) loadOrNew(ctx context.Context, businessID string) (*models.BusinessProfile, error) {
	profile, err := b.GetProfile(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}
	now := time.Now().UTC()
	return &models.BusinessProfile{
		BusinessID: businessID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
