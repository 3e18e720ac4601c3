// ABOUTME: ToneModel manages a business's voice as a preset or three custom axes
// ABOUTME: Natural-language adjustments compound on the current state and never fail on unparsed text
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/harper/brand-memory/internal/models"
	"github.com/harper/brand-memory/internal/storage"
)

// ToneModel is the tone component
type ToneModel struct {
	store storage.ToneStore
}

// NewToneModel creates a tone component over the given repository
func NewToneModel(store storage.ToneStore) *ToneModel {
	return &ToneModel{store: store}
}

// GetTone returns the tone configuration, or nil if none is set
func (m *ToneModel) GetTone(ctx context.Context, businessID string) (*models.ToneConfiguration, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, err
	}
	tone, err := m.store.GetTone(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tone: %w", err)
	}
	return tone, nil
}

// SetPreset replaces the axes and examples with a preset's definition
func (m *ToneModel) SetPreset(ctx context.Context, businessID, presetID string) (*models.ToneConfiguration, error) {
	preset, ok := models.LookupPreset(presetID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown tone preset %q", models.ErrValidation, presetID)
	}

	tone, err := m.loadOrNew(ctx, businessID)
	if err != nil {
		return nil, err
	}
	tone.Preset = preset.ID
	tone.CustomDescription = ""
	tone.Axes = preset.Axes
	tone.Examples = preset.Examples

	if err := m.save(ctx, tone); err != nil {
		return nil, err
	}
	return tone, nil
}

// SetCustom sets a described custom tone. Omitted axes take the defaults; out-of-range
// values are rejected rather than clamped.
func (m *ToneModel) SetCustom(ctx context.Context, businessID string, input models.CustomToneInput) (*models.ToneConfiguration, error) {
	axes := input.Axes()
	if err := axes.Validate(); err != nil {
		return nil, err
	}

	tone, err := m.loadOrNew(ctx, businessID)
	if err != nil {
		return nil, err
	}
	tone.Preset = ""
	tone.CustomDescription = input.Description
	tone.Axes = axes
	tone.Examples = []string{}

	if err := m.save(ctx, tone); err != nil {
		return nil, err
	}
	return tone, nil
}

// AdjustNaturally applies one plain-language command to the current tone.
// A business without a tone starts from the casual preset.
func (m *ToneModel) AdjustNaturally(ctx context.Context, businessID, command string) (*models.ToneAdjustment, error) {
	current, err := m.GetTone(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current, err = m.SetPreset(ctx, businessID, models.PresetCasual)
		if err != nil {
			return nil, fmt.Errorf("failed to seed tone: %w", err)
		}
	}

	next, description := ApplyToneIntent(current, ParseToneCommand(command))
	if err := m.save(ctx, next); err != nil {
		return nil, err
	}

	return &models.ToneAdjustment{
		PreviousTone:       current,
		NewTone:            next,
		ChangesDescription: []string{description},
	}, nil
}

// SetApplyToAllContent toggles whether the tone applies beyond the current campaign
func (m *ToneModel) SetApplyToAllContent(ctx context.Context, businessID string, apply bool) (*models.ToneConfiguration, error) {
	tone, err := m.GetTone(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if tone == nil {
		return nil, fmt.Errorf("%w: no tone for business %s", models.ErrNotFound, businessID)
	}
	tone.ApplyToAllContent = apply
	if err := m.save(ctx, tone); err != nil {
		return nil, err
	}
	return tone, nil
}

// GetToneForAI returns the read-only tone projection, or nil if no tone is set
func (m *ToneModel) GetToneForAI(ctx context.Context, businessID string) (*models.ToneContext, error) {
	tone, err := m.GetTone(ctx, businessID)
	if err != nil || tone == nil {
		return nil, err
	}
	return &models.ToneContext{
		Preset:            tone.Preset,
		CustomDescription: tone.CustomDescription,
		Formality:         tone.Axes.Formality,
		Humor:             tone.Axes.Humor,
		Enthusiasm:        tone.Axes.Enthusiasm,
		Examples:          append([]string{}, tone.Examples...),
	}, nil
}

// RecommendPreset returns the first preset recommended for the business type
func (m *ToneModel) RecommendPreset(businessType string) string {
	return RecommendPreset(businessType)
}

// RecommendPreset returns the first preset whose best-for list names the business type
func RecommendPreset(businessType string) string {
	for _, p := range models.TonePresets() {
		for _, t := range p.BestFor {
			if t == businessType {
				return p.ID
			}
		}
	}
	return models.DefaultRecommendedPreset
}

func (m *ToneModel) loadOrNew(ctx context.Context, businessID string) (*models.ToneConfiguration, error) {
	tone, err := m.GetTone(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if tone != nil {
		return tone, nil
	}
	now := time.Now().UTC()
	return &models.ToneConfiguration{
		BusinessID:        businessID,
		ApplyToAllContent: true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

func (m *ToneModel) save(ctx context.Context, tone *models.ToneConfiguration) error {
	tone.UpdatedAt = time.Now().UTC()
	if err := m.store.SaveTone(ctx, tone); err != nil {
		return fmt.Errorf("failed to save tone: %w", err)
	}
	return nil
}
