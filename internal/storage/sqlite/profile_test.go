// ABOUTME: Tests for business profile storage operations
// ABOUTME: Verifies upsert, voice sample ordering, and idempotent deletes
package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/harper/brand-memory/internal/models"
)

func TestProfileCRUD(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	store := NewProfileStore(db)

	profile, err := store.Get(ctx, "acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if profile != nil {
		t.Error("Get() should return nil when no profile exists")
	}

	created := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	newProfile := &models.BusinessProfile{
		BusinessID:   "acme",
		Name:         "Acme Bakery",
		Industry:     "Food & Beverage",
		BusinessType: models.BusinessTypeRestaurant,
		Location:     &models.Location{City: "Portland", State: "OR"},
		CampaignPreferences: models.CampaignPreferences{
			PreferredPlatforms: []string{"instagram", "instagram", "facebook"},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := store.Save(ctx, newProfile); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	retrieved, err := store.Get(ctx, "acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if retrieved == nil {
		t.Fatal("Get() returned nil after Save()")
	}
	if retrieved.Name != "Acme Bakery" {
		t.Errorf("Name = %v, want Acme Bakery", retrieved.Name)
	}
	if retrieved.Location == nil || retrieved.Location.String() != "Portland, OR" {
		t.Errorf("Location = %v, want Portland, OR", retrieved.Location)
	}
	if len(retrieved.CampaignPreferences.PreferredPlatforms) != 2 {
		t.Errorf("PreferredPlatforms = %v, want deduplicated pair", retrieved.CampaignPreferences.PreferredPlatforms)
	}
	if len(retrieved.VoiceSamples) != 0 {
		t.Errorf("VoiceSamples length = %v, want 0", len(retrieved.VoiceSamples))
	}

	// Upsert keeps the original creation time
	retrieved.Name = "Acme Bakery & Cafe"
	retrieved.UpdatedAt = time.Now().UTC()
	retrieved.CreatedAt = time.Now().UTC()
	if err := store.Save(ctx, retrieved); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}

	updated, err := store.Get(ctx, "acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if updated.Name != "Acme Bakery & Cafe" {
		t.Errorf("Name = %v, want Acme Bakery & Cafe", updated.Name)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", updated.CreatedAt, created)
	}
}

func TestVoiceSamples(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	store := NewProfileStore(db)

	if err := store.Save(ctx, &models.BusinessProfile{BusinessID: "acme", Name: "Acme"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	texts := []string{"first", "second", "third"}
	for i, text := range texts {
		sample := models.VoiceSample{ID: "vs_" + text, Text: text, Tags: []string{"tag"}}
		if err := store.AddVoiceSample(ctx, "acme", sample); err != nil {
			t.Fatalf("AddVoiceSample(%d) error = %v", i, err)
		}
	}

	profile, err := store.Get(ctx, "acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(profile.VoiceSamples) != 3 {
		t.Fatalf("VoiceSamples length = %v, want 3", len(profile.VoiceSamples))
	}
	for i, text := range texts {
		if profile.VoiceSamples[i].Text != text {
			t.Errorf("VoiceSamples[%d] = %v, want %v", i, profile.VoiceSamples[i].Text, text)
		}
	}
	if len(profile.VoiceSamples[0].Tags) != 1 {
		t.Errorf("Tags = %v, want [tag]", profile.VoiceSamples[0].Tags)
	}

	if err := store.DeleteVoiceSample(ctx, "acme", "vs_second"); err != nil {
		t.Fatalf("DeleteVoiceSample() error = %v", err)
	}
	if err := store.DeleteVoiceSample(ctx, "acme", "vs_second"); err != nil {
		t.Errorf("second DeleteVoiceSample() error = %v, want nil", err)
	}

	profile, _ = store.Get(ctx, "acme")
	if len(profile.VoiceSamples) != 2 {
		t.Fatalf("VoiceSamples length = %v, want 2", len(profile.VoiceSamples))
	}
	if profile.VoiceSamples[1].Text != "third" {
		t.Errorf("VoiceSamples[1] = %v, want third", profile.VoiceSamples[1].Text)
	}
}

func TestListBusinessIDs(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	store := NewProfileStore(db)

	for _, id := range []string{"zeta", "alpha"} {
		if err := store.Save(ctx, &models.BusinessProfile{BusinessID: id}); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	ids, err := store.ListBusinessIDs(ctx)
	if err != nil {
		t.Fatalf("ListBusinessIDs() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "alpha" || ids[1] != "zeta" {
		t.Errorf("ListBusinessIDs() = %v, want [alpha zeta]", ids)
	}
}
