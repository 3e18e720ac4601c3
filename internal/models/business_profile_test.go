// ABOUTME: Tests for BusinessProfile partial updates and set helpers
// ABOUTME: Verifies field-wise merge and order-preserving union semantics
package models

import (
	"reflect"
	"testing"
)

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{Location{City: "Portland", State: "OR", Country: "US"}, "Portland, OR, US"},
		{Location{City: "Portland"}, "Portland"},
		{Location{State: " OR ", Country: "US"}, "OR, US"},
		{Location{}, ""},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("Location%+v.String() = %q, want %q", tt.loc, got, tt.want)
		}
	}
}

func TestUnionStrings(t *testing.T) {
	tests := []struct {
		name  string
		set   []string
		items []string
		want  []string
	}{
		{"empty", nil, nil, []string{}},
		{"append new", []string{"a"}, []string{"b"}, []string{"a", "b"}},
		{"skip existing", []string{"a", "b"}, []string{"b", "c"}, []string{"a", "b", "c"}},
		{"dedupe input", nil, []string{"x", "x", "", "y"}, []string{"x", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnionStrings(tt.set, tt.items...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UnionStrings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnionInts(t *testing.T) {
	got := UnionInts([]int{7, 14}, 14, 30, 7)
	if want := []int{7, 14, 30}; !reflect.DeepEqual(got, want) {
		t.Errorf("UnionInts() = %v, want %v", got, want)
	}
}

func TestProfileUpdate_Apply(t *testing.T) {
	name := "Acme Bakery"
	empty := ""
	p := &BusinessProfile{Name: "Old", Industry: "bakery", TargetAudience: "locals"}

	ProfileUpdate{
		Name:           &name,
		TargetAudience: &empty,
		Location:       &Location{City: "Portland"},
	}.Apply(p)

	if p.Name != "Acme Bakery" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Industry != "bakery" {
		t.Errorf("Industry = %q, want untouched", p.Industry)
	}
	if p.TargetAudience != "" {
		t.Errorf("TargetAudience = %q, want explicitly cleared", p.TargetAudience)
	}
	if p.Location == nil || p.Location.City != "Portland" {
		t.Errorf("Location = %v", p.Location)
	}
}

func TestProfileUpdate_IsEmpty(t *testing.T) {
	if !(ProfileUpdate{}).IsEmpty() {
		t.Error("zero update should be empty")
	}
	s := "x"
	if (ProfileUpdate{BrandPersonality: &s}).IsEmpty() {
		t.Error("update with a field should not be empty")
	}
}

func TestCampaignPreferencesUpdate_Apply(t *testing.T) {
	prefs := CampaignPreferences{
		PreferredPlatforms: []string{"instagram"},
		AvoidTopics:        []string{"politics"},
	}
	platforms := []string{"facebook", "facebook", "tiktok"}
	durations := []int{7, 7}

	CampaignPreferencesUpdate{
		PreferredPlatforms: &platforms,
		PreferredDurations: &durations,
	}.Apply(&prefs)

	if want := []string{"facebook", "tiktok"}; !reflect.DeepEqual(prefs.PreferredPlatforms, want) {
		t.Errorf("PreferredPlatforms = %v, want %v", prefs.PreferredPlatforms, want)
	}
	if want := []int{7}; !reflect.DeepEqual(prefs.PreferredDurations, want) {
		t.Errorf("PreferredDurations = %v, want %v", prefs.PreferredDurations, want)
	}
	if want := []string{"politics"}; !reflect.DeepEqual(prefs.AvoidTopics, want) {
		t.Errorf("AvoidTopics = %v, want untouched", prefs.AvoidTopics)
	}
	if prefs.IsEmpty() {
		t.Error("prefs should not be empty")
	}
	if !(CampaignPreferences{}).IsEmpty() {
		t.Error("zero prefs should be empty")
	}
}
