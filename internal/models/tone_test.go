// ABOUTME: Tests for tone axes, presets, and configuration cloning
// ABOUTME: Verifies bounds, clamping, and that the preset table cannot be mutated
package models

import (
	"errors"
	"testing"
)

func TestToneAxes_Validate(t *testing.T) {
	tests := []struct {
		name    string
		axes    ToneAxes
		wantErr bool
	}{
		{"lower bounds", ToneAxes{Formality: 1, Humor: 0, Enthusiasm: 1}, false},
		{"upper bounds", ToneAxes{Formality: 5, Humor: 3, Enthusiasm: 5}, false},
		{"formality zero", ToneAxes{Formality: 0, Humor: 1, Enthusiasm: 3}, true},
		{"humor four", ToneAxes{Formality: 3, Humor: 4, Enthusiasm: 3}, true},
		{"enthusiasm six", ToneAxes{Formality: 3, Humor: 1, Enthusiasm: 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.axes.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error should wrap ErrValidation: %v", err)
			}
		})
	}
}

func TestToneAxes_ClampAndWith(t *testing.T) {
	got := ToneAxes{Formality: 9, Humor: -2, Enthusiasm: 0}.Clamp()
	if want := (ToneAxes{Formality: 5, Humor: 0, Enthusiasm: 1}); got != want {
		t.Errorf("Clamp() = %+v, want %+v", got, want)
	}

	base := ToneAxes{Formality: 3, Humor: 1, Enthusiasm: 3}
	tests := []struct {
		axis  ToneAxis
		value int
		want  int
	}{
		{AxisFormality, 6, 5},
		{AxisFormality, 0, 1},
		{AxisHumor, 2, 2},
		{AxisHumor, 5, 3},
		{AxisEnthusiasm, -1, 1},
	}
	for _, tt := range tests {
		next := base.With(tt.axis, tt.value)
		if got := next.Get(tt.axis); got != tt.want {
			t.Errorf("With(%s, %d).Get() = %d, want %d", tt.axis, tt.value, got, tt.want)
		}
	}
	if base.Formality != 3 {
		t.Error("With should not mutate the receiver")
	}
}

func TestTonePresets(t *testing.T) {
	presets := TonePresets()
	if len(presets) != 8 {
		t.Fatalf("TonePresets() = %d presets, want 8", len(presets))
	}
	if presets[0].ID != PresetCasual {
		t.Errorf("first preset = %s, want casual", presets[0].ID)
	}
	for _, p := range presets {
		if err := p.Axes.Validate(); err != nil {
			t.Errorf("preset %s has invalid axes: %v", p.ID, err)
		}
		if len(p.Examples) == 0 {
			t.Errorf("preset %s has no examples", p.ID)
		}
	}

	presets[0].Examples[0] = "mutated"
	if again := TonePresets(); again[0].Examples[0] == "mutated" {
		t.Error("TonePresets should return copies")
	}
}

func TestLookupPreset(t *testing.T) {
	p, ok := LookupPreset(PresetProfessional)
	if !ok || p.Axes.Formality != 4 {
		t.Errorf("LookupPreset(professional) = %+v, %v", p, ok)
	}
	if _, ok := LookupPreset("sarcastic"); ok {
		t.Error("LookupPreset(sarcastic) should not be found")
	}
}

func TestCustomToneInput_Axes(t *testing.T) {
	five := 5
	got := CustomToneInput{Formality: &five}.Axes()
	want := ToneAxes{Formality: 5, Humor: DefaultCustomHumor, Enthusiasm: DefaultCustomEnthusiasm}
	if got != want {
		t.Errorf("Axes() = %+v, want %+v", got, want)
	}
}

func TestToneConfiguration_Clone(t *testing.T) {
	var nilTone *ToneConfiguration
	if nilTone.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}

	orig := &ToneConfiguration{BusinessID: "acme", Examples: []string{"hi"}}
	cp := orig.Clone()
	cp.Examples[0] = "bye"
	if orig.Examples[0] != "hi" {
		t.Error("Clone should deep-copy examples")
	}
}
