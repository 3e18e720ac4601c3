// ABOUTME: Tests for tone command parsing and the pure tone transition
// ABOUTME: Covers rule priority, intensifiers, fallback, and clamping
package core

import (
	"testing"

	"github.com/harper/brand-memory/internal/models"
)

func TestParseToneCommand(t *testing.T) {
	tests := []struct {
		command string
		want    ToneIntent
	}{
		{"make it funny", ToneIntent{Kind: IntentPreset, Preset: models.PresetFunny}},
		{"Funny", ToneIntent{Kind: IntentPreset, Preset: models.PresetFunny}},
		{"  MAKE IT BOLD  ", ToneIntent{Kind: IntentPreset, Preset: models.PresetBold}},
		{"switch to professional", ToneIntent{Kind: IntentPreset, Preset: models.PresetProfessional}},
		{"can you change to an inspirational tone", ToneIntent{Kind: IntentPreset, Preset: models.PresetInspirational}},
		{"switch to the bold tone", ToneIntent{Kind: IntentPreset, Preset: models.PresetBold}},
		{"make it sound professional", ToneIntent{Kind: IntentPreset, Preset: models.PresetProfessional}},
		{"go inspirational", ToneIntent{Kind: IntentPreset, Preset: models.PresetInspirational}},
		{"I want it friendly", ToneIntent{Kind: IntentPreset, Preset: models.PresetFriendly}},
		{"use a conversational voice", ToneIntent{Kind: IntentPreset, Preset: models.PresetConversational}},
		{"casual or bold, start with casual", ToneIntent{Kind: IntentPreset, Preset: models.PresetCasual}},
		{"a bit more bold", ToneIntent{Kind: IntentAxis, Axis: models.AxisFormality, Delta: -1, Fallback: true}},
		{"less casual, go authoritative", ToneIntent{Kind: IntentPreset, Preset: models.PresetAuthoritative}},
		{"make it funnier", ToneIntent{Kind: IntentAxis, Axis: models.AxisHumor, Delta: 1}},
		{"way funnier", ToneIntent{Kind: IntentAxis, Axis: models.AxisHumor, Delta: 2}},
		{"much less funny", ToneIntent{Kind: IntentAxis, Axis: models.AxisHumor, Delta: -2}},
		{"more serious", ToneIntent{Kind: IntentAxis, Axis: models.AxisHumor, Delta: -1}},
		{"more professional", ToneIntent{Kind: IntentAxis, Axis: models.AxisFormality, Delta: 1}},
		{"less casual please", ToneIntent{Kind: IntentAxis, Axis: models.AxisFormality, Delta: 1}},
		{"make it more casual", ToneIntent{Kind: IntentAxis, Axis: models.AxisFormality, Delta: -1}},
		{"less formal", ToneIntent{Kind: IntentAxis, Axis: models.AxisFormality, Delta: -1}},
		{"more enthusiastic", ToneIntent{Kind: IntentAxis, Axis: models.AxisEnthusiasm, Delta: 1}},
		{"way more energetic", ToneIntent{Kind: IntentAxis, Axis: models.AxisEnthusiasm, Delta: 2}},
		{"calmer please", ToneIntent{Kind: IntentAxis, Axis: models.AxisEnthusiasm, Delta: -1}},
		{"more reserved", ToneIntent{Kind: IntentAxis, Axis: models.AxisEnthusiasm, Delta: -1}},
		{"less funny and more professional", ToneIntent{Kind: IntentAxis, Axis: models.AxisHumor, Delta: -1}},
		{"xyzzy plugh", ToneIntent{Kind: IntentAxis, Axis: models.AxisFormality, Delta: -1, Fallback: true}},
		{"much xyzzy", ToneIntent{Kind: IntentAxis, Axis: models.AxisFormality, Delta: -1, Fallback: true}},
		{"", ToneIntent{Kind: IntentAxis, Axis: models.AxisFormality, Delta: -1, Fallback: true}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			if got := ParseToneCommand(tt.command); got != tt.want {
				t.Errorf("ParseToneCommand(%q) = %+v, want %+v", tt.command, got, tt.want)
			}
		})
	}
}

func TestApplyToneIntent_PresetSwitch(t *testing.T) {
	funny, _ := models.LookupPreset(models.PresetFunny)
	prev := &models.ToneConfiguration{
		BusinessID: "acme",
		Preset:     models.PresetProfessional,
		Axes:       models.ToneAxes{Formality: 4, Humor: 0, Enthusiasm: 2},
	}

	next, desc := ApplyToneIntent(prev, ToneIntent{Kind: IntentPreset, Preset: models.PresetFunny})

	if next.Preset != models.PresetFunny {
		t.Errorf("Preset = %q, want funny", next.Preset)
	}
	if next.Axes != funny.Axes {
		t.Errorf("Axes = %+v, want %+v", next.Axes, funny.Axes)
	}
	if desc != "Switched to Funny preset" {
		t.Errorf("description = %q", desc)
	}
	if prev.Preset != models.PresetProfessional || prev.Axes.Humor != 0 {
		t.Error("ApplyToneIntent modified its input")
	}
}

func TestApplyToneIntent_AxisClearsPresetAndClamps(t *testing.T) {
	tests := []struct {
		name     string
		axes     models.ToneAxes
		intent   ToneIntent
		wantAxes models.ToneAxes
		wantDesc string
	}{
		{
			name:     "increase humor",
			axes:     models.ToneAxes{Formality: 2, Humor: 1, Enthusiasm: 3},
			intent:   ToneIntent{Kind: IntentAxis, Axis: models.AxisHumor, Delta: 1},
			wantAxes: models.ToneAxes{Formality: 2, Humor: 2, Enthusiasm: 3},
			wantDesc: "Increased humor from 1 to 2",
		},
		{
			name:     "humor clamps at top",
			axes:     models.ToneAxes{Formality: 2, Humor: 2, Enthusiasm: 3},
			intent:   ToneIntent{Kind: IntentAxis, Axis: models.AxisHumor, Delta: 2},
			wantAxes: models.ToneAxes{Formality: 2, Humor: 3, Enthusiasm: 3},
			wantDesc: "Increased humor from 2 to 3",
		},
		{
			name:     "formality clamps at bottom",
			axes:     models.ToneAxes{Formality: 1, Humor: 0, Enthusiasm: 1},
			intent:   ToneIntent{Kind: IntentAxis, Axis: models.AxisFormality, Delta: -1},
			wantAxes: models.ToneAxes{Formality: 1, Humor: 0, Enthusiasm: 1},
			wantDesc: "Decreased formality from 1 to 1",
		},
		{
			name:     "enthusiasm clamps at top",
			axes:     models.ToneAxes{Formality: 3, Humor: 0, Enthusiasm: 5},
			intent:   ToneIntent{Kind: IntentAxis, Axis: models.AxisEnthusiasm, Delta: 2},
			wantAxes: models.ToneAxes{Formality: 3, Humor: 0, Enthusiasm: 5},
			wantDesc: "Increased enthusiasm from 5 to 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := &models.ToneConfiguration{Preset: models.PresetCasual, Axes: tt.axes}
			next, desc := ApplyToneIntent(prev, tt.intent)
			if next.Axes != tt.wantAxes {
				t.Errorf("Axes = %+v, want %+v", next.Axes, tt.wantAxes)
			}
			if desc != tt.wantDesc {
				t.Errorf("description = %q, want %q", desc, tt.wantDesc)
			}
			if next.Preset != "" {
				t.Errorf("Preset = %q, want cleared", next.Preset)
			}
		})
	}
}
