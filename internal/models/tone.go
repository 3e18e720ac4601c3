// ABOUTME: ToneConfiguration represents a business's voice as a preset or custom axes
// ABOUTME: Defines axis bounds, clamping, and the fixed preset table
package models

import (
	"fmt"
	"time"
)

// Axis bounds. Values outside are clamped on adjustment and rejected on direct sets.
const (
	FormalityMin  = 1
	FormalityMax  = 5
	HumorMin      = 0
	HumorMax      = 3
	EnthusiasmMin = 1
	EnthusiasmMax = 5
)

// Default axes for a custom tone when the caller omits values
const (
	DefaultCustomFormality  = 3
	DefaultCustomHumor      = 1
	DefaultCustomEnthusiasm = 3
)

// ToneAxis names one of the three tone dimensions
type ToneAxis string

const (
	AxisFormality  ToneAxis = "formality"
	AxisHumor      ToneAxis = "humor"
	AxisEnthusiasm ToneAxis = "enthusiasm"
)

// Bounds returns the inclusive range for the axis
func (a ToneAxis) Bounds() (int, int) {
	switch a {
	case AxisFormality:
		return FormalityMin, FormalityMax
	case AxisHumor:
		return HumorMin, HumorMax
	default:
		return EnthusiasmMin, EnthusiasmMax
	}
}

// ToneAxes is the three-axis tone vector
type ToneAxes struct {
	Formality  int `json:"formality"`
	Humor      int `json:"humor"`
	Enthusiasm int `json:"enthusiasm"`
}

// Get returns the value on one axis
func (t ToneAxes) Get(axis ToneAxis) int {
	switch axis {
	case AxisFormality:
		return t.Formality
	case AxisHumor:
		return t.Humor
	default:
		return t.Enthusiasm
	}
}

// With returns a copy with one axis set (clamped)
func (t ToneAxes) With(axis ToneAxis, value int) ToneAxes {
	lo, hi := axis.Bounds()
	value = clamp(value, lo, hi)
	switch axis {
	case AxisFormality:
		t.Formality = value
	case AxisHumor:
		t.Humor = value
	default:
		t.Enthusiasm = value
	}
	return t
}

// Clamp forces every axis into its bounds
func (t ToneAxes) Clamp() ToneAxes {
	return ToneAxes{
		Formality:  clamp(t.Formality, FormalityMin, FormalityMax),
		Humor:      clamp(t.Humor, HumorMin, HumorMax),
		Enthusiasm: clamp(t.Enthusiasm, EnthusiasmMin, EnthusiasmMax),
	}
}

// Validate rejects any axis outside its bounds
func (t ToneAxes) Validate() error {
	for _, axis := range []ToneAxis{AxisFormality, AxisHumor, AxisEnthusiasm} {
		lo, hi := axis.Bounds()
		if v := t.Get(axis); v < lo || v > hi {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrValidation, axis, lo, hi, v)
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToneConfiguration is the one-per-business tone record.
// Preset and CustomDescription are mutually exclusive.
type ToneConfiguration struct {
	BusinessID        string    `json:"business_id"`
	Preset            string    `json:"preset,omitempty"`
	CustomDescription string    `json:"custom_description,omitempty"`
	Axes              ToneAxes  `json:"axes"`
	Examples          []string  `json:"examples"`
	ApplyToAllContent bool      `json:"apply_to_all_content"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Clone returns a deep copy
func (c *ToneConfiguration) Clone() *ToneConfiguration {
	if c == nil {
		return nil
	}
	out := *c
	out.Examples = append([]string{}, c.Examples...)
	return &out
}

// CustomToneInput carries a custom tone selection; nil axes take the defaults
type CustomToneInput struct {
	Description string `json:"description"`
	Formality   *int   `json:"formality,omitempty"`
	Humor       *int   `json:"humor,omitempty"`
	Enthusiasm  *int   `json:"enthusiasm,omitempty"`
}

// Axes resolves the input into a full vector
func (in CustomToneInput) Axes() ToneAxes {
	axes := ToneAxes{
		Formality:  DefaultCustomFormality,
		Humor:      DefaultCustomHumor,
		Enthusiasm: DefaultCustomEnthusiasm,
	}
	if in.Formality != nil {
		axes.Formality = *in.Formality
	}
	if in.Humor != nil {
		axes.Humor = *in.Humor
	}
	if in.Enthusiasm != nil {
		axes.Enthusiasm = *in.Enthusiasm
	}
	return axes
}

// ToneAdjustment is the before/after snapshot returned by a natural-language adjustment
type ToneAdjustment struct {
	PreviousTone       *ToneConfiguration `json:"previous_tone"`
	NewTone            *ToneConfiguration `json:"new_tone"`
	ChangesDescription []string           `json:"changes_description"`
}
