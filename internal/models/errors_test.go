// ABOUTME: Tests for sentinel errors and business id validation
// ABOUTME: Verifies the error chain that transports map to status codes
package models

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateBusinessID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "acme", false},
		{"with dashes and digits", "acme-bakery-42", false},
		{"empty", "", true},
		{"contains space", "acme bakery", true},
		{"contains newline", "acme\n", true},
		{"too long", strings.Repeat("a", MaxBusinessIDLength+1), true},
		{"exactly max", strings.Repeat("a", MaxBusinessIDLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBusinessID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateBusinessID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidBusinessID) || !errors.Is(err, ErrValidation) {
					t.Errorf("error %v should wrap ErrInvalidBusinessID and ErrValidation", err)
				}
			}
		})
	}
}
