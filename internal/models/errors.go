// ABOUTME: Sentinel errors shared by stores, components, and transports
// ABOUTME: Absence of data is never an error; these cover the few real failures
package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrNotFound indicates an operation needs an entity that does not exist yet.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates caller-supplied input is out of bounds or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrStoreUnavailable indicates the persisted store could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidBusinessID is a validation failure on the business identifier itself.
	ErrInvalidBusinessID = fmt.Errorf("%w: invalid business id", ErrValidation)
)

// MaxBusinessIDLength bounds business identifiers
const MaxBusinessIDLength = 128

// ValidateBusinessID rejects identifiers that cannot name a business row
func ValidateBusinessID(businessID string) error {
	if businessID == "" {
		return fmt.Errorf("%w: empty", ErrInvalidBusinessID)
	}
	if len(businessID) > MaxBusinessIDLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidBusinessID, MaxBusinessIDLength)
	}
	if strings.IndexFunc(businessID, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return fmt.Errorf("%w: contains whitespace or control characters", ErrInvalidBusinessID)
	}
	return nil
}
