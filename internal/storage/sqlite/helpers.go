// ABOUTME: Shared helpers for SQLite stores
// ABOUTME: JSON column encoding and store-unavailable error wrapping
package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/harper/brand-memory/internal/models"
)

// storeErr marks a driver failure as a store outage while keeping the cause
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}

// encodeJSON marshals v for a JSON column; nil slices become "[]"
func encodeJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}

// decodeStrings reads a JSON string array column, tolerating junk
func decodeStrings(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
