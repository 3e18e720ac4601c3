// ABOUTME: Identifier generation for stored entities
// ABOUTME: Prefix plus a random UUID, matching the rest of the stored ids
package core

import "github.com/google/uuid"

func newID(prefix string) string {
	return prefix + "_" + uuid.New().String()
}
