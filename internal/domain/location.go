// Package domain contains the core data types for the Globemarks API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Location represents a single saved geographic point.
// Name is the uniqueness key: it is always stored lowercase, and no two
// locations may share a name under case-insensitive comparison.
type Location struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Landmark  string    `json:"landmark,omitempty"`
	ZipCode   string    `json:"zipCode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LocationUpdate carries a partial update: nil fields are left unchanged.
// The service layer merges it onto the stored record before re-validating,
// so an update that never mentions latitude cannot corrupt it.
type LocationUpdate struct {
	Name      *string
	Latitude  *float64
	Longitude *float64
	Landmark  *string
	ZipCode   *string
}

// NormalizeName returns the canonical form of a location name: surrounding
// whitespace stripped and case folded to lowercase. All storage and
// comparison goes through this, so callers may submit mixed case.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
