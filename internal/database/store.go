package database

import (
	"time"

	"github.com/safartaxi/trip-match-backend/internal/models"
)

// ProfileStore is the narrow profile access surface the core needs. One
// profile per identity; Upsert replaces the record wholesale.
type ProfileStore interface {
	Upsert(profile *models.Profile) error
	GetByUser(userID int64) (*models.Profile, error)
	// Delete removes the profile and its trip. Returns the number of
	// profiles removed (0 when the user was never registered).
	Delete(userID int64) (int, error)
	Stats() (*models.Stats, error)
	// ListUserIDs returns identities, optionally filtered by role
	// (nil = everyone). Used for admin broadcast fan-out.
	ListUserIDs(role *models.Role) ([]int64, error)
}

// TripStore owns the single-active-trip invariant: at most one trip per
// owner, enforced with an atomic replace keyed on the owner identity.
type TripStore interface {
	// Upsert fully replaces any existing trip for trip.UserID. Idempotent:
	// saving identical data twice yields the same state. CreatedAt is set
	// by the store on every call.
	Upsert(trip *models.Trip) error
	GetByUser(userID int64) (*models.Trip, error)
	// UpdateCapacity patches only the seats field. Returns
	// models.ErrTripNotFound when the owner has no trip so the caller
	// knows the update did not take effect.
	UpdateCapacity(userID int64, seats models.Capacity) error
	// Delete removes the trip if present; absent is not an error.
	Delete(userID int64) error
	// FindByRoute returns all trips of the given role whose four route
	// fields equal the arguments case-insensitively. The sub-area is not
	// part of the match key. No ordering is guaranteed.
	FindByRoute(role models.Role, fromRegion, fromDistrict, toRegion, toDistrict string) ([]models.Trip, error)
	// DeleteOlderThan removes trips created before cutoff and returns the
	// number removed.
	DeleteOlderThan(cutoff time.Time) (int, error)
}
