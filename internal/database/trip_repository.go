package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/safartaxi/trip-match-backend/internal/models"
)

// TripRepository handles database operations for the trips table
type TripRepository struct {
	db DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db DB) *TripRepository {
	return &TripRepository{db: db}
}

// Upsert atomically replaces the owner's trip. Every column is listed in the
// DO UPDATE set, so this is a full replace keyed on user_id, not a partial
// merge: no field of a previous trip (old role, old route, old price) can
// survive. created_at is refreshed on every save, which is what the expiry
// sweeper keys off.
func (r *TripRepository) Upsert(trip *models.Trip) error {
	query := `
		INSERT INTO trips (
			user_id, role, from_region, from_district, area,
			to_region, to_district, price, seats,
			when_mode, when_date, when_time, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role,
			from_region = EXCLUDED.from_region,
			from_district = EXCLUDED.from_district,
			area = EXCLUDED.area,
			to_region = EXCLUDED.to_region,
			to_district = EXCLUDED.to_district,
			price = EXCLUDED.price,
			seats = EXCLUDED.seats,
			when_mode = EXCLUDED.when_mode,
			when_date = EXCLUDED.when_date,
			when_time = EXCLUDED.when_time,
			created_at = NOW()
		RETURNING created_at
	`

	err := r.db.QueryRow(
		query,
		trip.UserID, trip.Role, trip.FromRegion, trip.FromDistrict, trip.Area,
		trip.ToRegion, trip.ToDistrict, trip.Price, trip.Seats,
		trip.WhenMode, trip.WhenDate, trip.WhenTime,
	).Scan(&trip.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert trip: %w", err)
	}

	return nil
}

// GetByUser retrieves the active trip of a user
func (r *TripRepository) GetByUser(userID int64) (*models.Trip, error) {
	query := `
		SELECT user_id, role, from_region, from_district, area,
		       to_region, to_district, price, seats,
		       when_mode, when_date, when_time, created_at
		FROM trips
		WHERE user_id = $1
	`

	var trip models.Trip
	if err := r.db.Get(&trip, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to fetch trip: %w", err)
	}

	return &trip, nil
}

// UpdateCapacity patches only the seats field of the owner's trip
func (r *TripRepository) UpdateCapacity(userID int64, seats models.Capacity) error {
	result, err := r.db.Exec(`UPDATE trips SET seats = $2 WHERE user_id = $1`, userID, seats)
	if err != nil {
		return fmt.Errorf("failed to update capacity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrTripNotFound
	}

	return nil
}

// Delete removes the trip if present; deleting an absent trip is a no-op
func (r *TripRepository) Delete(userID int64) error {
	if _, err := r.db.Exec(`DELETE FROM trips WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}

// FindByRoute returns all trips of the given role with the same route. The
// comparison is case-insensitive exact equality on all four fields; the
// sub-area is informational and excluded from the key.
func (r *TripRepository) FindByRoute(role models.Role, fromRegion, fromDistrict, toRegion, toDistrict string) ([]models.Trip, error) {
	query := `
		SELECT user_id, role, from_region, from_district, area,
		       to_region, to_district, price, seats,
		       when_mode, when_date, when_time, created_at
		FROM trips
		WHERE role = $1
		  AND LOWER(from_region) = LOWER($2)
		  AND LOWER(from_district) = LOWER($3)
		  AND LOWER(to_region) = LOWER($4)
		  AND LOWER(to_district) = LOWER($5)
	`

	trips := []models.Trip{}
	if err := r.db.Select(&trips, query, role, fromRegion, fromDistrict, toRegion, toDistrict); err != nil {
		return nil, fmt.Errorf("failed to find trips by route: %w", err)
	}

	return trips, nil
}

// DeleteOlderThan removes trips created before cutoff and returns the count
func (r *TripRepository) DeleteOlderThan(cutoff time.Time) (int, error) {
	result, err := r.db.Exec(`DELETE FROM trips WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale trips: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(removed), nil
}
