package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/safartaxi/trip-match-backend/internal/models"
)

// ProfileRepository handles database operations for the profiles table
type ProfileRepository struct {
	db DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert inserts or fully replaces the profile for profile.UserID. Every
// column is overwritten so a role change never leaves stale vehicle fields.
func (r *ProfileRepository) Upsert(profile *models.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, role, full_name, phone, car_model, car_color, car_plate,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role,
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			car_model = EXCLUDED.car_model,
			car_color = EXCLUDED.car_color,
			car_plate = EXCLUDED.car_plate,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		profile.UserID, profile.Role, profile.FullName, profile.Phone,
		profile.CarModel, profile.CarColor, profile.CarPlate,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// GetByUser retrieves a profile by user ID
func (r *ProfileRepository) GetByUser(userID int64) (*models.Profile, error) {
	query := `
		SELECT user_id, role, full_name, phone, car_model, car_color, car_plate,
		       created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile models.Profile
	if err := r.db.Get(&profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	return &profile, nil
}

// Delete removes the profile and its active trip. Account deletion is the
// one place both records go away together.
func (r *ProfileRepository) Delete(userID int64) (int, error) {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete profile: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := r.db.Exec(`DELETE FROM trips WHERE user_id = $1`, userID); err != nil {
		return int(removed), fmt.Errorf("failed to delete trip for removed profile: %w", err)
	}

	return int(removed), nil
}

// Stats returns total and per-role user counts
func (r *ProfileRepository) Stats() (*models.Stats, error) {
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE role = 'driver') AS drivers,
		       COUNT(*) FILTER (WHERE role = 'passenger') AS passengers
		FROM profiles
	`

	var stats models.Stats
	if err := r.db.Get(&stats, query); err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}

	return &stats, nil
}

// ListUserIDs returns user identities, optionally filtered by role
func (r *ProfileRepository) ListUserIDs(role *models.Role) ([]int64, error) {
	ids := []int64{}
	if role == nil {
		if err := r.db.Select(&ids, `SELECT user_id FROM profiles`); err != nil {
			return nil, fmt.Errorf("failed to list user ids: %w", err)
		}
		return ids, nil
	}

	if err := r.db.Select(&ids, `SELECT user_id FROM profiles WHERE role = $1`, *role); err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	return ids, nil
}
