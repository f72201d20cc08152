package models

import (
	"strings"
	"time"
)

// Role distinguishes the two sides of a match.
type Role string

const (
	RoleDriver    Role = "driver"
	RolePassenger Role = "passenger"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleDriver || r == RolePassenger
}

// Opposite returns the counterpart role used for matching.
func (r Role) Opposite() Role {
	if r == RoleDriver {
		return RolePassenger
	}
	return RoleDriver
}

// Profile is a registered user. UserID is the external chat identity and is
// assigned by the transport layer, never generated here. Vehicle fields are
// mandatory for drivers and cleared for passengers.
type Profile struct {
	UserID    int64     `json:"user_id" db:"user_id"`
	Role      Role      `json:"role" db:"role"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	CarModel  *string   `json:"car_model,omitempty" db:"car_model"`
	CarColor  *string   `json:"car_color,omitempty" db:"car_color"`
	CarPlate  *string   `json:"car_plate,omitempty" db:"car_plate"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsDriver reports whether the profile belongs to a driver.
func (p *Profile) IsDriver() bool {
	return p.Role == RoleDriver
}

// Validate checks the role-conditional shape of the profile.
func (p *Profile) Validate() error {
	if p.UserID <= 0 {
		return NewValidationError("user_id", "must be a positive identity")
	}
	if !p.Role.Valid() {
		return NewValidationError("role", "must be driver or passenger")
	}
	if len(strings.TrimSpace(p.FullName)) < 3 {
		return NewValidationError("full_name", "must be at least 3 characters")
	}
	if p.Role == RoleDriver {
		if p.CarModel == nil || strings.TrimSpace(*p.CarModel) == "" {
			return NewValidationError("car_model", "required for drivers")
		}
		if p.CarColor == nil || strings.TrimSpace(*p.CarColor) == "" {
			return NewValidationError("car_color", "required for drivers")
		}
		if p.CarPlate == nil || !validPlate(*p.CarPlate) {
			return NewValidationError("car_plate", "must be 7-10 characters")
		}
		plate := strings.ToUpper(strings.TrimSpace(*p.CarPlate))
		p.CarPlate = &plate
	} else {
		// Passengers never carry vehicle attributes.
		p.CarModel = nil
		p.CarColor = nil
		p.CarPlate = nil
	}
	return nil
}

func validPlate(plate string) bool {
	t := strings.TrimSpace(plate)
	return len(t) >= 7 && len(t) <= 10
}

// Stats is the per-role user count summary used by the admin surface.
type Stats struct {
	Total      int `json:"total" db:"total"`
	Drivers    int `json:"drivers" db:"drivers"`
	Passengers int `json:"passengers" db:"passengers"`
}
