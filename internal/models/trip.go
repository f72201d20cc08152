package models

import (
	"fmt"
	"time"
)

// Capacity is either a seat count "1".."6" or the freight sentinel.
type Capacity string

// CapacityFreight marks a parcel/freight trip instead of a seat count.
const CapacityFreight Capacity = "post"

const maxSeats = 6

// Valid reports whether the capacity is a seat count in 1..6 or the freight
// sentinel.
func (c Capacity) Valid() bool {
	if c == CapacityFreight {
		return true
	}
	if len(c) != 1 {
		return false
	}
	n := int(c[0] - '0')
	return n >= 1 && n <= maxSeats
}

// IsFreight reports whether the trip carries parcels instead of passengers.
func (c Capacity) IsFreight() bool {
	return c == CapacityFreight
}

// Timing modes for a trip.
const (
	WhenNow     = "now"
	WhenPlanned = "plan"
)

// DateLayout is the wire format for planned trip dates.
const DateLayout = "2006-01-02"

// Trip is the single active trip of a user. UserID is the owner key: the
// store guarantees at most one row per user and every save is a full
// replace. Role is denormalized from the profile at creation time so route
// matching never needs a join. CreatedAt is refreshed on every upsert and is
// the only field the expiry sweeper looks at.
type Trip struct {
	UserID       int64     `json:"user_id" db:"user_id"`
	Role         Role      `json:"role" db:"role"`
	FromRegion   string    `json:"from_region" db:"from_region"`
	FromDistrict string    `json:"from_district" db:"from_district"`
	Area         *string   `json:"area,omitempty" db:"area"`
	ToRegion     string    `json:"to_region" db:"to_region"`
	ToDistrict   string    `json:"to_district" db:"to_district"`
	Price        *int      `json:"price,omitempty" db:"price"`
	Seats        Capacity  `json:"seats" db:"seats"`
	WhenMode     string    `json:"when_mode" db:"when_mode"`
	WhenDate     *string   `json:"when_date,omitempty" db:"when_date"`
	WhenTime     *string   `json:"when_time,omitempty" db:"when_time"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Validate checks everything that can be checked without the region
// vocabulary: capacity bounds, price sign, and timing. Route vocabulary
// membership is validated by the trip service against the regions package.
// now is injected so planned-date checks are deterministic in tests.
func (t *Trip) Validate(now time.Time) error {
	if t.UserID <= 0 {
		return NewValidationError("user_id", "must be a positive identity")
	}
	if !t.Role.Valid() {
		return NewValidationError("role", "must be driver or passenger")
	}
	if !t.Seats.Valid() {
		return NewValidationError("seats", fmt.Sprintf("must be 1..%d or %q", maxSeats, CapacityFreight))
	}
	if t.Price != nil && *t.Price < 0 {
		return NewValidationError("price", "must not be negative")
	}
	if t.Role == RolePassenger {
		// Price is a driver-only attribute.
		t.Price = nil
	}

	switch t.WhenMode {
	case WhenNow:
		t.WhenDate = nil
		t.WhenTime = nil
	case WhenPlanned:
		if t.WhenDate == nil {
			return NewValidationError("when_date", "required for planned trips")
		}
		d, err := time.Parse(DateLayout, *t.WhenDate)
		if err != nil {
			return NewValidationError("when_date", "must be YYYY-MM-DD")
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if d.Before(today) {
			return NewValidationError("when_date", "must not be in the past")
		}
		if t.WhenTime == nil || !validHour(*t.WhenTime) {
			return NewValidationError("when_time", "must be HH:00 between 00:00 and 23:00")
		}
	default:
		return NewValidationError("when_mode", "must be now or plan")
	}
	return nil
}

func validHour(s string) bool {
	if len(s) != 5 || s[2] != ':' || s[3] != '0' || s[4] != '0' {
		return false
	}
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return false
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	return hour <= 23
}

// Match pairs a counterpart trip with its owner's profile. Match results
// always resolve to the full records: a bare identity is not enough to
// format an alert.
type Match struct {
	Profile Profile `json:"profile"`
	Trip    Trip    `json:"trip"`
}
