package database

import (
	"strings"
	"sync"
	"time"

	"github.com/safartaxi/trip-match-backend/internal/models"
)

// MemoryStore is an in-memory implementation of ProfileStore and TripStore.
// It is safe for concurrent use and backs the "memory" store driver used in
// development and tests. Records are cloned on the way in and out so callers
// can never mutate stored state through shared pointers.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[int64]models.Profile
	trips    map[int64]models.Trip
	now      func() time.Time
}

// NewMemoryStore creates an empty MemoryStore using the wall clock.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates a MemoryStore with an injected clock so
// expiry behavior is deterministic in tests.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		profiles: make(map[int64]models.Profile),
		trips:    make(map[int64]models.Trip),
		now:      now,
	}
}

// Upsert inserts or fully replaces the profile for profile.UserID.
func (s *MemoryStore) Upsert(profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := cloneProfile(*profile)
	if existing, ok := s.profiles[p.UserID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	s.profiles[p.UserID] = p

	profile.CreatedAt = p.CreatedAt
	profile.UpdatedAt = p.UpdatedAt
	return nil
}

// GetByUser retrieves a profile by user ID.
func (s *MemoryStore) GetByUser(userID int64) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, models.ErrProfileNotFound
	}
	cp := cloneProfile(p)
	return &cp, nil
}

// Delete removes the profile and its trip, returning the profiles removed.
func (s *MemoryStore) Delete(userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	if _, ok := s.profiles[userID]; ok {
		delete(s.profiles, userID)
		removed = 1
	}
	delete(s.trips, userID)
	return removed, nil
}

// Stats returns total and per-role user counts.
func (s *MemoryStore) Stats() (*models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.Stats{Total: len(s.profiles)}
	for _, p := range s.profiles {
		switch p.Role {
		case models.RoleDriver:
			stats.Drivers++
		case models.RolePassenger:
			stats.Passengers++
		}
	}
	return stats, nil
}

// ListUserIDs returns identities, optionally filtered by role.
func (s *MemoryStore) ListUserIDs(role *models.Role) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := []int64{}
	for id, p := range s.profiles {
		if role == nil || p.Role == *role {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// UpsertTrip fully replaces the owner's trip under a single lock, which is
// the in-memory equivalent of the conditional write the SQL store does.
func (s *MemoryStore) UpsertTrip(trip *models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := cloneTrip(*trip)
	t.CreatedAt = s.now()
	s.trips[t.UserID] = t

	trip.CreatedAt = t.CreatedAt
	return nil
}

// GetTrip retrieves the active trip of a user.
func (s *MemoryStore) GetTrip(userID int64) (*models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trips[userID]
	if !ok {
		return nil, models.ErrTripNotFound
	}
	cp := cloneTrip(t)
	return &cp, nil
}

// UpdateCapacity patches only the seats field of the owner's trip.
func (s *MemoryStore) UpdateCapacity(userID int64, seats models.Capacity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trips[userID]
	if !ok {
		return models.ErrTripNotFound
	}
	t.Seats = seats
	s.trips[userID] = t
	return nil
}

// DeleteTrip removes the trip if present; absent is a no-op.
func (s *MemoryStore) DeleteTrip(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.trips, userID)
	return nil
}

// FindByRoute returns all trips of the given role with an equal route,
// compared case-insensitively. The sub-area is not part of the key.
func (s *MemoryStore) FindByRoute(role models.Role, fromRegion, fromDistrict, toRegion, toDistrict string) ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Trip{}
	for _, t := range s.trips {
		if t.Role != role {
			continue
		}
		if strings.EqualFold(t.FromRegion, fromRegion) &&
			strings.EqualFold(t.FromDistrict, fromDistrict) &&
			strings.EqualFold(t.ToRegion, toRegion) &&
			strings.EqualFold(t.ToDistrict, toDistrict) {
			out = append(out, cloneTrip(t))
		}
	}
	return out, nil
}

// DeleteOlderThan removes trips created before cutoff, returning the count.
func (s *MemoryStore) DeleteOlderThan(cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, t := range s.trips {
		if t.CreatedAt.Before(cutoff) {
			delete(s.trips, id)
			removed++
		}
	}
	return removed, nil
}

// TripStoreView adapts the MemoryStore to the TripStore interface. The
// profile methods already satisfy ProfileStore on *MemoryStore itself; trip
// methods carry distinct names to avoid clashing with them.
func (s *MemoryStore) TripStoreView() TripStore {
	return memoryTripStore{s}
}

type memoryTripStore struct {
	s *MemoryStore
}

func (m memoryTripStore) Upsert(trip *models.Trip) error { return m.s.UpsertTrip(trip) }
func (m memoryTripStore) GetByUser(userID int64) (*models.Trip, error) {
	return m.s.GetTrip(userID)
}
func (m memoryTripStore) UpdateCapacity(userID int64, seats models.Capacity) error {
	return m.s.UpdateCapacity(userID, seats)
}
func (m memoryTripStore) Delete(userID int64) error { return m.s.DeleteTrip(userID) }
func (m memoryTripStore) FindByRoute(role models.Role, fr, fd, tr, td string) ([]models.Trip, error) {
	return m.s.FindByRoute(role, fr, fd, tr, td)
}
func (m memoryTripStore) DeleteOlderThan(cutoff time.Time) (int, error) {
	return m.s.DeleteOlderThan(cutoff)
}

func cloneProfile(p models.Profile) models.Profile {
	cp := p
	cp.CarModel = cloneStringPtr(p.CarModel)
	cp.CarColor = cloneStringPtr(p.CarColor)
	cp.CarPlate = cloneStringPtr(p.CarPlate)
	return cp
}

func cloneTrip(t models.Trip) models.Trip {
	cp := t
	cp.Area = cloneStringPtr(t.Area)
	cp.Price = cloneIntPtr(t.Price)
	cp.WhenDate = cloneStringPtr(t.WhenDate)
	cp.WhenTime = cloneStringPtr(t.WhenTime)
	return cp
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
