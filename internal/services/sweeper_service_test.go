package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safartaxi/trip-match-backend/internal/database"
	"github.com/safartaxi/trip-match-backend/internal/models"
)

func TestSweeperRemovesOnlyStaleTrips(t *testing.T) {
	base := time.Now()
	clock := base
	store := database.NewMemoryStoreWithClock(func() time.Time { return clock })
	trips := store.TripStoreView()

	require.NoError(t, trips.Upsert(newTripFor(10, models.RoleDriver)))

	clock = base.Add(25 * time.Hour)
	require.NoError(t, trips.Upsert(newTripFor(20, models.RolePassenger)))

	sweeper := NewSweeperService(trips, quietLogger(), time.Hour, 24*time.Hour)
	sweeper.now = func() time.Time { return clock }
	sweeper.RunOnce()

	_, err := trips.GetByUser(10)
	assert.ErrorIs(t, err, models.ErrTripNotFound)
	_, err = trips.GetByUser(20)
	assert.NoError(t, err)
}

func TestSweeperResaveRestartsWindow(t *testing.T) {
	base := time.Now()
	clock := base
	store := database.NewMemoryStoreWithClock(func() time.Time { return clock })
	trips := store.TripStoreView()

	require.NoError(t, trips.Upsert(newTripFor(10, models.RoleDriver)))

	// Re-saved 23h in, so at the 25h mark it is only 2h old.
	clock = base.Add(23 * time.Hour)
	require.NoError(t, trips.Upsert(newTripFor(10, models.RoleDriver)))

	clock = base.Add(25 * time.Hour)
	sweeper := NewSweeperService(trips, quietLogger(), time.Hour, 24*time.Hour)
	sweeper.now = func() time.Time { return clock }
	sweeper.RunOnce()

	_, err := trips.GetByUser(10)
	assert.NoError(t, err)
}

func TestSweeperIsIdempotent(t *testing.T) {
	base := time.Now()
	clock := base
	store := database.NewMemoryStoreWithClock(func() time.Time { return clock })
	trips := store.TripStoreView()

	require.NoError(t, trips.Upsert(newTripFor(10, models.RoleDriver)))

	clock = base.Add(25 * time.Hour)
	sweeper := NewSweeperService(trips, quietLogger(), time.Hour, 24*time.Hour)
	sweeper.now = func() time.Time { return clock }

	sweeper.RunOnce()
	sweeper.RunOnce()

	_, err := trips.GetByUser(10)
	assert.ErrorIs(t, err, models.ErrTripNotFound)
}

func TestSweeperSkipsCycleOnStoreError(t *testing.T) {
	store := &failingDeleteStore{}
	sweeper := NewSweeperService(store, quietLogger(), time.Hour, 24*time.Hour)

	// Must not panic; the failed cycle is logged and retried next tick.
	sweeper.RunOnce()
	assert.Equal(t, 1, store.calls)
}

func TestSweeperStartStop(t *testing.T) {
	store := database.NewMemoryStore()
	sweeper := NewSweeperService(store.TripStoreView(), quietLogger(), time.Hour, 24*time.Hour)

	sweeper.Start()
	sweeper.Stop()
}

type failingDeleteStore struct {
	database.TripStore
	calls int
}

func (s *failingDeleteStore) DeleteOlderThan(time.Time) (int, error) {
	s.calls++
	return 0, fmt.Errorf("store unavailable")
}
