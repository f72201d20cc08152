package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safartaxi/trip-match-backend/internal/database"
	"github.com/safartaxi/trip-match-backend/internal/models"
)

func TestRegisterNormalizesPhone(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewProfileService(store, quietLogger())

	profile := passengerProfile(20, "Malika Rahimova")
	profile.Phone = "998 90 123 45 67"

	require.NoError(t, svc.Register(profile))

	saved, err := svc.Get(20)
	require.NoError(t, err)
	assert.Equal(t, "+998901234567", saved.Phone)
}

func TestRegisterRejectsBadPhone(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewProfileService(store, quietLogger())

	profile := passengerProfile(20, "Malika Rahimova")
	profile.Phone = "12345"

	err := svc.Register(profile)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestRegisterDriverRequiresVehicle(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewProfileService(store, quietLogger())

	profile := driverProfile(10, "Aziz Karimov")
	profile.CarPlate = nil

	err := svc.Register(profile)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestRegisterIsFullReplace(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewProfileService(store, quietLogger())

	require.NoError(t, svc.Register(driverProfile(10, "Aziz Karimov")))

	// Re-registering as a passenger drops the vehicle fields.
	again := passengerProfile(10, "Aziz Karimov")
	require.NoError(t, svc.Register(again))

	saved, err := svc.Get(10)
	require.NoError(t, err)
	assert.Equal(t, models.RolePassenger, saved.Role)
	assert.Nil(t, saved.CarModel)
	assert.Nil(t, saved.CarPlate)
}

func TestDeleteAccount(t *testing.T) {
	store := database.NewMemoryStore()
	trips := store.TripStoreView()
	svc := NewProfileService(store, quietLogger())

	require.NoError(t, svc.Register(passengerProfile(20, "Malika Rahimova")))
	require.NoError(t, trips.Upsert(newTripFor(20, models.RolePassenger)))

	require.NoError(t, svc.Delete(20))

	_, err := svc.Get(20)
	assert.ErrorIs(t, err, models.ErrProfileNotFound)
	_, err = trips.GetByUser(20)
	assert.ErrorIs(t, err, models.ErrTripNotFound)

	err = svc.Delete(20)
	assert.ErrorIs(t, err, models.ErrProfileNotFound)
}
