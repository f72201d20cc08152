package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/safartaxi/trip-match-backend/internal/database"
	"github.com/safartaxi/trip-match-backend/internal/models"
	"github.com/safartaxi/trip-match-backend/internal/regions"
)

// TripService owns the trip lifecycle: create (full replace), capacity
// patch, end, and the pull-matching reads. The creation path guarantees the
// trip is durably saved before any notification goes out.
type TripService struct {
	profileStore database.ProfileStore
	tripStore    database.TripStore
	matcher      *MatchService
	notifier     *NotifyService
	logger       *logrus.Logger
	now          func() time.Time
}

// NewTripService creates a new trip service
func NewTripService(
	profileStore database.ProfileStore,
	tripStore database.TripStore,
	matcher *MatchService,
	notifier *NotifyService,
	logger *logrus.Logger,
) *TripService {
	return &TripService{
		profileStore: profileStore,
		tripStore:    tripStore,
		matcher:      matcher,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateResult reports the outcome of a trip save. Delivery problems never
// surface as errors: the trip is saved either way.
type CreateResult struct {
	Trip       *models.Trip `json:"trip"`
	MatchCount int          `json:"match_count"`
	Notified   int          `json:"notified"`
}

// Create validates, saves and fans out alerts for a trip. The owner must be
// registered; the role is taken from the profile, never from the request.
// Saving replaces any previous trip of the owner wholesale.
func (s *TripService) Create(ctx context.Context, trip *models.Trip) (*CreateResult, error) {
	profile, err := s.profileStore.GetByUser(trip.UserID)
	if err != nil {
		return nil, err
	}
	trip.Role = profile.Role

	if err := s.validateRoute(trip); err != nil {
		return nil, err
	}
	if err := trip.Validate(s.now()); err != nil {
		return nil, err
	}

	if err := s.tripStore.Upsert(trip); err != nil {
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	// From here on the trip is durable. Matching or delivery trouble is
	// logged, never returned.
	matches, err := s.matcher.MatchesFor(trip)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", trip.UserID).
			Error("Trip saved but matching failed")
		return &CreateResult{Trip: trip}, nil
	}

	notified := s.notifier.NotifyMatches(ctx, profile, trip, matches)

	return &CreateResult{
		Trip:       trip,
		MatchCount: len(matches),
		Notified:   notified,
	}, nil
}

// Get returns the user's active trip
func (s *TripService) Get(userID int64) (*models.Trip, error) {
	return s.tripStore.GetByUser(userID)
}

// UpdateCapacity patches the seats of the user's active trip
func (s *TripService) UpdateCapacity(userID int64, seats models.Capacity) error {
	if !seats.Valid() {
		return models.NewValidationError("seats", fmt.Sprintf("must be 1..6 or %q", models.CapacityFreight))
	}
	return s.tripStore.UpdateCapacity(userID, seats)
}

// End removes the user's active trip. Ending twice is fine.
func (s *TripService) End(userID int64) error {
	return s.tripStore.Delete(userID)
}

// Matches returns the counterpart matches for the user's active trip
func (s *TripService) Matches(userID int64) ([]models.Match, error) {
	return s.matcher.MatchesForUser(userID)
}

// RelayLocation forwards the user's coordinates to their first matched
// counterpart. Best effort: no counterpart or a delivery failure is reported
// to the caller but changes nothing.
func (s *TripService) RelayLocation(ctx context.Context, userID int64, latitude, longitude float64) (int64, error) {
	profile, err := s.profileStore.GetByUser(userID)
	if err != nil {
		return 0, err
	}

	matches, err := s.matcher.MatchesForUser(userID)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, models.ErrTripNotFound
	}

	recipient := matches[0].Profile.UserID
	if err := s.notifier.RelayLocation(ctx, recipient, profile.FullName, latitude, longitude); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":   userID,
			"recipient": recipient,
		}).Warn("Location relay failed")
		return 0, fmt.Errorf("failed to relay location: %w", err)
	}

	return recipient, nil
}

func (s *TripService) validateRoute(trip *models.Trip) error {
	if !regions.ValidRoute(trip.FromRegion, trip.FromDistrict) {
		return models.NewValidationError("from", "unknown region or district")
	}
	if !regions.ValidRoute(trip.ToRegion, trip.ToDistrict) {
		return models.NewValidationError("to", "unknown region or district")
	}
	return nil
}
