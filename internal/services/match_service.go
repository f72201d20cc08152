package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/safartaxi/trip-match-backend/internal/database"
	"github.com/safartaxi/trip-match-backend/internal/models"
)

// MatchService finds counterpart trips for a saved trip. Matching is route
// equality only: opposite role, same four route fields. Capacity, price and
// timing never filter a match.
type MatchService struct {
	profileStore database.ProfileStore
	tripStore    database.TripStore
	logger       *logrus.Logger
}

// NewMatchService creates a new match service
func NewMatchService(
	profileStore database.ProfileStore,
	tripStore database.TripStore,
	logger *logrus.Logger,
) *MatchService {
	return &MatchService{
		profileStore: profileStore,
		tripStore:    tripStore,
		logger:       logger,
	}
}

// MatchesFor returns all counterpart matches for the given trip, resolved to
// full profile+trip pairs. An empty result is a normal outcome, not an error.
// A counterpart trip whose owner profile has vanished is skipped and logged:
// a bare identity is not enough to format an alert.
func (s *MatchService) MatchesFor(trip *models.Trip) ([]models.Match, error) {
	counterparts, err := s.tripStore.FindByRoute(
		trip.Role.Opposite(),
		trip.FromRegion, trip.FromDistrict,
		trip.ToRegion, trip.ToDistrict,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find counterpart trips: %w", err)
	}

	matches := make([]models.Match, 0, len(counterparts))
	for _, ct := range counterparts {
		profile, err := s.profileStore.GetByUser(ct.UserID)
		if err != nil {
			s.logger.WithError(err).WithField("user_id", ct.UserID).
				Warn("Skipping counterpart trip without a resolvable profile")
			continue
		}
		matches = append(matches, models.Match{Profile: *profile, Trip: ct})
	}

	return matches, nil
}

// MatchesForUser resolves the user's own trip and returns its matches. The
// submitter must still be registered: matching on behalf of an unknown
// profile is a consistency error, not an empty result.
func (s *MatchService) MatchesForUser(userID int64) ([]models.Match, error) {
	if _, err := s.profileStore.GetByUser(userID); err != nil {
		return nil, err
	}

	trip, err := s.tripStore.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	return s.MatchesFor(trip)
}
