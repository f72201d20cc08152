package services

import (
	"github.com/sirupsen/logrus"

	"github.com/safartaxi/trip-match-backend/internal/database"
	"github.com/safartaxi/trip-match-backend/internal/models"
	"github.com/safartaxi/trip-match-backend/pkg/validator"
)

// ProfileService handles registration and account removal. Editing a profile
// is the same operation as registering: a full upsert keyed on the identity.
type ProfileService struct {
	profileStore database.ProfileStore
	phones       *validator.PhoneValidator
	logger       *logrus.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profileStore database.ProfileStore, logger *logrus.Logger) *ProfileService {
	return &ProfileService{
		profileStore: profileStore,
		phones:       validator.NewPhoneValidator(),
		logger:       logger,
	}
}

// Register validates and saves the profile, replacing any previous one. The
// phone is normalized to +998 canonical form before storage.
func (s *ProfileService) Register(profile *models.Profile) error {
	phone, err := s.phones.Validate(profile.Phone)
	if err != nil {
		return models.NewValidationError("phone", err.Error())
	}
	profile.Phone = phone

	if err := profile.Validate(); err != nil {
		return err
	}

	if err := s.profileStore.Upsert(profile); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": profile.UserID,
		"role":    profile.Role,
	}).Info("Profile registered")

	return nil
}

// Get returns the profile for a user
func (s *ProfileService) Get(userID int64) (*models.Profile, error) {
	return s.profileStore.GetByUser(userID)
}

// Delete removes the account: profile and any active trip together. Returns
// models.ErrProfileNotFound when the user was never registered.
func (s *ProfileService) Delete(userID int64) error {
	removed, err := s.profileStore.Delete(userID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return models.ErrProfileNotFound
	}

	s.logger.WithField("user_id", userID).Info("Account deleted")
	return nil
}
