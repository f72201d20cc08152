package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/safartaxi/trip-match-backend/internal/database"
	"github.com/safartaxi/trip-match-backend/internal/models"
	"github.com/safartaxi/trip-match-backend/pkg/jwt"
)

// ErrInvalidCredentials is returned on a failed admin login
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnknownAudience is returned when a broadcast targets an unknown group
var ErrUnknownAudience = errors.New("audience must be all, drivers or passengers")

// Broadcast audiences
const (
	AudienceAll        = "all"
	AudienceDrivers    = "drivers"
	AudiencePassengers = "passengers"
)

// AdminService backs the operator surface: login, user statistics and
// broadcast messaging.
type AdminService struct {
	profileStore database.ProfileStore
	notifier     *NotifyService
	tokens       *jwt.Service
	passwordHash string
	logger       *logrus.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	profileStore database.ProfileStore,
	notifier *NotifyService,
	tokens *jwt.Service,
	passwordHash string,
	logger *logrus.Logger,
) *AdminService {
	return &AdminService{
		profileStore: profileStore,
		notifier:     notifier,
		tokens:       tokens,
		passwordHash: passwordHash,
		logger:       logger,
	}
}

// Login checks the operator password against the configured bcrypt hash and
// issues an admin token.
func (s *AdminService) Login(password string) (string, error) {
	if s.passwordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate("admin", "admin")
	if err != nil {
		return "", err
	}

	s.logger.Info("Admin login succeeded")
	return token, nil
}

// Stats returns total and per-role user counts
func (s *AdminService) Stats() (*models.Stats, error) {
	return s.profileStore.Stats()
}

// Broadcast sends text to every user in the audience and returns how many
// deliveries succeeded out of how many were attempted.
func (s *AdminService) Broadcast(ctx context.Context, audience, text string) (delivered, total int, err error) {
	var role *models.Role
	switch audience {
	case AudienceAll:
	case AudienceDrivers:
		r := models.RoleDriver
		role = &r
	case AudiencePassengers:
		r := models.RolePassenger
		role = &r
	default:
		return 0, 0, ErrUnknownAudience
	}

	ids, err := s.profileStore.ListUserIDs(role)
	if err != nil {
		return 0, 0, err
	}

	delivered = s.notifier.Broadcast(ctx, ids, text)

	s.logger.WithFields(logrus.Fields{
		"audience":  audience,
		"total":     len(ids),
		"delivered": delivered,
	}).Info("Broadcast completed")

	return delivered, len(ids), nil
}
