package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/safartaxi/trip-match-backend/internal/models"
	"github.com/safartaxi/trip-match-backend/internal/services"
)

// ProfileHandler handles HTTP requests for user profiles
type ProfileHandler struct {
	service *services.ProfileService
	logger  *logrus.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service *services.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

// Register handles POST /api/v1/profiles. Registering an existing user
// replaces the profile wholesale; this is also the edit flow.
func (h *ProfileHandler) Register(c *gin.Context) {
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.logger.WithError(err).Warn("Invalid profile request body")
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	if err := h.service.Register(&profile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "ok",
		"profile": profile,
	})
}

// Get handles GET /api/v1/profiles/:user_id
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	profile, err := h.service.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"profile": profile,
	})
}

// Delete handles DELETE /api/v1/profiles/:user_id. Removes the account and
// any active trip with it.
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseUserID reads the :user_id path parameter
func parseUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "user_id must be a positive integer",
		})
		return 0, false
	}
	return userID, true
}
