package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/safartaxi/trip-match-backend/internal/models"
	"github.com/safartaxi/trip-match-backend/internal/services"
)

// TripHandler handles HTTP requests for the trip lifecycle
type TripHandler struct {
	service *services.TripService
	logger  *logrus.Logger
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *services.TripService, logger *logrus.Logger) *TripHandler {
	return &TripHandler{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /api/v1/trips. Saving replaces the owner's previous
// trip; the response reports how many counterparts were matched and alerted.
// Delivery failures never turn a saved trip into an error.
func (h *TripHandler) Create(c *gin.Context) {
	var trip models.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		h.logger.WithError(err).Warn("Invalid trip request body")
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	result, err := h.service.Create(c.Request.Context(), &trip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":      "ok",
		"trip":        result.Trip,
		"match_count": result.MatchCount,
		"notified":    result.Notified,
	})
}

// Get handles GET /api/v1/trips/:user_id
func (h *TripHandler) Get(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	trip, err := h.service.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"trip":   trip,
	})
}

type capacityRequest struct {
	Seats models.Capacity `json:"seats"`
}

// UpdateCapacity handles PATCH /api/v1/trips/:user_id/capacity
func (h *TripHandler) UpdateCapacity(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req capacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	if err := h.service.UpdateCapacity(userID, req.Seats); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Delete handles DELETE /api/v1/trips/:user_id. Ending a trip that does not
// exist succeeds: the goal state is already reached.
func (h *TripHandler) Delete(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.service.End(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Matches handles GET /api/v1/trips/:user_id/matches. An empty list is a
// valid 200 response, distinct from 404 when the user has no trip at all.
func (h *TripHandler) Matches(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	matches, err := h.service.Matches(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"matches": matches,
	})
}

type locationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// RelayLocation handles POST /api/v1/trips/:user_id/location, forwarding the
// caller's coordinates to their first matched counterpart, best effort.
func (h *TripHandler) RelayLocation(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "latitude and longitude are required",
		})
		return
	}

	recipient, err := h.service.RelayLocation(c.Request.Context(), userID, req.Latitude, req.Longitude)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"recipient": recipient,
	})
}
