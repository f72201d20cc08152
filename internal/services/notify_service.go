package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/safartaxi/trip-match-backend/internal/models"
	"github.com/safartaxi/trip-match-backend/pkg/push"
)

// NotifyService fans match alerts out to recipients. Delivery is at-most-once
// and fire-and-forget: a failed recipient is logged and counted, never
// retried, and never affects the other recipients or the saved trip.
type NotifyService struct {
	sender      push.Sender
	logger      *logrus.Logger
	sendTimeout time.Duration
}

// NewNotifyService creates a new notify service
func NewNotifyService(sender push.Sender, logger *logrus.Logger, sendTimeout time.Duration) *NotifyService {
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}
	return &NotifyService{
		sender:      sender,
		logger:      logger,
		sendTimeout: sendTimeout,
	}
}

// NotifyMatches delivers the submitter's alert to every matched counterpart
// concurrently and returns the number of successful deliveries. The caller
// has already durably saved the trip; nothing that happens here can undo it.
func (s *NotifyService) NotifyMatches(ctx context.Context, submitter *models.Profile, trip *models.Trip, matches []models.Match) int {
	if len(matches) == 0 {
		return 0
	}

	text := FormatAlert(submitter, trip)

	var delivered int64
	var wg sync.WaitGroup
	for _, match := range matches {
		wg.Add(1)
		go func(recipientID int64) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
			defer cancel()

			if err := s.sender.Send(sendCtx, recipientID, text); err != nil {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"recipient": recipientID,
					"submitter": submitter.UserID,
					"channel":   s.sender.Name(),
				}).Warn("Match alert delivery failed")
				return
			}
			atomic.AddInt64(&delivered, 1)
		}(match.Profile.UserID)
	}
	wg.Wait()

	s.logger.WithFields(logrus.Fields{
		"submitter": submitter.UserID,
		"matched":   len(matches),
		"delivered": delivered,
	}).Info("Match alerts fanned out")

	return int(delivered)
}

// Broadcast delivers a message to each user ID, returning the delivered
// count. Same isolation rules as match alerts.
func (s *NotifyService) Broadcast(ctx context.Context, userIDs []int64, text string) int {
	var delivered int64
	var wg sync.WaitGroup
	for _, id := range userIDs {
		wg.Add(1)
		go func(recipientID int64) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
			defer cancel()

			if err := s.sender.Send(sendCtx, recipientID, text); err != nil {
				s.logger.WithError(err).WithField("recipient", recipientID).
					Warn("Broadcast delivery failed")
				return
			}
			atomic.AddInt64(&delivered, 1)
		}(id)
	}
	wg.Wait()

	return int(delivered)
}

// RelayLocation forwards a live point to a single recipient, best effort.
func (s *NotifyService) RelayLocation(ctx context.Context, recipientID int64, senderName string, latitude, longitude float64) error {
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	intro := fmt.Sprintf("📍 %s joylashuvini yubordi:", senderName)
	if err := s.sender.Send(sendCtx, recipientID, intro); err != nil {
		return fmt.Errorf("failed to relay location intro: %w", err)
	}
	if err := s.sender.SendLocation(sendCtx, recipientID, latitude, longitude); err != nil {
		return fmt.Errorf("failed to relay location: %w", err)
	}
	return nil
}

// FormatAlert renders the match alert for the submitter's trip. The driver
// variant carries vehicle and price details; the passenger variant does not.
func FormatAlert(submitter *models.Profile, trip *models.Trip) string {
	var b strings.Builder

	if submitter.IsDriver() {
		b.WriteString("🚕 Yangi haydovchi topildi!\n\n")
	} else {
		b.WriteString("🙋 Yangi yo'lovchi topildi!\n\n")
	}

	b.WriteString(fmt.Sprintf("Yo'nalish: %s, %s → %s, %s\n",
		trip.FromRegion, trip.FromDistrict, trip.ToRegion, trip.ToDistrict))
	if trip.Area != nil && *trip.Area != "" {
		b.WriteString(fmt.Sprintf("Manzil: %s\n", *trip.Area))
	}

	b.WriteString(fmt.Sprintf("Ismi: %s\n", submitter.FullName))
	b.WriteString(fmt.Sprintf("Telefon: %s\n", submitter.Phone))

	if submitter.IsDriver() {
		if submitter.CarModel != nil && submitter.CarColor != nil && submitter.CarPlate != nil {
			b.WriteString(fmt.Sprintf("Mashina: %s, %s, %s\n",
				*submitter.CarModel, *submitter.CarColor, *submitter.CarPlate))
		}
		if trip.Price != nil {
			b.WriteString(fmt.Sprintf("Narx: %d so'm\n", *trip.Price))
		} else {
			b.WriteString("Narx: kelishiladi\n")
		}
	}

	if trip.Seats.IsFreight() {
		b.WriteString("Yuk: pochta\n")
	} else {
		b.WriteString(fmt.Sprintf("Joylar: %s\n", trip.Seats))
	}

	if trip.WhenMode == models.WhenPlanned && trip.WhenDate != nil && trip.WhenTime != nil {
		b.WriteString(fmt.Sprintf("Vaqt: %s %s\n", *trip.WhenDate, *trip.WhenTime))
	} else {
		b.WriteString("Vaqt: hozir\n")
	}

	return b.String()
}
