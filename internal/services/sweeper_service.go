package services

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/safartaxi/trip-match-backend/internal/database"
)

// SweeperService removes stale trips in the background. A trip is stale when
// its created_at is older than the staleness window; re-saving a trip
// restarts the window. A failed cycle is skipped and retried on the next
// tick, never crashing the process.
type SweeperService struct {
	tripStore  database.TripStore
	logger     *logrus.Logger
	stopCh     chan struct{}
	interval   time.Duration
	staleAfter time.Duration
	now        func() time.Time
}

// NewSweeperService creates a new sweeper service
func NewSweeperService(
	tripStore database.TripStore,
	logger *logrus.Logger,
	interval time.Duration,
	staleAfter time.Duration,
) *SweeperService {
	return &SweeperService{
		tripStore:  tripStore,
		logger:     logger,
		stopCh:     make(chan struct{}),
		interval:   interval,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Start begins the background sweep job
func (s *SweeperService) Start() {
	s.logger.WithFields(logrus.Fields{
		"interval":    s.interval.String(),
		"stale_after": s.staleAfter.String(),
	}).Info("Starting trip sweeper")
	go s.run()
}

// Stop stops the background sweep job
func (s *SweeperService) Stop() {
	s.logger.Info("Stopping trip sweeper")
	close(s.stopCh)
}

func (s *SweeperService) run() {
	// Run immediately on start
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			s.logger.Info("Trip sweeper stopped")
			return
		}
	}
}

func (s *SweeperService) sweep() {
	cutoff := s.now().Add(-s.staleAfter)

	removed, err := s.tripStore.DeleteOlderThan(cutoff)
	if err != nil {
		s.logger.WithError(err).Error("Sweep cycle failed, will retry next tick")
		return
	}

	if removed > 0 {
		s.logger.WithFields(logrus.Fields{
			"removed": removed,
			"cutoff":  cutoff.Format(time.RFC3339),
		}).Info("Removed stale trips")
	}
}

// RunOnce runs a single sweep cycle (useful for testing or manual trigger)
func (s *SweeperService) RunOnce() {
	s.sweep()
}
