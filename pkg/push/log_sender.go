package push

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSender writes notifications to the log instead of a chat network. Used
// in development and wherever no bot token is configured.
type LogSender struct {
	logger *logrus.Logger
}

// NewLogSender creates a log-backed delivery channel
func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message instead of delivering it
func (l *LogSender) Send(_ context.Context, userID int64, text string) error {
	l.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"text":    text,
	}).Info("push message")
	return nil
}

// SendLocation logs the point instead of delivering it
func (l *LogSender) SendLocation(_ context.Context, userID int64, latitude, longitude float64) error {
	l.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"latitude":  latitude,
		"longitude": longitude,
	}).Info("push location")
	return nil
}

// Name identifies the delivery channel
func (l *LogSender) Name() string {
	return "log"
}
