package push

import "context"

// Sender delivers notifications to a user's chat. Implementations must be
// safe for concurrent use; the notifier fans out one goroutine per recipient.
type Sender interface {
	// Send delivers a text message to the given chat identity.
	Send(ctx context.Context, userID int64, text string) error

	// SendLocation delivers a geographic point to the given chat identity.
	SendLocation(ctx context.Context, userID int64, latitude, longitude float64) error

	// Name identifies the delivery channel for logs.
	Name() string
}
