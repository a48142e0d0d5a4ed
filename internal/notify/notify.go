// Package notify sends desktop notifications when a watched release is
// regenerated. Notifications are opt-in and never sent in CI or when no
// terminal is attached.
package notify

import "time"

// NotificationType represents the type of notification event
type NotificationType string

const (
	// TypeSuccess indicates a release was rendered or written
	TypeSuccess NotificationType = "success"
	// TypeFailure indicates a regeneration failed
	TypeFailure NotificationType = "failure"
)

// Config holds the notification preferences of a watch session.
type Config struct {
	// Enabled is the master switch (default: false, opt-in)
	Enabled bool

	// OnError notifies when a regeneration fails (default: true when enabled)
	OnError bool

	// MinDuration suppresses success notifications for regenerations that
	// finish faster than this. Zero always notifies.
	MinDuration time.Duration
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Enabled: false,
		OnError: true,
	}
}

// Notification represents a single notification event to dispatch
type Notification struct {
	Title            string
	Message          string
	NotificationType NotificationType
}

// NewNotification creates a new Notification with the given parameters
func NewNotification(title, message string, notificationType NotificationType) Notification {
	return Notification{
		Title:            title,
		Message:          message,
		NotificationType: notificationType,
	}
}
