// Package notify delivers reservation lifecycle events to passengers.
// All implementations satisfy service.Notifier and are invoked strictly after
// the reservation transaction commits; a delivery failure is the caller's to
// log and never rolls anything back.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
)

// LogNotifier writes events to the structured log instead of delivering them
// anywhere. It is the default sink for local development and tests.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier constructs a LogNotifier writing to log.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

// Notify logs the event at info level.
func (n *LogNotifier) Notify(ctx context.Context, event domain.Event) error {
	n.log.InfoContext(ctx, "reservation event",
		"kind", event.Kind,
		"request_id", event.RequestID,
		"ride_id", event.RideID,
		"passenger", event.Passenger.Email,
	)
	return nil
}

// Subject returns the email subject line for an event.
func Subject(event domain.Event) string {
	switch event.Kind {
	case domain.EventApproved:
		return "Your seat is confirmed!"
	case domain.EventRejected:
		return "Update on your ride request"
	}
	return "Travel Buddy ride update"
}

// Body returns the plain-text email body for an event.
func Body(event domain.Event) string {
	route := fmt.Sprintf("%s → %s on %s",
		event.Ride.Origin, event.Ride.Destination, event.Ride.DepartsAt.Format("Mon, 02 Jan 2006 15:04"))

	switch event.Kind {
	case domain.EventApproved:
		return fmt.Sprintf("Good news! The host approved your request to join the ride %s.\n", route)
	case domain.EventRejected:
		return fmt.Sprintf("Unfortunately the host declined your request to join the ride %s.\nYou can request another seat any time.\n", route)
	}
	return fmt.Sprintf("Your request for the ride %s was updated to %q.\n", route, event.Kind)
}
