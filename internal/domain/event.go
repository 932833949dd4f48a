package domain

import "github.com/google/uuid"

// EventKind is the type of reservation lifecycle event.
// Only resolved transitions produce events; creating or withdrawing a request
// notifies nobody.
type EventKind string

const (
	EventApproved EventKind = "approved"
	EventRejected EventKind = "rejected"
)

// Event is the lifecycle notification handed to the notification sink after a
// reservation transaction commits. Delivery is at-most-once-attempted and
// strictly post-commit: a sink failure never affects the committed transition.
type Event struct {
	Kind      EventKind `json:"kind"`
	RequestID uuid.UUID `json:"request_id"`
	RideID    uuid.UUID `json:"ride_id"`
	Passenger Identity  `json:"passenger"`
	Host      Identity  `json:"host"`
	Ride      Ride      `json:"ride"`
}
