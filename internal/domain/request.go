package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the lifecycle state of a join request.
// A request is created pending and resolved to approved or rejected by the
// ride's host. There is no transition out of approved or rejected back to
// pending; a rejected request can only be replaced by a brand-new pending one.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Active reports whether the status counts against the one-active-request
// invariant: at most one pending or approved request may exist per
// (ride, passenger) pair at any committed state.
func (s RequestStatus) Active() bool {
	return s == StatusPending || s == StatusApproved
}

// Request is a passenger's bid to occupy a seat on a ride.
type Request struct {
	ID          uuid.UUID     `json:"id"`
	RideID      uuid.UUID     `json:"ride_id"`
	PassengerID uuid.UUID     `json:"passenger_id"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// RequestDetail is a request assembled with its passenger's profile, for
// host-facing listings.
type RequestDetail struct {
	Request   Request `json:"request"`
	Passenger Profile `json:"passenger"`
}

// RequestTicket is a request assembled with its ride and the ride's host,
// for passenger-facing listings.
type RequestTicket struct {
	Request Request `json:"request"`
	Ride    Ride    `json:"ride"`
	Host    Profile `json:"host"`
}
