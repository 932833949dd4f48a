package domain

import (
	"time"

	"github.com/google/uuid"
)

// Capacity bounds for a ride, matching the database CHECK constraint.
const (
	MinCapacity = 1
	MaxCapacity = 50
)

// Ride is a host-offered trip with a fixed seat capacity.
// The confirmed-seat count is never stored on the ride; it is always derived
// by counting approved requests inside the transaction that needs it.
type Ride struct {
	ID          uuid.UUID `json:"id"`
	HostID      uuid.UUID `json:"host_id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DepartsAt   time.Time `json:"departs_at"`
	Capacity    int       `json:"capacity"`
	Price       *float64  `json:"price,omitempty"` // nil when the host did not set one
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RidePatch is a partial update to a ride's mutable fields.
// Nil pointers leave the corresponding field untouched.
type RidePatch struct {
	Origin      *string
	Destination *string
	DepartsAt   *time.Time
	Capacity    *int
	Price       *float64
	Description *string
}

// RideFilter narrows a ride search. Empty strings and a nil date mean "no
// filter". Searches are always restricted to rides departing today or later
// and never include rides hosted by the searching user.
type RideFilter struct {
	Origin      string
	Destination string
	// Date restricts results to rides departing on this calendar day.
	Date *time.Time
}

// RideDetail is a ride assembled with its host profile and requests.
// Cross-entity reads are composed explicitly by the service layer; there is
// no lazy traversal between entities.
type RideDetail struct {
	Ride     Ride            `json:"ride"`
	Host     Profile         `json:"host"`
	Requests []RequestDetail `json:"requests"`
}

// RideSummary is the host-facing ride projection embedded in events and in
// passenger request listings.
type RideSummary struct {
	Ride Ride    `json:"ride"`
	Host Profile `json:"host"`
}

// RideHistory groups the rides a user participated in by role.
type RideHistory struct {
	AsPassenger []RideSummary `json:"asPassenger"`
	AsHost      []Ride        `json:"asHost"`
}
