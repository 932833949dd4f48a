package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
	"github.com/Dibek1910/Travel-Buddy/internal/repo"
)

// RideService implements the ride ledger: creating, reading, updating, and
// searching rides. The confirmed-seat count is never stored on the ride; any
// operation that depends on it recounts approved requests at its own snapshot.
type RideService struct {
	store Store
}

// NewRideService constructs a RideService backed by the provided store.
func NewRideService(store Store) *RideService {
	return &RideService{store: store}
}

// Create validates and persists a new ride hosted by the caller.
// Returns domain.ErrValidation if required fields are missing or capacity is
// outside [1, 50].
func (s *RideService) Create(ctx context.Context, caller domain.Identity, ride domain.Ride) (domain.Ride, error) {
	ride.HostID = caller.ID
	if err := validateRide(ride); err != nil {
		return domain.Ride{}, err
	}

	result, err := s.store.Repos().Rides.Create(ctx, ride)
	if err != nil {
		return domain.Ride{}, fmt.Errorf("service.RideService.Create: %w", err)
	}
	return result, nil
}

// GetDetail returns a ride assembled with its host profile and all requests
// with their passengers. Cross-entity reads are composed here explicitly.
// Returns domain.ErrNotFound if the ride does not exist.
func (s *RideService) GetDetail(ctx context.Context, rideID uuid.UUID) (domain.RideDetail, error) {
	r := s.store.Repos()

	ride, err := r.Rides.GetByID(ctx, rideID)
	if err != nil {
		return domain.RideDetail{}, fmt.Errorf("service.RideService.GetDetail: %w", err)
	}
	host, err := r.Users.GetByID(ctx, ride.HostID)
	if err != nil {
		return domain.RideDetail{}, fmt.Errorf("service.RideService.GetDetail: host: %w", err)
	}
	requests, err := r.Requests.ListDetailsByRide(ctx, rideID)
	if err != nil {
		return domain.RideDetail{}, fmt.Errorf("service.RideService.GetDetail: requests: %w", err)
	}
	if requests == nil {
		requests = []domain.RequestDetail{}
	}

	return domain.RideDetail{Ride: ride, Host: host.Profile(), Requests: requests}, nil
}

// Update applies a partial patch to a ride's mutable fields.
// Only the hosting user may update a ride (domain.ErrForbidden otherwise).
// Shrinking capacity below the number of already-approved passengers fails
// with domain.ErrCapacityExceeded; the check and the write share one
// transaction so a concurrent approval cannot slip between them.
func (s *RideService) Update(ctx context.Context, caller domain.Identity, rideID uuid.UUID, patch domain.RidePatch) (domain.Ride, error) {
	var updated domain.Ride

	err := s.store.InTx(ctx, func(r repo.Repos) error {
		ride, err := r.Rides.GetByID(ctx, rideID)
		if err != nil {
			return err
		}
		if ride.HostID != caller.ID {
			return fmt.Errorf("only the host can update a ride: %w", domain.ErrForbidden)
		}

		applyPatch(&ride, patch)
		if err := validateRide(ride); err != nil {
			return err
		}

		if patch.Capacity != nil {
			approved, err := r.Requests.CountApproved(ctx, rideID)
			if err != nil {
				return err
			}
			if approved > ride.Capacity {
				return fmt.Errorf("capacity %d is below %d approved passengers: %w",
					ride.Capacity, approved, domain.ErrCapacityExceeded)
			}
		}

		updated, err = r.Rides.Update(ctx, ride)
		return err
	})
	if err != nil {
		return domain.Ride{}, fmt.Errorf("service.RideService.Update: %w", err)
	}
	return updated, nil
}

// Search returns rides matching the filter, excluding rides hosted by the
// caller and rides departing before today. Always returns a non-nil slice.
func (s *RideService) Search(ctx context.Context, caller domain.Identity, filter domain.RideFilter, p domain.PaginationParams) ([]domain.RideSummary, error) {
	filter.Origin = strings.TrimSpace(filter.Origin)
	filter.Destination = strings.TrimSpace(filter.Destination)

	results, err := s.store.Repos().Rides.Search(ctx, filter, caller.ID, p)
	if err != nil {
		return nil, fmt.Errorf("service.RideService.Search: %w", err)
	}
	if results == nil {
		results = []domain.RideSummary{}
	}
	return results, nil
}

// ListMine returns all rides hosted by the caller, newest first, each
// assembled with its requests and their passengers.
func (s *RideService) ListMine(ctx context.Context, caller domain.Identity) ([]domain.RideDetail, error) {
	r := s.store.Repos()

	host, err := r.Users.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("service.RideService.ListMine: host: %w", err)
	}
	rides, err := r.Rides.ListByHost(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("service.RideService.ListMine: %w", err)
	}

	details := make([]domain.RideDetail, 0, len(rides))
	for _, ride := range rides {
		requests, err := r.Requests.ListDetailsByRide(ctx, ride.ID)
		if err != nil {
			return nil, fmt.Errorf("service.RideService.ListMine: requests: %w", err)
		}
		if requests == nil {
			requests = []domain.RequestDetail{}
		}
		details = append(details, domain.RideDetail{Ride: ride, Host: host.Profile(), Requests: requests})
	}
	return details, nil
}

// History returns the caller's ride history: rides they were approved on as a
// passenger and rides they hosted.
func (s *RideService) History(ctx context.Context, caller domain.Identity) (domain.RideHistory, error) {
	r := s.store.Repos()

	approved := domain.StatusApproved
	tickets, err := r.Requests.ListTicketsByPassenger(ctx, caller.ID, &approved)
	if err != nil {
		return domain.RideHistory{}, fmt.Errorf("service.RideService.History: %w", err)
	}
	hosted, err := r.Rides.ListByHost(ctx, caller.ID)
	if err != nil {
		return domain.RideHistory{}, fmt.Errorf("service.RideService.History: hosted: %w", err)
	}

	history := domain.RideHistory{
		AsPassenger: make([]domain.RideSummary, 0, len(tickets)),
		AsHost:      hosted,
	}
	for _, t := range tickets {
		history.AsPassenger = append(history.AsPassenger, domain.RideSummary{Ride: t.Ride, Host: t.Host})
	}
	if history.AsHost == nil {
		history.AsHost = []domain.Ride{}
	}
	return history, nil
}

// validateRide enforces business rules common to both Create and Update.
func validateRide(ride domain.Ride) error {
	if strings.TrimSpace(ride.Origin) == "" {
		return fmt.Errorf("%w: origin is required", domain.ErrValidation)
	}
	if strings.TrimSpace(ride.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if ride.DepartsAt.IsZero() {
		return fmt.Errorf("%w: departure time is required", domain.ErrValidation)
	}
	if ride.Capacity < domain.MinCapacity || ride.Capacity > domain.MaxCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			domain.ErrValidation, domain.MinCapacity, domain.MaxCapacity)
	}
	if ride.Price != nil && *ride.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return nil
}

// applyPatch copies the set fields of patch onto ride.
func applyPatch(ride *domain.Ride, patch domain.RidePatch) {
	if patch.Origin != nil {
		ride.Origin = *patch.Origin
	}
	if patch.Destination != nil {
		ride.Destination = *patch.Destination
	}
	if patch.DepartsAt != nil {
		ride.DepartsAt = *patch.DepartsAt
	}
	if patch.Capacity != nil {
		ride.Capacity = *patch.Capacity
	}
	if patch.Price != nil {
		ride.Price = patch.Price
	}
	if patch.Description != nil {
		ride.Description = *patch.Description
	}
}
