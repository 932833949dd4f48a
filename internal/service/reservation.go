package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
	"github.com/Dibek1910/Travel-Buddy/internal/repo"
)

// Notifier receives lifecycle events after a reservation transaction commits.
// Implementations live in internal/notify; delivery is best-effort and its
// failure never affects a committed transition.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}

// notifyTimeout bounds a single delivery attempt so a stalled sink cannot
// pile up goroutines.
const notifyTimeout = 10 * time.Second

// ReservationService drives a join request through its lifecycle:
//
//	create (pending) → approved | rejected, or withdrawn.
//
// Every mutation runs inside one store transaction spanning the ride and the
// request, so at every committed state the number of approved requests for a
// ride is at most its capacity, and at most one active request exists per
// (ride, passenger) pair. Capacity is recounted inside the transaction that
// approves — the count a passenger saw at request time is never trusted.
type ReservationService struct {
	store    Store
	notifier Notifier
	log      *slog.Logger
}

// NewReservationService constructs a ReservationService.
// notifier may be nil, in which case lifecycle events are dropped.
func NewReservationService(store Store, notifier Notifier, log *slog.Logger) *ReservationService {
	if log == nil {
		log = slog.Default()
	}
	return &ReservationService{store: store, notifier: notifier, log: log}
}

// Create files a pending request by the caller for a seat on rideID.
//
// Guards, all evaluated at the transaction's snapshot:
//   - the ride must exist (domain.ErrNotFound);
//   - the caller must not be the ride's host (domain.ErrConflict);
//   - the ride must not already be full (domain.ErrCapacityExceeded);
//   - no active request may exist for the pair (domain.ErrConflict). A prior
//     rejected request is deleted and replaced by the new pending one in the
//     same transaction, so no intermediate state with zero or two records is
//     ever observable.
func (s *ReservationService) Create(ctx context.Context, caller domain.Identity, rideID uuid.UUID) (domain.RequestTicket, error) {
	var ticket domain.RequestTicket

	err := s.store.InTx(ctx, func(r repo.Repos) error {
		ride, err := r.Rides.GetByID(ctx, rideID)
		if err != nil {
			return err
		}
		if ride.HostID == caller.ID {
			return fmt.Errorf("cannot request to join your own ride: %w", domain.ErrConflict)
		}

		approved, err := r.Requests.CountApproved(ctx, rideID)
		if err != nil {
			return err
		}
		if approved >= ride.Capacity {
			return fmt.Errorf("ride is full: %w", domain.ErrCapacityExceeded)
		}

		existing, err := r.Requests.GetByRideAndPassenger(ctx, rideID, caller.ID)
		switch {
		case err == nil && existing.Status.Active():
			return fmt.Errorf("request to the same ride already exists: %w", domain.ErrConflict)
		case err == nil:
			// A rejected request is replaced: delete and recreate atomically.
			if err := r.Requests.Delete(ctx, existing.ID); err != nil {
				return err
			}
		case !isNotFound(err):
			return err
		}

		created, err := r.Requests.Create(ctx, domain.Request{RideID: rideID, PassengerID: caller.ID})
		if err != nil {
			return err
		}

		host, err := r.Users.GetByID(ctx, ride.HostID)
		if err != nil {
			return err
		}
		ticket = domain.RequestTicket{Request: created, Ride: ride, Host: host.Profile()}
		return nil
	})
	if err != nil {
		return domain.RequestTicket{}, fmt.Errorf("service.ReservationService.Create: %w", err)
	}
	return ticket, nil
}

// Approve transitions a pending request to approved.
//
// Only the ride's host may approve (domain.ErrForbidden); the request must be
// pending (domain.ErrInvalidState). The approved count is recounted at this
// transaction's snapshot and the transition fails with
// domain.ErrCapacityExceeded when the ride is already full — the check at
// create time is not trusted, because seats can be consumed between the two
// operations. The approved event is emitted only after the commit succeeds.
func (s *ReservationService) Approve(ctx context.Context, caller domain.Identity, requestID uuid.UUID) (domain.Request, error) {
	updated, event, err := s.resolve(ctx, caller, requestID, domain.StatusApproved)
	if err != nil {
		return domain.Request{}, fmt.Errorf("service.ReservationService.Approve: %w", err)
	}
	s.emit(event)
	return updated, nil
}

// Reject transitions a pending request to rejected. Same caller and state
// guards as Approve; rejecting never needs a capacity check. The rejected
// event is emitted only after the commit succeeds.
func (s *ReservationService) Reject(ctx context.Context, caller domain.Identity, requestID uuid.UUID) (domain.Request, error) {
	updated, event, err := s.resolve(ctx, caller, requestID, domain.StatusRejected)
	if err != nil {
		return domain.Request{}, fmt.Errorf("service.ReservationService.Reject: %w", err)
	}
	s.emit(event)
	return updated, nil
}

// resolve is the shared host-side transition for Approve and Reject.
func (s *ReservationService) resolve(ctx context.Context, caller domain.Identity, requestID uuid.UUID, to domain.RequestStatus) (domain.Request, domain.Event, error) {
	var (
		updated domain.Request
		event   domain.Event
	)

	err := s.store.InTx(ctx, func(r repo.Repos) error {
		req, err := r.Requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		ride, err := r.Rides.GetByID(ctx, req.RideID)
		if err != nil {
			return err
		}
		if ride.HostID != caller.ID {
			return fmt.Errorf("only the host of the ride can update the status: %w", domain.ErrForbidden)
		}
		if req.Status != domain.StatusPending {
			return fmt.Errorf("request is already %s: %w", req.Status, domain.ErrInvalidState)
		}

		if to == domain.StatusApproved {
			// Recount at this snapshot; the serializable transaction makes
			// the count and the status write one atomic decision.
			approved, err := r.Requests.CountApproved(ctx, ride.ID)
			if err != nil {
				return err
			}
			if approved >= ride.Capacity {
				return fmt.Errorf("ride is full, cannot add more passengers: %w", domain.ErrCapacityExceeded)
			}
		}

		updated, err = r.Requests.UpdateStatus(ctx, requestID, to)
		if err != nil {
			return err
		}

		passenger, err := r.Users.GetByID(ctx, req.PassengerID)
		if err != nil {
			return err
		}
		event = domain.Event{
			Kind:      domain.EventKind(to),
			RequestID: requestID,
			RideID:    ride.ID,
			Passenger: domain.Identity{ID: passenger.ID, Email: passenger.Email},
			Host:      caller,
			Ride:      ride,
		}
		return nil
	})
	if err != nil {
		return domain.Request{}, domain.Event{}, err
	}
	return updated, event, nil
}

// Withdraw deletes the caller's own request.
// Only the requesting passenger may withdraw (domain.ErrForbidden), and only
// while the request is pending or rejected — an approved seat cannot be
// unilaterally given up (domain.ErrInvalidState).
func (s *ReservationService) Withdraw(ctx context.Context, caller domain.Identity, requestID uuid.UUID) error {
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		req, err := r.Requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.PassengerID != caller.ID {
			return fmt.Errorf("you can only cancel your own requests: %w", domain.ErrForbidden)
		}
		if req.Status == domain.StatusApproved {
			return fmt.Errorf("approved requests cannot be withdrawn: %w", domain.ErrInvalidState)
		}
		return r.Requests.Delete(ctx, req.ID)
	})
	if err != nil {
		return fmt.Errorf("service.ReservationService.Withdraw: %w", err)
	}
	return nil
}

// ListForRide returns all requests for a ride with their passengers' profiles.
// Only the ride's host may list them (domain.ErrForbidden).
func (s *ReservationService) ListForRide(ctx context.Context, caller domain.Identity, rideID uuid.UUID) ([]domain.RequestDetail, error) {
	r := s.store.Repos()

	ride, err := r.Rides.GetByID(ctx, rideID)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.ListForRide: %w", err)
	}
	if ride.HostID != caller.ID {
		return nil, fmt.Errorf("service.ReservationService.ListForRide: only the host can view requests: %w", domain.ErrForbidden)
	}

	details, err := r.Requests.ListDetailsByRide(ctx, rideID)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.ListForRide: %w", err)
	}
	if details == nil {
		details = []domain.RequestDetail{}
	}
	return details, nil
}

// ListMine returns all requests made by the caller, with ride and host
// summaries, newest first. Always returns a non-nil slice.
func (s *ReservationService) ListMine(ctx context.Context, caller domain.Identity) ([]domain.RequestTicket, error) {
	tickets, err := s.store.Repos().Requests.ListTicketsByPassenger(ctx, caller.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.ListMine: %w", err)
	}
	if tickets == nil {
		tickets = []domain.RequestTicket{}
	}
	return tickets, nil
}

// emit hands a committed lifecycle event to the notifier without blocking the
// caller. Delivery failures are logged and otherwise ignored.
func (s *ReservationService) emit(event domain.Event) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, event); err != nil {
			s.log.Error("notification delivery failed",
				"kind", event.Kind,
				"request_id", event.RequestID,
				"ride_id", event.RideID,
				"error", err,
			)
		}
	}()
}

// isNotFound reports whether err wraps domain.ErrNotFound.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
