package service_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
	"github.com/Dibek1910/Travel-Buddy/internal/repo"
	"github.com/Dibek1910/Travel-Buddy/internal/service"
)

// memStore is an in-memory service.Store for exercising multi-step lifecycle
// scenarios without a database. It performs no real transaction isolation and
// is not safe for concurrent use; concurrency is covered by the store
// integration tests.
type memStore struct {
	users    map[uuid.UUID]domain.User
	rides    map[uuid.UUID]domain.Ride
	requests map[uuid.UUID]domain.Request
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]domain.User),
		rides:    make(map[uuid.UUID]domain.Ride),
		requests: make(map[uuid.UUID]domain.Request),
	}
}

func (s *memStore) Repos() repo.Repos {
	return repo.Repos{
		Users:    memUsers{s},
		Rides:    memRides{s},
		Requests: memRequests{s},
	}
}

func (s *memStore) InTx(_ context.Context, fn func(r repo.Repos) error) error {
	return fn(s.Repos())
}

var _ service.Store = (*memStore)(nil)

func (s *memStore) addUser(email string) domain.Identity {
	u := domain.User{ID: uuid.New(), FirstName: "Test", LastName: "User", Email: email}
	s.users[u.ID] = u
	return domain.Identity{ID: u.ID, Email: u.Email}
}

type memUsers struct{ s *memStore }

func (m memUsers) Create(_ context.Context, user domain.User) (domain.User, error) {
	user.ID = uuid.New()
	m.s.users[user.ID] = user
	return user, nil
}

func (m memUsers) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	u, ok := m.s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range m.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m memUsers) Update(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := m.s.users[user.ID]; !ok {
		return domain.User{}, domain.ErrNotFound
	}
	m.s.users[user.ID] = user
	return user, nil
}

type memRides struct{ s *memStore }

func (m memRides) Create(_ context.Context, ride domain.Ride) (domain.Ride, error) {
	ride.ID = uuid.New()
	ride.CreatedAt = time.Now()
	m.s.rides[ride.ID] = ride
	return ride, nil
}

func (m memRides) GetByID(_ context.Context, id uuid.UUID) (domain.Ride, error) {
	r, ok := m.s.rides[id]
	if !ok {
		return domain.Ride{}, domain.ErrNotFound
	}
	return r, nil
}

func (m memRides) Update(_ context.Context, ride domain.Ride) (domain.Ride, error) {
	if _, ok := m.s.rides[ride.ID]; !ok {
		return domain.Ride{}, domain.ErrNotFound
	}
	m.s.rides[ride.ID] = ride
	return ride, nil
}

func (m memRides) Search(_ context.Context, filter domain.RideFilter, excludeHost uuid.UUID, _ domain.PaginationParams) ([]domain.RideSummary, error) {
	var out []domain.RideSummary
	for _, r := range m.s.rides {
		if r.HostID == excludeHost {
			continue
		}
		if filter.Origin != "" && r.Origin != filter.Origin {
			continue
		}
		out = append(out, domain.RideSummary{Ride: r, Host: m.s.users[r.HostID].Profile()})
	}
	return out, nil
}

func (m memRides) ListByHost(_ context.Context, hostID uuid.UUID) ([]domain.Ride, error) {
	var out []domain.Ride
	for _, r := range m.s.rides {
		if r.HostID == hostID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memRequests struct{ s *memStore }

func (m memRequests) Create(_ context.Context, req domain.Request) (domain.Request, error) {
	for _, existing := range m.s.requests {
		if existing.RideID == req.RideID && existing.PassengerID == req.PassengerID && existing.Status.Active() {
			return domain.Request{}, domain.ErrConflict
		}
	}
	req.ID = uuid.New()
	req.Status = domain.StatusPending
	req.CreatedAt = time.Now()
	m.s.requests[req.ID] = req
	return req, nil
}

func (m memRequests) GetByID(_ context.Context, id uuid.UUID) (domain.Request, error) {
	r, ok := m.s.requests[id]
	if !ok {
		return domain.Request{}, domain.ErrNotFound
	}
	return r, nil
}

func (m memRequests) GetByRideAndPassenger(_ context.Context, rideID, passengerID uuid.UUID) (domain.Request, error) {
	for _, r := range m.s.requests {
		if r.RideID == rideID && r.PassengerID == passengerID {
			return r, nil
		}
	}
	return domain.Request{}, domain.ErrNotFound
}

func (m memRequests) UpdateStatus(_ context.Context, id uuid.UUID, status domain.RequestStatus) (domain.Request, error) {
	r, ok := m.s.requests[id]
	if !ok {
		return domain.Request{}, domain.ErrNotFound
	}
	r.Status = status
	m.s.requests[id] = r
	return r, nil
}

func (m memRequests) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.s.requests[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.s.requests, id)
	return nil
}

func (m memRequests) CountApproved(_ context.Context, rideID uuid.UUID) (int, error) {
	count := 0
	for _, r := range m.s.requests {
		if r.RideID == rideID && r.Status == domain.StatusApproved {
			count++
		}
	}
	return count, nil
}

func (m memRequests) ListDetailsByRide(_ context.Context, rideID uuid.UUID) ([]domain.RequestDetail, error) {
	var out []domain.RequestDetail
	for _, r := range m.s.requests {
		if r.RideID == rideID {
			out = append(out, domain.RequestDetail{Request: r, Passenger: m.s.users[r.PassengerID].Profile()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Request.CreatedAt.Before(out[j].Request.CreatedAt) })
	return out, nil
}

func (m memRequests) ListTicketsByPassenger(_ context.Context, passengerID uuid.UUID, status *domain.RequestStatus) ([]domain.RequestTicket, error) {
	var out []domain.RequestTicket
	for _, r := range m.s.requests {
		if r.PassengerID != passengerID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		ride := m.s.rides[r.RideID]
		out = append(out, domain.RequestTicket{Request: r, Ride: ride, Host: m.s.users[ride.HostID].Profile()})
	}
	return out, nil
}

// TestReservationLifecycle walks one ride through a full reservation story:
// three passengers compete for two seats, the loser is rejected, re-applies,
// and finally withdraws, while the host tries to shrink the ride under its
// approved passengers.
func TestReservationLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	host := store.addUser("host@example.com")
	alice := store.addUser("alice@example.com")
	bob := store.addUser("bob@example.com")
	carol := store.addUser("carol@example.com")

	rides := service.NewRideService(store)
	reservations := service.NewReservationService(store, nil, nil)

	ride, err := rides.Create(ctx, host, domain.Ride{
		Origin:      "Austin",
		Destination: "Dallas",
		DepartsAt:   time.Now().Add(72 * time.Hour),
		Capacity:    2,
	})
	require.NoError(t, err)

	// All three passengers file requests; every one is pending.
	aliceReq, err := reservations.Create(ctx, alice, ride.ID)
	require.NoError(t, err)
	bobReq, err := reservations.Create(ctx, bob, ride.ID)
	require.NoError(t, err)
	carolReq, err := reservations.Create(ctx, carol, ride.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, carolReq.Request.Status)

	// The host fills both seats.
	_, err = reservations.Approve(ctx, host, aliceReq.Request.ID)
	require.NoError(t, err)
	_, err = reservations.Approve(ctx, host, bobReq.Request.ID)
	require.NoError(t, err)

	// The third approval must fail: the ride is full. Carol stays pending.
	_, err = reservations.Approve(ctx, host, carolReq.Request.ID)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	current, err := store.Repos().Requests.GetByID(ctx, carolReq.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, current.Status)

	// Rejecting works even on a full ride; a second reject is invalid.
	_, err = reservations.Reject(ctx, host, carolReq.Request.ID)
	require.NoError(t, err)
	_, err = reservations.Reject(ctx, host, carolReq.Request.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Carol may re-apply after rejection; the old record is replaced.
	carolRetry, err := reservations.Create(ctx, carol, ride.ID)
	require.NoError(t, err)
	assert.NotEqual(t, carolReq.Request.ID, carolRetry.Request.ID)
	assert.Equal(t, domain.StatusPending, carolRetry.Request.Status)

	// ...and may change her mind while still pending.
	require.NoError(t, reservations.Withdraw(ctx, carol, carolRetry.Request.ID))

	// Bob holds an approved seat, so he cannot withdraw it himself.
	err = reservations.Withdraw(ctx, bob, bobReq.Request.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// The host cannot shrink the ride under its two approved passengers.
	one := 1
	_, err = rides.Update(ctx, host, ride.ID, domain.RidePatch{Capacity: &one})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	// Shrinking to exactly the approved count is allowed.
	two := 2
	updated, err := rides.Update(ctx, host, ride.ID, domain.RidePatch{Capacity: &two})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Capacity)

	// The ride detail shows both approved passengers.
	detail, err := rides.GetDetail(ctx, ride.ID)
	require.NoError(t, err)
	approved := 0
	for _, d := range detail.Requests {
		if d.Request.Status == domain.StatusApproved {
			approved++
		}
	}
	assert.Equal(t, 2, approved)
}
