package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
	"github.com/Dibek1910/Travel-Buddy/internal/repo"
	"github.com/Dibek1910/Travel-Buddy/internal/service"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field — set only the ones your test needs; an
// unset field panics with a nil dereference, which is exactly what you want
// when a test exercises a call path it did not expect.

type mockUserRepo struct {
	create     func(ctx context.Context, user domain.User) (domain.User, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail func(ctx context.Context, email string) (domain.User, error)
	update     func(ctx context.Context, user domain.User) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	return m.update(ctx, user)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockRideRepo struct {
	create     func(ctx context.Context, ride domain.Ride) (domain.Ride, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Ride, error)
	update     func(ctx context.Context, ride domain.Ride) (domain.Ride, error)
	search     func(ctx context.Context, filter domain.RideFilter, excludeHost uuid.UUID, p domain.PaginationParams) ([]domain.RideSummary, error)
	listByHost func(ctx context.Context, hostID uuid.UUID) ([]domain.Ride, error)
}

func (m *mockRideRepo) Create(ctx context.Context, ride domain.Ride) (domain.Ride, error) {
	return m.create(ctx, ride)
}
func (m *mockRideRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Ride, error) {
	return m.getByID(ctx, id)
}
func (m *mockRideRepo) Update(ctx context.Context, ride domain.Ride) (domain.Ride, error) {
	return m.update(ctx, ride)
}
func (m *mockRideRepo) Search(ctx context.Context, filter domain.RideFilter, excludeHost uuid.UUID, p domain.PaginationParams) ([]domain.RideSummary, error) {
	return m.search(ctx, filter, excludeHost, p)
}
func (m *mockRideRepo) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Ride, error) {
	return m.listByHost(ctx, hostID)
}

var _ repo.RideRepo = (*mockRideRepo)(nil)

type mockRequestRepo struct {
	create                 func(ctx context.Context, req domain.Request) (domain.Request, error)
	getByID                func(ctx context.Context, id uuid.UUID) (domain.Request, error)
	getByRideAndPassenger  func(ctx context.Context, rideID, passengerID uuid.UUID) (domain.Request, error)
	updateStatus           func(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (domain.Request, error)
	deleteByID             func(ctx context.Context, id uuid.UUID) error
	countApproved          func(ctx context.Context, rideID uuid.UUID) (int, error)
	listDetailsByRide      func(ctx context.Context, rideID uuid.UUID) ([]domain.RequestDetail, error)
	listTicketsByPassenger func(ctx context.Context, passengerID uuid.UUID, status *domain.RequestStatus) ([]domain.RequestTicket, error)
}

func (m *mockRequestRepo) Create(ctx context.Context, req domain.Request) (domain.Request, error) {
	return m.create(ctx, req)
}
func (m *mockRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error) {
	return m.getByID(ctx, id)
}
func (m *mockRequestRepo) GetByRideAndPassenger(ctx context.Context, rideID, passengerID uuid.UUID) (domain.Request, error) {
	return m.getByRideAndPassenger(ctx, rideID, passengerID)
}
func (m *mockRequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (domain.Request, error) {
	return m.updateStatus(ctx, id, status)
}
func (m *mockRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteByID(ctx, id)
}
func (m *mockRequestRepo) CountApproved(ctx context.Context, rideID uuid.UUID) (int, error) {
	return m.countApproved(ctx, rideID)
}
func (m *mockRequestRepo) ListDetailsByRide(ctx context.Context, rideID uuid.UUID) ([]domain.RequestDetail, error) {
	return m.listDetailsByRide(ctx, rideID)
}
func (m *mockRequestRepo) ListTicketsByPassenger(ctx context.Context, passengerID uuid.UUID, status *domain.RequestStatus) ([]domain.RequestTicket, error) {
	return m.listTicketsByPassenger(ctx, passengerID, status)
}

var _ repo.RequestRepo = (*mockRequestRepo)(nil)

// fakeStore implements service.Store over a fixed set of repos.
// InTx simply invokes fn with the same repos — unit tests have no real
// transaction; concurrency behaviour is covered by the store integration test.
type fakeStore struct {
	repos repo.Repos
}

func (f *fakeStore) Repos() repo.Repos { return f.repos }

func (f *fakeStore) InTx(_ context.Context, fn func(r repo.Repos) error) error {
	return fn(f.repos)
}

var _ service.Store = (*fakeStore)(nil)

// captureNotifier records delivered events on a buffered channel so tests can
// assert on post-commit notifications without sleeping.
type captureNotifier struct {
	events chan domain.Event
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{events: make(chan domain.Event, 4)}
}

func (c *captureNotifier) Notify(_ context.Context, event domain.Event) error {
	c.events <- event
	return nil
}

var _ service.Notifier = (*captureNotifier)(nil)
