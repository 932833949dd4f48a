package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
	"github.com/Dibek1910/Travel-Buddy/internal/handler"
	"github.com/Dibek1910/Travel-Buddy/internal/middleware"
	"github.com/Dibek1910/Travel-Buddy/internal/service"
)

// Hand-written doubles for the servicer interfaces the handlers consume.
// Function fields — set only what the test needs.

type mockAuthServicer struct {
	register func(ctx context.Context, in service.RegisterInput) (domain.Profile, error)
	login    func(ctx context.Context, email, password string) (string, domain.Profile, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, in service.RegisterInput) (domain.Profile, error) {
	return m.register(ctx, in)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (string, domain.Profile, error) {
	return m.login(ctx, email, password)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

type mockUserServicer struct {
	profile       func(ctx context.Context, caller domain.Identity) (domain.Profile, error)
	updateProfile func(ctx context.Context, caller domain.Identity, patch service.ProfilePatch) (domain.Profile, error)
}

func (m *mockUserServicer) Profile(ctx context.Context, caller domain.Identity) (domain.Profile, error) {
	return m.profile(ctx, caller)
}
func (m *mockUserServicer) UpdateProfile(ctx context.Context, caller domain.Identity, patch service.ProfilePatch) (domain.Profile, error) {
	return m.updateProfile(ctx, caller, patch)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockRideServicer struct {
	create    func(ctx context.Context, caller domain.Identity, ride domain.Ride) (domain.Ride, error)
	getDetail func(ctx context.Context, rideID uuid.UUID) (domain.RideDetail, error)
	update    func(ctx context.Context, caller domain.Identity, rideID uuid.UUID, patch domain.RidePatch) (domain.Ride, error)
	search    func(ctx context.Context, caller domain.Identity, filter domain.RideFilter, p domain.PaginationParams) ([]domain.RideSummary, error)
	listMine  func(ctx context.Context, caller domain.Identity) ([]domain.RideDetail, error)
	history   func(ctx context.Context, caller domain.Identity) (domain.RideHistory, error)
}

func (m *mockRideServicer) Create(ctx context.Context, caller domain.Identity, ride domain.Ride) (domain.Ride, error) {
	return m.create(ctx, caller, ride)
}
func (m *mockRideServicer) GetDetail(ctx context.Context, rideID uuid.UUID) (domain.RideDetail, error) {
	return m.getDetail(ctx, rideID)
}
func (m *mockRideServicer) Update(ctx context.Context, caller domain.Identity, rideID uuid.UUID, patch domain.RidePatch) (domain.Ride, error) {
	return m.update(ctx, caller, rideID, patch)
}
func (m *mockRideServicer) Search(ctx context.Context, caller domain.Identity, filter domain.RideFilter, p domain.PaginationParams) ([]domain.RideSummary, error) {
	return m.search(ctx, caller, filter, p)
}
func (m *mockRideServicer) ListMine(ctx context.Context, caller domain.Identity) ([]domain.RideDetail, error) {
	return m.listMine(ctx, caller)
}
func (m *mockRideServicer) History(ctx context.Context, caller domain.Identity) (domain.RideHistory, error) {
	return m.history(ctx, caller)
}

var _ handler.RideServicer = (*mockRideServicer)(nil)

type mockReservationServicer struct {
	create      func(ctx context.Context, caller domain.Identity, rideID uuid.UUID) (domain.RequestTicket, error)
	approve     func(ctx context.Context, caller domain.Identity, requestID uuid.UUID) (domain.Request, error)
	reject      func(ctx context.Context, caller domain.Identity, requestID uuid.UUID) (domain.Request, error)
	withdraw    func(ctx context.Context, caller domain.Identity, requestID uuid.UUID) error
	listForRide func(ctx context.Context, caller domain.Identity, rideID uuid.UUID) ([]domain.RequestDetail, error)
	listMine    func(ctx context.Context, caller domain.Identity) ([]domain.RequestTicket, error)
}

func (m *mockReservationServicer) Create(ctx context.Context, caller domain.Identity, rideID uuid.UUID) (domain.RequestTicket, error) {
	return m.create(ctx, caller, rideID)
}
func (m *mockReservationServicer) Approve(ctx context.Context, caller domain.Identity, requestID uuid.UUID) (domain.Request, error) {
	return m.approve(ctx, caller, requestID)
}
func (m *mockReservationServicer) Reject(ctx context.Context, caller domain.Identity, requestID uuid.UUID) (domain.Request, error) {
	return m.reject(ctx, caller, requestID)
}
func (m *mockReservationServicer) Withdraw(ctx context.Context, caller domain.Identity, requestID uuid.UUID) error {
	return m.withdraw(ctx, caller, requestID)
}
func (m *mockReservationServicer) ListForRide(ctx context.Context, caller domain.Identity, rideID uuid.UUID) ([]domain.RequestDetail, error) {
	return m.listForRide(ctx, caller, rideID)
}
func (m *mockReservationServicer) ListMine(ctx context.Context, caller domain.Identity) ([]domain.RequestTicket, error) {
	return m.listMine(ctx, caller)
}

var _ handler.ReservationServicer = (*mockReservationServicer)(nil)

// serverDeps bundles the four mocks; zero-value fields are fine for routes the
// test never hits.
type serverDeps struct {
	auth         *mockAuthServicer
	users        *mockUserServicer
	rides        *mockRideServicer
	reservations *mockReservationServicer
}

// newTestRouter builds the full API router with a stub auth middleware that
// attaches caller to every request, bypassing token verification. Token
// verification itself is covered in the middleware package tests.
func newTestRouter(deps serverDeps, caller domain.Identity) http.Handler {
	if deps.auth == nil {
		deps.auth = &mockAuthServicer{}
	}
	if deps.users == nil {
		deps.users = &mockUserServicer{}
	}
	if deps.rides == nil {
		deps.rides = &mockRideServicer{}
	}
	if deps.reservations == nil {
		deps.reservations = &mockReservationServicer{}
	}

	stubAuth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), caller)))
		})
	}

	s := handler.NewServer(deps.auth, deps.users, deps.rides, deps.reservations, nil)
	return s.Routes(stubAuth)
}

// doJSON performs a request with a JSON string body and returns the recorder.
func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeBody parses the response envelope into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "response must be valid JSON")
	return body
}

// errorCode extracts the machine-readable error code from a failure envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	detail, ok := body["error"].(map[string]any)
	require.True(t, ok, "failure envelope must carry an error object, got %v", body)
	code, _ := detail["code"].(string)
	return code
}
