// Package handler implements the HTTP handlers for the Travel Buddy API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, ride.go, request.go, ...) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
	"github.com/Dibek1910/Travel-Buddy/internal/service"
)

// AuthServicer defines the identity operations the auth handlers depend on.
// Defining the interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type AuthServicer interface {
	Register(ctx context.Context, in service.RegisterInput) (domain.Profile, error)
	Login(ctx context.Context, email, password string) (string, domain.Profile, error)
}

// UserServicer defines the profile operations the user handlers depend on.
type UserServicer interface {
	Profile(ctx context.Context, caller domain.Identity) (domain.Profile, error)
	UpdateProfile(ctx context.Context, caller domain.Identity, patch service.ProfilePatch) (domain.Profile, error)
}

// RideServicer defines the ride ledger operations the ride handlers depend on.
type RideServicer interface {
	Create(ctx context.Context, caller domain.Identity, ride domain.Ride) (domain.Ride, error)
	GetDetail(ctx context.Context, rideID uuid.UUID) (domain.RideDetail, error)
	Update(ctx context.Context, caller domain.Identity, rideID uuid.UUID, patch domain.RidePatch) (domain.Ride, error)
	Search(ctx context.Context, caller domain.Identity, filter domain.RideFilter, p domain.PaginationParams) ([]domain.RideSummary, error)
	ListMine(ctx context.Context, caller domain.Identity) ([]domain.RideDetail, error)
	History(ctx context.Context, caller domain.Identity) (domain.RideHistory, error)
}

// ReservationServicer defines the request lifecycle operations the request
// handlers depend on.
type ReservationServicer interface {
	Create(ctx context.Context, caller domain.Identity, rideID uuid.UUID) (domain.RequestTicket, error)
	Approve(ctx context.Context, caller domain.Identity, requestID uuid.UUID) (domain.Request, error)
	Reject(ctx context.Context, caller domain.Identity, requestID uuid.UUID) (domain.Request, error)
	Withdraw(ctx context.Context, caller domain.Identity, requestID uuid.UUID) error
	ListForRide(ctx context.Context, caller domain.Identity, rideID uuid.UUID) ([]domain.RequestDetail, error)
	ListMine(ctx context.Context, caller domain.Identity) ([]domain.RequestTicket, error)
}

// Server holds the handler dependencies. Wire it in main.go via Routes.
type Server struct {
	auth         AuthServicer
	users        UserServicer
	rides        RideServicer
	reservations ReservationServicer
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// log may be nil, in which case slog.Default() is used.
func NewServer(auth AuthServicer, users UserServicer, rides RideServicer, reservations ReservationServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{auth: auth, users: users, rides: rides, reservations: reservations, log: log}
}

// Routes builds the API router. requireAuth is the middleware that verifies
// the bearer token and attaches the caller identity; everything under it can
// trust middleware.IdentityFrom.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/logout", s.Logout)

		api.Group(func(priv chi.Router) {
			priv.Use(requireAuth)

			priv.Get("/user/profile", s.GetProfile)
			priv.Patch("/user/profile", s.UpdateProfile)

			priv.Post("/rides", s.CreateRide)
			priv.Post("/rides/search", s.SearchRides)
			priv.Get("/rides/mine", s.ListMyRides)
			priv.Get("/rides/history", s.RideHistory)
			priv.Get("/rides/{rideId}", s.GetRide)
			priv.Patch("/rides/{rideId}", s.UpdateRide)

			priv.Post("/requests", s.CreateRequest)
			priv.Get("/requests/mine", s.ListMyRequests)
			priv.Get("/requests/ride/{rideId}", s.ListRideRequests)
			priv.Post("/requests/{requestId}/approve", s.ApproveRequest)
			priv.Post("/requests/{requestId}/reject", s.RejectRequest)
			priv.Delete("/requests/{requestId}", s.WithdrawRequest)
		})
	})

	return r
}
