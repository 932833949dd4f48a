package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
	"github.com/Dibek1910/Travel-Buddy/internal/middleware"
)

type createRideRequest struct {
	Origin      string    `json:"from" validate:"required"`
	Destination string    `json:"to" validate:"required"`
	DepartsAt   time.Time `json:"date" validate:"required"`
	Capacity    int       `json:"capacity" validate:"required,min=1,max=50"`
	Price       *float64  `json:"price"`
	Description string    `json:"description"`
}

type updateRideRequest struct {
	Origin      *string    `json:"from"`
	Destination *string    `json:"to"`
	DepartsAt   *time.Time `json:"date"`
	Capacity    *int       `json:"capacity"`
	Price       *float64   `json:"price"`
	Description *string    `json:"description"`
}

type searchRidesRequest struct {
	Origin      string     `json:"from"`
	Destination string     `json:"to"`
	Date        *time.Time `json:"date"`
	Page        *int       `json:"page"`
	Limit       *int       `json:"limit"`
}

// CreateRide handles POST /api/rides.
func (s *Server) CreateRide(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
		return
	}

	var req createRideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}
	if err := validateInput(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, err.Error())
		return
	}

	ride, err := s.rides.Create(r.Context(), caller, domain.Ride{
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartsAt:   req.DepartsAt,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "successfully created the ride", envelope{"ride": ride})
}

// GetRide handles GET /api/rides/{rideId}.
func (s *Server) GetRide(w http.ResponseWriter, r *http.Request) {
	rideID, err := uuid.Parse(chi.URLParam(r, "rideId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid ride id")
		return
	}

	detail, err := s.rides.GetDetail(r.Context(), rideID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "these are the ride details", envelope{"rideDetails": detail})
}

// UpdateRide handles PATCH /api/rides/{rideId}.
func (s *Server) UpdateRide(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
		return
	}

	rideID, err := uuid.Parse(chi.URLParam(r, "rideId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid ride id")
		return
	}

	var req updateRideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}

	ride, err := s.rides.Update(r.Context(), caller, rideID, domain.RidePatch{
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartsAt:   req.DepartsAt,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ride details have been updated", envelope{"ride": ride})
}

// SearchRides handles POST /api/rides/search.
// Filters are optional; results never include the caller's own rides or
// rides departing before today.
func (s *Server) SearchRides(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
		return
	}

	var req searchRidesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}

	rides, err := s.rides.Search(r.Context(), caller, domain.RideFilter{
		Origin:      req.Origin,
		Destination: req.Destination,
		Date:        req.Date,
	}, domain.NewPaginationParams(req.Page, req.Limit))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "these are the rides that match the given parameters", envelope{"rides": rides})
}

// ListMyRides handles GET /api/rides/mine.
func (s *Server) ListMyRides(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
		return
	}

	rides, err := s.rides.ListMine(r.Context(), caller)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "these are the rides created by the given user", envelope{"rides": rides})
}

// RideHistory handles GET /api/rides/history.
func (s *Server) RideHistory(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
		return
	}

	history, err := s.rides.History(r.Context(), caller)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "this is the ride history of the user", envelope{"rides": history})
}
