package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
	"github.com/Dibek1910/Travel-Buddy/internal/middleware"
	"github.com/Dibek1910/Travel-Buddy/internal/observability"
)

type createRequestRequest struct {
	RideID uuid.UUID `json:"rideId"`
}

// CreateRequest handles POST /api/requests.
func (s *Server) CreateRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
		return
	}

	var req createRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}
	if req.RideID == uuid.Nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "rideId is required")
		return
	}

	ticket, err := s.reservations.Create(r.Context(), caller, req.RideID)
	recordOutcome("create", err)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "successfully sent request to join", envelope{"requestTicket": ticket})
}

// ApproveRequest handles POST /api/requests/{requestId}/approve.
func (s *Server) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	s.resolveRequest(w, r, "approve")
}

// RejectRequest handles POST /api/requests/{requestId}/reject.
func (s *Server) RejectRequest(w http.ResponseWriter, r *http.Request) {
	s.resolveRequest(w, r, "reject")
}

// resolveRequest is the shared host-side transition handler.
func (s *Server) resolveRequest(w http.ResponseWriter, r *http.Request, op string) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "requestId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request id")
		return
	}

	var updated domain.Request
	if op == "approve" {
		updated, err = s.reservations.Approve(r.Context(), caller, requestID)
	} else {
		updated, err = s.reservations.Reject(r.Context(), caller, requestID)
	}
	recordOutcome(op, err)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "successfully updated the status of the request to "+string(updated.Status),
		envelope{"request": updated})
}

// WithdrawRequest handles DELETE /api/requests/{requestId}.
func (s *Server) WithdrawRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "requestId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request id")
		return
	}

	err = s.reservations.Withdraw(r.Context(), caller, requestID)
	recordOutcome("withdraw", err)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "successfully cancelled the request", nil)
}

// ListRideRequests handles GET /api/requests/ride/{rideId}.
func (s *Server) ListRideRequests(w http.ResponseWriter, r *http.Request) {
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

	requests, err := s.reservations.ListForRide(r.Context(), caller, rideID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "requests for the ride", envelope{"requests": requests})
}

// ListMyRequests handles GET /api/requests/mine.
func (s *Server) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
		return
	}

	tickets, err := s.reservations.ListMine(r.Context(), caller)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "these are the rides user has requested to be in", envelope{
		"user":     caller,
		"requests": tickets,
	})
}

// recordOutcome tallies a reservation operation into the Prometheus counter.
func recordOutcome(op string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrCapacityExceeded):
		outcome = "capacity_exceeded"
	case errors.Is(err, domain.ErrConflict):
		outcome = "conflict"
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation):
		outcome = "rejected"
	default:
		outcome = "error"
	}
	observability.ReservationOutcomes.WithLabelValues(op, outcome).Inc()
}
