package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
)

// Error codes exposed in the response envelope. Callers branch on these, not
// on HTTP status alone: conflict and capacity_exceeded are safe to retry or
// present to the user as business outcomes, internal_error means the system
// failed and the operation may be retried as-is.
const (
	codeValidation       = "validation_error"
	codeNotFound         = "not_found"
	codeForbidden        = "forbidden"
	codeConflict         = "conflict"
	codeCapacityExceeded = "capacity_exceeded"
	codeInvalidState     = "invalid_state"
	codeUnauthorized     = "unauthorized"
	codeInternal         = "internal_error"
)

// respondError maps a service error onto the response envelope.
// Guard failures keep their specific kind; anything unrecognized is an
// internal error, logged with full detail but returned without it.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, userMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, userMessage(err))
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, userMessage(err))
	case errors.Is(err, domain.ErrCapacityExceeded):
		writeError(w, http.StatusConflict, codeCapacityExceeded, userMessage(err))
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusConflict, codeInvalidState, userMessage(err))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, userMessage(err))
	default:
		s.log.ErrorContext(r.Context(), "internal error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "something went wrong, please try again")
	}
}

// sentinels whose text is stripped from user-facing messages; the kind is
// already carried by the error code.
var sentinels = []error{
	domain.ErrValidation,
	domain.ErrNotFound,
	domain.ErrForbidden,
	domain.ErrConflict,
	domain.ErrCapacityExceeded,
	domain.ErrInvalidState,
}

// userMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.ReservationService.Create: ride is full: capacity exceeded"
// → "ride is full".
func userMessage(err error) string {
	msg := err.Error()

	// Drop the "pkg.Type.Method: " prefixes added by each layer.
	for {
		head, rest, ok := strings.Cut(msg, ": ")
		if !ok || !isWrapPrefix(head) {
			break
		}
		msg = rest
	}

	// Drop the trailing sentinel text.
	for _, s := range sentinels {
		msg = strings.TrimSuffix(msg, ": "+s.Error())
	}
	return msg
}

// isWrapPrefix reports whether seg looks like a layer wrap such as
// "service.RideService.Create" or "repo.RideRepo.GetByID".
func isWrapPrefix(seg string) bool {
	for _, p := range []string{"service.", "repo.", "notify."} {
		if strings.HasPrefix(seg, p) {
			return true
		}
	}
	return false
}
