package handler

import (
	"net/http"

	"github.com/Dibek1910/Travel-Buddy/internal/middleware"
	"github.com/Dibek1910/Travel-Buddy/internal/service"
)

type updateProfileRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
}

// GetProfile handles GET /api/user/profile.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
		return
	}

	profile, err := s.users.Profile(r.Context(), caller)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "done fetching user profile", envelope{"userProfile": profile})
}

// UpdateProfile handles PATCH /api/user/profile.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}

	profile, err := s.users.UpdateProfile(r.Context(), caller, service.ProfilePatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "profile updated successfully", envelope{"userProfile": profile})
}
