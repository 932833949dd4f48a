package handler

import (
	"errors"
	"net/http"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
	"github.com/Dibek1910/Travel-Buddy/internal/service"
)

type registerRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}
	if err := validateInput(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, err.Error())
		return
	}

	profile, err := s.auth.Register(r.Context(), service.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "successfully created the user", envelope{"user": profile})
}

// Login handles POST /api/auth/login.
// Bad credentials return 401 rather than the generic 403 so clients can
// distinguish "log in again" from "you may not do this".
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}
	if err := validateInput(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, err.Error())
		return
	}

	token, profile, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid email or password")
			return
		}
		s.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "successfully logged in", envelope{
		"token": token,
		"user":  profile,
	})
}

// Logout handles POST /api/auth/logout.
// Tokens are stateless, so logout is an acknowledgement for clients that
// want a definitive end-of-session signal; they discard the token.
func (s *Server) Logout(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "logged out", nil)
}
