package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
)

// bcryptCost trades hash strength against login latency; 11 keeps a single
// hash under ~100ms on current hardware.
const bcryptCost = 11

// tokenTTL is how long an issued login token stays valid.
const tokenTTL = 7 * 24 * time.Hour

// RegisterInput is the validated input for AuthService.Register.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
}

// AuthService implements the identity collaborator: registration, login, and
// token issuance. The reservation core consumes only the verified
// domain.Identity this service (via the auth middleware) produces.
type AuthService struct {
	store  Store
	secret []byte
}

// NewAuthService constructs an AuthService signing tokens with secret.
func NewAuthService(store Store, secret string) *AuthService {
	return &AuthService{store: store, secret: []byte(secret)}
}

// Register validates the input, hashes the password, and persists a new user.
// Returns domain.ErrValidation for malformed input and domain.ErrConflict if
// the email is already registered.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.Profile, error) {
	if err := validateRegister(in); err != nil {
		return domain.Profile{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.AuthService.Register: hash: %w", err)
	}

	user, err := s.store.Repos().Users.Create(ctx, domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return user.Profile(), nil
}

// Login verifies the credentials and returns a signed token plus the user's
// profile. A wrong email and a wrong password both return domain.ErrForbidden
// so callers cannot probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.Profile, error) {
	user, err := s.store.Repos().Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.Profile{}, fmt.Errorf("service.AuthService.Login: invalid email or password: %w", domain.ErrForbidden)
		}
		return "", domain.Profile{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.Profile{}, fmt.Errorf("service.AuthService.Login: invalid email or password: %w", domain.ErrForbidden)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", domain.Profile{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return token, user.Profile(), nil
}

// issueToken signs an HS256 token carrying the user's id and email.
func (s *AuthService) issueToken(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, identityClaims{
		RegisteredClaims: claims,
		Email:            user.Email,
	})
	return token.SignedString(s.secret)
}

// identityClaims is the JWT payload: registered claims plus the email the
// reservation core wants on every verified identity.
type identityClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func validateRegister(in RegisterInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.LastName) == "" {
		return fmt.Errorf("%w: last name is required", domain.ErrValidation)
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	return nil
}
