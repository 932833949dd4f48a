package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
)

// ProfilePatch is a partial update to a user's own profile.
// Nil pointers leave the corresponding field untouched.
type ProfilePatch struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

// UserService implements profile reads and updates for the calling user.
type UserService struct {
	store Store
}

// NewUserService constructs a UserService backed by the provided store.
func NewUserService(store Store) *UserService {
	return &UserService{store: store}
}

// Profile returns the caller's own profile.
func (s *UserService) Profile(ctx context.Context, caller domain.Identity) (domain.Profile, error) {
	user, err := s.store.Repos().Users.GetByID(ctx, caller.ID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.UserService.Profile: %w", err)
	}
	return user.Profile(), nil
}

// UpdateProfile applies a partial patch to the caller's profile.
// Returns domain.ErrValidation if no field is set or a set field is blank.
func (s *UserService) UpdateProfile(ctx context.Context, caller domain.Identity, patch ProfilePatch) (domain.Profile, error) {
	if patch.FirstName == nil && patch.LastName == nil && patch.PhoneNumber == nil {
		return domain.Profile{}, fmt.Errorf("%w: at least one field is required for update", domain.ErrValidation)
	}

	r := s.store.Repos()
	user, err := r.Users.GetByID(ctx, caller.ID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}

	if patch.FirstName != nil {
		if strings.TrimSpace(*patch.FirstName) == "" {
			return domain.Profile{}, fmt.Errorf("%w: first name must not be blank", domain.ErrValidation)
		}
		user.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		if strings.TrimSpace(*patch.LastName) == "" {
			return domain.Profile{}, fmt.Errorf("%w: last name must not be blank", domain.ErrValidation)
		}
		user.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*patch.PhoneNumber)
	}

	updated, err := r.Users.Update(ctx, user)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}
	return updated.Profile(), nil
}
