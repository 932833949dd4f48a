// Package domain contains the core data types for the Travel Buddy API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, notify).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can host rides and request seats on other rides.
// PasswordHash is the bcrypt hash of the login password and must never be
// serialized; Profile() strips it before anything leaves the service layer.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	RatingStats  RatingStats
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RatingStats is inert rating metadata carried on the user record.
// Nothing in this service computes or updates it.
type RatingStats struct {
	TotalRatings  int     `json:"total_ratings"`
	AverageRating float64 `json:"average_rating"`
}

// Profile is the externally visible projection of a User.
type Profile struct {
	ID          uuid.UUID   `json:"id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phone_number,omitempty"`
	RatingStats RatingStats `json:"rating_stats"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Profile returns the sanitized projection of u.
func (u User) Profile() Profile {
	return Profile{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		RatingStats: u.RatingStats,
		CreatedAt:   u.CreatedAt,
	}
}

// Identity is the verified caller identity attached to every authenticated
// operation. It is produced by the auth middleware from a validated token;
// services trust it and perform no further authentication.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}
