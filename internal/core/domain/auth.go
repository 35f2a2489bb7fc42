package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrNotAuthenticated = errors.New("not authenticated")

// UserSummary is the slice of account data the auth partition carries around.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// AuthState is the auth partition's full state. Logout resets the whole
// partition to its zero value, including HasCompletedOnboarding; a returning
// user re-enters the onboarding flow. That mirrors the observed product
// behavior and is preserved deliberately.
type AuthState struct {
	IsAuthenticated        bool         `json:"is_authenticated"`
	HasCompletedOnboarding bool         `json:"has_completed_onboarding"`
	User                   *UserSummary `json:"user"`
}

// User models a registered account as stored in the user repository.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Summary returns the view of the account carried in the auth partition.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
