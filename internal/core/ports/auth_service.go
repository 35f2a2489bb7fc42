package ports

import (
	"context"

	"github.com/supfront/commerce-system/internal/core/domain"
)

// AuthService implements account registration and session management.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error)
	// Login verifies credentials, issues a signed token, and marks the auth
	// partition authenticated.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout resets the auth partition entirely, onboarding flag included.
	Logout(ctx context.Context) error
	// Session returns the auth partition snapshot.
	Session(ctx context.Context) domain.AuthState
}
