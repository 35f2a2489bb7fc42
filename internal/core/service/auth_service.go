package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
	"github.com/supfront/commerce-system/internal/store"
)

// AuthService implements registration, login, and logout. Login flips the
// auth partition to authenticated; logout resets the partition entirely,
// onboarding flag included — a returning user goes through onboarding again.
type AuthService struct {
	repo      ports.UserRepository
	store     *store.Store
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, st *store.Store, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, store: st, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	summary := user.Summary()
	_, _ = s.store.Auth.Dispatch(func(st domain.AuthState) (domain.AuthState, error) {
		st.IsAuthenticated = true
		st.User = &summary
		return st, nil
	})

	s.logger.Info().Str("email", email).Msg("user logged in")
	return token, user, nil
}

// Logout resets the auth partition to its defaults. HasCompletedOnboarding is
// deliberately cleared with the rest of the partition.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.store.Auth.Dispatch(func(domain.AuthState) (domain.AuthState, error) {
		return domain.AuthState{}, nil
	})
	if err == nil {
		s.logger.Info().Msg("session cleared")
	}
	return err
}

// Session returns the auth partition snapshot.
func (s *AuthService) Session(ctx context.Context) domain.AuthState {
	return s.store.Auth.Snapshot()
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
