package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/store"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byEmail[user.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testSecret = "test-secret"

func newAuthFixture() (*AuthService, *stubUserRepo, *store.Store) {
	repo := newStubUserRepo()
	st := store.New(nil, discardLogger)
	return NewAuthService(repo, st, testSecret, time.Hour, discardLogger), repo, st
}

// ---------------------------------------------------------------------------
// Register tests
// ---------------------------------------------------------------------------

func TestAuthService_Register_HashesPassword(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), "ana@example.com", "hunter2", "Ana", "Torres")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Error("expected assigned user ID")
	}

	stored := repo.byEmail["ana@example.com"]
	if stored.PasswordHash == "hunter2" {
		t.Fatal("password stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2")) != nil {
		t.Error("stored hash does not verify against the password")
	}
}

func TestAuthService_Register_EmptyCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "pw", "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(ctx, "a@b.c", "", "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _ = svc.Register(ctx, "ana@example.com", "pw", "Ana", "Torres")
	_, err := svc.Register(ctx, "ana@example.com", "pw2", "Ana", "Torres")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login / Logout tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, st := newAuthFixture()
	ctx := context.Background()
	_, _ = svc.Register(ctx, "ana@example.com", "hunter2", "Ana", "Torres")

	token, user, err := svc.Login(ctx, "ana@example.com", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["user_id"] != user.ID {
		t.Errorf("token user_id mismatch: %v vs %s", claims["user_id"], user.ID)
	}
	if claims["email"] != "ana@example.com" {
		t.Errorf("token email mismatch: %v", claims["email"])
	}

	auth := st.Auth.Snapshot()
	if !auth.IsAuthenticated {
		t.Error("auth partition not flipped to authenticated")
	}
	if auth.User == nil || auth.User.ID != user.ID {
		t.Errorf("auth partition user summary wrong: %+v", auth.User)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, st := newAuthFixture()
	ctx := context.Background()
	_, _ = svc.Register(ctx, "ana@example.com", "hunter2", "Ana", "Torres")

	_, _, err := svc.Login(ctx, "ana@example.com", "nope")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if st.Auth.Snapshot().IsAuthenticated {
		t.Error("failed login must not authenticate the session")
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Logout_ResetsEntirePartition(t *testing.T) {
	svc, _, st := newAuthFixture()
	ctx := context.Background()
	_, _ = svc.Register(ctx, "ana@example.com", "hunter2", "Ana", "Torres")
	_, _, _ = svc.Login(ctx, "ana@example.com", "hunter2")

	// Simulate a completed onboarding before logout.
	_, _ = st.Auth.Dispatch(func(s domain.AuthState) (domain.AuthState, error) {
		s.HasCompletedOnboarding = true
		return s, nil
	})

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	auth := st.Auth.Snapshot()
	if auth.IsAuthenticated {
		t.Error("still authenticated after logout")
	}
	if auth.HasCompletedOnboarding {
		t.Error("logout resets the onboarding flag with the rest of the partition")
	}
	if auth.User != nil {
		t.Errorf("user summary must clear on logout: %+v", auth.User)
	}
}
