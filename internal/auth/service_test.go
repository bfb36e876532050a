package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/store/sqlite"
)

func newTestAuthService(t *testing.T) *Service {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	jwtConfig := &JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
	}

	return NewService(st, jwtConfig)
}

func TestRegister_RejectsInvalidName(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	in := RegisterInput{FullName: "A", Email: "a@alumni.edu", Password: "password123"}
	if _, err := svc.Register(ctx, in); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}

	// Should be validated after trimming whitespace.
	in.FullName = " A "
	if _, err := svc.Register(ctx, in); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestRegister_RejectsInvalidEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	in := RegisterInput{FullName: "Alice Kim", Email: "not-an-email", Password: "password123"}
	if _, err := svc.Register(ctx, in); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestRegister_RejectsInvalidPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	in := RegisterInput{FullName: "Alice Kim", Email: "alice@alumni.edu", Password: "12345"}
	if _, err := svc.Register(ctx, in); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestRegister_NormalizesEmailAndCreatesUser(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, RegisterInput{
		FullName: "Alice Kim",
		Email:    " Alice@Alumni.edu ",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("expected registration success, got %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	// Should collide because the stored email is trimmed and lowercased.
	_, err = svc.Register(ctx, RegisterInput{
		FullName: "Alice K",
		Email:    "alice@alumni.edu",
		Password: "password123",
	})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLoginAndValidateRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		FullName: "Bob Singh",
		Email:    "bob@alumni.edu",
		Password: "password123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login(ctx, "bob@alumni.edu", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Email != "bob@alumni.edu" || claims.FullName != "Bob Singh" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := svc.Login(ctx, "bob@alumni.edu", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
