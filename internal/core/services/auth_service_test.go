package services_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/services"
	"github.com/funaab-ict/clearance-service/test/mocks"
)

func authFixture(t *testing.T) (*services.AuthService, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	userRepo := mocks.NewMockUserRepository()
	userRepo.SeedUser(&domain.User{
		ID:             "u-1",
		Username:       "librarian",
		HashedPassword: string(hashed),
		Role:           domain.RoleStaff,
	})

	return services.NewAuthService(userRepo, key, 30*time.Minute, nil), key
}

func TestAuthService_Login(t *testing.T) {
	service, key := authFixture(t)

	tokenString, err := service.Login(context.Background(), "librarian", "secret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "librarian" {
		t.Errorf("sub claim: expected librarian, got %v", claims["sub"])
	}
	if claims["role"] != "staff" {
		t.Errorf("role claim: expected staff, got %v", claims["role"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatal("missing exp claim")
	}
	if remaining := time.Until(exp.Time); remaining <= 0 || remaining > 30*time.Minute {
		t.Errorf("unexpected token lifetime: %v", remaining)
	}
}

func TestAuthService_LoginRejections(t *testing.T) {
	service, _ := authFixture(t)
	ctx := context.Background()

	badPassword, err1 := service.Login(ctx, "librarian", "wrong")
	unknownUser, err2 := service.Login(ctx, "ghost", "secret-pass")

	if !errors.Is(err1, domain.ErrUnauthenticated) {
		t.Errorf("wrong password: expected ErrUnauthenticated, got %v", err1)
	}
	if !errors.Is(err2, domain.ErrUnauthenticated) {
		t.Errorf("unknown user: expected ErrUnauthenticated, got %v", err2)
	}
	if badPassword != "" || unknownUser != "" {
		t.Error("no token may be issued on failure")
	}

	// Both failures read identically so usernames cannot be probed.
	if err1.Error() != err2.Error() {
		t.Errorf("expected identical failure messages, got %q vs %q", err1, err2)
	}
}

func TestAuthService_LogoutRejectsInvalidToken(t *testing.T) {
	service, _ := authFixture(t)

	err := service.Logout(context.Background(), "not-a-token")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	if services.HashToken("abc") != services.HashToken("abc") {
		t.Error("hash must be deterministic")
	}
	if services.HashToken("abc") == services.HashToken("abd") {
		t.Error("distinct tokens must hash differently")
	}
	if services.DenylistKey("abc") == services.HashToken("abc") {
		t.Error("denylist key must be namespaced")
	}
}
