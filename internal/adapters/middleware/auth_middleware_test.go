package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/funaab-ict/clearance-service/internal/adapters/middleware"
	"github.com/funaab-ict/clearance-service/internal/config"
	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/test/mocks"
)

func signToken(t *testing.T, key *rsa.PrivateKey, username, role string) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":  username,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_TokenRoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	authMW := middleware.NewAuthMiddleware(&key.PublicKey, nil, config.NewCircuitBreaker("Redis-Auth"))

	var gotUsername, gotRole string
	handler := authMW.RequireRole([]string{"staff"}, func(w http.ResponseWriter, r *http.Request) {
		gotUsername = middleware.UsernameFromContext(r.Context())
		gotRole = middleware.RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, "librarian", "staff"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUsername != "librarian" || gotRole != "staff" {
		t.Errorf("context values: got %q/%q", gotUsername, gotRole)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	authMW := middleware.NewAuthMiddleware(&key.PublicKey, nil, config.NewCircuitBreaker("Redis-Auth"))

	handler := authMW.RequireRole([]string{"admin"}, func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing_header", "", http.StatusUnauthorized},
		{"malformed_header", "Token abc", http.StatusUnauthorized},
		{"garbage_token", "Bearer not.a.token", http.StatusUnauthorized},
		{"wrong_signing_key", "Bearer " + signToken(t, otherKey, "registrar", "admin"), http.StatusUnauthorized},
		{"insufficient_role", "Bearer " + signToken(t, key, "librarian", "staff"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestDeviceMiddleware(t *testing.T) {
	deviceRepo := mocks.NewMockDeviceRepository()
	deviceRepo.SeedDevice(&domain.Device{ID: "dev-1", Name: "kiosk-1", APIKey: "live-key", IsActive: true})
	deviceRepo.SeedDevice(&domain.Device{ID: "dev-2", Name: "kiosk-2", APIKey: "revoked-key", IsActive: false})
	deviceMW := middleware.NewDeviceMiddleware(deviceRepo)

	var gotDevice *domain.Device
	handler := deviceMW.RequireDevice(func(w http.ResponseWriter, r *http.Request) {
		gotDevice, _ = middleware.DeviceFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		apiKey     string
		wantStatus int
	}{
		{"valid_key", "live-key", http.StatusOK},
		{"missing_key", "", http.StatusUnauthorized},
		{"unknown_key", "bogus", http.StatusUnauthorized},
		{"inactive_device", "revoked-key", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDevice = nil
			req := httptest.NewRequest(http.MethodPost, "/admin/scanners/scan", nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK && (gotDevice == nil || gotDevice.Name != "kiosk-1") {
				t.Errorf("expected kiosk-1 on context, got %+v", gotDevice)
			}
		})
	}
}
