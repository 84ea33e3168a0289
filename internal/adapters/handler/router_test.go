package handler_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/funaab-ict/clearance-service/internal/adapters/handler"
	"github.com/funaab-ict/clearance-service/internal/adapters/middleware"
	"github.com/funaab-ict/clearance-service/internal/config"
	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/services"
	"github.com/funaab-ict/clearance-service/test/mocks"
)

type apiFixture struct {
	router http.Handler
	key    *rsa.PrivateKey

	userRepo      *mocks.MockUserRepository
	studentRepo   *mocks.MockStudentRepository
	deviceRepo    *mocks.MockDeviceRepository
	tagRepo       *mocks.MockTagRepository
	clearanceRepo *mocks.MockClearanceRepository
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	f := &apiFixture{
		key:           key,
		userRepo:      mocks.NewMockUserRepository(),
		studentRepo:   mocks.NewMockStudentRepository(),
		deviceRepo:    mocks.NewMockDeviceRepository(),
		tagRepo:       mocks.NewMockTagRepository(),
		clearanceRepo: mocks.NewMockClearanceRepository(),
	}

	authService := services.NewAuthService(f.userRepo, key, 30*time.Minute, nil)
	userService := services.NewUserService(f.userRepo)
	studentService := services.NewStudentService(f.studentRepo, f.userRepo, f.clearanceRepo, f.tagRepo)
	deviceService := services.NewDeviceService(f.deviceRepo)
	tagService := services.NewTagService(f.tagRepo, f.userRepo, f.studentRepo, f.clearanceRepo)
	clearanceService := services.NewClearanceService(f.userRepo, f.studentRepo, f.clearanceRepo)
	scanService := services.NewScanCoordinator(f.deviceRepo)

	f.router = handler.NewRouter(handler.RouterConfig{
		Auth:      handler.NewAuthHandler(authService, userService),
		Users:     handler.NewUserHandler(userService),
		Students:  handler.NewStudentHandler(studentService),
		Devices:   handler.NewDeviceHandler(deviceService),
		Tags:      handler.NewTagHandler(tagService),
		Scanners:  handler.NewScannerHandler(scanService),
		Clearance: handler.NewClearanceHandler(clearanceService),
		RFID:      handler.NewRFIDHandler(tagService),
		Health:    handler.NewHealthHandler(nil, nil),

		AuthMW:   middleware.NewAuthMiddleware(&key.PublicKey, nil, config.NewCircuitBreaker("Redis-Auth")),
		DeviceMW: middleware.NewDeviceMiddleware(f.deviceRepo),

		AllowedOrigins: []string{"*"},
	})
	return f
}

func (f *apiFixture) token(t *testing.T, username, role string) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": username, "role": role, "iat": now.Unix(), "exp": now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(f.key)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func (f *apiFixture) do(t *testing.T, method, path, token, apiKey string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ScanWorkflow(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.token(t, "registrar", "admin")

	rec := f.do(t, http.MethodPost, "/admin/devices", admin, "", map[string]string{
		"device_name": "kiosk-1",
		"location":    "Library Entrance",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register device: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var device domain.Device
	if err := json.Unmarshal(rec.Body.Bytes(), &device); err != nil {
		t.Fatal(err)
	}
	if device.APIKey == "" {
		t.Fatal("expected api key in registration response")
	}

	staff := f.token(t, "librarian", "staff")
	rec = f.do(t, http.MethodPost, "/admin/scanners/activate", staff, "", map[string]string{"device_id": device.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("activate: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Polling before any scan is a miss.
	rec = f.do(t, http.MethodGet, "/admin/scanners/retrieve", staff, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("early retrieve: expected 404, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/admin/scanners/scan", "", device.APIKey, map[string]string{"tag_id": "TAG42"})
	if rec.Code != http.StatusOK {
		t.Fatalf("scan: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/admin/scanners/retrieve", staff, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("retrieve: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result["tag_id"] != "TAG42" {
		t.Errorf("expected TAG42, got %q", result["tag_id"])
	}
}

func TestRouter_ScanRequiresArming(t *testing.T) {
	f := newAPIFixture(t)
	f.deviceRepo.SeedDevice(&domain.Device{ID: "dev-1", Name: "kiosk-1", APIKey: "key-1", IsActive: true})

	rec := f.do(t, http.MethodPost, "/admin/scanners/scan", "", "key-1", map[string]string{"tag_id": "TAG42"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("unarmed scan: expected 403, got %d", rec.Code)
	}
}

func TestRouter_ErrorStatusMapping(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.token(t, "registrar", "admin")
	staff := f.token(t, "librarian", "staff")

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		apiKey     string
		body       any
		wantStatus int
	}{
		{"unknown_user_404", http.MethodGet, "/admin/users/lookup?username=ghost", admin, "", nil, http.StatusNotFound},
		{"no_token_401", http.MethodGet, "/admin/users", "", "", nil, http.StatusUnauthorized},
		{"staff_on_admin_route_403", http.MethodGet, "/admin/users", staff, "", nil, http.StatusForbidden},
		{"device_route_needs_key_401", http.MethodPost, "/rfid/check-status", "", "", map[string]string{"tag_id": "T"}, http.StatusUnauthorized},
		{"bad_body_400", http.MethodPost, "/token", "", "", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.path, tt.token, tt.apiKey, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_RFIDCheckStatus(t *testing.T) {
	f := newAPIFixture(t)
	f.deviceRepo.SeedDevice(&domain.Device{ID: "dev-1", Name: "gate-1", APIKey: "gate-key", IsActive: true})
	f.studentRepo.SeedStudent(&domain.Student{ID: "stu-1", MatricNo: "20201234", FullName: "Ada Bello"})
	f.studentRepo.SeedTag("TAG42", "stu-1")
	f.tagRepo.SeedTag(&domain.RFIDTag{TagID: "TAG42", StudentID: "stu-1"})
	f.clearanceRepo.SeedStatuses("stu-1", []domain.ClearanceStatus{
		{StudentID: "stu-1", Department: domain.ClearanceLibrary, Status: domain.ClearanceApproved},
	})

	rec := f.do(t, http.MethodPost, "/rfid/check-status", "", "gate-key", map[string]string{"tag_id": "TAG42"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resolution map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resolution); err != nil {
		t.Fatal(err)
	}
	if resolution["status"] != "found" || resolution["full_name"] != "Ada Bello" {
		t.Errorf("unexpected resolution: %v", resolution)
	}
	if resolution["clearance_status"] != "Fully Cleared" {
		t.Errorf("expected Fully Cleared, got %q", resolution["clearance_status"])
	}
}
