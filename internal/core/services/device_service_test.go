package services_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/services"
	"github.com/funaab-ict/clearance-service/test/mocks"
)

func TestDeviceService_Register(t *testing.T) {
	deviceRepo := mocks.NewMockDeviceRepository()
	service := services.NewDeviceService(deviceRepo)
	ctx := context.Background()

	first, err := service.Register(ctx, "kiosk-1", "Library Entrance", domain.DeptComputerScience)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.IsActive {
		t.Error("new devices must start active")
	}

	raw, err := base64.RawURLEncoding.DecodeString(first.APIKey)
	if err != nil {
		t.Fatalf("api key is not URL-safe base64: %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("expected 32 bytes of key material, got %d", len(raw))
	}

	second, err := service.Register(ctx, "kiosk-2", "Bursary", domain.DeptComputerScience)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.APIKey == first.APIKey {
		t.Error("api keys must be unique per device")
	}
}

func TestDeviceService_RegisterConflicts(t *testing.T) {
	deviceRepo := mocks.NewMockDeviceRepository()
	deviceRepo.SeedDevice(&domain.Device{ID: "dev-1", Name: "kiosk-1", Location: "Library Entrance"})
	service := services.NewDeviceService(deviceRepo)
	ctx := context.Background()

	if _, err := service.Register(ctx, "kiosk-1", "Elsewhere", ""); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate name: expected ErrConflict, got %v", err)
	}
	if _, err := service.Register(ctx, "kiosk-9", "Library Entrance", ""); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate location: expected ErrConflict, got %v", err)
	}
}

func TestDeviceService_Delete(t *testing.T) {
	deviceRepo := mocks.NewMockDeviceRepository()
	deviceRepo.SeedDevice(&domain.Device{ID: "dev-1", Name: "kiosk-1"})
	service := services.NewDeviceService(deviceRepo)

	device, err := service.Delete(context.Background(), "dev-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if device.Name != "kiosk-1" {
		t.Errorf("expected deleted device in response, got %+v", device)
	}

	if _, err := service.Delete(context.Background(), "dev-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
