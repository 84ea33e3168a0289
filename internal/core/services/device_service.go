package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type DeviceService struct {
	deviceRepo ports.DeviceRepository
}

var _ ports.DeviceService = (*DeviceService)(nil)

func NewDeviceService(deviceRepo ports.DeviceRepository) *DeviceService {
	return &DeviceService{deviceRepo: deviceRepo}
}

// Register creates a kiosk device and issues its API credential. Device name
// and location must both be unique.
func (s *DeviceService) Register(ctx context.Context, name, location string, dept domain.Department) (*domain.Device, error) {
	if _, err := s.deviceRepo.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("a device named %q already exists: %w", name, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.deviceRepo.GetByLocation(ctx, location); err == nil {
		return nil, fmt.Errorf("a device at location %q already exists: %w", location, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	apiKey, err := newAPIKey()
	if err != nil {
		return nil, err
	}

	device := domain.Device{
		ID:         uuid.NewString(),
		Name:       name,
		Location:   location,
		Department: dept,
		APIKey:     apiKey,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}
	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, err
	}
	return &device, nil
}

func (s *DeviceService) List(ctx context.Context) ([]domain.Device, error) {
	return s.deviceRepo.List(ctx, 0, 0)
}

// Delete de-authorizes a device; its API key stops resolving immediately.
func (s *DeviceService) Delete(ctx context.Context, id string) (*domain.Device, error) {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.deviceRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return device, nil
}

func newAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
