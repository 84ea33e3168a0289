package mocks

import (
	"context"
	"sync"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type MockDeviceRepository struct {
	mu      sync.RWMutex
	devices map[string]*domain.Device

	CreateCalls []domain.Device
	DeleteCalls []string

	CreateError error
	GetError    error
	DeleteError error
}

var _ ports.DeviceRepository = (*MockDeviceRepository)(nil)

func NewMockDeviceRepository() *MockDeviceRepository {
	return &MockDeviceRepository{devices: make(map[string]*domain.Device)}
}

func (m *MockDeviceRepository) SeedDevice(device *domain.Device) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.devices[device.ID] = device
}

func (m *MockDeviceRepository) Create(ctx context.Context, device domain.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, device)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.devices[device.ID] = &device
	return nil
}

func (m *MockDeviceRepository) GetByID(ctx context.Context, id string) (*domain.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if device, ok := m.devices[id]; ok {
		return device, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockDeviceRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, device := range m.devices {
		if device.APIKey == apiKey && device.IsActive {
			return device, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockDeviceRepository) GetByName(ctx context.Context, name string) (*domain.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, device := range m.devices {
		if device.Name == name {
			return device, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockDeviceRepository) GetByLocation(ctx context.Context, location string) (*domain.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, device := range m.devices {
		if device.Location == location {
			return device, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockDeviceRepository) List(ctx context.Context, offset, limit int) ([]domain.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	var devices []domain.Device
	for _, device := range m.devices {
		devices = append(devices, *device)
	}
	return devices, nil
}

func (m *MockDeviceRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, ok := m.devices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.devices, id)
	return nil
}
