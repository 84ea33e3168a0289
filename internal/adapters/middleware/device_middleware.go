package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

const apiKeyHeader = "X-API-Key"

const deviceKey contextKey = "device"

// DeviceFromContext returns the authenticated device, if any.
func DeviceFromContext(ctx context.Context) (*domain.Device, bool) {
	device, ok := ctx.Value(deviceKey).(*domain.Device)
	return device, ok
}

type DeviceMiddleware struct {
	deviceRepo ports.DeviceRepository
}

func NewDeviceMiddleware(deviceRepo ports.DeviceRepository) *DeviceMiddleware {
	return &DeviceMiddleware{deviceRepo: deviceRepo}
}

// RequireDevice authenticates a hardware client by its API key and places the
// resolved device on the request context. Inactive devices are rejected the
// same as unknown keys.
func (m *DeviceMiddleware) RequireDevice(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(apiKeyHeader)
		if apiKey == "" {
			http.Error(w, "missing api key", http.StatusUnauthorized)
			return
		}

		device, err := m.deviceRepo.GetByAPIKey(r.Context(), apiKey)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				log.Printf("Device lookup failed: %v", err)
			}
			http.Error(w, "invalid api key", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), deviceKey, device)
		next(w, r.WithContext(ctx))
	}
}
