package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type DeviceHandler struct {
	deviceService ports.DeviceService
}

func NewDeviceHandler(devices ports.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: devices}
}

type RegisterDeviceRequest struct {
	Name       string `json:"device_name"`
	Location   string `json:"location"`
	Department string `json:"department,omitempty"`
}

// Register creates a device and returns its generated API key. The key is
// only shown in this response.
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterDeviceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Location == "" {
		writeBadRequest(w, "device_name and location are required")
		return
	}

	device, err := h.deviceService.Register(r.Context(), req.Name, req.Location, domain.Department(req.Department))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, device)
}

func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	devices, err := h.deviceService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if devices == nil {
		devices = []domain.Device{}
	}
	writeJSON(w, http.StatusOK, devices)
}

func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	device, err := h.deviceService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Device deleted",
		"device":  device,
	})
}
