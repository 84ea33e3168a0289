package handler

import (
	"net/http"

	"github.com/funaab-ict/clearance-service/internal/adapters/middleware"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

// ScannerHandler exposes the scan-activation workflow: an operator arms a
// device, the device reports the next scanned tag, the operator retrieves it.
type ScannerHandler struct {
	scanService ports.ScanService
}

func NewScannerHandler(scans ports.ScanService) *ScannerHandler {
	return &ScannerHandler{scanService: scans}
}

type ActivateScannerRequest struct {
	DeviceID string `json:"device_id"`
}

func (h *ScannerHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req ActivateScannerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DeviceID == "" {
		writeBadRequest(w, "device_id is required")
		return
	}

	operator := middleware.UsernameFromContext(r.Context())
	if err := h.scanService.Arm(r.Context(), req.DeviceID, operator); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Scanner activated"})
}

type ReportScanRequest struct {
	TagID string `json:"tag_id"`
}

// Scan is called by the device itself with its API key credential.
func (h *ScannerHandler) Scan(w http.ResponseWriter, r *http.Request) {
	device, ok := middleware.DeviceFromContext(r.Context())
	if !ok {
		http.Error(w, "missing device credential", http.StatusUnauthorized)
		return
	}

	var req ReportScanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TagID == "" {
		writeBadRequest(w, "tag_id is required")
		return
	}

	if err := h.scanService.ReportScan(*device, req.TagID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Scan recorded"})
}

func (h *ScannerHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	operator := middleware.UsernameFromContext(r.Context())
	tagID, err := h.scanService.Retrieve(operator)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"tag_id": tagID})
}
