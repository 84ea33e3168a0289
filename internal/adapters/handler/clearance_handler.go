package handler

import (
	"net/http"

	"github.com/funaab-ict/clearance-service/internal/adapters/middleware"
	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type ClearanceHandler struct {
	clearanceService ports.ClearanceService
}

func NewClearanceHandler(clearance ports.ClearanceService) *ClearanceHandler {
	return &ClearanceHandler{clearanceService: clearance}
}

type UpdateClearanceRequest struct {
	MatricNo   string `json:"matric_no"`
	Department string `json:"department"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks,omitempty"`
}

func (h *ClearanceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateClearanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.MatricNo == "" || req.Department == "" {
		writeBadRequest(w, "matric_no and department are required")
		return
	}
	switch domain.ClearanceState(req.Status) {
	case domain.ClearancePending, domain.ClearanceApproved, domain.ClearanceRejected:
	default:
		writeBadRequest(w, "status must be pending, approved or rejected")
		return
	}

	actor := middleware.UsernameFromContext(r.Context())
	status, err := h.clearanceService.UpdateStatus(r.Context(), ports.UpdateClearanceInput{
		MatricNo:   req.MatricNo,
		Department: domain.ClearanceDepartment(req.Department),
		Status:     domain.ClearanceState(req.Status),
		Remarks:    req.Remarks,
	}, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *ClearanceHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.clearanceService.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
