package handler

import (
	"net/http"

	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

// RFIDHandler serves the read-only tag lookup used by standalone readers at
// exit gates. It is authenticated with a device API key, never a user token.
type RFIDHandler struct {
	tagService ports.TagService
}

func NewRFIDHandler(tags ports.TagService) *RFIDHandler {
	return &RFIDHandler{tagService: tags}
}

type CheckStatusRequest struct {
	TagID string `json:"tag_id"`
}

func (h *RFIDHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	var req CheckStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TagID == "" {
		writeBadRequest(w, "tag_id is required")
		return
	}

	resolution, err := h.tagService.Resolve(r.Context(), req.TagID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resolution)
}
