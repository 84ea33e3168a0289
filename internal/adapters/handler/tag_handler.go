package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type TagHandler struct {
	tagService ports.TagService
}

func NewTagHandler(tags ports.TagService) *TagHandler {
	return &TagHandler{tagService: tags}
}

type LinkTagRequest struct {
	TagID    string `json:"tag_id"`
	MatricNo string `json:"matric_no,omitempty"`
	Username string `json:"username,omitempty"`
}

func (h *TagHandler) Link(w http.ResponseWriter, r *http.Request) {
	var req LinkTagRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TagID == "" {
		writeBadRequest(w, "tag_id is required")
		return
	}

	tag, err := h.tagService.Link(r.Context(), ports.LinkTagInput{
		TagID:    req.TagID,
		MatricNo: req.MatricNo,
		Username: req.Username,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (h *TagHandler) Unlink(w http.ResponseWriter, r *http.Request) {
	tag, err := h.tagService.Unlink(r.Context(), chi.URLParam(r, "tagID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Tag unlinked",
		"tag":     tag,
	})
}
