package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type StudentHandler struct {
	studentService ports.StudentService
}

func NewStudentHandler(students ports.StudentService) *StudentHandler {
	return &StudentHandler{studentService: students}
}

type CreateStudentRequest struct {
	MatricNo   string `json:"matric_no"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Password   string `json:"password"`
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.MatricNo == "" || req.FullName == "" || req.Email == "" || req.Password == "" {
		writeBadRequest(w, "matric_no, full_name, email and password are required")
		return
	}

	record, err := h.studentService.Create(r.Context(), ports.CreateStudentInput{
		MatricNo:   req.MatricNo,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: domain.Department(req.Department),
		Password:   req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.studentService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []ports.StudentRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *StudentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	record, err := h.studentService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Lookup resolves a student by matric number or linked tag id.
func (h *StudentHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	matricNo := r.URL.Query().Get("matric_no")
	tagID := r.URL.Query().Get("tag_id")

	var record *ports.StudentRecord
	var err error
	switch {
	case matricNo != "":
		record, err = h.studentService.GetByMatricNo(r.Context(), matricNo)
	case tagID != "":
		record, err = h.studentService.GetByTagID(r.Context(), tagID)
	default:
		writeBadRequest(w, "matric_no or tag_id query parameter is required")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

type UpdateStudentRequest struct {
	FullName   *string `json:"full_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Department *string `json:"department,omitempty"`
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateStudentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	in := ports.UpdateStudentInput{
		FullName: req.FullName,
		Email:    req.Email,
	}
	if req.Department != nil {
		dept := domain.Department(*req.Department)
		in.Department = &dept
	}

	record, err := h.studentService.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	student, err := h.studentService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Student deleted",
		"student": student,
	})
}
