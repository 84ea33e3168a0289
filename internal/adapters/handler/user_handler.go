package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/funaab-ict/clearance-service/internal/adapters/middleware"
	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{userService: users}
}

type CreateUserRequest struct {
	Username            string `json:"username"`
	Password            string `json:"password"`
	Email               string `json:"email"`
	FullName            string `json:"full_name"`
	Role                string `json:"role"`
	Department          string `json:"department,omitempty"`
	ClearanceDepartment string `json:"clearance_department,omitempty"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" || req.Email == "" || req.FullName == "" || req.Role == "" {
		writeBadRequest(w, "username, password, email, full_name and role are required")
		return
	}

	user, err := h.userService.Create(r.Context(), ports.CreateUserInput{
		Username:            req.Username,
		Password:            req.Password,
		Email:               req.Email,
		FullName:            req.FullName,
		Role:                domain.Role(req.Role),
		Department:          domain.Department(req.Department),
		ClearanceDepartment: domain.ClearanceDepartment(req.ClearanceDepartment),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Lookup resolves a user by username or linked tag id.
func (h *UserHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	tagID := r.URL.Query().Get("tag_id")

	var user *domain.User
	var err error
	switch {
	case username != "":
		user, err = h.userService.GetByUsername(r.Context(), username)
	case tagID != "":
		user, err = h.userService.GetByTagID(r.Context(), tagID)
	default:
		writeBadRequest(w, "username or tag_id query parameter is required")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type UpdateUserRequest struct {
	Email               *string `json:"email,omitempty"`
	FullName            *string `json:"full_name,omitempty"`
	Password            *string `json:"password,omitempty"`
	Role                *string `json:"role,omitempty"`
	Department          *string `json:"department,omitempty"`
	ClearanceDepartment *string `json:"clearance_department,omitempty"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	in := ports.UpdateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}
	if req.Department != nil {
		dept := domain.Department(*req.Department)
		in.Department = &dept
	}
	if req.ClearanceDepartment != nil {
		dept := domain.ClearanceDepartment(*req.ClearanceDepartment)
		in.ClearanceDepartment = &dept
	}

	user, err := h.userService.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UsernameFromContext(r.Context())
	user, err := h.userService.Delete(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User deleted",
		"user":    user,
	})
}
