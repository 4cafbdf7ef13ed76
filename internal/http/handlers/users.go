package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gracepoint-dev/church-admin-be/internal/auth"
	"github.com/gracepoint-dev/church-admin-be/internal/http/respond"
	"github.com/gracepoint-dev/church-admin-be/internal/models"
	"github.com/gracepoint-dev/church-admin-be/internal/models/dto"
	"github.com/gracepoint-dev/church-admin-be/internal/storage"
)

// userView is the listing shape: everything except the id and password hash.
type userView struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
}

// UsersHandler owns the administrative user endpoints.
type UsersHandler struct {
	store storage.UserStore
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(store storage.UserStore) *UsersHandler {
	return &UsersHandler{store: store}
}

// Register attaches user routes behind the regional_admin guard.
func (h *UsersHandler) Register(mux *http.ServeMux, guard Guard) {
	mux.Handle("/users", guard(models.RoleRegionalAdmin, h.handleUsers))
}

func (h *UsersHandler) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *UsersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("list users: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{
			Username:    u.Username,
			Role:        u.Role,
			FullName:    u.FullName,
			PhoneNumber: u.PhoneNumber,
			Email:       u.Email,
			Gender:      u.Gender,
		})
	}
	respond.JSON(w, http.StatusOK, map[string]any{"users": views})
}

func (h *UsersHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || strings.TrimSpace(req.Role) == "" {
		respond.Error(w, http.StatusBadRequest, "Missing user data")
		return
	}
	role := strings.TrimSpace(req.Role)
	if !models.ValidRole(role) {
		respond.Error(w, http.StatusBadRequest, "Unknown role: "+role)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("hash password for %q: %v", username, err)
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		Gender:       req.Gender,
	}
	if _, err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusConflict, "Username already exists")
			return
		}
		log.Printf("create user %q: %v", username, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully!",
		"user":    dto.UserInfo{Username: username, Role: role},
	})
}
