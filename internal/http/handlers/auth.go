package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gracepoint-dev/church-admin-be/internal/auth"
	"github.com/gracepoint-dev/church-admin-be/internal/http/respond"
	"github.com/gracepoint-dev/church-admin-be/internal/models/dto"
	"github.com/gracepoint-dev/church-admin-be/internal/storage"
)

// Guard wraps a handler with authentication and a role requirement. The
// server supplies the concrete middleware composition.
type Guard func(role string, next http.HandlerFunc) http.Handler

// AuthHandler owns the login endpoint.
type AuthHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Register attaches the unauthenticated login route to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.handleLogin)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.store.FindByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Printf("login: fetch user %q: %v", req.Username, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		respond.Error(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		log.Printf("login: issue token for %q: %v", user.Username, err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    dto.UserInfo{Username: user.Username, Role: user.Role},
	})
}
