package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gracepoint-dev/church-admin-be/internal/http/respond"
	"github.com/gracepoint-dev/church-admin-be/internal/models"
	"github.com/gracepoint-dev/church-admin-be/internal/models/dto"
	"github.com/gracepoint-dev/church-admin-be/internal/storage"
)

// ProjectsHandler owns the administrative fundraising-project endpoints.
type ProjectsHandler struct {
	store storage.ProjectStore
}

// NewProjectsHandler constructs the handler.
func NewProjectsHandler(store storage.ProjectStore) *ProjectsHandler {
	return &ProjectsHandler{store: store}
}

// Register attaches project routes behind the regional_admin guard.
func (h *ProjectsHandler) Register(mux *http.ServeMux, guard Guard) {
	mux.Handle("/projects", guard(models.RoleRegionalAdmin, h.handleProjects))
}

func (h *ProjectsHandler) handleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ProjectsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		log.Printf("list projects: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (h *ProjectsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.ProjectName)
	if name == "" || req.TargetAmount == nil || strings.TrimSpace(req.StartDate) == "" {
		respond.Error(w, http.StatusBadRequest, "Missing project data")
		return
	}

	project := models.Project{
		ProjectName:  name,
		TargetAmount: *req.TargetAmount,
		StartDate:    strings.TrimSpace(req.StartDate),
	}
	if _, err := h.store.CreateProject(r.Context(), project); err != nil {
		log.Printf("create project %q: %v", name, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message":      "Project created successfully!",
		"project_name": name,
	})
}
