package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	model "github.com/adityanegi/portfolio/backend/internal/model/portfolio"
	portfolioservice "github.com/adityanegi/portfolio/backend/internal/service/portfolio"
	"github.com/adityanegi/portfolio/backend/pkg/utils"
)

// Handler gates the management surface behind the shared admin secret.
// Tokens issued at login live in memory; restarting the server logs every
// admin out.
type Handler struct {
	svc *portfolioservice.Service

	mu     sync.Mutex
	tokens map[string]struct{}
}

// New creates the admin handler.
func New(svc *portfolioservice.Service) *Handler {
	return &Handler{svc: svc, tokens: make(map[string]struct{})}
}

// RegisterRoutes mounts login plus the token-guarded project mutations.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/admin/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(h.requireToken)
		r.Post("/projects", h.handleCreateProject)
		r.Put("/projects/{id}", h.handleUpdateProject)
		r.Delete("/projects/{id}", h.handleDeleteProject)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.svc.CheckAdminSecret(payload.Password) {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token := uuid.NewString()
	h.mu.Lock()
	h.tokens[token] = struct{}{}
	h.mu.Unlock()

	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			utils.RespondError(w, http.StatusUnauthorized, "missing admin token")
			return
		}

		h.mu.Lock()
		_, valid := h.tokens[token]
		h.mu.Unlock()
		if !valid {
			utils.RespondError(w, http.StatusUnauthorized, "invalid admin token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var draft model.ProjectDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateProject(r.Context(), draft)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "project": created})
}

func (h *Handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var patch model.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateProject(r.Context(), chi.URLParam(r, "id"), patch)
	if errors.Is(err, portfolioservice.ErrProjectNotFound) {
		utils.RespondError(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to update project")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "project": updated})
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Project deleted"})
}
