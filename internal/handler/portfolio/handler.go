package portfolio

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	portfolioservice "github.com/adityanegi/portfolio/backend/internal/service/portfolio"
	"github.com/adityanegi/portfolio/backend/pkg/utils"
)

// Handler serves the public read surface, the visitor counter and the
// contact form.
type Handler struct {
	svc  *portfolioservice.Service
	feed *Feed
}

// New creates the public portfolio handler. feed may be nil when the live
// visitor feed is not wanted (tests mostly).
func New(svc *portfolioservice.Service, feed *Feed) *Handler {
	return &Handler{svc: svc, feed: feed}
}

// RegisterRoutes mounts the public routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/projects", h.handleListProjects)
	r.Get("/experience", h.handleExperience)
	r.Get("/skills", h.handleSkills)
	r.Get("/profile", h.handleProfile)
	r.Get("/visitors", h.handleVisitorCount)
	r.Post("/visitors", h.handleIncrementVisitors)
	r.Post("/contact", h.handleContact)
	if h.feed != nil {
		r.Get("/visitors/live", h.feed.HandleLive)
	}
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.Projects(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load projects")
		return
	}
	utils.RespondJSON(w, http.StatusOK, projects)
}

func (h *Handler) handleExperience(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.Experience())
}

func (h *Handler) handleSkills(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.Skills())
}

func (h *Handler) handleProfile(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.Profile())
}

func (h *Handler) handleVisitorCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.VisitorCount(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load visitor count")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) handleIncrementVisitors(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.IncrementVisitors(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to update visitor count")
		return
	}
	if h.feed != nil {
		h.feed.Broadcast(count)
	}
	utils.RespondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Name == "" || payload.Email == "" || payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	// There is no mail integration; submissions land in the server log.
	log.Printf("[contact] new submission from %s <%s>: %s", payload.Name, payload.Email, payload.Message)

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Thank you for reaching out! I will get back to you soon.",
	})
}
