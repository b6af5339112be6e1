package aichat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adityanegi/portfolio/backend/internal/model/chat"
	"github.com/adityanegi/portfolio/backend/internal/service/ai"
	"github.com/adityanegi/portfolio/backend/pkg/utils"
)

// connectionErrorReply is shown whenever the completion service cannot
// answer; the chat endpoint never surfaces a raw error to the visitor.
const connectionErrorReply = "Sorry, I encountered a connection error. Please try again later."

// Handler exposes the assistant chat and the one-shot resume review.
type Handler struct {
	sessions *ai.SessionManager
	reviewer *ai.Reviewer
}

// New creates the AI handler. Both collaborators may be nil when the model
// is not configured; the endpoints then degrade to their fallback strings.
func New(sessions *ai.SessionManager, reviewer *ai.Reviewer) *Handler {
	return &Handler{sessions: sessions, reviewer: reviewer}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/resume-review", h.handleResumeReview)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
		Mode    string `json:"mode"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	mode, err := chat.ParseMode(payload.Mode)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.sessions == nil {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"response": connectionErrorReply})
		return
	}

	reply, err := h.sessions.Send(r.Context(), payload.Message, mode)
	if err != nil {
		log.Printf("[chat] completion failed: %v", err)
		utils.RespondJSON(w, http.StatusOK, map[string]string{"response": connectionErrorReply})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"response": reply.Text})
}

// resumeReviewRequest accepts the union body shape: "input" is either a
// plain string or an object carrying an uploaded file.
type resumeReviewRequest struct {
	Input json.RawMessage `json:"input"`
}

func (h *Handler) handleResumeReview(w http.ResponseWriter, r *http.Request) {
	var payload resumeReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload.Input) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := classifyInput(payload.Input)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.reviewer == nil {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"response": ai.ReviewFallback})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"response": h.reviewer.Review(r.Context(), input),
	})
}

func classifyInput(raw json.RawMessage) (ai.ReviewInput, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return ai.ReviewInput{Text: text}, nil
	}

	var file struct {
		MIMEType string `json:"mimeType"`
		Data     string `json:"data"`
	}
	if err := json.Unmarshal(raw, &file); err != nil || file.MIMEType == "" || file.Data == "" {
		return ai.ReviewInput{}, errInvalidReviewInput
	}
	return ai.ReviewInput{MIMEType: file.MIMEType, Data: file.Data}, nil
}

var errInvalidReviewInput = errors.New("input must be a string or a {mimeType, data} object")
