package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/adityanegi/portfolio/backend/internal/handler/admin"
	"github.com/adityanegi/portfolio/backend/internal/handler/aichat"
	portfoliohandler "github.com/adityanegi/portfolio/backend/internal/handler/portfolio"
	middlewarePkg "github.com/adityanegi/portfolio/backend/internal/middleware"
	"github.com/adityanegi/portfolio/backend/internal/service/ai"
	portfolioservice "github.com/adityanegi/portfolio/backend/internal/service/portfolio"
)

// NewRouter wires HTTP routes to core services. sessions and reviewer may
// be nil when no completion model is configured.
func NewRouter(svc *portfolioservice.Service, feed *portfoliohandler.Feed, sessions *ai.SessionManager, reviewer *ai.Reviewer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	portfolioHandler := portfoliohandler.New(svc, feed)
	adminHandler := admin.New(svc)
	aiHandler := aichat.New(sessions, reviewer)

	r.Route("/api", func(api chi.Router) {
		portfolioHandler.RegisterRoutes(api)
		adminHandler.RegisterRoutes(api)
		aiHandler.RegisterRoutes(api)
	})

	// Health check
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Portfolio backend is running."))
	})

	return r
}
