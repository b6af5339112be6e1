package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/adityanegi/portfolio/backend/internal/config"
	"github.com/adityanegi/portfolio/backend/internal/handler"
	portfoliohandler "github.com/adityanegi/portfolio/backend/internal/handler/portfolio"
	portfoliomodel "github.com/adityanegi/portfolio/backend/internal/model/portfolio"
	"github.com/adityanegi/portfolio/backend/internal/service/ai"
	portfolioservice "github.com/adityanegi/portfolio/backend/internal/service/portfolio"
	"github.com/adityanegi/portfolio/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	profile, err := portfoliomodel.Seed()
	if err != nil {
		log.Fatalf("failed to load profile seed: %v", err)
	}

	st, err := store.OpenSQLite(cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open store %s: %v", cfg.Store.Path, err)
	}
	defer st.Close()

	svc := portfolioservice.NewService(st, profile, cfg.Admin.Secret)
	feed := portfoliohandler.NewFeed(svc)

	// Initialize AI service
	var sessions *ai.SessionManager
	var reviewer *ai.Reviewer
	if cfg.AI.Enabled() {
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize chat model: %v", err)
			log.Println("continuing without AI functionality")
		} else {
			prompts, err := ai.NewPromptSet(profile)
			if err != nil {
				log.Fatalf("failed to build prompt set: %v", err)
			}
			aiService, err := ai.NewService(ctx, chatModel, prompts)
			if err != nil {
				log.Printf("warning: failed to initialize AI service: %v", err)
				log.Println("continuing without AI functionality")
			} else {
				sessions = ai.NewSessionManager(aiService)
				reviewer = ai.NewReviewer(aiService)
				log.Println("AI service initialized successfully")
			}
		}
	} else {
		log.Println("Ark credentials not configured, skipping AI initialization")
	}

	router := handler.NewRouter(svc, feed, sessions, reviewer)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Portfolio backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
