// Command clientprobe runs the embedded data access client against a
// backend, printing which path (remote or fallback) answered each read.
// Stop the backend mid-run to watch the client degrade without failing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/adityanegi/portfolio/backend/internal/config"
	"github.com/adityanegi/portfolio/backend/internal/dataaccess"
	portfoliomodel "github.com/adityanegi/portfolio/backend/internal/model/portfolio"
	"github.com/adityanegi/portfolio/backend/internal/remote"
	portfolioservice "github.com/adityanegi/portfolio/backend/internal/service/portfolio"
	"github.com/adityanegi/portfolio/backend/internal/service/visitor"
	"github.com/adityanegi/portfolio/backend/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] could not load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	watch := flag.Bool("watch", false, "keep polling the visitor count until interrupted")
	flag.Parse()

	profile, err := portfoliomodel.Seed()
	if err != nil {
		log.Fatalf("failed to load profile seed: %v", err)
	}

	local, err := store.OpenSQLite(cfg.Client.LocalDBPath)
	if err != nil {
		log.Fatalf("failed to open fallback store %s: %v", cfg.Client.LocalDBPath, err)
	}
	defer local.Close()

	fallback := portfolioservice.NewService(local, profile, cfg.Admin.Secret)
	facade := dataaccess.New(remote.NewClient(cfg.Client.BaseURL), fallback)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	projects, err := facade.FetchProjects(ctx)
	if err != nil {
		log.Fatalf("FetchProjects failed: %v", err)
	}
	fmt.Printf("projects: %d\n", len(projects))
	for _, p := range projects {
		fmt.Printf("  [%s] %s\n", p.ID, p.Title)
	}

	count, err := facade.IncrementVisitorCount(ctx)
	if err != nil {
		log.Fatalf("IncrementVisitorCount failed: %v", err)
	}
	fmt.Printf("visitor count after increment: %d\n", count)

	if !*watch {
		return
	}

	poller := visitor.NewPoller(facade, cfg.Client.PollInterval, func(n int) {
		log.Printf("[visitor] count=%d", n)
	})
	poller.Start(ctx)

	<-ctx.Done()
	time.Sleep(100 * time.Millisecond) // let in-flight polls log
}
