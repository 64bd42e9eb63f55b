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

	"github.com/spicebox/waitlist-api/internal/adapters/brevo"
	"github.com/spicebox/waitlist-api/internal/adapters/httpapi"
	memidentityrepo "github.com/spicebox/waitlist-api/internal/adapters/memory/identityrepo"
	memprofilerepo "github.com/spicebox/waitlist-api/internal/adapters/memory/profilerepo"
	postgres "github.com/spicebox/waitlist-api/internal/adapters/postgres"
	pgidentityrepo "github.com/spicebox/waitlist-api/internal/adapters/postgres/identityrepo"
	"github.com/spicebox/waitlist-api/internal/adapters/postgres/migrations"
	pgprofilerepo "github.com/spicebox/waitlist-api/internal/adapters/postgres/profilerepo"
	"github.com/spicebox/waitlist-api/internal/app/waitlist"
	platformclock "github.com/spicebox/waitlist-api/internal/platform/clock"
	"github.com/spicebox/waitlist-api/internal/platform/config"
	identityrepoport "github.com/spicebox/waitlist-api/internal/ports/out/identityrepo"
	notifierport "github.com/spicebox/waitlist-api/internal/ports/out/notifier"
	profilerepoport "github.com/spicebox/waitlist-api/internal/ports/out/profilerepo"
)

func main() {
	// Local dev: a .env file is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring .env: %v", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("invalid option catalog: %v", err)
	}

	var (
		identities identityrepoport.Repository
		profiles   profilerepoport.Repository
		cleanup    func()
	)

	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		pool, err := postgres.NewPool(startCtx, cfg.Storage.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			cancel()
			log.Fatalf("invalid postgres config: %v", err)
		}
		if err := migrations.Apply(startCtx, pool); err != nil {
			cancel()
			pool.Close()
			log.Fatalf("apply schema: %v", err)
		}
		cancel()
		cleanup = pool.Close

		identities = pgidentityrepo.NewRepo(pool)
		profiles = pgprofilerepo.NewRepo(pool)
	default:
		log.Printf("using in-memory storage; submissions are lost on restart")
		identities = memidentityrepo.NewRepo()
		profiles = memprofilerepo.NewRepo()
	}

	if cleanup != nil {
		defer cleanup()
	}

	var mailer notifierport.Notifier = brevo.Disabled{}
	if cfg.Email.Enabled() {
		mailer = brevo.NewClient(cfg.Email, nil)
	} else {
		log.Printf("BREVO_API_KEY not set; confirmation emails are disabled")
	}

	svc := waitlist.NewService(
		identities,
		profiles,
		mailer,
		platformclock.NewSystemClock(),
		waitlist.NewSchema(catalog.DietaryPreferences, catalog.HeardFrom),
	)
	svc.NotifyTimeout = cfg.NotifyTimeout

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(httpapi.NewServer(svc)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("api listening on :%s (storage=%s)", cfg.Port, cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.NotifyTimeout+5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
