package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracker/catalog"
	"tracker/config"
	"tracker/controllers"
	"tracker/jobs"
	"tracker/routes"
	"tracker/services"
	"tracker/services/logger"
	"tracker/templates"
	"tracker/utils"
)

const (
	documentCacheTTL = 10 * time.Minute
	viewSnapshotTTL  = 24 * time.Hour
)

func main() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	appLogger := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))

	clock, err := utils.NewClock(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid timezone %q: %v", cfg.Timezone, err)
	}

	checklist, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	router, m, c, err := config.InitApp(ctx, cfg, clock.Location())
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	tmpl, err := templates.Load()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	router.SetHTMLTemplate(tmpl)

	var store services.DocumentStore
	if cfg.StoreDriver == "postgres" {
		gormStore := services.NewGormDocumentStore(config.DB)
		if err := gormStore.AutoMigrate(); err != nil {
			log.Fatalf("Failed to migrate tables: %v", err)
		}
		store = gormStore
	} else {
		store = services.NewMemoryDocumentStore()
	}

	var (
		ui        services.UIStateStore
		snapshots services.ViewSnapshotStore
		revoked   services.RevocationStore
	)
	if cfg.UseRedis() {
		store = services.NewCachedDocumentStore(store, config.RedisClient, documentCacheTTL, appLogger)
		redisState := services.NewRedisUIState(config.RedisClient, cfg.SessionTTL, viewSnapshotTTL)
		ui, snapshots, revoked = redisState, redisState, redisState
	} else {
		memState := services.NewMemoryUIState()
		ui, snapshots, revoked = memState, memState, memState
	}

	hub := services.NewEventHub(appLogger)
	authService := services.NewAuthService(services.AuthServiceOptions{
		Verifier: services.NewGoogleVerifier(cfg.GoogleClientID),
		Tokens:   services.NewTokenIssuer(cfg.SecretKey, cfg.SessionTTL),
		Revoked:  revoked,
		UI:       ui,
		Events:   hub,
		Logger:   appLogger,
	})
	trackerService := services.NewTrackerService(services.TrackerServiceOptions{
		Store:  store,
		Clock:  clock,
		Logger: appLogger,
	})

	trackerController := controllers.NewTrackerController(controllers.TrackerControllerOptions{
		Tracker:   trackerService,
		Binder:    services.NewViewBinder(checklist),
		UI:        ui,
		Snapshots: snapshots,
		Events:    hub,
		Logger:    appLogger,
	})

	routes.SetupRoutes(router, routes.Controllers{
		Auth:     controllers.NewAuthController(authService, trackerController, cfg.Env == "prod", appLogger),
		Tracker:  trackerController,
		Socket:   controllers.NewSocketController(m, authService, appLogger),
		Page:     controllers.NewPageController(trackerController, cfg.GoogleClientID),
		Resolver: authService,
	})

	if err := jobs.InitCronJobs(c, hub, appLogger); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	done := make(chan struct{})
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()

		<-c.Stop().Done()
		if err := m.Close(); err != nil {
			log.Printf("Error closing websocket sessions: %v", err)
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		close(done)
	}()

	log.Println("Server starting on port " + cfg.Port + "...")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}

	<-done
	log.Println("Server stopped")
}
