package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skintrack/skin-ledger-backend/internal/api"
	"github.com/skintrack/skin-ledger-backend/internal/catalog"
	"github.com/skintrack/skin-ledger-backend/internal/config"
	"github.com/skintrack/skin-ledger-backend/internal/database"
	"github.com/skintrack/skin-ledger-backend/internal/repository"
	"github.com/skintrack/skin-ledger-backend/internal/scheduler"
	"github.com/skintrack/skin-ledger-backend/internal/secrets"
	"github.com/skintrack/skin-ledger-backend/internal/service"
	"github.com/skintrack/skin-ledger-backend/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Load both ledgers and the counters into memory
	ledger := store.New(db)
	if err := ledger.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load ledger: %v", err)
	}

	// Load the category table
	catalogTable, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Optional fernet codec for the stored market token
	var codec *secrets.Codec
	if cfg.Secrets.FernetKey != "" {
		codec, err = secrets.NewCodec(cfg.Secrets.FernetKey)
		if err != nil {
			log.Fatalf("Failed to initialize secret codec: %v", err)
		}
	}

	// Create repositories
	analyticsRepo := repository.NewAnalyticsRepository(db)
	mappingRepo := repository.NewMappingRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create services
	systemService := service.NewSystemService(db, settingsRepo, codec)
	inventoryService := service.NewInventoryService(ledger)
	queryService := service.NewQueryService(ledger, catalogTable)
	financeService := service.NewFinanceService(ledger, settingsRepo)
	statsService := service.NewStatsService(ledger, analyticsRepo)
	catalogService := service.NewCatalogService(mappingRepo, ledger)

	// Seed the investment counters once on a fresh ledger
	if cfg.Finance.InitialInvestment > 0 {
		seeded, err := financeService.SeedInitialInvestment(context.Background(), cfg.Finance.InitialInvestment)
		if err != nil {
			log.Fatalf("Failed to seed initial investment: %v", err)
		}
		if seeded {
			log.Printf("Seeded initial investment: %.2f", cfg.Finance.InitialInvestment)
		}
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Inventory: inventoryService,
		Query:     queryService,
		Finance:   financeService,
		Stats:     statsService,
		Catalog:   catalogService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background jobs: cooling refresh and analytics snapshots
	sched := scheduler.New(inventoryService, statsService)
	if err := sched.Start(cfg.Scheduler); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		log.Println("Shutting down server...")
		sched.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server exited")
}
