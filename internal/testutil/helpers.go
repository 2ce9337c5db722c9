package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/skintrack/skin-ledger-backend/internal/catalog"
	"github.com/skintrack/skin-ledger-backend/internal/repository"
	"github.com/skintrack/skin-ledger-backend/internal/service"
	"github.com/skintrack/skin-ledger-backend/internal/store"
)

// Engine bundles a loaded ledger store and the services built over it, so a
// test can exercise the full path from service call to SQLite row.
type Engine struct {
	Store     *store.LedgerStore
	Inventory *service.InventoryService
	Query     *service.QueryService
	Finance   *service.FinanceService
	Stats     *service.StatsService
	Catalog   *service.CatalogService
}

// NewTestEngine loads the ledger from db and wires every service over it.
// Seed rows with the builders before calling this; the store caches on load.
func NewTestEngine(t *testing.T, db *sql.DB) *Engine {
	t.Helper()

	ledger := store.New(db)
	if err := ledger.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load ledger store: %v", err)
	}

	analyticsRepo := repository.NewAnalyticsRepository(db)
	mappingRepo := repository.NewMappingRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	return &Engine{
		Store:     ledger,
		Inventory: service.NewInventoryService(ledger),
		Query:     service.NewQueryService(ledger, catalog.Default()),
		Finance:   service.NewFinanceService(ledger, settingsRepo),
		Stats:     service.NewStatsService(ledger, analyticsRepo),
		Catalog:   service.NewCatalogService(mappingRepo, ledger),
	}
}

// MustTime parses a "2006-01-02 15:04:05" timestamp or fails the test.
func MustTime(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.UTC)
	if err != nil {
		t.Fatalf("Failed to parse time %q: %v", value, err)
	}
	return parsed
}
