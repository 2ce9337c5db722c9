package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skintrack/skin-ledger-backend/internal/api/handlers"
	custommiddleware "github.com/skintrack/skin-ledger-backend/internal/api/middleware"
	"github.com/skintrack/skin-ledger-backend/internal/config"
	"github.com/skintrack/skin-ledger-backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System    *service.SystemService
	Inventory *service.InventoryService
	Query     *service.QueryService
	Finance   *service.FinanceService
	Stats     *service.StatsService
	Catalog   *service.CatalogService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Get("/market-token", systemHandler.MarketTokenStatus)
			r.With(custommiddleware.APIKeyMiddleware).Put("/market-token", systemHandler.SetMarketToken)
		})

		r.Route("/item", func(r chi.Router) {
			itemHandler := handlers.NewItemHandler(svcs.Inventory, svcs.Query, svcs.Catalog)
			r.Get("/", itemHandler.Items)
			r.Get("/archive", itemHandler.SoldItems)
			r.With(custommiddleware.APIKeyMiddleware).Post("/", itemHandler.CreateItem)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateItemIDMiddleware)
				r.Get("/", itemHandler.GetItem)
				r.Get("/can-sell", itemHandler.CanSell)
				r.With(custommiddleware.APIKeyMiddleware).Post("/sell", itemHandler.SellItem)
				r.With(custommiddleware.APIKeyMiddleware).Put("/price", itemHandler.UpdatePrice)
			})
		})

		r.Route("/finance", func(r chi.Router) {
			financeHandler := handlers.NewFinanceHandler(svcs.Finance)
			r.Get("/", financeHandler.Counters)
			r.With(custommiddleware.APIKeyMiddleware).Post("/investment", financeHandler.AdjustInvestment)
			r.With(custommiddleware.APIKeyMiddleware).Post("/fee", financeHandler.AddFee)
		})

		statsHandler := handlers.NewStatsHandler(svcs.Stats)
		r.Get("/stats", statsHandler.Stats)
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/", statsHandler.Analytics)
			r.With(custommiddleware.APIKeyMiddleware).Post("/snapshot", statsHandler.RecordSnapshot)
		})

		r.Route("/catalog", func(r chi.Router) {
			catalogHandler := handlers.NewCatalogHandler(svcs.Catalog)
			r.Get("/{mappingId}", catalogHandler.GetMapping)
			r.With(custommiddleware.APIKeyMiddleware).Put("/{mappingId}/price", catalogHandler.UpdateMappingPrice)
		})

		r.Route("/maintenance", func(r chi.Router) {
			itemHandler := handlers.NewItemHandler(svcs.Inventory, svcs.Query, svcs.Catalog)
			r.With(custommiddleware.APIKeyMiddleware).Post("/refresh-cooling", itemHandler.RefreshCooling)
		})
	})

	return r
}
