package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Greggwolin/landscape-sub003/internal/api/handlers"
	custommiddleware "github.com/Greggwolin/landscape-sub003/internal/api/middleware"
	"github.com/Greggwolin/landscape-sub003/internal/config"
	"github.com/Greggwolin/landscape-sub003/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	projectService *service.ProjectService,
	cashFlowService *service.CashFlowService,
	waterfallService *service.WaterfallService,
	materializedService *service.MaterializedService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	projectHandler := handlers.NewProjectHandler(projectService)
	cashFlowHandler := handlers.NewCashFlowHandler(cashFlowService)
	waterfallHandler := handlers.NewWaterfallHandler(waterfallService, materializedService)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)

			// Full refresh is internal-only
			r.With(custommiddleware.APIKeyMiddleware).
				Post("/materialized/refresh", waterfallHandler.RefreshAllMaterialized)
		})

		r.Route("/project", func(r chi.Router) {
			r.Get("/", projectHandler.Projects)
			r.Post("/", projectHandler.CreateProject)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)

				r.Get("/", projectHandler.GetProject)
				r.Put("/", projectHandler.UpdateProject)
				r.Delete("/", projectHandler.DeleteProject)

				r.Get("/tiers", projectHandler.Tiers)
				r.Put("/tiers", projectHandler.ReplaceTiers)

				r.Get("/cashflow", cashFlowHandler.CashFlowsPerProject)
				r.Post("/cashflow", cashFlowHandler.CreateCashFlow)

				r.Get("/waterfall", waterfallHandler.Waterfall)
				r.Get("/waterfall/materialized", waterfallHandler.MaterializedPeriods)
				r.Post("/waterfall/materialized/refresh", waterfallHandler.RefreshMaterialized)
			})
		})

		r.Route("/cashflow/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)

			r.Put("/", cashFlowHandler.UpdateCashFlow)
			r.Delete("/", cashFlowHandler.DeleteCashFlow)
		})
	})

	return r
}
