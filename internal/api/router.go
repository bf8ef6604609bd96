package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/pgha/statusapi/internal/api/handler"
	"github.com/pgha/statusapi/internal/api/middleware"
	"github.com/pgha/statusapi/internal/backup"
	"github.com/pgha/statusapi/internal/item"
	"github.com/pgha/statusapi/internal/metrics"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	AppName   string
	Version   string
	Pinger    handler.Pinger
	Repo      item.Repository
	Collector *metrics.Collector
	Backups   *backup.Aggregator
	Stanza    string
	Topology  handler.TopologyProvider
	AccessLog bool
}

// NewRouter creates and configures a Chi router with all middleware and
// routes. Database-backed routes are registered only when a pool was
// constructed; the status endpoints are always available so the service
// can report on a broken cluster.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	if deps.AccessLog {
		r.Use(chimiddleware.Logger)
	}

	healthHandler := handler.NewHealthHandler(deps.AppName, deps.Version, deps.Pinger)
	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	backupsHandler := handler.NewBackupsHandler(deps.Backups, deps.Stanza)
	r.Get("/backups", backupsHandler.Backups)

	if deps.Topology != nil {
		clusterHandler := handler.NewClusterHandler(deps.Topology)
		r.Get("/cluster", clusterHandler.Cluster)
	}

	if deps.Collector != nil {
		metricsHandler := handler.NewMetricsHandler(deps.Collector)
		r.Get("/metrics", metricsHandler.Metrics)
	}

	if deps.Repo != nil {
		itemsHandler := handler.NewItemsHandler(deps.Repo)
		r.Route("/items", func(r chi.Router) {
			r.Post("/", itemsHandler.Create)
			r.Get("/", itemsHandler.List)
			r.Get("/{id}", itemsHandler.GetByID)
			r.Put("/{id}", itemsHandler.Update)
			r.Delete("/{id}", itemsHandler.Delete)
		})
	}

	return r
}
