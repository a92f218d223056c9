package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/londonslush-leads/internal/infra/http/handlers"
	"github.com/xavierca1/londonslush-leads/internal/infra/http/middleware"
)

type routerDeps struct {
	Lead           *handlers.LeadHandler
	ThankYou       *handlers.ThankYouHandler
	Export         *handlers.ExportHandler
	AdminLeads     *handlers.AdminLeadsHandler
	Health         *handlers.HealthHandler
	AllowedOrigins []string
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	r.Get("/health", d.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/submit-retail", d.Lead.SubmitRetail)
	r.Post("/api/submit-distributor", d.Lead.SubmitDistributor)
	r.Get("/thank-you", d.ThankYou.Handle)

	r.Get("/admin/leads", d.AdminLeads.Handle)
	r.Get("/admin/leads/export", d.Export.Handle)

	return r
}
