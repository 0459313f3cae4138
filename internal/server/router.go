// internal/server/router.go
//
// Route table for the signup API.
//
// The requestinfo middleware runs first so every handler downstream can
// read the caller identity (rate limiting) and telemetry fields from
// the request context.  /metrics is mounted outside /api and serves the
// global Prometheus registry.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wowsites/platform/internal/middleware"
	"github.com/wowsites/platform/internal/requestinfo"
)

// NewRouter assembles the HTTP surface.
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)

	r.Route("/api", func(r chi.Router) {
		r.Get("/check-subdomain", h.checkSubdomain)
		r.Post("/create-site", h.createSite)
		r.Post("/update-deployment", h.updateDeployment)
		r.Get("/client/{clientId}", h.clientByID)
		r.Get("/client-status", h.clientStatus)
		r.Post("/contact-message", h.contactMessage)

		r.Route("/wizard", func(r chi.Router) {
			r.Post("/", h.wizardStart)
			r.Route("/{draftId}", func(r chi.Router) {
				r.Get("/", h.wizardGet)
				r.Put("/", h.wizardUpdate)
				r.Post("/next", h.wizardNext)
				r.Post("/back", h.wizardBack)
				r.Post("/submit", h.wizardSubmit)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	return r
}
