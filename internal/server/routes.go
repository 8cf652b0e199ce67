package server

import "github.com/go-chi/chi/v5"

// SetupRoutes registers the API routes.
func SetupRoutes(router chi.Router, h *Handlers) {
	router.Route("/api", func(r chi.Router) {
		r.Post("/connect", h.Connect)
		r.Get("/databases", h.Databases)
		r.Get("/tables/{database}", h.Tables)
		r.Post("/query", h.Query)
		r.Get("/table-data/{database}/{table}", h.TableData)
	})
}
