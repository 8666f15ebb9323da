package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)

		// Device endpoints
		r.Route("/devices", func(r chi.Router) {
			r.Get("/", s.handleListDevices)
			r.Post("/", s.handleCreateDevice)
			r.Get("/stats", s.handleDeviceStats)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDevice)
				r.Delete("/", s.handleDeleteDevice)
				r.Get("/state", s.handleGetDeviceState)
				r.Patch("/state", s.handleUpdateDeviceState)
				r.Post("/unlock", s.handleUnlockDevice)
				r.Put("/temperature", s.handleSetTemperature)
			})
		})

		// Hub endpoints (single-hub model)
		r.Route("/hub", func(r chi.Router) {
			r.Post("/", s.handleCreateHub)
			r.Get("/", s.handleGetHub)

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", s.handleListHubDevices)
				r.Put("/{id}", s.handlePairDevice)
				r.Delete("/{id}", s.handleUnpairDevice)
				r.Get("/{id}/state", s.handleHubDeviceState)
			})
		})

		// Dwelling endpoints
		r.Route("/dwellings", func(r chi.Router) {
			r.Get("/", s.handleListDwellings)
			r.Post("/", s.handleCreateDwelling)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDwelling)
				r.Put("/occupancy", s.handleSetOccupancy)
				r.Put("/hub", s.handleInstallHub)
				r.Delete("/hub", s.handleRemoveHub)
			})
		})

		// Audit trail
		r.Get("/audit", s.handleListAudit)

		// WebSocket event stream
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
