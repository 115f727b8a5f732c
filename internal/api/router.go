package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// buildRouter creates the HTTP router with all routes and middleware.
//
// Reads on monitoring resources are open; writes require a bearer identity.
// The users collection stays fully open so new accounts can self-register.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware. StripSlashes accepts the trailing-slash URL style
	// existing clients send (/api/stations/ and /api/stations both work).
	r.Use(middleware.StripSlashes)
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints
		r.Post("/auth/login", s.handleLogin)

		// User accounts: fully open, self-registration path
		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)
			r.Get("/{id}", s.handleGetUser)
			r.Put("/{id}", s.handleUpdateUser)
			r.Patch("/{id}", s.handleUpdateUser)
			r.Delete("/{id}", s.handleDeleteUser)
		})

		r.Route("/institutes", func(r chi.Router) {
			r.Get("/", s.handleListInstitutes)
			r.Get("/{id}", s.handleGetInstitute)
			r.Group(func(r chi.Router) {
				r.Use(s.requireUser)
				r.Post("/", s.handleCreateInstitute)
				r.Put("/{id}", s.handleUpdateInstitute)
				r.Patch("/{id}", s.handleUpdateInstitute)
				r.Delete("/{id}", s.handleDeleteInstitute)
			})
		})

		r.Route("/stations", func(r chi.Router) {
			r.Get("/", s.handleListStations)
			r.Get("/{id}", s.handleGetStation)
			r.Group(func(r chi.Router) {
				r.Use(s.requireUser)
				r.Post("/", s.handleCreateStation)
				r.Put("/{id}", s.handleUpdateStation)
				r.Patch("/{id}", s.handleUpdateStation)
				r.Delete("/{id}", s.handleDeleteStation)
			})
		})

		r.Route("/devices", func(r chi.Router) {
			r.Get("/", s.handleListDevices)
			r.Get("/{id}", s.handleGetDevice)
			r.Group(func(r chi.Router) {
				r.Use(s.requireUser)
				r.Post("/", s.handleCreateDevice)
				r.Put("/{id}", s.handleUpdateDevice)
				r.Patch("/{id}", s.handleUpdateDevice)
				r.Delete("/{id}", s.handleDeleteDevice)
			})
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", s.handleListAlerts)
			r.Get("/{id}", s.handleGetAlert)
			r.Group(func(r chi.Router) {
				r.Use(s.requireUser)
				r.Post("/", s.handleCreateAlert)
				r.Put("/{id}", s.handleUpdateAlert)
				r.Patch("/{id}", s.handleUpdateAlert)
				r.Delete("/{id}", s.handleDeleteAlert)
			})
		})

		r.Route("/colors", func(r chi.Router) {
			r.Get("/", s.handleListColors)
			r.Get("/{id}", s.handleGetColor)
			r.Group(func(r chi.Router) {
				r.Use(s.requireUser)
				r.Post("/", s.handleCreateColor)
				r.Put("/{id}", s.handleUpdateColor)
				r.Patch("/{id}", s.handleUpdateColor)
				r.Delete("/{id}", s.handleDeleteColor)
			})
		})

		r.Route("/access", func(r chi.Router) {
			r.Get("/", s.handleListAccess)
			r.Group(func(r chi.Router) {
				r.Use(s.requireUser)
				r.Post("/", s.handleGrantAccess)
				r.Delete("/{userID}", s.handleRevokeAccess)
			})
		})

		r.Route("/user-register-institute", func(r chi.Router) {
			r.Get("/", s.handleListInstituteRegistrations)
			r.Get("/{id}", s.handleGetInstituteRegistration)
			r.Group(func(r chi.Router) {
				r.Use(s.requireUser)
				r.Post("/", s.handleCreateInstituteRegistration)
				r.Delete("/{id}", s.handleDeleteInstituteRegistration)
			})
		})

		r.Route("/user-register-station", func(r chi.Router) {
			r.Get("/", s.handleListStationRegistrations)
			r.Get("/{id}", s.handleGetStationRegistration)
			r.Group(func(r chi.Router) {
				r.Use(s.requireUser)
				r.Post("/", s.handleCreateStationRegistration)
				r.Delete("/{id}", s.handleDeleteStationRegistration)
			})
		})
	})

	return r
}

// handleHealth returns the server health status, including the datastore.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			writeUnavailable(w, "datastore unavailable")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
