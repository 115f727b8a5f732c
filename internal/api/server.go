// Package api provides the HTTP REST API for VRISA Core.
//
// It exposes the environmental monitoring resources (institutes, stations,
// devices, alerts, colors, registrations), user accounts, and login to web
// and mobile clients.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vrisa-dev/vrisa-core/internal/auth"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/config"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/database"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/logging"
	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config config.APIConfig
	Logger *logging.Logger
	DB     *database.DB
	Tokens *auth.TokenService

	Users         auth.UserRepository
	Institutes    monitoring.InstituteRepository
	Stations      monitoring.StationRepository
	Devices       monitoring.DeviceRepository
	Alerts        monitoring.AlertRepository
	Colors        monitoring.ColorRepository
	Access        monitoring.AccessRepository
	Registrations monitoring.RegistrationRepository

	Version string
}

// Server is the HTTP API server for VRISA Core.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg    config.APIConfig
	logger *logging.Logger
	db     *database.DB
	tokens *auth.TokenService

	userRepo      auth.UserRepository
	institutes    monitoring.InstituteRepository
	stations      monitoring.StationRepository
	devices       monitoring.DeviceRepository
	alerts        monitoring.AlertRepository
	colors        monitoring.ColorRepository
	access        monitoring.AccessRepository
	registrations monitoring.RegistrationRepository

	version string
	server  *http.Server
}

// New creates a new API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Tokens == nil {
		return nil, fmt.Errorf("token service is required")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}

	return &Server{
		cfg:           deps.Config,
		logger:        deps.Logger,
		db:            deps.DB,
		tokens:        deps.Tokens,
		userRepo:      deps.Users,
		institutes:    deps.Institutes,
		stations:      deps.Stations,
		devices:       deps.Devices,
		alerts:        deps.Alerts,
		colors:        deps.Colors,
		access:        deps.Access,
		registrations: deps.Registrations,
		version:       deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It builds the router and launches the HTTP listener in a background
// goroutine. The server can be stopped with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	s.logger.Info("API server listening", "address", s.server.Addr)
	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
