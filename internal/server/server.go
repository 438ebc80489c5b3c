package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/api"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/config"
)

// Server represents the HTTP server instance
type Server struct {
	echo   *echo.Echo
	config *config.Config
}

// New creates a new server instance with the provided configuration
func New(cfg *config.Config, balance *api.BalanceHandler, staking *api.StakingHandler, transfer *api.TransferHandler) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Configure middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	// Configure server timeouts
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.ReadHeaderTimeout = cfg.Server.ReadTimeout
	e.Server.IdleTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Initialize API routes
	api.RegisterRoutes(e, balance, staking, transfer)

	svr := &Server{
		echo:   e,
		config: cfg,
	}

	return svr, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.Server.Address()
	fmt.Printf("Starting HTTP server on %s\n", addr)

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server start failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	fmt.Println("Shutting down server...")

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	fmt.Println("Server exited")
	return nil
}

// Echo returns the underlying Echo instance for advanced configuration
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
