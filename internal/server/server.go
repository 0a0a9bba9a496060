package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lessensdelharmonie/harmonie/internal/api/handlers"
	"github.com/lessensdelharmonie/harmonie/internal/config"
	"github.com/lessensdelharmonie/harmonie/internal/logging"
	"github.com/lessensdelharmonie/harmonie/internal/server/routes"
	"github.com/lessensdelharmonie/harmonie/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// NewServer creates a new server instance with every route registered
func NewServer(cfg *config.Config, logger *logging.Logger, contactService *service.ContactService) *Server {
	// Release mode everywhere: gin's own console output is replaced by RequestLogger
	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	opts := &routes.Options{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Production:     cfg.IsProduction(),
		MetricsEnabled: cfg.MetricsEnabled,
	}

	routes.SetupGlobalMiddleware(router, opts)
	routes.Setup(router, &routes.Handlers{
		Contact: handlers.NewContactHandler(contactService, logger),
		Health:  handlers.NewHealthHandler(),
	}, opts)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return routes.TrimTrailingSlash(s.router)
}

// Start serves HTTP until ctx is cancelled, then drains in-flight requests
// for at most the configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Start on an existing listener
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening on %s", listener.Addr())
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}
