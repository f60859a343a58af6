package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-list/api"
	"task-list/api/middleware"
	"task-list/config"
	"task-list/logger"
	"task-list/tasks/service"
)

// Server wraps http.Server with graceful shutdown capabilities
type Server struct {
	httpServer *http.Server
	config     *config.Config
	logger     *logger.Logger
}

// New creates a new server with all HTTP configuration
func New(svc service.Service, cfg *config.Config, lg *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      NewRouter(svc, cfg, lg),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		config: cfg,
		logger: lg,
	}
}

// NewRouter creates the HTTP router with all routes and middleware
func NewRouter(svc service.Service, cfg *config.Config, lg *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", api.NewIndexHandler())
	mux.HandleFunc("GET /health", api.NewHealthHandler(cfg, svc, lg))

	mux.HandleFunc("POST /tasks", api.NewInsertHandler(svc, cfg.MaxBodyBytes, lg))
	mux.HandleFunc("GET /tasks", api.NewFindAllHandler(svc, lg))
	mux.HandleFunc("PUT /tasks", api.NewUpdateHandler(svc, cfg.MaxBodyBytes, lg))
	mux.HandleFunc("GET /tasks/{id}", api.NewFindByIDHandler(svc, lg))
	mux.HandleFunc("DELETE /tasks/{id}", api.NewDeleteHandler(svc, lg))

	return applyMiddleware(mux, lg)
}

// applyMiddleware wraps the handler with all necessary middleware
func applyMiddleware(handler http.Handler, lg *logger.Logger) http.Handler {
	// Last applied = first executed
	wrapped := handler
	wrapped = middleware.LoggingMiddleware(lg)(wrapped)
	wrapped = middleware.RequestIDMiddleware(wrapped)

	return wrapped
}

// Start starts the server and blocks until an interrupt or a listen failure
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", map[string]any{
			"address": s.config.Address(),
		})

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed to start", map[string]any{
				"error": err.Error(),
			})
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return err
	case <-stop:
	}
	s.logger.Info("Shutting down server")

	return s.shutdown()
}

// shutdown gracefully shuts down the server
func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})

		return err
	}

	s.logger.Info("Server shutdown complete")
	return nil
}
