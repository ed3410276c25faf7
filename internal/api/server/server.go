// Package server hosts the HTTP server for the traceability REST API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veritrace/veritrace/internal/adapter"
	"github.com/veritrace/veritrace/internal/api/executor"
	"github.com/veritrace/veritrace/internal/api/middleware"
	"github.com/veritrace/veritrace/internal/api/rest"
	"github.com/veritrace/veritrace/internal/logger"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	RateLimitEnabled  bool
	RequestsPerMinute int
}

// Server wraps the HTTP server
type Server struct {
	config      Config
	executor    executor.Executor
	auth        *middleware.Authenticator
	rateLimiter adapter.RedisRateLimiter
	httpServer  *http.Server
}

// New creates a new API server
func New(cfg Config, exec executor.Executor, auth *middleware.Authenticator, rateLimiter adapter.RedisRateLimiter) *Server {
	return &Server{
		config:      cfg,
		executor:    exec,
		auth:        auth,
		rateLimiter: rateLimiter,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	var rateLimit gin.HandlerFunc
	if s.config.RateLimitEnabled && s.rateLimiter != nil {
		rateLimit = middleware.RateLimit(s.rateLimiter, s.config.RequestsPerMinute)
	}

	restHandler := rest.NewHandler(s.executor)
	rest.SetupRoutes(router, restHandler, s.auth, rateLimit)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
