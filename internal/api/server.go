// Package api serves the latest sync snapshot and running statistics over a
// small read-only HTTP API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncvisor/syncvisor/internal/config"
	"github.com/syncvisor/syncvisor/internal/monitor"
	"github.com/syncvisor/syncvisor/internal/status"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// StatusProvider exposes the monitor state the API serves.
type StatusProvider interface {
	Latest() (monitor.CycleResult, bool)
	Stats() status.StatsView
}

// Server represents the status API server
type Server struct {
	router   *gin.Engine
	server   *http.Server
	logger   *logger.Logger
	config   *config.Config
	provider StatusProvider
}

// NewServer creates a new status API server
func NewServer(cfg *config.Config, provider StatusProvider, logger *logger.Logger) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logger))

	origins := cfg.APICORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-API-Key"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	server := &Server{
		router:   router,
		logger:   logger,
		config:   cfg,
		provider: provider,
	}

	server.setupRoutes()

	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler)

	protected := s.router.Group("/")
	if s.config.APIKey != "" {
		protected.Use(apiKeyAuth(s.config.APIKey))
	}
	protected.GET("/status", s.statusHandler)
	protected.GET("/stats", s.statsHandler)
}

// Start starts the API server in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.Info("starting status API server",
			zap.String("addr", addr))

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("status API server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the API server.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shut down status API server gracefully", zap.Error(err))
		return err
	}

	s.logger.Info("status API server stopped")
	return nil
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) statusHandler(c *gin.Context) {
	res, ok := s.provider.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no check completed yet"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) statsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.provider.Stats())
}
