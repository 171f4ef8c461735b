package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aescanero/broadcastd/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the internal HTTP API server
type Server struct {
	router  *gin.Engine
	server  *http.Server
	metrics *prometheus.Collector
	logger  *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Port  int
	Token string

	Metrics  *prometheus.Collector
	Gatherer promclient.Gatherer
	Logger   *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics, gatherer := cfg.Metrics, cfg.Gatherer
	if metrics == nil {
		reg := promclient.NewRegistry()
		metrics = prometheus.NewCollector(reg)
		if gatherer == nil {
			gatherer = reg
		}
	}
	if gatherer == nil {
		gatherer = promclient.DefaultGatherer
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	router.Use(requestMetrics(metrics))

	s := &Server{
		router:  router,
		metrics: metrics,
		logger:  logger,
	}

	s.setupRoutes(cfg.Token, gatherer)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes(token string, gatherer promclient.Gatherer) {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// Metrics
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	internal := s.router.Group("/internal")
	internal.Use(BearerAuth(token, s.metrics, s.logger))
	{
		internal.POST("/broadcast", s.handleBroadcast)
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listen address and serves until Shutdown is called
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}

	return s.Serve(ln)
}

// Serve serves HTTP requests on an already bound listener
func (s *Server) Serve(ln net.Listener) error {
	port := ln.Addr().(*net.TCPAddr).Port
	s.logger.Info(fmt.Sprintf("internal API on :%d", port), zap.Int("port", port))

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Debug("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	return nil
}
