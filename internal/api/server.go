// Package api serves review analysis over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/candor/internal/logging"
	"github.com/ppiankov/candor/internal/model"
	"github.com/ppiankov/candor/internal/telemetry"
	"github.com/ppiankov/candor/internal/worker"
)

const (
	serviceName     = "Review Legitimacy Detector"
	shutdownTimeout = 10 * time.Second
)

// Analyzer is the analysis engine behind the API
type Analyzer interface {
	AnalyzeReview(review model.Review) model.AnalysisResult
	AnalyzeCSV(ctx context.Context, r io.Reader) model.BatchReport
}

// Server is the HTTP API with lifecycle management
type Server struct {
	router   *gin.Engine
	server   *http.Server
	analyzer Analyzer
	logger   logging.Logger
	metrics  *telemetry.Metrics
	limiter  *worker.Limiter
	cfg      model.ServerConfig
}

// NewServer builds the router and HTTP server. metrics may be nil.
func NewServer(cfg model.ServerConfig, analyzer Analyzer, logger logging.Logger, metrics *telemetry.Metrics) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Server{
		analyzer: analyzer,
		logger:   logger,
		metrics:  metrics,
		cfg:      cfg,
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerSecond > 0 {
		s.limiter = worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	if metrics != nil {
		router.Use(requestMetrics(metrics))
	}
	s.routes(router)
	s.router = router

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/health", s.health)

	limited := api.Group("")
	if s.limiter != nil {
		limited.Use(rateLimit(s.limiter, s.metrics))
	}
	limited.POST("/analyze", s.analyze)
	limited.POST("/analyze-csv", maxBody(s.cfg.MaxUploadBytes), s.analyzeCSV)

	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server",
			logging.String("address", s.server.Addr),
			logging.Duration("read_timeout", s.server.ReadTimeout),
			logging.Duration("write_timeout", s.server.WriteTimeout),
		)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("graceful shutdown failed", logging.Error(err))
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
