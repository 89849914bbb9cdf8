// Package server exposes extraction over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppiankov/verdict/internal/logging"
	"github.com/ppiankov/verdict/internal/metrics"
	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/pipeline"
	"github.com/ppiankov/verdict/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API around one pipeline
type Server struct {
	pipeline  *pipeline.Pipeline
	batch     *worker.BatchProcessor
	metrics   *metrics.Metrics
	logger    *zap.Logger
	addr      string
	maxUpload int64
	engine    *gin.Engine
}

// New builds the server and its routes. m may be nil, in which case
// /metrics is not served.
func New(p *pipeline.Pipeline, cfg *model.Config, m *metrics.Metrics, logger *zap.Logger) *Server {
	logger = logging.OrNop(logger)

	s := &Server{
		pipeline:  p,
		batch:     worker.NewBatchProcessor(p, cfg.Concurrency.Workers, logger),
		metrics:   m,
		logger:    logger,
		addr:      cfg.Server.Addr,
		maxUpload: cfg.Server.MaxUploadSize,
	}

	engine := gin.New()
	engine.Use(requestID(), recovery(logger), requestLogger(logger))

	engine.GET("/healthz", s.health)
	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}

	v1 := engine.Group("/v1")
	v1.POST("/extract", s.extract)
	v1.POST("/upload", s.upload)

	s.engine = engine
	return s
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
