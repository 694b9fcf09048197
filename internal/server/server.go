// Package server exposes conversions over HTTP: a conversation export is
// uploaded as multipart form data and the rendered document is returned as
// an attachment.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alnah/go-chat2doc"
)

// Service performs conversions. *PoolService is the production implementation.
type Service interface {
	Convert(ctx context.Context, input chat2doc.Input) (*chat2doc.ConvertResult, error)
}

// Defaults for Config fields left at zero.
const (
	DefaultMaxUploadBytes  = 10 << 20
	DefaultConvertTimeout  = 2 * time.Minute
	DefaultShutdownTimeout = 10 * time.Second
	defaultLanguage        = chat2doc.DefaultLanguage
)

// Config holds request handling settings.
type Config struct {
	MaxUploadBytes  int64           // multipart body cap
	ConvertTimeout  time.Duration   // per-request conversion deadline
	ShutdownTimeout time.Duration   // graceful shutdown budget in Run
	DefaultFormat   chat2doc.Format // used when the form has no format
	Languages       []string        // advertised by GET /
	Version         string          // advertised by GET /
}

// Server routes HTTP requests to a Service.
type Server struct {
	svc    Service
	logger *zap.Logger
	cfg    Config
	engine *gin.Engine
}

// New builds the router. A nil logger disables request logging.
func New(svc Service, logger *zap.Logger, cfg Config) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.ConvertTimeout <= 0 {
		cfg.ConvertTimeout = DefaultConvertTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = chat2doc.DefaultFormat
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{defaultLanguage}
	}

	s := &Server{svc: svc, logger: logger, cfg: cfg}

	engine := gin.New()
	engine.MaxMultipartMemory = cfg.MaxUploadBytes
	engine.Use(requestID(), requestLogger(logger), recovery(logger))
	s.engine = engine
	s.registerRoutes(engine)
	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/", s.handleIndex)
	router.GET("/health", s.handleHealth)
	router.GET("/sample", s.handleSample)
	router.POST("/convert", s.handleConvert)
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      s.cfg.ConvertTimeout + 30*time.Second,
		IdleTimeout:       time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
