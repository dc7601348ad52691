// Package server exposes the numbering recognizer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/coolbeans/numbering/pkg/numbering"
	"github.com/coolbeans/numbering/pkg/profile"
)

// Profiles resolves calibration profiles by name.
type Profiles interface {
	Recognizer(name string) (*numbering.Recognizer, error)
	List() []*profile.Profile
}

// Config holds server settings.
type Config struct {
	Addr string
	// RatePerSecond and Burst configure the request token bucket; a
	// non-positive rate disables limiting.
	RatePerSecond   float64
	Burst           int
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the settings used by `numbering serve`.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		RatePerSecond:   50,
		Burst:           100,
		MaxBodyBytes:    1 << 20,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the HTTP API.
type Server struct {
	cfg      Config
	profiles Profiles
	logger   *slog.Logger
	engine   *gin.Engine
}

// New creates a server. A nil logger uses slog.Default().
func New(cfg Config, profiles Profiles, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		profiles: profiles,
		logger:   logger,
		engine:   gin.New(),
	}
	s.routes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.Use(requestIDMiddleware(), s.recoveryMiddleware(), s.loggerMiddleware())
	if s.cfg.RatePerSecond > 0 {
		burst := s.cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.engine.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(s.cfg.RatePerSecond), burst)))
	}
	if s.cfg.MaxBodyBytes > 0 {
		s.engine.Use(bodyLimitMiddleware(s.cfg.MaxBodyBytes))
	}

	s.engine.GET("/healthz", s.handleHealth)

	v1 := s.engine.Group("/v1")
	v1.GET("/profiles", s.handleProfiles)
	v1.POST("/parse", s.handleParse)
	v1.POST("/compare", s.handleCompare)
	v1.POST("/outline", s.handleOutline)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", s.cfg.Addr, err)

	case <-ctx.Done():
		s.logger.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
