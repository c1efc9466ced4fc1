package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ppiankov/factcheck/internal/cache"
	"github.com/ppiankov/factcheck/internal/model"
)

const shutdownTimeout = 10 * time.Second

// Server is the JSON API in front of the analyzer
type Server struct {
	cfg    model.ServerConfig
	router *gin.Engine
	logger *log.Logger
}

// New wires routes, CORS and the in-flight guard
func New(cfg model.ServerConfig, analyzer ClaimAnalyzer, checker SourceChecker, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	guard := cache.NewMemoryCache(guardTTL(cfg.RequestTimeout), time.Minute)
	h := NewHandler(analyzer, checker, guard, cfg.RequestTimeout, logger)

	r := gin.New()
	// ClientIP keys the in-flight guard, so forwarding headers are only
	// honoured from configured proxies
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn("invalid trusted proxies, trusting none", "proxies", cfg.TrustedProxies, "err", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), requestLogger(logger))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	api := r.Group("/api")
	api.POST("/analyze", h.Analyze)
	api.GET("/health", h.Health)
	api.GET("/verdicts", h.Verdicts)

	return &Server{cfg: cfg, router: r, logger: logger}
}

// Router exposes the gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr, "origins", s.cfg.AllowedOrigins)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// guardTTL outlives the request deadline. Without a deadline a hold lasts
// until the request releases it.
func guardTTL(requestTimeout time.Duration) time.Duration {
	if requestTimeout <= 0 {
		return cache.NoExpiration
	}
	return requestTimeout + 30*time.Second
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		origins = model.DefaultConfig().Server.AllowedOrigins
	}
	for _, o := range origins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	cc.AllowOrigins = origins
	return cc
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}
