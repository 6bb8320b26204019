package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/framepack/promptgen/internal/config"
	"github.com/framepack/promptgen/internal/history"
	"github.com/framepack/promptgen/internal/pipeline"
)

// Server exposes the generation pipeline over HTTP.
type Server struct {
	cfg     *config.Settings
	pipe    *pipeline.Pipeline
	history *history.Log
	log     zerolog.Logger
	engine  *gin.Engine
}

func New(cfg *config.Settings, pipe *pipeline.Pipeline, hist *history.Log, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:     cfg,
		pipe:    pipe,
		history: hist,
		log:     log.With().Str("component", "server").Logger(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.POST("/generate", s.handleGenerate)
	engine.POST("/batch", s.handleBatch)
	engine.GET("/health", s.handleHealth)
	engine.GET("/history", s.handleHistory)
	engine.GET("/settings", s.handleSettings)

	s.engine = engine
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
