package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/skeetstorm/skeetstorm/internal/config"
	"github.com/skeetstorm/skeetstorm/internal/domain"
)

// invalidURLMessage is the fixed body returned for any request whose post
// URL cannot be resolved to a thread.
const invalidURLMessage = "Error: Invalid URL"

// Server is the HTTP shell around the thread service.
type Server struct {
	cfg     *config.Config
	threads *domain.ThreadService
	logger  *slog.Logger
	echo    *echo.Echo
}

// NewServer creates a new HTTP server wired to the given thread service.
// The thread endpoint is open to all origins.
func NewServer(cfg *config.Config, threads *domain.ThreadService, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		threads: threads,
		logger:  logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(s.withLogging)

	e.GET("/api/thread", s.handleGetThread)
	e.GET("/health", s.handleHealth)

	s.echo = e
	return s
}

// Start begins listening for HTTP requests. It blocks until the server is
// shut down or an error occurs.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("starting HTTP server", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler returns the server's router as a plain http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetThread(c echo.Context) error {
	postURL := c.QueryParam("postURL")
	if postURL == "" {
		s.logger.Warn("thread request without postURL parameter")
		return c.JSON(http.StatusBadRequest, map[string]string{"message": invalidURLMessage})
	}

	result, err := s.threads.Unroll(c.Request().Context(), postURL)
	if err != nil {
		if errors.Is(err, domain.ErrUnresolvedPost) {
			s.logger.Warn("unresolvable post URL", "postURL", postURL, "error", err)
			return c.JSON(http.StatusBadRequest, map[string]string{"message": invalidURLMessage})
		}
		s.logger.Error("failed to reconstruct thread", "postURL", postURL, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to reconstruct thread"})
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) withLogging(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.logger.Info("http request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start),
		)
		return err
	}
}
