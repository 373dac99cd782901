// Package server wires the HTTP gateway: routes, middleware and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"anyonedrive/internal/config"
	"anyonedrive/internal/content"
	"anyonedrive/internal/download"
	"anyonedrive/internal/logging"
	"anyonedrive/internal/metrics"
	"anyonedrive/internal/middleware"
	"anyonedrive/internal/providers/onedrive"
	"anyonedrive/internal/storage"
)

const (
	// DefaultShutdownTimeout is how long in-flight requests get to finish on shutdown.
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultReadHeaderTimeout bounds how long a client may take to send request headers.
	DefaultReadHeaderTimeout = 10 * time.Second
)

// Server is the HTTP gateway in front of the OneDrive share browser
type Server struct {
	echo    *echo.Echo
	addr    string
	version string
	logger  *slog.Logger
}

// New builds the gateway and all services behind it from the configuration
func New(cfg *config.Config, logger *slog.Logger, version string) *Server {
	if logger == nil {
		logger = logging.Discard()
	}

	m := metrics.New()

	// Initialize provider service
	oneDriveService := onedrive.NewOneDriveService(
		onedrive.WithBaseURL(cfg.APIURL),
		onedrive.WithShareHost(cfg.ShareHost),
		onedrive.WithRequestTimeout(cfg.HTTPTimeout),
		onedrive.WithLogger(logger),
		onedrive.WithRecorder(m),
	)

	// Initialize storage service with provider dependency
	storageService := storage.NewService(oneDriveService, logger)

	// Initialize download service with storage service dependency
	downloadService := download.NewService(storageService, cfg.BlockSize, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		addr:    cfg.Addr(),
		version: version,
		logger:  logger,
	}

	// Middleware
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echoMiddleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(middleware.SecurityHeaders(cfg.Domain))
	e.Use(middleware.CORSConfig(cfg.Domain))

	e.GET("/health", s.health)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	storage.NewHandler(storageService).RegisterRoutes(e)
	download.NewHandler(downloadService, storageService, logger).RegisterRoutes(e)
	content.NewHandler(storageService, cfg.BlockSize, logger).RegisterRoutes(e)

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.echo,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
	}

	serverDone := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", slog.String("addr", s.addr), slog.String("version", s.version))
		serverDone <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
		return nil
	case err := <-serverDone:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server failed: %w", err)
	}
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

// requestLogger logs one line per request through slog
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				logging.Path(v.URIPath),
				slog.Int("http_status", v.Status),
				logging.Duration(v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, logging.Err(v.Error))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
