package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	shutdownTimeout = 10 * time.Second
	checkTimeout    = 2 * time.Second
)

// Check reports whether a dependency the service needs is reachable.
type Check func(ctx context.Context) error

// New returns an echo instance with panic recovery, request logging and the health endpoints.
// GET /health always answers while the process runs; GET /health/ready runs every check.
func New(log *logger.Logger, checks map[string]Check) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/health") || strings.HasPrefix(c.Path(), "/swagger")
		},
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				logger.StringField("method", v.Method),
				logger.StringField("uri", v.URI),
				logger.IntField("status", v.Status),
				logger.Field("latency", v.Latency),
			}
			if v.Error != nil {
				log.Warn("Request failed", append(fields, logger.ErrorField(v.Error))...)
				return nil
			}
			log.Debug("Request served", fields...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		return c.JSON(status, map[string]interface{}{"ready": status == http.StatusOK, "checks": results})
	})
	return e
}

// Run serves e on port until ctx is canceled, then shuts it down gracefully. It returns early
// with an error when the listener cannot start.
func Run(ctx context.Context, e *echo.Echo, port int, log *logger.Logger) error {
	addr := fmt.Sprintf(":%d", port)
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", logger.StringField("address", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}
