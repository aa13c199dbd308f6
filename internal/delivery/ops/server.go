// Package ops serves the health, metrics and manual task endpoints.
package ops

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"listingmanager/config"
	"listingmanager/internal/delivery"
	"listingmanager/internal/delivery/middleware"
	"listingmanager/internal/domain/lifecycle"
	"listingmanager/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type opsServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for the ops server
type ServerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	Logger  *slog.Logger
	Metrics *metrics.TaskMetrics
	Trigger TaskTrigger
}

// NewServer creates the ops HTTP server
func NewServer(params ServerParams) delivery.Delivery {
	e := newRouter(params.Cfg, params.Logger, params.Metrics, NewTaskHandler(params.Trigger, params.Logger))

	timeouts := params.Cfg.HTTP.Timeouts
	e.Server.ReadTimeout = timeouts.ReadTimeout
	e.Server.ReadHeaderTimeout = timeouts.ReadHeaderTimeout
	e.Server.WriteTimeout = timeouts.WriteTimeout
	e.Server.IdleTimeout = timeouts.IdleTimeout

	srv := &opsServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: e,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv
}

func newRouter(cfg *config.Config, logger *slog.Logger, m *metrics.TaskMetrics, tasks *TaskHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Recover first, then request ID so the logger sees it
	e.Use(echomiddleware.Recover())
	e.Use(middleware.NewRequestIDMiddleware(logger).Process)
	e.Use(middleware.NewLoggerMiddleware(logger, cfg, "/health", "/metrics").Handle)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})))

	e.GET("/tasks", tasks.ListTasks)
	e.POST("/tasks/:name/run", tasks.RunTask)

	return e
}

// Serve starts the ops HTTP server
func (s *opsServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting ops HTTP server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

// stop gracefully shuts down the ops server
func (s *opsServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down ops HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
