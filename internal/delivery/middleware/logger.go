package middleware

import (
	"log/slog"
	"time"

	"listingmanager/config"
	deliverycontext "listingmanager/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware logs ops requests. Successful requests are only logged in
// debug mode and probe paths are never logged.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
	quiet  map[string]struct{}
}

// NewLoggerMiddleware creates a new logger middleware; quietPaths are never logged
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config, quietPaths ...string) *LoggerMiddleware {
	quiet := make(map[string]struct{}, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = struct{}{}
	}

	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
		quiet:  quiet,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := m.quiet[c.Path()]; ok {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		if err != nil {
			// Let echo write the error response so the status below is final.
			c.Error(err)
		}

		if m.debug || c.Response().Status >= 400 {
			m.logRequest(c, start, err)
		}

		return nil
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()

	fields := []slog.Attr{
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
	}
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case res.Status >= 500:
		level = slog.LevelError
	case res.Status >= 400:
		level = slog.LevelWarn
	}

	m.logger.LogAttrs(req.Context(), level, "HTTP Request", fields...)
}
