// Package app contains the web front-end: the obfuscation endpoints and
// the job-history listing.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/die-net/lrucache"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/hiroshilabs/luashade/internal/config"
	"github.com/hiroshilabs/luashade/internal/storage"
)

// New creates the web front-end server.
func New(cfg *config.Config, logger *slog.Logger, store storage.Jobs) *echo.Echo {
	srv := echo.New()

	srv.HideBanner = true
	srv.HidePort = true
	srv.Logger.SetLevel(log.OFF)
	srv.HTTPErrorHandler = errorHandler(logger)

	if cfg.DevMode {
		srv.Debug = true
		srv.Use(logRequests(logger))
	}

	srv.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Decompress(),
		crossOrigin(),
	)

	handler{
		store:  store,
		cache:  lrucache.New(cfg.CacheMaxBytes, cfg.CacheMaxAgeSeconds),
		logger: logger,
	}.register(srv)
	return srv
}

// crossOrigin marks every response as callable from any origin and
// short-circuits preflight requests. The contract is a bodyless 204 with
// all three headers on every OPTIONS request, whether or not the caller
// sent an Origin header, so this is not echo's CORS middleware.
func crossOrigin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
			h.Set(echo.HeaderAccessControlAllowHeaders, echo.HeaderContentType)
			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}

// errorHandler renders the error envelope: client errors keep their status
// and message, anything else collapses to a logged 500 with a best-effort
// diagnostic message.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
			msg := fmt.Sprint(httpErr.Message)
			if httpErr.Code == http.StatusMethodNotAllowed {
				msg = "Method not allowed"
			}
			_ = c.JSON(httpErr.Code, echo.Map{"error": msg})
			return
		}

		logger.LogAttrs(c.Request().Context(), slog.LevelError, "request failed",
			slog.String("uri", c.Request().RequestURI),
			slog.Any("error", err),
		)
		_ = c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Internal server error",
			"message": err.Error(),
		})
	}
}

func logRequests(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.String("route", c.Path()),
				slog.Duration("latency", latency),
				slog.Int("status", res.Status),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			logger.LogAttrs(
				req.Context(),
				slog.LevelDebug,
				"request handled",
				attrs...,
			)
			return err
		}
	}
}
