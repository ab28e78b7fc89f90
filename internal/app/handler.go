package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/die-net/lrucache"
	"github.com/labstack/echo/v4"

	"github.com/hiroshilabs/luashade/internal/obfuscate"
	"github.com/hiroshilabs/luashade/internal/storage"
	"github.com/hiroshilabs/luashade/internal/storage/db"
)

// defaultSample is obfuscated when a read request carries no code.
const defaultSample = `print("Hello Executor!")`

const defaultHistoryLimit = 20

type handler struct {
	store  storage.Jobs
	cache  *lrucache.LruCache
	logger *slog.Logger
}

func (h handler) register(e *echo.Echo) {
	e.GET("/", h.read)
	e.POST("/", h.write)
	e.GET("/history", h.history)
}

// read obfuscates code passed via the `code` query parameter. Repeated
// values are joined with newlines; no value at all falls back to a canned
// sample.
func (h handler) read(c echo.Context) error {
	source := defaultSample
	if fragments := c.QueryParams()["code"]; len(fragments) > 0 {
		source = strings.Join(fragments, "\n")
	}

	// The transform is a pure function of the source, so a cache hit is
	// always valid.
	if cached, ok := h.cache.Get(source); ok {
		return c.String(http.StatusOK, string(cached))
	}

	out := obfuscate.Lua(source)
	h.cache.Set(source, []byte(out.Code))
	h.recordJob(c, source, out)
	return c.String(http.StatusOK, out.Code)
}

// write obfuscates code from a JSON request body and returns the result as
// a file attachment.
func (h handler) write(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err = json.Unmarshal(body, &payload); err != nil {
			return fmt.Errorf("failed to parse request body: %w", err)
		}
	}
	if strings.TrimSpace(payload.Code) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No code provided in POST body")
	}

	out := obfuscate.Lua(payload.Code)
	h.recordJob(c, payload.Code, out)

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=obfuscated.lua`)
	return c.String(http.StatusOK, out.Code)
}

// history lists recent jobs, newest first.
func (h handler) history(c echo.Context) error {
	limit := int32(defaultHistoryLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = int32(parsed)
	}

	jobs, err := h.store.ListJobs(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []db.Job{}
	}
	return c.JSON(http.StatusOK, jobs)
}

// recordJob persists the job record; failures are logged, never surfaced,
// as history is not worth failing an otherwise successful transform over.
func (h handler) recordJob(c echo.Context, source string, out obfuscate.Output) {
	err := h.store.RecordJob(c.Request().Context(), db.Job{
		SourceBytes: int64(len(source)),
		OutputBytes: int64(len(out.Code)),
		Literals:    int64(out.Literals),
		Renamed:     int64(out.Renamed),
		Remote:      c.RealIP(),
	})
	if err != nil {
		h.logger.LogAttrs(c.Request().Context(), slog.LevelError, "failed to record job",
			slog.Any("error", err),
		)
	}
}
