package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/influxdata/influxdb/pkg/snowflake"

	"github.com/hiroshilabs/luashade/internal/config"
	"github.com/hiroshilabs/luashade/internal/storage/db"
)

// DB is a [Store] backed by a SQLite database.
type DB struct {
	ids     *snowflake.Generator
	db      *sql.DB
	queries *db.Queries
}

// NewDB initializes a DB with the given config and logger.
func NewDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DB, error) {
	handle, err := db.Open(ctx, logger, cfg.DBFilepath)
	if err != nil {
		return nil, err
	}
	return &DB{
		ids:     snowflake.New(rand.Intn(1023)), //nolint:gosec,mnd // this isn't for crypto
		db:      handle,
		queries: db.New(handle),
	}, nil
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// RecordJob satisfies the [Jobs] interface.
func (d *DB) RecordJob(ctx context.Context, job db.Job) error {
	if job.ID == 0 {
		job.ID = d.ids.Next()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	return d.queries.InsertJob(ctx, job)
}

// ListJobs satisfies the [Jobs] interface.
func (d *DB) ListJobs(ctx context.Context, limit int32) ([]db.Job, error) {
	return d.queries.ListJobs(ctx, int64(limit))
}

// GetJob satisfies the [Jobs] interface.
func (d *DB) GetJob(ctx context.Context, id uint64) (db.Job, error) {
	job, err := d.queries.GetJob(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return job, ErrNotFound
	}
	return job, err
}
