package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of [sql.DB] the queries need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New wraps a database handle with the query methods.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries hold the handle the job queries run against.
type Queries struct {
	db DBTX
}

// Job is one recorded obfuscation: sizes and pipeline stats, never the
// source itself.
type Job struct {
	ID          uint64    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	SourceBytes int64     `json:"source_bytes"`
	OutputBytes int64     `json:"output_bytes"`
	Literals    int64     `json:"literals"`
	Renamed     int64     `json:"renamed"`
	Remote      string    `json:"remote"`
}

const insertJob = `
insert into jobs (id, created_at, source_bytes, output_bytes, literals, renamed, remote)
values (?, ?, ?, ?, ?, ?, ?)`

// InsertJob persists one job row.
func (q *Queries) InsertJob(ctx context.Context, job Job) error {
	_, err := q.db.ExecContext(ctx, insertJob,
		job.ID,
		job.CreatedAt,
		job.SourceBytes,
		job.OutputBytes,
		job.Literals,
		job.Renamed,
		job.Remote,
	)
	return err
}

const listJobs = `
select id, created_at, source_bytes, output_bytes, literals, renamed, remote
from jobs
order by created_at desc, id desc
limit ?`

// ListJobs returns the most recent jobs, newest first.
func (q *Queries) ListJobs(ctx context.Context, limit int64) ([]Job, error) {
	rows, err := q.db.QueryContext(ctx, listJobs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		err = rows.Scan(
			&job.ID,
			&job.CreatedAt,
			&job.SourceBytes,
			&job.OutputBytes,
			&job.Literals,
			&job.Renamed,
			&job.Remote,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

const getJob = `
select id, created_at, source_bytes, output_bytes, literals, renamed, remote
from jobs
where id = ?`

// GetJob returns a single job row by ID.
func (q *Queries) GetJob(ctx context.Context, id uint64) (Job, error) {
	var job Job
	err := q.db.QueryRowContext(ctx, getJob, id).Scan(
		&job.ID,
		&job.CreatedAt,
		&job.SourceBytes,
		&job.OutputBytes,
		&job.Literals,
		&job.Renamed,
		&job.Remote,
	)
	return job, err
}
