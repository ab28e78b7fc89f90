// Package storage provides the job-history state for the service: one
// record per obfuscation performed.
package storage

import (
	"context"

	"github.com/hiroshilabs/luashade/internal/storage/db"
)

const (
	// ErrNotFound is returned when a job cannot be found.
	ErrNotFound Error = "not found"
	// ErrInternal is returned for any other type of error.
	ErrInternal Error = "internal error"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Jobs are the methods on a storage implementation responsible for
// recording and reading obfuscation jobs.
type Jobs interface {
	// RecordJob persists one job record. A zero ID and zero CreatedAt are
	// filled in by the implementation.
	RecordJob(ctx context.Context, job db.Job) error
	// ListJobs returns the most recent jobs, newest first, up to limit.
	ListJobs(ctx context.Context, limit int32) ([]db.Job, error)
	// GetJob returns a single job by ID. An [ErrNotFound] is returned if
	// the ID does not exist.
	GetJob(ctx context.Context, id uint64) (db.Job, error)
}

// Store is [Jobs] plus lifecycle management.
type Store interface {
	Jobs
	// Close releases any resources held by the store. An error is returned
	// if the store cannot be cleanly closed.
	Close() error
}
