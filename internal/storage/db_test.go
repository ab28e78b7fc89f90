package storage

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiroshilabs/luashade/internal/config"
	"github.com/hiroshilabs/luashade/internal/storage/db"
)

func TestDB(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.DBFilepath = filepath.Join(t.TempDir(), "db.sqlite")
	store, err := NewDB(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	t.Run("RecordAndGet", func(t *testing.T) {
		const jobID = 123
		err := store.RecordJob(context.Background(), db.Job{
			ID:          jobID,
			SourceBytes: 24,
			OutputBytes: 512,
			Literals:    1,
			Renamed:     2,
			Remote:      "127.0.0.1",
		})
		require.NoError(t, err)

		actual, err := store.GetJob(context.Background(), jobID)
		require.NoError(t, err)
		assert.EqualValues(t, 24, actual.SourceBytes)
		assert.EqualValues(t, 512, actual.OutputBytes)
		assert.EqualValues(t, 1, actual.Literals)
		assert.EqualValues(t, 2, actual.Renamed)
		assert.Equal(t, "127.0.0.1", actual.Remote)
		assert.False(t, actual.CreatedAt.IsZero())
	})

	t.Run("GeneratedIDs", func(t *testing.T) {
		err := store.RecordJob(context.Background(), db.Job{SourceBytes: 1})
		require.NoError(t, err)

		jobs, err := store.ListJobs(context.Background(), 50)
		require.NoError(t, err)
		require.NotEmpty(t, jobs)
		for _, job := range jobs {
			assert.NotZero(t, job.ID)
		}
	})

	t.Run("ListLimit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, store.RecordJob(context.Background(), db.Job{}))
		}
		jobs, err := store.ListJobs(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, jobs, 2)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.GetJob(context.Background(), 987654321)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
