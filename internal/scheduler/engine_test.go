package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopJob(ctx context.Context) error { return nil }

func TestEngineRunNow(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine()

	runs := 0
	require.NoError(t, engine.Register(Job{
		Name:     "counting",
		Schedule: "0 0 0 1 1 *",
		Run: func(ctx context.Context) error {
			runs++
			return nil
		},
	}))

	runID, err := engine.RunNow(ctx, "counting")
	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	assert.Equal(t, 1, runs)

	// A second trigger gets a distinct run id.
	secondID, err := engine.RunNow(ctx, "counting")
	require.NoError(t, err)
	assert.NotEqual(t, runID, secondID)

	_, err = engine.RunNow(ctx, "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestEngineTracksFailures(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine()

	jobErr := errors.New("feed unavailable")
	failing := true
	require.NoError(t, engine.Register(Job{
		Name:     "flaky",
		Schedule: "0 0 0 1 1 *",
		Run: func(ctx context.Context) error {
			if failing {
				return jobErr
			}
			return nil
		},
	}))

	runID, err := engine.RunNow(ctx, "flaky")
	assert.ErrorIs(t, err, jobErr)
	assert.NotEmpty(t, runID)

	statuses := engine.Statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, int64(1), statuses[0].FailureCount)
	assert.Equal(t, jobErr.Error(), statuses[0].LastError)
	assert.False(t, statuses[0].Running)

	failing = false
	_, err = engine.RunNow(ctx, "flaky")
	require.NoError(t, err)

	statuses = engine.Statuses()
	assert.Equal(t, int64(1), statuses[0].SuccessCount)
	// A successful run clears the previous error.
	assert.Empty(t, statuses[0].LastError)
}

func TestEngineRejectsDuplicateNames(t *testing.T) {
	engine := NewEngine()

	require.NoError(t, engine.Register(Job{Name: "dup", Schedule: "0 * * * * *", Run: noopJob}))
	assert.Error(t, engine.Register(Job{Name: "dup", Schedule: "0 * * * * *", Run: noopJob}))
}

func TestEngineRejectsBadSchedule(t *testing.T) {
	engine := NewEngine()

	assert.Error(t, engine.Register(Job{Name: "bad", Schedule: "not a cron spec", Run: noopJob}))
}

func TestEngineStatusesSorted(t *testing.T) {
	engine := NewEngine()

	require.NoError(t, engine.Register(Job{Name: "zulu", Schedule: "0 * * * * *", Run: noopJob}))
	require.NoError(t, engine.Register(Job{Name: "alpha", Schedule: "0 * * * * *", Run: noopJob}))

	statuses := engine.Statuses()
	require.Len(t, statuses, 2)
	assert.Equal(t, "alpha", statuses[0].Name)
	assert.Equal(t, "zulu", statuses[1].Name)
}
