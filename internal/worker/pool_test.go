package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topiccrawl/topiccrawl/internal/logger"
	"github.com/topiccrawl/topiccrawl/internal/worker"
)

func testPoolConfig(size int) worker.Config {
	return worker.Config{
		PoolSize:     size,
		DrainTimeout: 5 * time.Second,
		JobTimeout:   5 * time.Second,
	}
}

func TestNewPoolValidation(t *testing.T) {
	t.Parallel()

	handler := func(context.Context, worker.Job) error { return nil }

	_, err := worker.NewPool(testPoolConfig(0), handler, logger.NewNoOp())
	require.Error(t, err)

	_, err = worker.NewPool(testPoolConfig(worker.MaxPoolSize+1), handler, logger.NewNoOp())
	require.Error(t, err)

	_, err = worker.NewPool(testPoolConfig(2), nil, logger.NewNoOp())
	require.Error(t, err)

	pool, err := worker.NewPool(testPoolConfig(2), handler, logger.NewNoOp())
	require.NoError(t, err)
	assert.Equal(t, worker.PoolStateStopped, pool.State())
	assert.Equal(t, 2, pool.Size())
}

func TestPoolProcessesAllJobs(t *testing.T) {
	t.Parallel()

	var processed atomic.Int64
	pool, err := worker.NewPool(testPoolConfig(3), func(_ context.Context, job worker.Job) error {
		processed.Add(1)
		if job.ID == "fail" {
			return errors.New("boom")
		}
		return nil
	}, logger.NewNoOp())
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	var mu sync.Mutex
	results := make(map[string]error)

	jobs := []worker.Job{
		{ID: "a", URL: "https://example.com/a"},
		{ID: "b", URL: "https://example.com/b"},
		{ID: "fail", URL: "https://example.com/fail"},
		{ID: "c", URL: "https://example.com/c"},
	}
	for _, job := range jobs {
		require.NoError(t, pool.Submit(context.Background(), job, func(j worker.Job, err error) {
			mu.Lock()
			results[j.ID] = err
			mu.Unlock()
		}))
	}

	pool.Wait()
	require.NoError(t, pool.Stop(context.Background()))

	assert.Equal(t, int64(4), processed.Load())
	require.Len(t, results, 4)
	assert.NoError(t, results["a"])
	assert.NoError(t, results["b"])
	assert.NoError(t, results["c"])
	assert.Error(t, results["fail"])

	stats := pool.Stats()
	assert.Equal(t, int64(4), stats.JobsProcessed)
	assert.Equal(t, int64(3), stats.JobsSucceeded)
	assert.Equal(t, int64(1), stats.JobsFailed)
	assert.InDelta(t, 0.75, stats.SuccessRate(), 1e-9)
}

func TestPoolBoundsConcurrency(t *testing.T) {
	t.Parallel()

	const poolSize = 2

	var inFlight, peak atomic.Int64
	pool, err := worker.NewPool(testPoolConfig(poolSize), func(context.Context, worker.Job) error {
		current := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		return nil
	}, logger.NewNoOp())
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	for i := 0; i < 8; i++ {
		require.NoError(t, pool.Submit(context.Background(), worker.Job{ID: "job"}, nil))
	}
	pool.Wait()
	require.NoError(t, pool.Stop(context.Background()))

	assert.LessOrEqual(t, peak.Load(), int64(poolSize))
}

func TestPoolRejectsSubmitWhenStopped(t *testing.T) {
	t.Parallel()

	pool, err := worker.NewPool(testPoolConfig(1), func(context.Context, worker.Job) error {
		return nil
	}, logger.NewNoOp())
	require.NoError(t, err)

	err = pool.Submit(context.Background(), worker.Job{ID: "early"}, nil)
	require.Error(t, err)

	require.NoError(t, pool.Start())
	require.Error(t, pool.Start())

	require.NoError(t, pool.Stop(context.Background()))
	err = pool.Submit(context.Background(), worker.Job{ID: "late"}, nil)
	require.Error(t, err)
}

func TestPoolJobTimeout(t *testing.T) {
	t.Parallel()

	cfg := testPoolConfig(1)
	cfg.JobTimeout = 20 * time.Millisecond

	pool, err := worker.NewPool(cfg, func(ctx context.Context, _ worker.Job) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, logger.NewNoOp())
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	var jobErr error
	done := make(chan struct{})
	require.NoError(t, pool.Submit(context.Background(), worker.Job{ID: "slow"}, func(_ worker.Job, err error) {
		jobErr = err
		close(done)
	}))

	<-done
	pool.Wait()
	require.NoError(t, pool.Stop(context.Background()))

	require.Error(t, jobErr)
	assert.True(t, errors.Is(jobErr, context.DeadlineExceeded))
}

func TestPoolStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "stopped", worker.PoolStateStopped.String())
	assert.Equal(t, "running", worker.PoolStateRunning.String())
	assert.Equal(t, "draining", worker.PoolStateDraining.String())
}
