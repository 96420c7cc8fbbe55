/*
Copyright 2022 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package runner

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/codenotary/sap/pkg/api"
	"github.com/codenotary/sap/pkg/logger"
)

func testObjects(name string) []*api.Object {
	return []*api.Object{
		api.NewObject("emp_001", []string{"person", "employee"}, "hr_system").Set("name", name),
	}
}

func normalizeAndDeduplicate(objects []*api.Object) ([]*api.Object, error) {
	normalized, err := api.Normalize(objects)
	if err != nil {
		return nil, err
	}
	return api.Deduplicate(normalized), nil
}

func waitSignal(t *testing.T, c <-chan struct{}) {
	t.Helper()
	select {
	case <-c:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch")
	}
}

func TestRunnerRefreshesOnInterval(t *testing.T) {
	fetched := make(chan struct{}, 16)
	fetch := func(ctx context.Context) ([]*api.Object, error) {
		select {
		case fetched <- struct{}{}:
		default:
		}
		return testObjects("Alice Johnson"), nil
	}

	r := New(fetch, normalizeAndDeduplicate, nil, DefaultOptions().
		WithInterval(10*time.Millisecond).
		WithLogger(logger.NewMemoryLogger()))

	r.Start()
	defer r.Stop(context.Background())

	for i := 0; i < 3; i++ {
		waitSignal(t, fetched)
	}

	require.Equal(t, 1, r.Count())
	cached := r.Cached()
	require.Len(t, cached, 1)
	require.Equal(t, "emp_001", cached[0].ID)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
	require.False(t, r.Status().IsRunning)
}

func TestRunnerStartIsIdempotent(t *testing.T) {
	fetched := make(chan struct{}, 16)
	fetch := func(ctx context.Context) ([]*api.Object, error) {
		select {
		case fetched <- struct{}{}:
		default:
		}
		return nil, nil
	}

	r := New(fetch, nil, nil, DefaultOptions().
		WithInterval(time.Hour).
		WithLogger(logger.NewMemoryLogger()))

	r.Start()
	r.Start()
	waitSignal(t, fetched)

	require.True(t, r.Status().IsRunning)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
	require.NoError(t, r.Stop(ctx))

	for len(fetched) > 0 {
		<-fetched
	}

	// a stopped runner can be started again
	r.Start()
	waitSignal(t, fetched)
	require.NoError(t, r.Stop(context.Background()))
}

func TestRunnerSkipsOverlappingRefresh(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{}, 16)
	fetch := func(ctx context.Context) ([]*api.Object, error) {
		started <- struct{}{}
		<-block
		return testObjects("Alice Johnson"), nil
	}

	r := New(fetch, nil, nil, DefaultOptions().
		WithRunImmediately(false).
		WithInterval(time.Hour).
		WithLogger(logger.NewMemoryLogger()))

	r.TriggerRefresh(false)
	waitSignal(t, started)
	require.True(t, r.Status().InFlight)

	// a second trigger while one is in flight is skipped, even a blocking one
	r.TriggerRefresh(true)
	require.Empty(t, started)

	close(block)
	require.Eventually(t, func() bool { return !r.Status().InFlight }, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, uint64(1), r.Status().RefreshCount)
	require.Equal(t, 1, r.Count())
}

func TestRunnerRecordsErrorsAndKeepsCache(t *testing.T) {
	var mu sync.Mutex
	var fetchErr error
	objects := []*api.Object{
		api.NewObject("emp_001", []string{"person"}, "hr_system").Set("name", "Alice"),
		api.NewObject("emp_001", []string{"person"}, "hr_system").Set("name", "Alice again"),
	}

	fetch := func(ctx context.Context) ([]*api.Object, error) {
		mu.Lock()
		defer mu.Unlock()
		if fetchErr != nil {
			return nil, fetchErr
		}
		return objects, nil
	}

	r := New(fetch, normalizeAndDeduplicate, nil, DefaultOptions().
		WithRunImmediately(false).
		WithLogger(logger.NewMemoryLogger()))

	r.TriggerRefresh(true)
	require.Equal(t, 1, r.Count(), "duplicates should be dropped")
	require.Nil(t, r.Status().LastError)
	require.NotNil(t, r.Status().LastCompletedAt)

	mu.Lock()
	fetchErr = errors.New("boom")
	mu.Unlock()

	before := *r.Status().LastCompletedAt
	r.TriggerRefresh(true)

	status := r.Status()
	require.NotNil(t, status.LastError)
	require.Equal(t, "FetchError: boom", *status.LastError)
	require.NotNil(t, status.LastCompletedAt)
	require.GreaterOrEqual(t, *status.LastCompletedAt, before)
	require.Equal(t, 1, r.Count(), "failed refresh must keep the previous cache")

	mu.Lock()
	fetchErr = nil
	mu.Unlock()

	r.TriggerRefresh(true)
	require.Nil(t, r.Status().LastError, "error clears on the next success")
}

func TestRunnerReportsValidationErrors(t *testing.T) {
	fetch := func(ctx context.Context) ([]*api.Object, error) {
		return []*api.Object{api.NewObject("", []string{"person"}, "hr_system")}, nil
	}

	r := New(fetch, normalizeAndDeduplicate, nil, DefaultOptions().
		WithRunImmediately(false).
		WithLogger(logger.NewMemoryLogger()))

	r.TriggerRefresh(true)

	status := r.Status()
	require.NotNil(t, status.LastError)
	require.Equal(t, "ValidationError: objects[0] missing required key __id__", *status.LastError)
}

func TestRunnerFetchTimeout(t *testing.T) {
	fetch := func(ctx context.Context) ([]*api.Object, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return testObjects("Alice Johnson"), nil
		}
	}

	var mu sync.Mutex
	var results []string
	metrics := func(result string, duration time.Duration, completedAt time.Time) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, result)
	}

	r := New(fetch, nil, metrics, DefaultOptions().
		WithRunImmediately(false).
		WithFetchTimeout(30*time.Millisecond).
		WithLogger(logger.NewMemoryLogger()))

	r.TriggerRefresh(true)

	status := r.Status()
	require.NotNil(t, status.LastError)
	require.Contains(t, *status.LastError, "TimeoutError: fetch exceeded")
	require.NotNil(t, status.LastCompletedAt)
	require.Zero(t, r.Count())
	require.False(t, status.InFlight)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{ResultTimeout}, results)
}

func TestRunnerMetricsResults(t *testing.T) {
	var mu sync.Mutex
	var fetchErr error
	var results []string

	fetch := func(ctx context.Context) ([]*api.Object, error) {
		mu.Lock()
		defer mu.Unlock()
		return nil, fetchErr
	}
	metrics := func(result string, duration time.Duration, completedAt time.Time) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, result)
	}

	r := New(fetch, nil, metrics, DefaultOptions().
		WithRunImmediately(false).
		WithLogger(logger.NewMemoryLogger()))

	r.TriggerRefresh(true)
	mu.Lock()
	fetchErr = errors.New("boom")
	mu.Unlock()
	r.TriggerRefresh(true)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{ResultOK, ResultError}, results)
}

func TestRunnerStatusSnapshot(t *testing.T) {
	r := New(func(ctx context.Context) ([]*api.Object, error) {
		return testObjects("Alice Johnson"), nil
	}, nil, nil, DefaultOptions().WithLogger(logger.NewMemoryLogger()))

	b, err := json.Marshal(r.Status())
	require.NoError(t, err)
	require.JSONEq(t, `{
		"last_started_at": null,
		"last_completed_at": null,
		"last_error": null,
		"interval_seconds": 60,
		"is_running": false,
		"in_flight": false,
		"fetch_timeout_seconds": 120,
		"refresh_count": 0
	}`, string(b))

	refreshID := r.TriggerRefresh(true)

	status := r.Status()
	require.NotNil(t, status.LastStartedAt)
	require.NotNil(t, status.LastCompletedAt)
	require.GreaterOrEqual(t, *status.LastCompletedAt, *status.LastStartedAt)
	require.Equal(t, uint64(1), status.RefreshCount)
	require.Equal(t, refreshID, status.LastRefreshID)

	_, err = uuid.Parse(status.LastRefreshID)
	require.NoError(t, err)
}

func TestRunnerDisabledFetchTimeout(t *testing.T) {
	r := New(func(ctx context.Context) ([]*api.Object, error) {
		_, hasDeadline := ctx.Deadline()
		require.False(t, hasDeadline)
		return nil, nil
	}, nil, nil, DefaultOptions().
		WithRunImmediately(false).
		WithFetchTimeout(0).
		WithLogger(logger.NewMemoryLogger()))

	r.TriggerRefresh(true)
	require.Nil(t, r.Status().FetchTimeoutSeconds)
}

func TestWaitForInitialFetch(t *testing.T) {
	t.Run("returns once the first refresh succeeded", func(t *testing.T) {
		r := New(func(ctx context.Context) ([]*api.Object, error) {
			return testObjects("Alice Johnson"), nil
		}, nil, nil, DefaultOptions().
			WithInterval(time.Hour).
			WithLogger(logger.NewMemoryLogger()))

		r.Start()
		defer r.Stop(context.Background())

		require.NoError(t, r.WaitForInitialFetch(context.Background(), 2*time.Second))
	})

	t.Run("times out while refreshes keep failing", func(t *testing.T) {
		r := New(func(ctx context.Context) ([]*api.Object, error) {
			return nil, errors.New("boom")
		}, nil, nil, DefaultOptions().
			WithInterval(time.Hour).
			WithLogger(logger.NewMemoryLogger()))

		r.Start()
		defer r.Stop(context.Background())

		err := r.WaitForInitialFetch(context.Background(), 250*time.Millisecond)
		require.ErrorIs(t, err, ErrInitialFetchTimeout)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		r := New(func(ctx context.Context) ([]*api.Object, error) {
			return nil, errors.New("boom")
		}, nil, nil, DefaultOptions().
			WithRunImmediately(false).
			WithLogger(logger.NewMemoryLogger()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := r.WaitForInitialFetch(ctx, time.Minute)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunnerNegativeIntervalClampsToZero(t *testing.T) {
	r := New(func(ctx context.Context) ([]*api.Object, error) {
		return nil, nil
	}, nil, nil, DefaultOptions().
		WithInterval(-time.Second).
		WithLogger(logger.NewMemoryLogger()))

	require.Zero(t, r.Status().IntervalSeconds)
}
