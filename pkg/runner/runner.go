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

// Package runner keeps a cache of provider objects fresh by calling a fetch
// function on a fixed interval.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codenotary/sap/pkg/api"
	"github.com/codenotary/sap/pkg/logger"
)

// FetchFunc produces the full data set of a provider. The context carries
// the per-cycle timeout.
type FetchFunc func(ctx context.Context) ([]*api.Object, error)

// PostprocessFunc transforms freshly fetched objects before they are cached.
type PostprocessFunc func([]*api.Object) ([]*api.Object, error)

// MetricsFunc is invoked after every refresh cycle with its outcome.
type MetricsFunc func(result string, duration time.Duration, completedAt time.Time)

// Refresh cycle results reported to MetricsFunc.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultTimeout = "timeout"
)

const initialFetchPollInterval = 100 * time.Millisecond

// ErrInitialFetchTimeout is returned when the first refresh does not succeed
// within the configured wait.
var ErrInitialFetchTimeout = errors.New("initial fetch did not complete in time")

// Status is a point in time snapshot of the runner. Times travel as Unix
// seconds so that consumers do not need to parse dates.
type Status struct {
	LastStartedAt       *float64 `json:"last_started_at"`
	LastCompletedAt     *float64 `json:"last_completed_at"`
	LastError           *string  `json:"last_error"`
	IntervalSeconds     float64  `json:"interval_seconds"`
	IsRunning           bool     `json:"is_running"`
	InFlight            bool     `json:"in_flight"`
	FetchTimeoutSeconds *float64 `json:"fetch_timeout_seconds"`
	RefreshCount        uint64   `json:"refresh_count"`
	LastRefreshID       string   `json:"last_refresh_id,omitempty"`
}

// Runner refreshes a cached object list on a fixed interval. A single fetch
// is in flight at any time, refreshes triggered while one runs are skipped.
type Runner struct {
	fetch         FetchFunc
	postprocess   PostprocessFunc
	updateMetrics MetricsFunc

	interval       time.Duration
	runImmediately bool
	fetchTimeout   time.Duration

	logger logger.Logger
	nowFnc func() time.Time

	mutex           sync.RWMutex
	cache           []*api.Object
	inFlight        bool
	running         bool
	stopped         bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastError       string
	refreshCount    uint64
	lastRefreshID   string

	stopc chan struct{}
	donec chan struct{}
}

// New creates a runner calling fetch on the configured interval. postprocess
// and updateMetrics may be nil.
func New(fetch FetchFunc, postprocess PostprocessFunc, updateMetrics MetricsFunc, opts *Options) *Runner {
	if opts == nil {
		opts = DefaultOptions()
	}

	interval := opts.Interval
	if interval < 0 {
		interval = 0
	}

	log := opts.Log
	if log == nil {
		log = logger.NewSimpleLogger("runner", os.Stderr)
	}

	return &Runner{
		fetch:          fetch,
		postprocess:    postprocess,
		updateMetrics:  updateMetrics,
		interval:       interval,
		runImmediately: opts.RunImmediately,
		fetchTimeout:   opts.FetchTimeout,
		logger:         log,
		nowFnc:         time.Now,
	}
}

// Start launches the refresh loop. A second call on a running runner is a
// no-op.
func (r *Runner) Start() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.running {
		return
	}
	r.running = true
	r.stopped = false
	r.stopc = make(chan struct{})
	r.donec = make(chan struct{})

	go r.run(r.stopc, r.donec)
}

// Stop terminates the refresh loop and waits for it to exit, giving up when
// ctx expires. An in-flight fetch keeps running until its own timeout.
func (r *Runner) Stop(ctx context.Context) error {
	r.mutex.Lock()
	if !r.running {
		r.mutex.Unlock()
		return nil
	}
	if !r.stopped {
		r.stopped = true
		close(r.stopc)
	}
	donec := r.donec
	r.mutex.Unlock()

	select {
	case <-donec:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) run(stopc chan struct{}, donec chan struct{}) {
	defer func() {
		r.mutex.Lock()
		r.running = false
		r.mutex.Unlock()
		close(donec)
	}()

	r.logger.Infof("starting refresh loop with a %s interval ...", r.interval)

	if r.runImmediately {
		r.runOnce(uuid.New().String())
	}

	for {
		timer := time.NewTimer(r.interval)
		select {
		case <-stopc:
			timer.Stop()
			r.logger.Infof("refresh loop stopped")
			return
		case <-timer.C:
		}
		r.runOnce(uuid.New().String())
	}
}

// TriggerRefresh requests an out of schedule refresh and returns the id
// assigned to it. With blocking set the call returns once the cycle
// finished, otherwise the cycle runs in the background. A refresh already
// in flight is left alone either way.
func (r *Runner) TriggerRefresh(blocking bool) string {
	refreshID := uuid.New().String()
	if blocking {
		r.runOnce(refreshID)
		return refreshID
	}
	go r.runOnce(refreshID)
	return refreshID
}

func (r *Runner) runOnce(refreshID string) {
	started := r.nowFnc()

	r.mutex.Lock()
	if r.inFlight {
		r.mutex.Unlock()
		r.logger.Debugf("refresh skipped, another one is in flight")
		return
	}
	r.inFlight = true
	r.refreshCount++
	r.lastRefreshID = refreshID
	r.lastStartedAt = started
	cycle := r.refreshCount
	r.mutex.Unlock()

	r.logger.Debugf("refresh #%d (%s) started @ %s", cycle, refreshID, started)

	objects, err := r.doFetch()
	if err == nil && r.postprocess != nil {
		objects, err = r.postprocess(objects)
	}

	completed := r.nowFnc()
	duration := completed.Sub(started)
	result := ResultOK

	r.mutex.Lock()
	if err != nil {
		result = resultOf(err)
		r.lastError = formatError(err)
		r.logger.Errorf("refresh #%d failed after %s: %s", cycle, duration, r.lastError)
	} else {
		r.cache = objects
		r.lastError = ""
		r.logger.Infof("refresh #%d cached %d objects in %s", cycle, len(objects), duration)
	}
	r.lastCompletedAt = completed
	r.inFlight = false
	r.mutex.Unlock()

	if r.updateMetrics != nil {
		r.updateMetrics(result, duration, completed)
	}
}

func (r *Runner) doFetch() ([]*api.Object, error) {
	ctx := context.Background()
	if r.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.fetchTimeout)
		defer cancel()
	}

	type fetchResult struct {
		objects []*api.Object
		err     error
	}

	resc := make(chan fetchResult, 1)
	go func() {
		objects, err := r.fetch(ctx)
		resc <- fetchResult{objects: objects, err: err}
	}()

	select {
	case res := <-resc:
		return res.objects, res.err
	case <-ctx.Done():
		// The fetch goroutine is left to wind down on its own, its late
		// result is discarded.
		return nil, fmt.Errorf("%w: fetch exceeded %g seconds", context.DeadlineExceeded, r.fetchTimeout.Seconds())
	}
}

// Cached returns a copy of the cached object list.
func (r *Runner) Cached() []*api.Object {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	objects := make([]*api.Object, len(r.cache))
	copy(objects, r.cache)
	return objects
}

// Count returns the number of cached objects.
func (r *Runner) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.cache)
}

// Status returns a snapshot of the runner state.
func (r *Runner) Status() *Status {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	status := &Status{
		IntervalSeconds: r.interval.Seconds(),
		IsRunning:       r.running,
		InFlight:        r.inFlight,
		RefreshCount:    r.refreshCount,
		LastRefreshID:   r.lastRefreshID,
	}
	if !r.lastStartedAt.IsZero() {
		status.LastStartedAt = unixSeconds(r.lastStartedAt)
	}
	if !r.lastCompletedAt.IsZero() {
		status.LastCompletedAt = unixSeconds(r.lastCompletedAt)
	}
	if r.lastError != "" {
		lastError := r.lastError
		status.LastError = &lastError
	}
	if r.fetchTimeout > 0 {
		timeout := r.fetchTimeout.Seconds()
		status.FetchTimeoutSeconds = &timeout
	}
	return status
}

// WaitForInitialFetch polls until the first refresh completed without an
// error, returning ErrInitialFetchTimeout when timeout passes first.
func (r *Runner) WaitForInitialFetch(ctx context.Context, timeout time.Duration) error {
	deadline := r.nowFnc().Add(timeout)
	for {
		r.mutex.RLock()
		done := !r.lastCompletedAt.IsZero() && r.lastError == ""
		r.mutex.RUnlock()
		if done {
			return nil
		}

		if !r.nowFnc().Before(deadline) {
			return ErrInitialFetchTimeout
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(initialFetchPollInterval):
		}
	}
}

func resultOf(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return ResultTimeout
	}
	return ResultError
}

// formatError renders a refresh failure as "Kind: message", the shape shell
// frontends show verbatim.
func formatError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("TimeoutError: %v", trimWrap(err, context.DeadlineExceeded))
	case errors.Is(err, api.ErrInvalidObject):
		return fmt.Sprintf("ValidationError: %v", trimWrap(err, api.ErrInvalidObject))
	default:
		return fmt.Sprintf("FetchError: %v", err)
	}
}

// trimWrap strips the "%w: " prefix the wrapping sentinel adds, keeping just
// the human part of the message.
func trimWrap(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

func unixSeconds(t time.Time) *float64 {
	seconds := float64(t.UnixNano()) / float64(time.Second)
	return &seconds
}
