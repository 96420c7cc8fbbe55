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
	"time"

	"github.com/codenotary/sap/pkg/logger"
)

const (
	// DefaultInterval is the default pause between two refresh cycles.
	DefaultInterval = 60 * time.Second

	// DefaultFetchTimeout is the default limit for a single fetch call.
	DefaultFetchTimeout = 120 * time.Second
)

// Options runner options
type Options struct {
	// Interval is the pause between two refresh cycles. Negative values are
	// treated as zero.
	Interval time.Duration

	// RunImmediately triggers the first refresh right after Start.
	RunImmediately bool

	// FetchTimeout limits a single fetch call. Zero disables the limit.
	FetchTimeout time.Duration

	// Log is the destination of runner diagnostics.
	Log logger.Logger
}

// DefaultOptions returns the default runner options.
func DefaultOptions() *Options {
	return &Options{
		Interval:       DefaultInterval,
		RunImmediately: true,
		FetchTimeout:   DefaultFetchTimeout,
	}
}

// WithInterval sets the pause between two refresh cycles.
func (o *Options) WithInterval(interval time.Duration) *Options {
	o.Interval = interval
	return o
}

// WithRunImmediately sets whether the first refresh happens right after Start.
func (o *Options) WithRunImmediately(runImmediately bool) *Options {
	o.RunImmediately = runImmediately
	return o
}

// WithFetchTimeout sets the limit for a single fetch call.
func (o *Options) WithFetchTimeout(timeout time.Duration) *Options {
	o.FetchTimeout = timeout
	return o
}

// WithLogger sets the destination of runner diagnostics.
func (o *Options) WithLogger(log logger.Logger) *Options {
	o.Log = log
	return o
}
