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

package client

import "time"

// Options client options
type Options struct {
	ServerURL          string        // Base URL of the provider daemon
	RequestTimeout     time.Duration // Per request timeout
	HealthCheckRetries int           // Number of times a failing health check is retried
	Config             string        // Filename with additional configuration in toml format
}

// DefaultOptions ...
func DefaultOptions() *Options {
	return &Options{
		ServerURL:          "http://127.0.0.1:8080",
		RequestTimeout:     30 * time.Second,
		HealthCheckRetries: 5,
		Config:             "configs/sapadmin.toml",
	}
}

// WithServerURL sets the provider base URL
func (o *Options) WithServerURL(serverURL string) *Options {
	o.ServerURL = serverURL
	return o
}

// WithRequestTimeout sets the per request timeout
func (o *Options) WithRequestTimeout(timeout time.Duration) *Options {
	o.RequestTimeout = timeout
	return o
}

// WithHealthCheckRetries sets how often a failing health check is retried
func (o *Options) WithHealthCheckRetries(retries int) *Options {
	o.HealthCheckRetries = retries
	return o
}

// WithConfig sets config file name
func (o *Options) WithConfig(config string) *Options {
	o.Config = config
	return o
}
