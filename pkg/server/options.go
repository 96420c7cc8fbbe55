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

package server

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/codenotary/sap/pkg/logger"
)

const (
	// DefaultProviderVersion is reported by /hello when no version is set.
	DefaultProviderVersion = "0.1.0"

	// ProviderMode is the only delivery mode the provider supports, the
	// full data set on every fetch.
	ProviderMode = "ALL_AT_ONCE"
)

// autoPortAttempts is how many ports above the configured one are tried
// when auto port is enabled and the configured port is taken.
const autoPortAttempts = 20

// Options server options list
type Options struct {
	Dir                 string
	Network             string
	Address             string
	Port                int
	AutoPort            bool
	Config              string
	Pidfile             string
	Logfile             string
	LogFormat           string
	ProviderName        string
	ProviderDescription string
	ProviderVersion     string
	RefreshInterval     time.Duration
	FetchTimeout        time.Duration
	RunImmediately      bool
	RequireInitialFetch bool
	InitialFetchTimeout time.Duration
	Register            bool
	RegistryFile        string
	RefreshToken        string `json:"-"`
	MaxConnections      int
	MetricsServer       bool
	MetricsServerPort   int
	PProf               bool
	Detached            bool
	listener            net.Listener
	usingCustomListener bool
}

// DefaultOptions returns default server options
func DefaultOptions() *Options {
	return &Options{
		Dir:                 "./data",
		Network:             "tcp",
		Address:             "0.0.0.0",
		Port:                8080,
		AutoPort:            false,
		Config:              "configs/sapd.toml",
		Pidfile:             "",
		Logfile:             "",
		LogFormat:           logger.LogFormatText,
		ProviderName:        "SAP Provider",
		ProviderDescription: "",
		ProviderVersion:     DefaultProviderVersion,
		RefreshInterval:     60 * time.Second,
		FetchTimeout:        120 * time.Second,
		RunImmediately:      true,
		RequireInitialFetch: false,
		InitialFetchTimeout: 30 * time.Second,
		Register:            false,
		RegistryFile:        "",
		RefreshToken:        "",
		MaxConnections:      0,
		MetricsServer:       true,
		MetricsServerPort:   9497,
		PProf:               false,
		Detached:            false,
		usingCustomListener: false,
	}
}

// Validate rejects option combinations the server cannot start with.
func (o *Options) Validate() error {
	if o.Port < 0 || o.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidOptions, o.Port)
	}
	if o.MetricsServer && (o.MetricsServerPort < 1 || o.MetricsServerPort > 65535) {
		return fmt.Errorf("%w: metrics port %d out of range", ErrInvalidOptions, o.MetricsServerPort)
	}
	if o.RefreshInterval < 0 {
		return fmt.Errorf("%w: refresh interval must not be negative", ErrInvalidOptions)
	}
	if o.ProviderName == "" {
		return fmt.Errorf("%w: provider name must not be empty", ErrInvalidOptions)
	}
	if o.MaxConnections < 0 {
		return fmt.Errorf("%w: max connections must not be negative", ErrInvalidOptions)
	}
	return nil
}

// WithDir sets dir
func (o *Options) WithDir(dir string) *Options {
	o.Dir = dir
	return o
}

// WithNetwork sets network
func (o *Options) WithNetwork(network string) *Options {
	o.Network = network
	return o
}

// WithAddress sets address
func (o *Options) WithAddress(address string) *Options {
	o.Address = address
	return o
}

// WithPort sets port
func (o *Options) WithPort(port int) *Options {
	o.Port = port
	return o
}

// WithAutoPort lets the server walk up the port range when the
// configured port is taken
func (o *Options) WithAutoPort(autoPort bool) *Options {
	o.AutoPort = autoPort
	return o
}

// WithConfig sets config file name
func (o *Options) WithConfig(config string) *Options {
	o.Config = config
	return o
}

// WithPidfile sets pid file
func (o *Options) WithPidfile(pidfile string) *Options {
	o.Pidfile = pidfile
	return o
}

// WithLogfile sets logfile
func (o *Options) WithLogfile(logfile string) *Options {
	o.Logfile = logfile
	return o
}

// WithLogFormat sets the log format, text or json
func (o *Options) WithLogFormat(logFormat string) *Options {
	o.LogFormat = logFormat
	return o
}

// WithProviderName sets the provider name reported by /hello
func (o *Options) WithProviderName(name string) *Options {
	o.ProviderName = name
	return o
}

// WithProviderDescription sets the provider description
func (o *Options) WithProviderDescription(description string) *Options {
	o.ProviderDescription = description
	return o
}

// WithProviderVersion sets the provider version
func (o *Options) WithProviderVersion(version string) *Options {
	o.ProviderVersion = version
	return o
}

// WithRefreshInterval sets the pause between two refresh cycles
func (o *Options) WithRefreshInterval(interval time.Duration) *Options {
	o.RefreshInterval = interval
	return o
}

// WithFetchTimeout bounds a single fetch, zero disables the bound
func (o *Options) WithFetchTimeout(timeout time.Duration) *Options {
	o.FetchTimeout = timeout
	return o
}

// WithRunImmediately controls whether the first refresh runs at startup
func (o *Options) WithRunImmediately(runImmediately bool) *Options {
	o.RunImmediately = runImmediately
	return o
}

// WithRequireInitialFetch makes Start wait for the first successful fetch
func (o *Options) WithRequireInitialFetch(require bool) *Options {
	o.RequireInitialFetch = require
	return o
}

// WithInitialFetchTimeout bounds the initial fetch wait
func (o *Options) WithInitialFetchTimeout(timeout time.Duration) *Options {
	o.InitialFetchTimeout = timeout
	return o
}

// WithRegister registers the provider with the shell registry on start
func (o *Options) WithRegister(register bool) *Options {
	o.Register = register
	return o
}

// WithRegistryFile overrides the default ~/.sa/saps.txt registry location
func (o *Options) WithRegistryFile(registryFile string) *Options {
	o.RegistryFile = registryFile
	return o
}

// WithRefreshToken gates /refresh behind a token, plain or enc: base64
func (o *Options) WithRefreshToken(token string) *Options {
	o.RefreshToken = token
	return o
}

// WithMaxConnections caps concurrent provider connections, zero means
// unlimited
func (o *Options) WithMaxConnections(maxConnections int) *Options {
	o.MaxConnections = maxConnections
	return o
}

// WithMetricsServer ...
func (o *Options) WithMetricsServer(metricsServer bool) *Options {
	o.MetricsServer = metricsServer
	return o
}

// WithMetricsServerPort set Prometheus end-point port
func (o *Options) WithMetricsServerPort(port int) *Options {
	o.MetricsServerPort = port
	return o
}

// WithPProf exposes the pprof handlers on the metrics server
func (o *Options) WithPProf(pprof bool) *Options {
	o.PProf = pprof
	return o
}

// WithDetached sets sapd to be run in background
func (o *Options) WithDetached(detached bool) *Options {
	o.Detached = detached
	return o
}

// WithListener used usually to pass a bufered listener for testing purposes
func (o *Options) WithListener(lis net.Listener) *Options {
	o.listener = lis
	o.usingCustomListener = true
	return o
}

// Bind returns bind address
func (o *Options) Bind() string {
	return o.Address + ":" + strconv.Itoa(o.Port)
}

// MetricsBind return metrics bind address
func (o *Options) MetricsBind() string {
	return o.Address + ":" + strconv.Itoa(o.MetricsServerPort)
}

// String print options
func (o *Options) String() string {
	rightPad := func(k string, v interface{}) string {
		return fmt.Sprintf("%-17s: %v", k, v)
	}
	opts := make([]string, 0, 17)
	opts = append(opts, "================ Config ================")
	opts = append(opts, rightPad("Provider", fmt.Sprintf("%s (%s)", o.ProviderName, o.ProviderVersion)))
	opts = append(opts, rightPad("Data dir", o.Dir))
	opts = append(opts, rightPad("Address", fmt.Sprintf("%s:%d", o.Address, o.Port)))
	if o.AutoPort {
		opts = append(opts, rightPad("Auto port", fmt.Sprintf("up to %d", o.Port+autoPortAttempts)))
	}
	opts = append(opts, rightPad("Refresh interval", o.RefreshInterval))
	opts = append(opts, rightPad("Fetch timeout", o.FetchTimeout))
	if o.MetricsServer {
		opts = append(opts, rightPad("Metrics address", fmt.Sprintf("%s:%d/metrics", o.Address, o.MetricsServerPort)))
		if o.PProf {
			opts = append(opts, rightPad("Metrics with pprof", "true"))
		}
	}
	if o.Config != "" {
		opts = append(opts, rightPad("Config file", o.Config))
	}
	if o.Pidfile != "" {
		opts = append(opts, rightPad("PID file", o.Pidfile))
	}
	if o.Logfile != "" {
		opts = append(opts, rightPad("Log file", o.Logfile))
	}
	if o.MaxConnections > 0 {
		opts = append(opts, rightPad("Max connections", o.MaxConnections))
	}
	if o.Register {
		opts = append(opts, rightPad("Shell registry", registryPath(o.RegistryFile)))
	}
	opts = append(opts, rightPad("Refresh auth", o.RefreshToken != ""))
	if o.RequireInitialFetch {
		opts = append(opts, rightPad("Initial fetch", fmt.Sprintf("required within %s", o.InitialFetchTimeout)))
	}
	opts = append(opts, "========================================")
	return strings.Join(opts, "\n")
}
