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

// Package server exposes a cached data set over the provider HTTP surface,
// /hello, /all_data, /health, /status and /refresh.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/net/netutil"

	"github.com/codenotary/sap/cmd/version"
	"github.com/codenotary/sap/pkg/api"
	"github.com/codenotary/sap/pkg/auth"
	"github.com/codenotary/sap/pkg/logger"
	"github.com/codenotary/sap/pkg/runner"
)

const stopTimeout = 5 * time.Second

var startedAt time.Time

var sapTextLogo = "                        _ \n" +
	" ___   __ _  _ __    __| |\n" +
	"/ __| / _` || '_ \\  / _` |\n" +
	"\\__ \\| (_| || |_) || (_| |\n" +
	"|___/ \\__,_|| .__/  \\__,_|\n" +
	"            |_|           \n"

// Initialize sets up the fetch runner, the listener and stats
func (s *SAPServer) Initialize() error {
	_, err := fmt.Fprintf(os.Stdout, "%s\n%s\n%s\n\n", sapTextLogo, version.VersionStr(), s.Options)
	logErr(s.Logger, "Error printing sapd config: %v", err)

	if s.Options.Logfile != "" {
		s.Logger.Infof("\n%s\n%s\n%s\n\n", sapTextLogo, version.VersionStr(), s.Options)
	}

	if err := s.Options.Validate(); err != nil {
		return logErr(s.Logger, "Invalid options: %v", err)
	}

	if s.Source == nil {
		s.Logger.Errorf(ErrNoSource.Error())
		return ErrNoSource
	}

	dataDir := s.Options.Dir
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return logErr(s.Logger, "Unable to create data dir: %v", err)
	}

	if s.UUID, err = getOrSetUUID(dataDir); err != nil {
		return logErr(s.Logger, "Unable to get or set uuid: %v", err)
	}

	if s.Options.RefreshToken != "" {
		plainToken, err := auth.DecodeBase64Token(s.Options.RefreshToken)
		if err != nil {
			return logErr(s.Logger, "%v", err)
		}
		if s.tokenDigest, err = auth.HashAndSaltToken(plainToken); err != nil {
			return logErr(s.Logger, "%v", err)
		}
	}

	if err = s.setupPidFile(); err != nil {
		return err
	}

	if s.Options.usingCustomListener {
		s.Logger.Infof("Using custom listener")
		s.Listener = s.Options.listener
	} else {
		if s.Listener, err = s.listen(); err != nil {
			return logErr(s.Logger, "Sapd unable to listen: %v", err)
		}
	}

	if tcpAddr, ok := s.Listener.Addr().(*net.TCPAddr); ok {
		s.actualPort = tcpAddr.Port
	} else {
		s.actualPort = s.Options.Port
	}

	if s.Options.MaxConnections > 0 {
		s.Listener = netutil.LimitListener(s.Listener, s.Options.MaxConnections)
		s.Logger.Infof("Max connections set to %d", s.Options.MaxConnections)
	}

	runnerOpts := runner.DefaultOptions().
		WithInterval(s.Options.RefreshInterval).
		WithRunImmediately(s.Options.RunImmediately).
		WithFetchTimeout(s.Options.FetchTimeout).
		WithLogger(s.Logger)
	s.Runner = runner.New(s.Source.Fetch, normalizeAndDeduplicate, Metrics.UpdateRefreshMetrics, runnerOpts)

	s.Logger.Infof("Serving data from %s", s.Source)

	s.httpServer = &http.Server{Handler: s.setupRoutes()}

	return err
}

// Start starts the provider server, it serves requests until Stop is called
func (s *SAPServer) Start() (err error) {
	s.mux.Lock()

	if s.Listener == nil || s.Runner == nil {
		s.mux.Unlock()
		return ErrNotInitialized
	}

	startedAt = time.Now()

	if s.Options.MetricsServer {
		if err := s.setUpMetricsServer(); err != nil {
			s.mux.Unlock()
			return err
		}
		defer func() {
			if err := s.metricsServer.Close(); err != nil {
				s.Logger.Errorf("Failed to shutdown metric server: %s", err)
			}
		}()
	}

	s.Runner.Start()

	if s.Options.RequireInitialFetch {
		if err := s.Runner.WaitForInitialFetch(context.Background(), s.Options.InitialFetchTimeout); err != nil {
			s.Logger.Warningf("Initial fetch incomplete: %v", err)
		}
	}

	if s.Options.Register {
		url := fmt.Sprintf("http://localhost:%d", s.actualPort)
		if err := RegisterProvider(s.Options.RegistryFile, url); err != nil {
			s.Logger.Warningf("Unable to register provider with the shell: %v", err)
		} else {
			s.Logger.Infof("Registered %s with the shell registry", url)
		}
	}

	s.installShutdownHandler()

	go func() {
		if serveErr := s.httpServer.Serve(s.Listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.Logger.Errorf("Provider server error: %v", serveErr)
			s.mux.Lock()
			s.serveErr = serveErr
			s.mux.Unlock()
			s.Stop()
		} else {
			s.Logger.Debugf("Provider http server closed")
		}
	}()

	s.Logger.Infof("Provider server is running at %s", s.Addr())

	s.mux.Unlock()
	<-s.quit

	s.mux.Lock()
	err = s.serveErr
	s.mux.Unlock()

	return err
}

// Stop stops the provider server
func (s *SAPServer) Stop() error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.stopped {
		return ErrAlreadyStopped
	}
	s.stopped = true

	s.Logger.Infof("Stopping sapd:\n%v", s.Options)

	defer close(s.quit)

	var err error

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
		cancel()
	}

	if s.Runner != nil {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		if runnerErr := s.Runner.Stop(ctx); runnerErr != nil && err == nil {
			err = runnerErr
		}
		cancel()
	}

	if s.Options.Pidfile != "" {
		if pidErr := s.Pid.Remove(); pidErr != nil && err == nil {
			err = pidErr
		}
	}

	return err
}

func logErr(log logger.Logger, formattedMessage string, err error) error {
	if err != nil {
		log.Errorf(formattedMessage, err)
	}
	return err
}

func (s *SAPServer) setupPidFile() error {
	var err error
	if s.Options.Pidfile != "" {
		if s.Pid, err = NewPid(s.Options.Pidfile); err != nil {
			return logErr(s.Logger, "Failed to write pidfile: %s", err)
		}
	}
	return err
}

func (s *SAPServer) setUpMetricsServer() error {
	s.metricsServer = StartMetrics(
		s.Options.MetricsBind(),
		s.Logger,
		s.Options.PProf,
		s.metricFuncCachedObjects,
		s.metricFuncServerUptimeCounter,
	)
	return nil
}

// listen binds the provider port, walking up the port range when the
// configured one is taken and auto port is enabled.
func (s *SAPServer) listen() (net.Listener, error) {
	lis, err := net.Listen(s.Options.Network, s.Options.Bind())
	if err == nil || !s.Options.AutoPort {
		return lis, err
	}

	for port := s.Options.Port + 1; port <= s.Options.Port+autoPortAttempts; port++ {
		addr := s.Options.Address + ":" + strconv.Itoa(port)
		next, nextErr := net.Listen(s.Options.Network, addr)
		if nextErr == nil {
			s.Logger.Warningf("Port %d is taken, serving on %d instead", s.Options.Port, port)
			return next, nil
		}
	}

	return nil, err
}

func (s *SAPServer) installShutdownHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		s.Logger.Infof("Caught SIGTERM")
		if err := s.Stop(); err != nil {
			s.Logger.Errorf("Shutdown error: %v", err)
		}
		s.Logger.Infof("Shutdown completed")
	}()
}

func normalizeAndDeduplicate(objects []*api.Object) ([]*api.Object, error) {
	normalized, err := api.Normalize(objects)
	if err != nil {
		return nil, err
	}
	return api.Deduplicate(normalized), nil
}
