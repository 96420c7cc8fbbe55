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
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/rs/xid"

	"github.com/codenotary/sap/pkg/logger"
	"github.com/codenotary/sap/pkg/runner"
	"github.com/codenotary/sap/pkg/source"
)

// SAPServerIf is the lifecycle surface the service wrapper and the
// command layer operate on.
type SAPServerIf interface {
	Initialize() error
	Start() error
	Stop() error
	WithOptions(options *Options) SAPServerIf
	WithLogger(logger logger.Logger) SAPServerIf
	WithSource(src source.Source) SAPServerIf
}

// ProviderInfo is the identity payload served by /hello.
type ProviderInfo struct {
	Name        string `json:"name"`
	Mode        string `json:"mode"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// SAPServer ...
type SAPServer struct {
	Logger        logger.Logger
	Options       *Options
	Source        source.Source
	Runner        *runner.Runner
	Listener      net.Listener
	Pid           PIDFile
	UUID          xid.ID
	quit          chan struct{}
	mux           sync.Mutex
	stopped       bool
	serveErr      error
	httpServer    *http.Server
	metricsServer *http.Server
	tokenDigest   []byte
	actualPort    int
}

// DefaultServer ...
func DefaultServer() *SAPServer {
	return &SAPServer{
		Logger:  logger.NewSimpleLogger("sapd ", os.Stderr),
		Options: DefaultOptions(),
		quit:    make(chan struct{}),
	}
}

// WithLogger ...
func (s *SAPServer) WithLogger(logger logger.Logger) SAPServerIf {
	s.Logger = logger
	return s
}

// WithOptions ...
func (s *SAPServer) WithOptions(options *Options) SAPServerIf {
	s.Options = options
	return s
}

// WithSource sets the fetch source the runner polls
func (s *SAPServer) WithSource(src source.Source) SAPServerIf {
	s.Source = src
	return s
}

// ProviderInfo returns the identity served by /hello.
func (s *SAPServer) ProviderInfo() ProviderInfo {
	return ProviderInfo{
		Name:        s.Options.ProviderName,
		Mode:        ProviderMode,
		Description: s.Options.ProviderDescription,
		Version:     s.Options.ProviderVersion,
	}
}

// Addr returns the address the provider is serving on, valid after
// Initialize bound the listener.
func (s *SAPServer) Addr() string {
	if s.Listener == nil {
		return s.Options.Bind()
	}
	return s.Listener.Addr().String()
}
