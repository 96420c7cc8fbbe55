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
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codenotary/sap/pkg/logger"
	"github.com/codenotary/sap/pkg/source"
)

func TestServerLifecycle(t *testing.T) {
	dir := t.TempDir()
	pidPath := filepath.Join(dir, "sapd.pid")
	registryFile := filepath.Join(dir, "saps.txt")

	opts := DefaultOptions().
		WithDir(dir).
		WithAddress("127.0.0.1").
		WithPort(0).
		WithMetricsServer(false).
		WithPidfile(pidPath).
		WithRegister(true).
		WithRegistryFile(registryFile)

	srv := DefaultServer().
		WithOptions(opts).
		WithSource(source.NewStatic(testEmployees())).
		WithLogger(logger.NewMemoryLogger()).(*SAPServer)
	require.NoError(t, srv.Initialize())

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", srv.actualPort)
	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var payload map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return false
		}
		return payload["status"] == "ok" && payload["count"] == 2.0
	}, 5*time.Second, 50*time.Millisecond)

	pid, err := os.ReadFile(pidPath)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%d", os.Getpid()), string(pid))

	registry, err := os.ReadFile(registryFile)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("http://localhost:%d\n", srv.actualPort), string(registry))

	require.NoError(t, srv.Stop())
	require.NoError(t, <-errc)

	_, err = os.Stat(pidPath)
	require.True(t, os.IsNotExist(err))

	require.ErrorIs(t, srv.Stop(), ErrAlreadyStopped)
}

func TestServerServeError(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, lis.Close())

	opts := DefaultOptions().
		WithDir(t.TempDir()).
		WithMetricsServer(false).
		WithListener(lis)

	srv := DefaultServer().
		WithOptions(opts).
		WithSource(source.NewStatic(nil)).
		WithLogger(logger.NewMemoryLogger())
	require.NoError(t, srv.Initialize())

	// serving on a closed listener fails straight away
	require.Error(t, srv.Start())
	require.ErrorIs(t, srv.Stop(), ErrAlreadyStopped)
}

func TestStartOnFreshServer(t *testing.T) {
	require.ErrorIs(t, DefaultServer().Start(), ErrNotInitialized)
}

func TestServerInitializeWithoutSource(t *testing.T) {
	opts := DefaultOptions().
		WithDir(t.TempDir()).
		WithMetricsServer(false)

	srv := DefaultServer().
		WithOptions(opts).
		WithLogger(logger.NewMemoryLogger())
	require.ErrorIs(t, srv.Initialize(), ErrNoSource)
}

func TestServerInitializeInvalidOptions(t *testing.T) {
	opts := DefaultOptions().
		WithDir(t.TempDir()).
		WithPort(-1)

	srv := DefaultServer().
		WithOptions(opts).
		WithSource(source.NewStatic(nil)).
		WithLogger(logger.NewMemoryLogger())
	require.ErrorIs(t, srv.Initialize(), ErrInvalidOptions)
}

func TestServerInitializePortTaken(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()
	port := lis.Addr().(*net.TCPAddr).Port

	opts := DefaultOptions().
		WithDir(t.TempDir()).
		WithMetricsServer(false).
		WithAddress("127.0.0.1").
		WithPort(port)

	srv := DefaultServer().
		WithOptions(opts).
		WithSource(source.NewStatic(nil)).
		WithLogger(logger.NewMemoryLogger())
	require.Error(t, srv.Initialize())
}

func TestServerAutoPort(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()
	port := lis.Addr().(*net.TCPAddr).Port

	opts := DefaultOptions().
		WithDir(t.TempDir()).
		WithMetricsServer(false).
		WithAddress("127.0.0.1").
		WithPort(port).
		WithAutoPort(true)

	srv := DefaultServer().
		WithOptions(opts).
		WithSource(source.NewStatic(testEmployees())).
		WithLogger(logger.NewMemoryLogger()).(*SAPServer)
	require.NoError(t, srv.Initialize())
	t.Cleanup(func() { srv.Listener.Close() })

	require.Greater(t, srv.actualPort, port)
	require.LessOrEqual(t, srv.actualPort, port+autoPortAttempts)
}
