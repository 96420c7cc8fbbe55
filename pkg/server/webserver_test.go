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
	"encoding/base64"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"github.com/codenotary/sap/pkg/api"
	"github.com/codenotary/sap/pkg/logger"
	"github.com/codenotary/sap/pkg/source"
)

// testServer returns an initialized server bound to a loopback listener,
// with the metrics server disabled so tests never share collector state.
func testServer(t *testing.T, opts *Options, src source.Source) *SAPServer {
	t.Helper()

	if opts == nil {
		opts = DefaultOptions()
	}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { lis.Close() })

	opts.WithDir(t.TempDir()).
		WithMetricsServer(false).
		WithListener(lis)

	srv := DefaultServer().
		WithOptions(opts).
		WithSource(src).
		WithLogger(logger.NewMemoryLogger()).(*SAPServer)
	require.NoError(t, srv.Initialize())
	return srv
}

func testEmployees() []*api.Object {
	return []*api.Object{
		api.NewObject("emp_001", []string{"person", "employee"}, "hr_system").
			Set("name", "Alice Johnson").
			Set("salary", int64(85000)),
		api.NewObject("emp_002", []string{"person", "employee"}, "hr_system").
			Set("name", "Bob Smith"),
	}
}

func doGet(t *testing.T, srv *SAPServer, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestWebserverServiceCard(t *testing.T) {
	srv := testServer(t, nil, source.NewStatic(testEmployees()))

	w := doGet(t, srv, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	payload := decodeBody(t, w)
	require.Equal(t, "SAP Provider", payload["service"])
	require.Equal(t, "running", payload["status"])
	require.Equal(t, map[string]interface{}{
		"/hello":    "Provider information",
		"/all_data": "All SAObject data",
		"/health":   "Health probe",
		"/status":   "Runner status",
	}, payload["endpoints"])
}

func TestWebserverUnknownPath(t *testing.T) {
	srv := testServer(t, nil, source.NewStatic(testEmployees()))

	w := doGet(t, srv, "/nope")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, map[string]interface{}{"error": "not found"}, decodeBody(t, w))
}

func TestWebserverMethodNotAllowed(t *testing.T) {
	srv := testServer(t, nil, source.NewStatic(testEmployees()))

	for _, target := range []string{"/", "/hello", "/all_data", "/health", "/status", "/refresh"} {
		w := httptest.NewRecorder()
		srv.httpServer.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
		require.Equal(t, http.StatusMethodNotAllowed, w.Code, "POST %s", target)
		require.Equal(t, http.MethodGet, w.Header().Get("Allow"))
	}
}

func TestWebserverHello(t *testing.T) {
	opts := DefaultOptions().
		WithProviderName("HR Provider").
		WithProviderDescription("employee data").
		WithProviderVersion("1.2.3")
	srv := testServer(t, opts, source.NewStatic(testEmployees()))

	w := doGet(t, srv, "/hello")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]interface{}{
		"name":        "HR Provider",
		"mode":        "ALL_AT_ONCE",
		"description": "employee data",
		"version":     "1.2.3",
	}, decodeBody(t, w))
}

func TestWebserverAllData(t *testing.T) {
	srv := testServer(t, nil, source.NewStatic(testEmployees()))

	// before the first refresh the cache is empty, never null
	w := doGet(t, srv, "/all_data")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())

	srv.Runner.TriggerRefresh(true)

	w = doGet(t, srv, "/all_data")
	require.Equal(t, http.StatusOK, w.Code)

	var objects []*api.Object
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &objects))
	require.Len(t, objects, 2)
	require.Equal(t, "emp_001", objects[0].ID)
	require.Equal(t, []string{"person", "employee"}, objects[0].Types)
	require.Equal(t, "hr_system", objects[0].Source)
	require.Equal(t, int64(85000), objects[0].Properties["salary"])
	require.Equal(t, "emp_002", objects[1].ID)
}

func TestWebserverHealth(t *testing.T) {
	srv := testServer(t, nil, source.NewStatic(testEmployees()))

	w := doGet(t, srv, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]interface{}{"status": "ok", "count": 0.0}, decodeBody(t, w))

	srv.Runner.TriggerRefresh(true)

	w = doGet(t, srv, "/health")
	require.Equal(t, map[string]interface{}{"status": "ok", "count": 2.0}, decodeBody(t, w))
}

func TestWebserverStatus(t *testing.T) {
	srv := testServer(t, nil, source.NewStatic(testEmployees()))

	refreshID := srv.Runner.TriggerRefresh(true)

	w := doGet(t, srv, "/status")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	require.Equal(t, 2.0, payload["count"])
	require.Equal(t, 60.0, payload["interval_seconds"])
	require.Equal(t, 1.0, payload["refresh_count"])
	require.Equal(t, refreshID, payload["last_refresh_id"])
	require.NotNil(t, payload["last_started_at"])
	require.NotNil(t, payload["last_completed_at"])
	require.Nil(t, payload["last_error"])
	require.Equal(t, false, payload["is_running"])
	require.Equal(t, false, payload["in_flight"])
	require.Equal(t, 120.0, payload["fetch_timeout_seconds"])
}

func TestWebserverRefresh(t *testing.T) {
	srv := testServer(t, nil, source.NewStatic(testEmployees()))

	w := doGet(t, srv, "/refresh")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	require.Equal(t, "refresh_started", payload["status"])
	require.NotEmpty(t, payload["refresh_id"])

	require.Eventually(t, func() bool {
		return srv.Runner.Count() == 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWebserverRefreshTokenGate(t *testing.T) {
	opts := DefaultOptions().WithRefreshToken("secret")
	srv := testServer(t, opts, source.NewStatic(testEmployees()))

	w := doGet(t, srv, "/refresh")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, map[string]interface{}{"error": "unauthorized"}, decodeBody(t, w))

	w = doGet(t, srv, "/refresh?token=wrong")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	require.Zero(t, srv.Runner.Count())

	w = doGet(t, srv, "/refresh?token=secret")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "refresh_started", decodeBody(t, w)["status"])

	require.Eventually(t, func() bool {
		return srv.Runner.Count() == 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWebserverRefreshTokenBase64(t *testing.T) {
	encoded := "enc:" + base64.StdEncoding.EncodeToString([]byte("secret"))
	opts := DefaultOptions().WithRefreshToken(encoded)
	srv := testServer(t, opts, source.NewStatic(testEmployees()))

	w := doGet(t, srv, "/refresh?token=secret")
	require.Equal(t, http.StatusOK, w.Code)

	w = doGet(t, srv, "/refresh?token="+encoded)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebserverUUIDHeader(t *testing.T) {
	srv := testServer(t, nil, source.NewStatic(testEmployees()))

	w := doGet(t, srv, "/health")
	sent := w.Header().Get(SERVER_UUID_HEADER)
	require.NotEmpty(t, sent)

	parsed, err := xid.FromString(sent)
	require.NoError(t, err)
	require.Zero(t, srv.UUID.Compare(parsed))
}
