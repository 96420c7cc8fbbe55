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

package sapadmin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenotary/sap/pkg/api"
	"github.com/codenotary/sap/pkg/client"
)

func TestOptions(t *testing.T) {
	defer viper.Reset()
	opts := Options()
	assert.IsType(t, &client.Options{}, opts)
}

func TestNewCommandLine(t *testing.T) {
	cml := NewCommandLine()
	assert.IsType(t, &commandline{}, cml)
}

func TestConfigChain(t *testing.T) {
	defer viper.Reset()
	cl := NewCommandLine()
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&cl.config.CfgFn, "config", "", "config file")
	f := func(cmd *cobra.Command, args []string) error {
		return nil
	}
	err := cl.ConfigChain(f)(cmd, []string{})
	assert.NoError(t, err)
}

func testProviderHandler(t *testing.T) http.Handler {
	t.Helper()

	objects := []*api.Object{
		api.NewObject("emp_001", []string{"person", "employee"}, "hr_system").
			Set("name", "Alice Johnson"),
		api.NewObject("emp_002", []string{"person", "employee"}, "hr_system").
			Set("name", "Bob Smith"),
	}
	allData, err := json.Marshal(objects)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/hello", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"HR Provider","mode":"ALL_AT_ONCE","description":"employee data","version":"1.2.3"}`)
	})
	mux.HandleFunc("/all_data", func(w http.ResponseWriter, r *http.Request) {
		w.Write(allData)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ok","count":2}`)
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"last_started_at":1700000000.5,"last_completed_at":1700000001.5,"last_error":null,"interval_seconds":60,"is_running":true,"in_flight":false,"fetch_timeout_seconds":120,"refresh_count":4,"last_refresh_id":"a-refresh-id","count":2}`)
	})
	mux.HandleFunc("/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"unauthorized"}`)
			return
		}
		fmt.Fprint(w, `{"status":"refresh_started","refresh_id":"b-refresh-id"}`)
	})
	return mux
}

// Start a provider stub and prepare a command line pointing at it.
func newTestCommandLine(t *testing.T) (*commandline, *cobra.Command) {
	srv := httptest.NewServer(testProviderHandler(t))
	t.Cleanup(srv.Close)
	t.Cleanup(viper.Reset)

	cmdl := NewCommandLine()
	cmdl.onError = func(msg interface{}) {
		t.Fatalf("command failed: %v", msg)
	}

	cmd, err := cmdl.NewCmd()
	if err != nil {
		t.Fatalf("initializing cobra command failed: %v", err)
	}
	cmdl.Register(cmd)
	viper.Set("server-url", srv.URL)

	return cmdl, cmd
}
