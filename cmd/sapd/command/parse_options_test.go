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

package sapd

import (
	"testing"
	"time"

	"github.com/codenotary/sap/pkg/server"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestParseOptionsDefaults(t *testing.T) {
	defer tearDown(t)
	setupDefaults(server.DefaultOptions())

	options, err := parseOptions()
	require.NoError(t, err)
	require.Equal(t, server.DefaultOptions(), options)
}

func TestParseOptions(t *testing.T) {
	defer tearDown(t)
	setupDefaults(server.DefaultOptions())

	viper.Set("dir", "/var/lib/sapd")
	viper.Set("address", "127.0.0.1")
	viper.Set("port", 9090)
	viper.Set("auto-port", true)
	viper.Set("name", "hr provider")
	viper.Set("description", "employee records")
	viper.Set("provider-version", "1.2.3")
	viper.Set("refresh-interval", "45s")
	viper.Set("fetch-timeout", "10s")
	viper.Set("run-immediately", false)
	viper.Set("require-initial-fetch", true)
	viper.Set("initial-fetch-timeout", "5s")
	viper.Set("register", true)
	viper.Set("registry-file", "/tmp/saps.txt")
	viper.Set("refresh-token", "enc:c2VjcmV0")
	viper.Set("max-connections", 5)
	viper.Set("metrics-server", false)
	viper.Set("pprof", true)
	viper.Set("detached", true)

	options, err := parseOptions()
	require.NoError(t, err)
	require.Equal(t, "/var/lib/sapd", options.Dir)
	require.Equal(t, "127.0.0.1", options.Address)
	require.Equal(t, 9090, options.Port)
	require.True(t, options.AutoPort)
	require.Equal(t, "hr provider", options.ProviderName)
	require.Equal(t, "employee records", options.ProviderDescription)
	require.Equal(t, "1.2.3", options.ProviderVersion)
	require.Equal(t, 45*time.Second, options.RefreshInterval)
	require.Equal(t, 10*time.Second, options.FetchTimeout)
	require.False(t, options.RunImmediately)
	require.True(t, options.RequireInitialFetch)
	require.Equal(t, 5*time.Second, options.InitialFetchTimeout)
	require.True(t, options.Register)
	require.Equal(t, "/tmp/saps.txt", options.RegistryFile)
	require.Equal(t, "enc:c2VjcmV0", options.RefreshToken)
	require.Equal(t, 5, options.MaxConnections)
	require.False(t, options.MetricsServer)
	require.True(t, options.PProf)
	require.True(t, options.Detached)

	// keys left alone keep their defaults
	require.Equal(t, server.DefaultOptions().MetricsServerPort, options.MetricsServerPort)
	require.Equal(t, server.DefaultOptions().LogFormat, options.LogFormat)
}
