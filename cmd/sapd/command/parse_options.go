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
	"github.com/codenotary/sap/pkg/server"
	"github.com/spf13/viper"
)

func parseOptions() (options *server.Options, err error) {
	dir := viper.GetString("dir")

	address := viper.GetString("address")
	port := viper.GetInt("port")
	autoPort := viper.GetBool("auto-port")

	pidfile := viper.GetString("pidfile")
	logfile := viper.GetString("logfile")
	logFormat := viper.GetString("logformat")

	name := viper.GetString("name")
	description := viper.GetString("description")
	providerVersion := viper.GetString("provider-version")

	refreshInterval := viper.GetDuration("refresh-interval")
	fetchTimeout := viper.GetDuration("fetch-timeout")
	runImmediately := viper.GetBool("run-immediately")
	requireInitialFetch := viper.GetBool("require-initial-fetch")
	initialFetchTimeout := viper.GetDuration("initial-fetch-timeout")

	register := viper.GetBool("register")
	registryFile := viper.GetString("registry-file")
	refreshToken := viper.GetString("refresh-token")

	maxConnections := viper.GetInt("max-connections")
	detached := viper.GetBool("detached")

	metricsServer := viper.GetBool("metrics-server")
	metricsServerPort := viper.GetInt("metrics-server-port")
	pprof := viper.GetBool("pprof")

	options = server.
		DefaultOptions().
		WithDir(dir).
		WithPort(port).
		WithAddress(address).
		WithAutoPort(autoPort).
		WithPidfile(pidfile).
		WithLogfile(logfile).
		WithLogFormat(logFormat).
		WithProviderName(name).
		WithProviderDescription(description).
		WithProviderVersion(providerVersion).
		WithRefreshInterval(refreshInterval).
		WithFetchTimeout(fetchTimeout).
		WithRunImmediately(runImmediately).
		WithRequireInitialFetch(requireInitialFetch).
		WithInitialFetchTimeout(initialFetchTimeout).
		WithRegister(register).
		WithRegistryFile(registryFile).
		WithRefreshToken(refreshToken).
		WithMaxConnections(maxConnections).
		WithDetached(detached).
		WithMetricsServer(metricsServer).
		WithMetricsServerPort(metricsServerPort).
		WithPProf(pprof)

	return options, nil
}
