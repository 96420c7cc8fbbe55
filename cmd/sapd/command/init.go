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
	c "github.com/codenotary/sap/cmd/helper"
	"github.com/codenotary/sap/pkg/server"
	"github.com/codenotary/sap/pkg/source"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func (cl *Commandline) setupFlags(cmd *cobra.Command, options *server.Options) {
	cmd.Flags().String("dir", options.Dir, "data folder")
	cmd.Flags().IntP("port", "p", options.Port, "port number")
	cmd.Flags().StringP("address", "a", options.Address, "bind address")
	cmd.Flags().Bool("auto-port", options.AutoPort, "walk up the port range when the configured port is taken")
	cmd.PersistentFlags().StringVar(&cl.config.CfgFn, "config", "", "config file (default path are configs or $HOME. Default filename is sapd.toml)")
	cmd.Flags().String("pidfile", options.Pidfile, "pid path with filename. E.g. /var/run/sapd.pid")
	cmd.Flags().String("logfile", options.Logfile, "log path with filename. E.g. /tmp/sapd/sapd.log")
	cmd.Flags().String("logformat", options.LogFormat, "log format e.g. text/json")
	cmd.Flags().String("name", options.ProviderName, "provider name announced on /hello")
	cmd.Flags().String("description", options.ProviderDescription, "provider description announced on /hello")
	cmd.Flags().String("provider-version", options.ProviderVersion, "provider version announced on /hello")
	cmd.Flags().Duration("refresh-interval", options.RefreshInterval, "pause between two refresh cycles")
	cmd.Flags().Duration("fetch-timeout", options.FetchTimeout, "time budget of a single fetch. 0 disables the bound")
	cmd.Flags().Bool("run-immediately", options.RunImmediately, "run the first refresh at startup instead of after one interval")
	cmd.Flags().Bool("require-initial-fetch", options.RequireInitialFetch, "wait for the first successful fetch before serving")
	cmd.Flags().Duration("initial-fetch-timeout", options.InitialFetchTimeout, "max wait for the initial fetch")
	cmd.Flags().Bool("register", options.Register, "append the provider URL to the shell registry on start")
	cmd.Flags().String("registry-file", options.RegistryFile, "shell registry path. Defaults to $HOME/.sa/saps.txt")
	cmd.Flags().String("refresh-token", options.RefreshToken, "token required by /refresh, as plain-text or base64 encoded (must be prefixed with 'enc:' if it is encoded)")
	cmd.Flags().Int("max-connections", options.MaxConnections, "max concurrent provider connections. 0 means unlimited")
	cmd.Flags().Bool("metrics-server", options.MetricsServer, "enable or disable Prometheus endpoint")
	cmd.Flags().Int("metrics-server-port", options.MetricsServerPort, "Prometheus endpoint port")
	cmd.Flags().Bool("pprof", options.PProf, "add pprof profiling endpoint on the metrics server")
	cmd.Flags().BoolP(c.DetachedFlag, c.DetachedShortFlag, options.Detached, "run sapd in background")
	cmd.Flags().String("source", "demo", "fetch source: demo|file|http|exec|postgres")
	cmd.Flags().String("source-path", "", "file source: JSON file or directory of JSON files")
	cmd.Flags().String("source-url", "", "http source: URL returning an SA object array")
	cmd.Flags().String("source-token", "", "http source: bearer token")
	cmd.Flags().String("source-command", "", "exec source: shell command writing an SA object array to stdout")
	cmd.Flags().String("source-dsn", "", "postgres source: connection string")
	cmd.Flags().String("source-query", "", "postgres source: SQL query, one row per object")
	cmd.Flags().Int("demo-count", source.DemoEmployees, "demo source: number of employees served")

	flagNameMapping := map[string]string{
		"log-format": "logformat",
		"log-file":   "logfile",
		"pid-file":   "pidfile",
	}

	cmd.Flags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if newName, ok := flagNameMapping[name]; ok {
			name = newName
		}
		return pflag.NormalizedName(name)
	})
}

func setupDefaults(options *server.Options) {
	viper.SetDefault("dir", options.Dir)
	viper.SetDefault("port", options.Port)
	viper.SetDefault("address", options.Address)
	viper.SetDefault("auto-port", options.AutoPort)
	viper.SetDefault("pidfile", options.Pidfile)
	viper.SetDefault("logfile", options.Logfile)
	viper.SetDefault("logformat", options.LogFormat)
	viper.SetDefault("name", options.ProviderName)
	viper.SetDefault("description", options.ProviderDescription)
	viper.SetDefault("provider-version", options.ProviderVersion)
	viper.SetDefault("refresh-interval", options.RefreshInterval)
	viper.SetDefault("fetch-timeout", options.FetchTimeout)
	viper.SetDefault("run-immediately", options.RunImmediately)
	viper.SetDefault("require-initial-fetch", options.RequireInitialFetch)
	viper.SetDefault("initial-fetch-timeout", options.InitialFetchTimeout)
	viper.SetDefault("register", options.Register)
	viper.SetDefault("registry-file", options.RegistryFile)
	viper.SetDefault("refresh-token", options.RefreshToken)
	viper.SetDefault("max-connections", options.MaxConnections)
	viper.SetDefault("metrics-server", options.MetricsServer)
	viper.SetDefault("metrics-server-port", options.MetricsServerPort)
	viper.SetDefault("pprof", options.PProf)
	viper.SetDefault("detached", options.Detached)
	viper.SetDefault("source", "demo")
	viper.SetDefault("source-path", "")
	viper.SetDefault("source-url", "")
	viper.SetDefault("source-token", "")
	viper.SetDefault("source-command", "")
	viper.SetDefault("source-dsn", "")
	viper.SetDefault("source-query", "")
	viper.SetDefault("demo-count", source.DemoEmployees)
}
