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
	"github.com/codenotary/sap/pkg/logger"
	"github.com/codenotary/sap/pkg/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	daem "github.com/takama/daemon"
)

func (cl *Commandline) NewRootCmd(sapServer server.SAPServerIf) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "sapd",
		Short: "sapd - the SA data provider daemon",
		Long: `sapd - the SA data provider daemon.

sapd polls a configured data source on a fixed interval, caches the collected
SA objects and serves them to shell assistant instances over HTTP.

Setting the logging level and other options through environment variables:
- Logging level: LOG_LEVEL={debug|info|warning|error}
- The environment variable names for other settings are derived by prefixing flag names with "SAPD_"
  e.g SAPD_PORT=8081 ./sapd.
  Note: flags take precedence over environment variables.
`,
		DisableAutoGenTag: true,
		RunE:              cl.Sapd(sapServer),
		PersistentPreRunE: cl.ConfigChain(nil),
	}

	cl.setupFlags(cmd, server.DefaultOptions())

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	setupDefaults(server.DefaultOptions())

	return cmd, nil
}

// Sapd ...
func (cl *Commandline) Sapd(sapServer server.SAPServerIf) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		var options *server.Options

		if options, err = parseOptions(); err != nil {
			return err
		}

		sapServer := sapServer.WithOptions(options)

		// initialize logger for sapd
		slogger, err := logger.NewLogger(&logger.Options{
			Name:      "sapd",
			LogFormat: options.LogFormat,
			LogFile:   options.Logfile,
			Level:     logger.LogLevelFromEnvironment(),
		})
		if err != nil {
			c.QuitToStdErr(err)
		}
		defer slogger.Close()
		sapServer.WithLogger(slogger)

		// resolve the fetch source before going to background so a bad
		// source configuration fails in the foreground
		src, err := buildSource()
		if err != nil {
			return err
		}
		sapServer.WithSource(src)

		// check if sapd needs to be run in detached mode
		if options.Detached {
			if err := cl.P.Detached(); err == nil {
				return nil
			}
		}

		// check if sapd needs to run in daemon mode
		var d daem.Daemon
		if d, err = daem.New("sapd", "sapd", "sapd"); err != nil {
			c.QuitToStdErr(err)
		}

		if err = sapServer.Initialize(); err != nil {
			return err
		}

		service := server.Service{
			SAPServerIf: sapServer,
		}

		d.Run(service)

		return nil
	}
}
