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
	"github.com/codenotary/sap/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func (cl *commandline) configureFlags(cmd *cobra.Command) error {
	cmd.PersistentFlags().StringP("server-url", "s", client.DefaultOptions().ServerURL, "provider base URL, e.g. http://127.0.0.1:8080")
	cmd.PersistentFlags().Duration("request-timeout", client.DefaultOptions().RequestTimeout, "per request timeout")
	cmd.PersistentFlags().Int("health-check-retries", client.DefaultOptions().HealthCheckRetries, "number of times a failing health check is retried")
	cmd.PersistentFlags().StringVar(&cl.config.CfgFn, "config", "", "config file (default path are configs or $HOME. Default filename is sapadmin.toml)")

	viper.BindPFlag("server-url", cmd.PersistentFlags().Lookup("server-url"))
	viper.BindPFlag("request-timeout", cmd.PersistentFlags().Lookup("request-timeout"))
	viper.BindPFlag("health-check-retries", cmd.PersistentFlags().Lookup("health-check-retries"))

	viper.SetDefault("server-url", client.DefaultOptions().ServerURL)
	viper.SetDefault("request-timeout", client.DefaultOptions().RequestTimeout)
	viper.SetDefault("health-check-retries", client.DefaultOptions().HealthCheckRetries)
	return nil
}
