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
	"net/url"

	"github.com/spf13/cobra"

	c "github.com/codenotary/sap/cmd/helper"
	"github.com/codenotary/sap/cmd/sapadmin/command/stats"
)

func (cl *commandline) stats(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "stats",
		Short:             "Show provider metrics as text or visually with the '-t' and '-r' options. Run 'sapadmin stats -h' for details.",
		Aliases:           []string{"s"},
		PersistentPreRunE: cl.ConfigChain(nil),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := cmd.Flags().GetBool("raw")
			if err != nil {
				c.QuitToStdErr(err)
			}
			addr := metricsHost(cl.options.ServerURL)
			if raw {
				if err := stats.ShowMetricsRaw(cmd.OutOrStderr(), addr); err != nil {
					c.QuitToStdErr(err)
				}
				return nil
			}
			text, err := cmd.Flags().GetBool("text")
			if err != nil {
				c.QuitToStdErr(err)
			}
			if text {
				if err := stats.ShowMetricsAsText(cmd.OutOrStderr(), addr); err != nil {
					c.QuitToStdErr(err)
				}
				return nil
			}
			if err := stats.ShowMetricsVisually(addr); err != nil {
				c.QuitToStdErr(err)
			}
			return nil
		},
		Args: cobra.NoArgs,
	}
	ccmd.Flags().BoolP("text", "t", false, "show statistics as text instead of the default graphical view")
	ccmd.Flags().BoolP("raw", "r", false, "show raw statistics")
	cmd.AddCommand(ccmd)
}

// metricsHost extracts the host component out of the provider URL, the
// metrics listener lives on its own port on the same machine.
func metricsHost(serverURL string) string {
	u, err := url.Parse(serverURL)
	if err != nil || u.Hostname() == "" {
		return "127.0.0.1"
	}
	return u.Hostname()
}
