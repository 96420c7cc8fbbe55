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
	"fmt"
	"time"

	"github.com/spf13/cobra"

	c "github.com/codenotary/sap/cmd/helper"
)

func (cl *commandline) status(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "status",
		Short:             "Show provider information and refresh runner state",
		Aliases:           []string{"p"},
		PersistentPreRunE: cl.ConfigChain(cl.connect),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cl.context

			info, err := cl.sapClient.Hello(ctx)
			if err != nil {
				c.QuitWithUserError(err)
			}
			status, err := cl.sapClient.Status(ctx)
			if err != nil {
				c.QuitWithUserError(err)
			}

			lastRefresh := "never"
			if status.LastCompletedAt != nil {
				completedAt := time.Unix(int64(*status.LastCompletedAt), 0)
				lastRefresh = fmt.Sprintf("%s (%s ago)",
					completedAt.Format(time.RFC822),
					time.Now().Truncate(time.Second).Sub(completedAt))
			}
			lastError := "none"
			if status.LastError != nil {
				lastError = *status.LastError
			}
			interval := time.Duration(status.IntervalSeconds * float64(time.Second))

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"Status:\t\tOK - provider is reachable and responding to queries\nName:\t\t%s\nVersion:\t%s\nMode:\t\t%s\nObjects:\t%d\nRefreshes:\t%d (every %s)\nLast refresh:\t%s\nLast error:\t%s\n",
				info.Name,
				info.Version,
				info.Mode,
				status.Count,
				status.RefreshCount,
				interval,
				lastRefresh,
				lastError,
			)
			return nil
		},
		Args: cobra.NoArgs,
	}
	cmd.AddCommand(ccmd)
}

func (cl *commandline) health(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "health",
		Short:             "Probe the provider health endpoint",
		PersistentPreRunE: cl.ConfigChain(cl.connect),
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := cl.sapClient.Health(cl.context)
			if err != nil {
				c.QuitWithUserError(err)
			}
			if health.Status != "ok" {
				c.QuitWithUserError(fmt.Errorf("provider reported status %q", health.Status))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Health check OK (%d objects cached)\n", health.Count)
			return nil
		},
		Args: cobra.NoArgs,
	}
	cmd.AddCommand(ccmd)
}
