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
	"strings"

	"github.com/spf13/cobra"

	c "github.com/codenotary/sap/cmd/helper"
)

func (cl *commandline) refresh(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "refresh",
		Short:             "Ask the provider to refresh its cache out of schedule",
		Aliases:           []string{"r"},
		PersistentPreRunE: cl.ConfigChain(cl.connect),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := cmd.Flags().GetString("token")
			if err != nil {
				c.QuitToStdErr(err)
			}
			if token == "-" {
				b, err := cl.tokenReader.Read("Refresh token:")
				if err != nil {
					c.QuitToStdErr(err)
				}
				token = strings.TrimSpace(string(b))
			}

			ack, err := cl.sapClient.Refresh(cl.context, token)
			if err != nil {
				c.QuitWithUserError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Refresh started (id %s)\n", ack.RefreshID)
			return nil
		},
		Args: cobra.NoArgs,
	}
	ccmd.Flags().StringP("token", "t", "", "refresh token, use - to read it from the terminal without echo")
	cmd.AddCommand(ccmd)
}
