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

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	c "github.com/codenotary/sap/cmd/helper"
	"github.com/codenotary/sap/pkg/client"
	"github.com/codenotary/sap/pkg/server"
)

func (cl *commandline) providers(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "providers",
		Short:             "List the providers registered on this machine and probe each one",
		Aliases:           []string{"ls"},
		PersistentPreRunE: cl.ConfigChain(nil),
		RunE: func(cmd *cobra.Command, args []string) error {
			registryFile, err := cmd.Flags().GetString("registry-file")
			if err != nil {
				c.QuitToStdErr(err)
			}
			urls, err := server.ListProviders(registryFile)
			if err != nil {
				c.QuitWithUserError(err)
			}
			if len(urls) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No providers registered")
				return nil
			}

			for _, url := range urls {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", url, cl.probeProvider(url))
			}
			return nil
		},
		Args: cobra.NoArgs,
	}
	ccmd.Flags().String("registry-file", "", "registry file path (default filename is "+server.DefaultRegistryFile+" in $HOME)")
	cmd.AddCommand(ccmd)
}

// probeProvider says whether the provider behind url answers /hello.
func (cl *commandline) probeProvider(url string) string {
	opts := client.DefaultOptions().
		WithServerURL(url).
		WithRequestTimeout(cl.options.RequestTimeout)
	probe, err := client.NewSAPClient(opts)
	if err != nil {
		return color.RedString("INVALID (%s)", err)
	}
	info, err := probe.Hello(cl.context)
	if err != nil {
		return color.RedString("DOWN (%s)", err)
	}
	return color.GreenString("UP (%s %s)", info.Name, info.Version)
}
