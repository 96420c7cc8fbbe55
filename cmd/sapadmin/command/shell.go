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
	"github.com/spf13/cobra"

	"github.com/codenotary/sap/cmd/sapadmin/shell"
)

func (cl *commandline) shell(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "shell",
		Short:             "Interactive shell to inspect one or more providers",
		Aliases:           []string{"sh"},
		PersistentPreRunE: cl.ConfigChain(nil),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := shell.Init(cl.options)
			if err != nil {
				cl.quit(err)
				return nil
			}
			sh.Run()
			return nil
		},
		Args: cobra.NoArgs,
	}
	cmd.AddCommand(ccmd)
}
