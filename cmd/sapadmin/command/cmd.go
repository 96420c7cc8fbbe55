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
	"github.com/codenotary/sap/cmd/docs/man"
	c "github.com/codenotary/sap/cmd/helper"
	"github.com/codenotary/sap/cmd/version"
	"github.com/spf13/cobra"
)

// Execute bootstraps the sapadmin command tree and runs it.
func Execute() {
	version.App = "sapadmin"

	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		c.QuitWithUserError(err)
	}
}

// NewCommand ...
func NewCommand() *cobra.Command {
	cl := NewCommandLine()
	cmd, err := cl.NewCmd()
	if err != nil {
		c.QuitToStdErr(err)
	}

	cl.Register(cmd)
	// man file generator
	cmd.AddCommand(man.Generate(cmd, "sapadmin", "./cmd/docs/man/sapadmin"))
	cmd.AddCommand(version.VersionCmd())
	return cmd
}
