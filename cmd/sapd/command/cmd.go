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
	"github.com/codenotary/sap/cmd/docs/man"
	c "github.com/codenotary/sap/cmd/helper"
	"github.com/codenotary/sap/cmd/version"
	"github.com/codenotary/sap/pkg/server"
	"github.com/spf13/cobra"
)

func Execute() {
	version.App = "sapd"
	cmd, err := newCommand(server.DefaultServer())
	if err != nil {
		c.QuitWithUserError(err)
	}
	if err := cmd.Execute(); err != nil {
		c.QuitWithUserError(err)
	}
}

// NewCmd ...
func newCommand(sapServer server.SAPServerIf) (*cobra.Command, error) {
	cl := Commandline{P: c.NewPlauncher(), config: c.Config{Name: "sapd"}}
	cmd, err := cl.NewRootCmd(sapServer)
	if err != nil {
		c.QuitToStdErr(err)
	}

	cmd.AddCommand(man.Generate(cmd, "sapd", "./cmd/docs/man/sapd"))
	cmd.AddCommand(version.VersionCmd())

	return cmd, nil
}
