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
	"context"

	c "github.com/codenotary/sap/cmd/helper"
	"github.com/codenotary/sap/pkg/client"
	"github.com/spf13/cobra"
)

// Commandline ...
type Commandline interface {
	status(cmd *cobra.Command)
	health(cmd *cobra.Command)
	data(cmd *cobra.Command)
	refresh(cmd *cobra.Command)
	providers(cmd *cobra.Command)
	export(cmd *cobra.Command)
	stats(cmd *cobra.Command)
	shell(cmd *cobra.Command)
	ConfigChain(post func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) (err error)
}

type commandline struct {
	options     *client.Options
	config      c.Config
	sapClient   client.SAPClient
	tokenReader c.TokenReader
	context     context.Context
	onError     func(msg interface{})
}

func NewCommandLine() *commandline {
	cl := &commandline{}
	cl.config.Name = "sapadmin"
	cl.tokenReader = c.DefaultTokenReader
	cl.context = context.Background()
	return cl
}

func (cl *commandline) ConfigChain(post func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err = cl.config.LoadConfig(cmd); err != nil {
			return err
		}
		// options now that config is loaded are availables
		cl.options = Options()
		if post != nil {
			return post(cmd, args)
		}
		return nil
	}
}

func (cl *commandline) Register(rootCmd *cobra.Command) *cobra.Command {
	cl.status(rootCmd)
	cl.health(rootCmd)
	cl.data(rootCmd)
	cl.refresh(rootCmd)
	cl.providers(rootCmd)
	cl.export(rootCmd)
	cl.stats(rootCmd)
	cl.shell(rootCmd)
	return rootCmd
}

func (cl *commandline) quit(msg interface{}) {
	if cl.onError == nil {
		c.QuitToStdErr(msg)
	}
	cl.onError(msg)
}

func (cl *commandline) connect(cmd *cobra.Command, args []string) (err error) {
	if cl.sapClient, err = client.NewSAPClient(cl.options); err != nil {
		cl.quit(err)
	}
	return
}
