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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/codenotary/sap/cmd/helper"
	"github.com/codenotary/sap/pkg/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func newTestRootCmd(cl *Commandline, options **server.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "sapd",
		PersistentPreRunE: cl.ConfigChain(nil),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			*options, err = parseOptions()
			return err
		},
	}
	cl.setupFlags(cmd, server.DefaultOptions())
	setupDefaults(server.DefaultOptions())
	return cmd
}

func TestSapdCommandFlagParser(t *testing.T) {
	defer tearDown(t)

	var options *server.Options
	cl := &Commandline{config: helper.Config{Name: "sapd"}}
	cmd := newTestRootCmd(cl, &options)
	require.NoError(t, viper.BindPFlags(cmd.Flags()))

	_, err := executeCommand(cmd, "--logfile=sapdtest.log")
	require.NoError(t, err)
	require.Equal(t, "sapdtest.log", options.Logfile)
}

func TestSapdCommandFlagAliases(t *testing.T) {
	defer tearDown(t)

	var options *server.Options
	cl := &Commandline{config: helper.Config{Name: "sapd"}}
	cmd := newTestRootCmd(cl, &options)
	require.NoError(t, viper.BindPFlags(cmd.Flags()))

	_, err := executeCommand(cmd, "--log-format=json", "--log-file=sapdtest.log")
	require.NoError(t, err)
	require.Equal(t, "json", options.LogFormat)
	require.Equal(t, "sapdtest.log", options.Logfile)
}

// Priority:
// 1. overrides
// 2. flags
// 3. env. variables
// 4. config file
func TestSapdCommandFlagParserPriority(t *testing.T) {
	defer tearDown(t)

	var options *server.Options
	cl := &Commandline{config: helper.Config{Name: "sapd"}}
	cmd := newTestRootCmd(cl, &options)
	require.NoError(t, viper.BindPFlags(cmd.Flags()))

	// 4. config file
	_, err := executeCommand(cmd)
	require.NoError(t, err)
	require.Equal(t, "", options.Logfile)
	// 4-b. config file specified in command line
	cfgFn := filepath.Join(t.TempDir(), "sapd.toml")
	require.NoError(t, os.WriteFile(cfgFn, []byte(`logfile = "FromConfigFile"`+"\n"), 0644))
	_, err = executeCommand(cmd, "--config="+cfgFn)
	require.NoError(t, err)
	require.Equal(t, "FromConfigFile", options.Logfile)

	// 3. env. variables
	t.Setenv("SAPD_LOGFILE", "EnvironmentVars")
	_, err = executeCommand(cmd)
	require.NoError(t, err)
	require.Equal(t, "EnvironmentVars", options.Logfile)

	// 2. flags
	_, err = executeCommand(cmd, "--logfile=sapdtest.log")
	require.NoError(t, err)
	require.Equal(t, "sapdtest.log", options.Logfile)

	// 1. overrides
	viper.Set("logfile", "override")
	_, err = executeCommand(cmd, "--logfile=sapdtest.log")
	require.NoError(t, err)
	require.Equal(t, "override", options.Logfile)
}

func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	_, output, err = executeCommandC(root, args...)
	return output, err
}

func executeCommandC(root *cobra.Command, args ...string) (c *cobra.Command, output string, err error) {
	if args == nil {
		// nil args would make cobra fall back to os.Args
		args = []string{}
	}
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	c, err = root.ExecuteC()
	return c, buf.String(), err
}

func tearDown(t *testing.T) {
	t.Helper()
	viper.Reset()
}
