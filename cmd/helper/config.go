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

package helper

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config cmd config
type Config struct {
	Name  string
	CfgFn string
}

// Init reads in config file and ENV variables if set. Without an explicit
// config file the usual locations are searched: configs, /etc/sapd and the
// home directory. Environment variables are bound with the upper cased
// command name as prefix, dashes replaced by underscores.
func (c *Config) Init(name string) error {
	if c.CfgFn != "" {
		viper.SetConfigFile(c.CfgFn)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		viper.AddConfigPath("configs")
		viper.AddConfigPath(os.Getenv("GOPATH") + "/src/github.com/codenotary/sap/configs")
		if runtime.GOOS != "windows" {
			viper.AddConfigPath("/etc/sapd")
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(name)
	}
	c.Name = name
	viper.SetEnvPrefix(strings.ToUpper(name))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		// an explicitly named file has to be readable, the search paths
		// are allowed to come up empty
		if c.CfgFn != "" {
			return err
		}
		return nil
	}
	c.CfgFn = viper.ConfigFileUsed()
	fmt.Println("Using config file:", c.CfgFn)
	return nil
}

// LoadConfig re-reads the configuration honoring the --config flag
func (c *Config) LoadConfig(cmd *cobra.Command) error {
	cfgFn, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if cfgFn != "" {
		c.CfgFn = cfgFn
	}
	return c.Init(c.Name)
}
