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

import "github.com/spf13/cobra"

func (cl *commandline) NewCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "sapadmin",
		Short: "CLI admin client for sapd - the SA data provider daemon",
		Long: `CLI admin client for sapd - the SA data provider daemon.

Environment variables:
  SAPADMIN_SERVER_URL=http://127.0.0.1:8080
  SAPADMIN_REQUEST_TIMEOUT=30s
  SAPADMIN_HEALTH_CHECK_RETRIES=5`,
		SilenceUsage:      false,
		SilenceErrors:     false,
		DisableAutoGenTag: true,
		PersistentPreRunE: cl.ConfigChain(nil),
	}

	if err := cl.configureFlags(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}
