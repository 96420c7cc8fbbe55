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

package shell

import (
	"fmt"
	"strings"

	"github.com/codenotary/sap/pkg/client"
	"github.com/codenotary/sap/pkg/server"
)

func (sh *shell) refresh(args []string) (string, error) {
	token := ""
	if len(args) > 0 {
		token = args[0]
	}
	if token == "-" {
		b, err := sh.tokenReader.Read("Refresh token:")
		if err != nil {
			return "", err
		}
		token = strings.TrimSpace(string(b))
	}
	ack, err := sh.sapClient.Refresh(sh.context, token)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("refresh started (id %s)", ack.RefreshID), nil
}

// use switches the shell to another provider, it keeps the current one
// when the new one does not answer.
func (sh *shell) use(args []string) (string, error) {
	opts := client.DefaultOptions().
		WithServerURL(args[0]).
		WithRequestTimeout(sh.options.RequestTimeout).
		WithHealthCheckRetries(sh.options.HealthCheckRetries)
	sapClient, err := client.NewSAPClient(opts)
	if err != nil {
		return "", err
	}
	info, err := sapClient.Hello(sh.context)
	if err != nil {
		return "", err
	}
	sh.sapClient = sapClient
	sh.options = opts
	return fmt.Sprintf("now using %s (%s %s)", args[0], info.Name, info.Version), nil
}

func (sh *shell) providers(args []string) (string, error) {
	urls, err := server.ListProviders(sh.registryFile)
	if err != nil {
		return "", err
	}
	if len(urls) == 0 {
		return "no providers registered", nil
	}
	str := strings.Builder{}
	for _, u := range urls {
		marker := " "
		if u == sh.options.ServerURL {
			marker = "*"
		}
		str.WriteString(fmt.Sprintf("%s %s\n", marker, u))
	}
	return strings.TrimRight(str.String(), "\n"), nil
}
