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
	"github.com/codenotary/sap/pkg/client"
	"github.com/spf13/viper"
)

// Options reads the client options from the viper state
func Options() *client.Options {
	serverURL := viper.GetString("server-url")
	requestTimeout := viper.GetDuration("request-timeout")
	healthCheckRetries := viper.GetInt("health-check-retries")
	options := client.DefaultOptions().
		WithServerURL(serverURL).
		WithRequestTimeout(requestTimeout).
		WithHealthCheckRetries(healthCheckRetries)
	return options
}
