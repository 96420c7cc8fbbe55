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

package client

import "github.com/codenotary/sap/pkg/runner"

// ServiceCard is the root document of a provider, listing its endpoints.
type ServiceCard struct {
	Service   string            `json:"service"`
	Endpoints map[string]string `json:"endpoints"`
	Status    string            `json:"status"`
}

// ProviderInfo describes a provider as reported by /hello.
type ProviderInfo struct {
	Name        string `json:"name"`
	Mode        string `json:"mode"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// Health is the /health reply.
type Health struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Status is the /status reply, the runner snapshot plus the cached
// object count.
type Status struct {
	runner.Status
	Count int `json:"count"`
}

// RefreshAck acknowledges an accepted /refresh request.
type RefreshAck struct {
	Status    string `json:"status"`
	RefreshID string `json:"refresh_id"`
}
