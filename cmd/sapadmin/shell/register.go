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

type command struct {
	name     string
	short    string
	command  func(args []string) (string, error)
	args     []string
	variable bool
}

func (sh *shell) initCommands() {
	// Provider info
	sh.Register(&command{"hello", "Show name, version and mode of the current provider", sh.hello, nil, false})
	sh.Register(&command{"status", "Show the refresh runner state of the current provider", sh.status, nil, false})
	sh.Register(&command{"health", "Probe the current provider health endpoint", sh.health, nil, false})

	// Data
	sh.Register(&command{"data", "Fetch the full data set and summarize it per object type", sh.data, nil, false})
	sh.Register(&command{"object", "Show the object having the specified id", sh.object, []string{"id"}, false})

	// Maintenance
	sh.Register(&command{"refresh", "Trigger a refresh cycle, token may be omitted or - to type it without echo", sh.refresh, []string{"token"}, true})

	// Registry
	sh.Register(&command{"providers", "List the registered providers, the current one is starred", sh.providers, nil, false})
	sh.Register(&command{"use", "Switch the shell to the provider at the specified URL", sh.use, []string{"url"}, false})
}
