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

package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// DefaultRegistryFile is where providers announce themselves to the shell,
// relative to the user home directory.
const DefaultRegistryFile = ".sa/saps.txt"

// registryPath resolves the registry location, an empty override means the
// default file under the user home.
func registryPath(override string) string {
	if override != "" {
		return override
	}
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".", DefaultRegistryFile)
	}
	return filepath.Join(home, DefaultRegistryFile)
}

// RegisterProvider appends url to the shell registry unless it is already
// listed. Lines starting with # are comments and never match.
func RegisterProvider(registryFile string, url string) error {
	path := registryPath(registryFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating registry dir for %s: %v", path, err)
	}

	existing := make(map[string]struct{})
	var size int
	if b, err := os.ReadFile(path); err == nil {
		size = len(b)
		for _, line := range strings.Split(string(b), "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "#") {
				existing[line] = struct{}{}
			}
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error reading registry %s: %v", path, err)
	}

	if _, ok := existing[url]; ok {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening registry %s: %v", path, err)
	}
	defer f.Close()

	entry := url + "\n"
	if size > 0 {
		entry = "\n" + entry
	}
	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("error writing registry %s: %v", path, err)
	}
	return nil
}

// ListProviders returns the registered provider urls in file order.
func ListProviders(registryFile string) ([]string, error) {
	path := registryPath(registryFile)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading registry %s: %v", path, err)
	}

	var urls []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			urls = append(urls, line)
		}
	}
	return urls, nil
}
