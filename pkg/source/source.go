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

// Package source implements the fetch sources a provider can serve data
// from. A source produces the complete object set on every call, the
// refresh runner decides when to call it and caches the result.
package source

import (
	"context"
	"encoding/json"

	"github.com/codenotary/sap/pkg/api"
)

// Source produces the complete object set of a provider.
type Source interface {
	// Fetch returns every object the provider currently knows about.
	Fetch(ctx context.Context) ([]*api.Object, error)

	// String describes the source for logs and status output.
	String() string
}

// DecodeObjects parses a JSON array of provider objects.
func DecodeObjects(data []byte) ([]*api.Object, error) {
	var objects []*api.Object
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}
