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

package source

import (
	"context"
	"fmt"

	"github.com/codenotary/sap/pkg/api"
)

// Static serves a fixed set of objects. It is meant for programmatic use
// and tests.
type Static struct {
	objects []*api.Object
}

// NewStatic returns a source serving exactly the given objects.
func NewStatic(objects []*api.Object) *Static {
	return &Static{objects: objects}
}

func (s *Static) Fetch(ctx context.Context) ([]*api.Object, error) {
	objects := make([]*api.Object, len(s.objects))
	copy(objects, s.objects)
	return objects, nil
}

func (s *Static) String() string {
	return fmt.Sprintf("static(%d objects)", len(s.objects))
}
