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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codenotary/sap/pkg/api"
)

// File reads objects from a JSON file holding an object array, or from
// every *.json file of a directory concatenated in name order. The path is
// re-read on every fetch so edits show up on the next refresh.
type File struct {
	path string
}

// NewFile returns a source reading from the given file or directory.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Fetch(ctx context.Context) ([]*api.Object, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return f.fetchDir(ctx)
	}
	return readObjectsFile(f.path)
}

func (f *File) fetchDir(ctx context.Context) ([]*api.Object, error) {
	entries, err := os.ReadDir(f.path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var objects []*api.Object
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		objs, err := readObjectsFile(filepath.Join(f.path, name))
		if err != nil {
			return nil, err
		}
		objects = append(objects, objs...)
	}
	return objects, nil
}

func (f *File) String() string {
	return fmt.Sprintf("file(%s)", f.path)
}

func readObjectsFile(path string) ([]*api.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	objects, err := DecodeObjects(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding objects from %s: %v", path, err)
	}
	return objects, nil
}
