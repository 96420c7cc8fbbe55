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
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenotary/sap/pkg/api"
)

func TestData(t *testing.T) {
	_, cmd := newTestCommandLine(t)

	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"data"})

	cmd.Execute()
	out, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Contains(t, string(out), "emp_001")
	assert.Contains(t, string(out), "person,employee")
	assert.Contains(t, string(out), "Alice Johnson")
	assert.Contains(t, string(out), "2 object(s)")
}

func TestDataRaw(t *testing.T) {
	_, cmd := newTestCommandLine(t)

	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"data", "--raw"})

	cmd.Execute()
	var objects []*api.Object
	require.NoError(t, json.NewDecoder(b).Decode(&objects))
	require.Len(t, objects, 2)
	require.Equal(t, "emp_002", objects[1].ID)
	name, ok := objects[1].Property("name")
	require.True(t, ok)
	require.Equal(t, "Bob Smith", name)
}
