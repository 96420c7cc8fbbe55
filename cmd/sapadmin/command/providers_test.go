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
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenotary/sap/pkg/server"
)

func TestProviders(t *testing.T) {
	_, cmd := newTestCommandLine(t)

	srv := httptest.NewServer(testProviderHandler(t))
	t.Cleanup(srv.Close)
	registry := filepath.Join(t.TempDir(), "saps.txt")
	require.NoError(t, server.RegisterProvider(registry, srv.URL))

	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"providers", "--registry-file", registry})

	cmd.Execute()
	out, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Contains(t, string(out), srv.URL)
	assert.Contains(t, string(out), "UP (HR Provider 1.2.3)")
}

func TestProvidersEmptyRegistry(t *testing.T) {
	_, cmd := newTestCommandLine(t)

	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"providers", "--registry-file", filepath.Join(t.TempDir(), "saps.txt")})

	cmd.Execute()
	out, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No providers registered")
}
