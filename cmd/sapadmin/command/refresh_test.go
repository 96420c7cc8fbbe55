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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresh(t *testing.T) {
	_, cmd := newTestCommandLine(t)

	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"refresh", "--token", "secret"})

	cmd.Execute()
	out, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Refresh started (id b-refresh-id)")
}

type tokenReaderMock struct {
	token string
}

func (tr *tokenReaderMock) Read(msg string) ([]byte, error) {
	return []byte(tr.token + "\n"), nil
}

func TestRefreshTokenFromTerminal(t *testing.T) {
	cmdl, cmd := newTestCommandLine(t)
	cmdl.tokenReader = &tokenReaderMock{token: "secret"}

	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"refresh", "--token", "-"})

	cmd.Execute()
	out, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Refresh started (id b-refresh-id)")
}
