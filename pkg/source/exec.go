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
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/codenotary/sap/pkg/api"
)

const maxStderrLines = 5

// Exec obtains objects from an external command writing a JSON object
// array to stdout. The command runs under the fetch context and is killed
// when that context expires.
type Exec struct {
	name string
	args []string
}

// NewExec returns a source running the given command on every fetch.
func NewExec(name string, args ...string) *Exec {
	return &Exec{name: name, args: args}
}

// NewExecShell returns a source running command through the shell, so
// pipelines and quoting work the way they do on a command line.
func NewExecShell(command string) *Exec {
	return NewExec("/bin/sh", "-c", command)
}

func (e *Exec) Fetch(ctx context.Context) ([]*api.Object, error) {
	cmd := exec.CommandContext(ctx, e.name, e.args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("error running %s: %v%s", e.name, err, stderrTail(stderr.Bytes()))
	}

	objects, err := DecodeObjects(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("error decoding objects from %s output: %v", e.name, err)
	}
	return objects, nil
}

func (e *Exec) String() string {
	return fmt.Sprintf("exec(%s)", strings.Join(append([]string{e.name}, e.args...), " "))
}

// stderrTail keeps the last few stderr lines so fetch errors carry the
// part of the output that usually explains the failure.
func stderrTail(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > maxStderrLines {
		lines = lines[len(lines)-maxStderrLines:]
	}
	return ": " + strings.Join(lines, " | ")
}
