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

package sapd

import (
	"testing"

	"github.com/codenotary/sap/pkg/server"
	"github.com/codenotary/sap/pkg/source"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func setupSourceDefaults(t *testing.T) {
	t.Helper()
	viper.Reset()
	setupDefaults(server.DefaultOptions())
}

func TestBuildSourceDemo(t *testing.T) {
	defer tearDown(t)
	setupSourceDefaults(t)

	src, err := buildSource()
	require.NoError(t, err)
	require.IsType(t, &source.Demo{}, src)
	require.Equal(t, "demo(3 employees)", src.String())
}

func TestBuildSourceDemoCount(t *testing.T) {
	defer tearDown(t)
	setupSourceDefaults(t)
	viper.Set("demo-count", 10)

	src, err := buildSource()
	require.NoError(t, err)
	require.Equal(t, "demo(10 employees)", src.String())
}

func TestBuildSourceFile(t *testing.T) {
	defer tearDown(t)
	setupSourceDefaults(t)
	viper.Set("source", "file")

	_, err := buildSource()
	require.Error(t, err)

	viper.Set("source-path", "objects.json")
	src, err := buildSource()
	require.NoError(t, err)
	require.IsType(t, &source.File{}, src)
}

func TestBuildSourceHTTP(t *testing.T) {
	defer tearDown(t)
	setupSourceDefaults(t)
	viper.Set("source", "http")

	_, err := buildSource()
	require.Error(t, err)

	viper.Set("source-url", "http://127.0.0.1:8081/all_data")
	viper.Set("source-token", "token")
	src, err := buildSource()
	require.NoError(t, err)
	require.IsType(t, &source.HTTP{}, src)
}

func TestBuildSourceExec(t *testing.T) {
	defer tearDown(t)
	setupSourceDefaults(t)
	viper.Set("source", "exec")

	_, err := buildSource()
	require.Error(t, err)

	viper.Set("source-command", "cat objects.json")
	src, err := buildSource()
	require.NoError(t, err)
	require.IsType(t, &source.Exec{}, src)
}

func TestBuildSourcePostgres(t *testing.T) {
	defer tearDown(t)
	setupSourceDefaults(t)
	viper.Set("source", "postgres")

	_, err := buildSource()
	require.Error(t, err)

	viper.Set("source-dsn", "postgres://sap@localhost/hr?sslmode=disable")
	viper.Set("source-query", "SELECT id, name FROM employees")
	src, err := buildSource()
	require.NoError(t, err)
	require.IsType(t, &source.Postgres{}, src)
}

func TestBuildSourceUnknown(t *testing.T) {
	defer tearDown(t)
	setupSourceDefaults(t)
	viper.Set("source", "kafka")

	_, err := buildSource()
	require.ErrorContains(t, err, "unknown source")
}
