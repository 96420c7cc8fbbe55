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

package logger

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLogFileWriter(t *testing.T) {
	t.Run("writes to the configured file", func(t *testing.T) {
		dir := t.TempDir()

		fl, err := NewLogger(&Options{
			Name:      "test-file-logger",
			LogFormat: LogFormatText,
			LogDir:    dir,
			LogFile:   "out.log",
			Level:     LogInfo,
		})
		require.NoError(t, err)

		fl.Infof("some info %d", 1)
		fl.Debugf("some debug %d", 1)
		require.NoError(t, fl.Close())

		logBytes, err := ioutil.ReadFile(filepath.Join(dir, "out.log"))
		require.NoError(t, err)
		logOutput := string(logBytes)
		require.Contains(t, logOutput, " INFO: some info 1")
		require.NotContains(t, logOutput, "some debug 1")
	})

	t.Run("rotates segments by size", func(t *testing.T) {
		dir := t.TempDir()

		fl, err := NewLogger(&Options{
			Name:            "test-file-logger",
			LogFormat:       LogFormatText,
			LogDir:          dir,
			LogFile:         "out.log",
			Level:           LogInfo,
			LogRotationSize: 16,
		})
		require.NoError(t, err)

		fl.Infof("first entry")
		fl.Infof("second entry")
		require.NoError(t, fl.Close())

		segment, err := ioutil.ReadFile(filepath.Join(dir, "out.log.0001"))
		require.NoError(t, err)
		require.Contains(t, string(segment), "first entry")

		segment, err = ioutil.ReadFile(filepath.Join(dir, "out.log.0002"))
		require.NoError(t, err)
		require.Contains(t, string(segment), "second entry")
	})

	t.Run("rejects a too small rotation age", func(t *testing.T) {
		_, err := NewLogger(&Options{
			Name:           "test-file-logger",
			LogFormat:      LogFormatText,
			LogDir:         t.TempDir(),
			LogFile:        "out.log",
			LogRotationAge: time.Second,
		})
		require.Error(t, err)
	})
}
