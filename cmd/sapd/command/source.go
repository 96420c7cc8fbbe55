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
	"fmt"

	"github.com/codenotary/sap/pkg/source"
	"github.com/spf13/viper"
)

// buildSource resolves the --source selection into a fetch source.
func buildSource() (source.Source, error) {
	kind := viper.GetString("source")
	switch kind {
	case "demo":
		return source.NewDemo(viper.GetInt("demo-count")), nil
	case "file":
		path := viper.GetString("source-path")
		if path == "" {
			return nil, fmt.Errorf("file source requires --source-path")
		}
		return source.NewFile(path), nil
	case "http":
		url := viper.GetString("source-url")
		if url == "" {
			return nil, fmt.Errorf("http source requires --source-url")
		}
		return source.NewHTTP(url).WithToken(viper.GetString("source-token")), nil
	case "exec":
		command := viper.GetString("source-command")
		if command == "" {
			return nil, fmt.Errorf("exec source requires --source-command")
		}
		return source.NewExecShell(command), nil
	case "postgres":
		dsn := viper.GetString("source-dsn")
		query := viper.GetString("source-query")
		if dsn == "" || query == "" {
			return nil, fmt.Errorf("postgres source requires --source-dsn and --source-query")
		}
		return source.NewPostgres(dsn, query), nil
	default:
		return nil, fmt.Errorf("unknown source %q, pick one of demo|file|http|exec|postgres", kind)
	}
}
