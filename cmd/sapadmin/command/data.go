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
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	c "github.com/codenotary/sap/cmd/helper"
	"github.com/codenotary/sap/pkg/api"
)

func (cl *commandline) data(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "data",
		Short:             "Fetch the full cached data set of the provider",
		Aliases:           []string{"all"},
		PersistentPreRunE: cl.ConfigChain(cl.connect),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := cmd.Flags().GetBool("raw")
			if err != nil {
				c.QuitToStdErr(err)
			}
			objects, err := cl.sapClient.AllData(cl.context)
			if err != nil {
				c.QuitWithUserError(err)
			}
			if raw {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(objects); err != nil {
					c.QuitToStdErr(err)
				}
				return nil
			}
			properties, err := cmd.Flags().GetStringSlice("properties")
			if err != nil {
				c.QuitToStdErr(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderObjectTable(objects, properties))
			fmt.Fprintf(cmd.OutOrStdout(), "%d object(s)\n", len(objects))
			return nil
		},
		Args: cobra.NoArgs,
	}
	ccmd.Flags().BoolP("raw", "r", false, "print the data set as JSON instead of the default tabular view")
	ccmd.Flags().StringSlice("properties", []string{"name"}, "object properties shown as additional table columns")
	cmd.AddCommand(ccmd)
}

func renderObjectTable(objects []*api.Object, properties []string) string {
	result := bytes.NewBuffer([]byte{})
	consoleTable := tablewriter.NewWriter(result)
	cols := append([]string{"id", "types", "source"}, properties...)
	consoleTable.SetHeader(cols)

	for _, o := range objects {
		row := []string{o.ID, strings.Join(o.Types, ","), o.Source}
		for _, p := range properties {
			v, ok := o.Property(p)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, renderValue(v))
		}
		consoleTable.Append(row)
	}

	consoleTable.SetAutoFormatHeaders(false)
	consoleTable.Render()
	return result.String()
}

// renderValue prints a property value for terminal consumption. Typed values
// are shown in their natural reading, nested structures as compact JSON.
func renderValue(v interface{}) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case api.Timestamp:
		return tv.Time().Format(time.RFC3339)
	case api.Link:
		return fmt.Sprintf("%s -> %s", tv.ShowText, tv.Query)
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(api.EncodeValue(tv))
		if err != nil {
			return fmt.Sprintf("%v", tv)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", tv)
	}
}
