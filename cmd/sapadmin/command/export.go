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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"

	c "github.com/codenotary/sap/cmd/helper"
	"github.com/codenotary/sap/pkg/api"
)

func (cl *commandline) export(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "export",
		Short:             "Save the full cached data set to a JSON file",
		Aliases:           []string{"e"},
		PersistentPreRunE: cl.ConfigChain(cl.connect),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := io.Writer(os.Stdout)
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				file = f
			}

			objects, err := cl.sapClient.AllData(cl.context)
			if err != nil {
				c.QuitWithUserError(err)
			}

			progress, _ := cmd.Flags().GetBool("progress")
			written, err := cl.runExport(file, objects, progress)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Exported %d object(s), %s, to %s\n",
				len(objects), c.FormatByteSize(uint64(written)), output)
			return nil
		},
		Args: cobra.NoArgs,
	}
	ccmd.Flags().StringP("output", "o", "-", "output file, \"-\" for stdout")
	ccmd.Flags().Bool("progress", false, "show progress indicator")
	cmd.AddCommand(ccmd)
}

func (cl *commandline) runExport(output io.Writer, objects []*api.Object, progress bool) (int64, error) {
	var bar *progressbar.ProgressBar
	if progress {
		bar = progressbar.New(len(objects))
	}

	w := &countingWriter{w: output}
	if _, err := w.Write([]byte("[")); err != nil {
		return w.written, err
	}
	for i, obj := range objects {
		if i > 0 {
			if _, err := w.Write([]byte(",\n ")); err != nil {
				return w.written, err
			}
		}
		data, err := json.Marshal(obj)
		if err != nil {
			return w.written, err
		}
		if _, err := w.Write(data); err != nil {
			return w.written, err
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if _, err := w.Write([]byte("]\n")); err != nil {
		return w.written, err
	}
	return w.written, nil
}

type countingWriter struct {
	w       io.Writer
	written int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.written += int64(n)
	return n, err
}
