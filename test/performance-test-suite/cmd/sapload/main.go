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
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/codenotary/sap/cmd/version"
	"github.com/codenotary/sap/test/performance-test-suite/pkg/runner"
)

func main() {

	flDuration := flag.Duration("d", time.Second*10, "duration of each benchmark run")
	flObjects := flag.Int("n", 1000, "number of demo objects the embedded provider serves")
	flOutput := flag.String("o", "", "write the JSON results to this file instead of standard output")
	flRunner := flag.String("runner", "local", "runner tag attached to results pushed to InfluxDB")
	flInfluxURL := flag.String("influxdb-url", "", "when set, push results to this InfluxDB host")
	flInfluxToken := flag.String("influxdb-token", "", "InfluxDB API token")
	flInfluxBucket := flag.String("influxdb-bucket", "performance", "InfluxDB bucket receiving the results")

	flag.Parse()

	results, err := runner.RunAllBenchmarks(*flDuration, *flObjects)
	if err != nil {
		log.Fatal(err)
	}

	var w io.Writer = os.Stdout
	if *flOutput != "" {
		f, err := os.Create(*flOutput)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}

	e := json.NewEncoder(w)
	e.SetIndent("", "   ")
	err = e.Encode(results)
	if err != nil {
		log.Fatal(err)
	}

	if *flInfluxURL != "" {
		runner.SendResultsToInfluxDb(*flInfluxURL, *flInfluxToken, *flInfluxBucket, *flRunner, version.Version, results)
	}
}
