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
package runner

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/codenotary/sap/test/performance-test-suite/pkg/benchmarks/queries"
)

// SendResultsToInfluxDb pushes one point per benchmark. CI runners sit
// behind a proxy, so the "benchmark" runner routes through HTTPS_PROXY.
func SendResultsToInfluxDb(host string, token string, bucket string, runner string, version string, r *BenchmarkSuiteResult) {
	var client influxdb2.Client

	if runner == "benchmark" {
		proxyUrl, _ := url.Parse(os.Getenv("HTTPS_PROXY"))
		httpClient := &http.Client{Transport: &http.Transport{Proxy: http.ProxyURL(proxyUrl)}}
		client = influxdb2.NewClientWithOptions(host, token, influxdb2.DefaultOptions().SetHTTPClient(httpClient))
	} else {
		client = influxdb2.NewClient(host, token)
	}

	writer := client.WriteAPIBlocking("Codenotary", bucket)

	for _, b := range r.Benchmarks {

		res, ok := b.Results.(*queries.Result)
		if !ok {
			continue
		}

		p := influxdb2.NewPointWithMeasurement("performance").
			AddTag("name", b.Name).
			AddTag("runner", runner).
			AddTag("run", r.RunID).
			AddTag("version", version).
			AddField("duration", b.Duration.Seconds()).
			AddField("reqTotal", res.ReqTotal).
			AddField("objTotal", res.ObjTotal).
			AddField("reqs", res.Reqs).
			AddField("objs", res.Objs).
			SetTime(b.EndTime)

		if res.HWStats != nil {
			p.AddField("cpuTime", res.HWStats.CPUTime).
				AddField("cpuTimeKernelFraction", res.HWStats.CPUKernelTimeFraction).
				AddField("vmm", res.HWStats.VMM).
				AddField("rss", res.HWStats.RSS)
		}

		if err := writer.WritePoint(context.Background(), p); err != nil {
			log.Printf("Unable to push %s results to InfluxDB: %v", b.Name, err)
		}

	}

	client.Close()

}
