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

package stats

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/common/expfmt"
)

const requestTimeout = 3 * time.Second

// metricsURL completes a plain host with the default metrics port; a full
// http(s) URL is used as given, which tests rely on.
func metricsURL(serverAddress string) string {
	if strings.HasPrefix(serverAddress, "http://") || strings.HasPrefix(serverAddress, "https://") {
		return strings.TrimRight(serverAddress, "/") + "/metrics"
	}
	return "http://" + serverAddress + ":9497/metrics"
}

func newHttpClient() *http.Client {
	return &http.Client{
		Timeout: requestTimeout,
	}
}

// MetricsLoader fetches one metrics snapshot from the provider.
type MetricsLoader interface {
	Load() (*metrics, error)
}

// NewMetricsLoader ...
func NewMetricsLoader(url string) MetricsLoader {
	return &metricsLoader{
		url:    url,
		client: newHttpClient(),
	}
}

type metricsLoader struct {
	url    string
	client *http.Client
}

func (ml *metricsLoader) Load() (*metrics, error) {
	resp, err := ml.client.Get(ml.url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GET %s returned unexpected HTTP Status %d with body %s", ml.url, resp.StatusCode, string(body))
	}
	textParser := expfmt.TextParser{}
	metricsFamilies, err := textParser.TextToMetricFamilies(resp.Body)
	if err != nil {
		return nil, err
	}
	ms := &metrics{}
	ms.populateFrom(&metricsFamilies)
	return ms, nil
}

// ShowMetricsRaw writes the metrics reply as served by the provider.
func ShowMetricsRaw(w io.Writer, serverAddress string) error {
	resp, err := newHttpClient().Get(metricsURL(serverAddress))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(body))
	return nil
}

// ShowMetricsAsText writes a plain text digest of the provider metrics.
func ShowMetricsAsText(w io.Writer, serverAddress string) error {
	ms, err := NewMetricsLoader(metricsURL(serverAddress)).Load()
	if err != nil {
		return err
	}

	const labelLength = 27
	const strPattern = "%-*s:\t%s\n"
	const intPattern = "%-*s:\t%d\n"

	// print provider info
	fmt.Fprintf(w, intPattern, labelLength, "Cached objects", ms.cachedObjects)
	uptime, _ := time.ParseDuration(fmt.Sprintf("%.4fh", ms.uptimeHours))
	fmt.Fprintf(w, strPattern, labelLength, "Uptime", uptime)
	if ms.lastRefreshAt > 0 {
		ago := time.Since(time.Unix(int64(ms.lastRefreshAt), 0))
		fmt.Fprintf(w, strPattern, labelLength, "Last refresh", fmt.Sprintf("%s ago", ago))
	}

	// print refresh cycles
	fmt.Fprintf(w, strPattern, labelLength, "Refresh cycles", "")
	results := make([]string, 0, len(ms.cyclesByResult))
	for k := range ms.cyclesByResult {
		results = append(results, k)
	}
	sort.Strings(results)
	for _, k := range results {
		fmt.Fprintf(w, "   "+intPattern, labelLength-3, k, ms.cyclesByResult[k])
	}
	if ms.isHistogramsDataAvailable() {
		fmt.Fprintf(w, strPattern, labelLength, "Avg. refresh duration",
			fmt.Sprintf("%.0f ms (%d samples)", ms.refresh.avgDuration*1000, ms.refresh.counter))
	}

	// print requests per endpoint
	if len(ms.requestsByHandler) > 0 {
		fmt.Fprintf(w, strPattern, labelLength, "Requests per endpoint", "")
		handlers := make([]string, 0, len(ms.requestsByHandler))
		for k := range ms.requestsByHandler {
			handlers = append(handlers, k)
		}
		sort.Strings(handlers)
		for _, k := range handlers {
			fmt.Fprintf(w, "   "+intPattern, labelLength-3, k, ms.requestsByHandler[k])
		}
	}

	// print memory
	memReservedS, _ := byteCountBinary(ms.memstats.sysBytes)
	memInUseS, _ := byteCountBinary(ms.memstats.heapInUseBytes + ms.memstats.stackInUseBytes)
	fmt.Fprintf(w, strPattern, labelLength, "Memory reserved", memReservedS)
	fmt.Fprintf(w, strPattern, labelLength, "Memory in use", memInUseS)

	return nil
}

// ShowMetricsVisually runs the metrics dashboard until the user quits it.
func ShowMetricsVisually(serverAddress string) error {
	s := statsui{Loader: NewMetricsLoader(metricsURL(serverAddress)), Tui: tui{}}
	return s.runUI(false)
}
