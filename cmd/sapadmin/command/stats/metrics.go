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

	dto "github.com/prometheus/client_model/go"
)

type refreshStats struct {
	counter       uint64
	totalDuration float64
	avgDuration   float64
}

type memstats struct {
	sysBytes        uint64
	heapAllocBytes  uint64
	heapIdleBytes   uint64
	heapInUseBytes  uint64
	stackInUseBytes uint64
}

type metrics struct {
	cachedObjects     uint64
	uptimeHours       float64
	lastRefreshAt     uint64
	cyclesByResult    map[string]uint64
	refresh           refreshStats
	requestsByHandler map[string]uint64
	memstats          memstats
}

func (ms *metrics) isHistogramsDataAvailable() bool {
	return ms.refresh.counter > 0
}

func (ms *metrics) totalCycles() uint64 {
	var n uint64
	for _, v := range ms.cyclesByResult {
		n += v
	}
	return n
}

// failedCycles counts the cycles which did not end well, whatever the reason.
func (ms *metrics) failedCycles() uint64 {
	return ms.totalCycles() - ms.cyclesByResult["ok"]
}

func (ms *metrics) populateFrom(metricsFamilies *map[string]*dto.MetricFamily) {
	ms.withProviderInfo(metricsFamilies)
	ms.withRefreshes(metricsFamilies)
	ms.withRequests(metricsFamilies)
	ms.withMemStats(metricsFamilies)
}

func getCounterVecPerLabel(metrics []*dto.Metric, label string, out *map[string]uint64) {
	for _, m := range metrics {
		var labelValue string
		for _, labelPair := range m.GetLabel() {
			if labelPair.GetName() == label {
				labelValue = labelPair.GetValue()
				break
			}
		}
		(*out)[labelValue] = uint64(m.GetCounter().GetValue())
	}
}

func (ms *metrics) withProviderInfo(metricsFamilies *map[string]*dto.MetricFamily) {
	// Uptime hours
	upHoursMetricsFam := (*metricsFamilies)["sap_uptime_hours"]
	if upHoursMetricsFam != nil && len(upHoursMetricsFam.GetMetric()) > 0 {
		ms.uptimeHours = upHoursMetricsFam.GetMetric()[0].GetCounter().GetValue()
	}

	// Cache size
	cachedMetricsFam := (*metricsFamilies)["sap_cached_objects"]
	if cachedMetricsFam != nil && len(cachedMetricsFam.GetMetric()) > 0 {
		ms.cachedObjects = uint64(cachedMetricsFam.GetMetric()[0].GetGauge().GetValue())
	}

	// Last successful refresh
	lastRefreshFam := (*metricsFamilies)["sap_last_refresh_completed_unix_seconds"]
	if lastRefreshFam != nil && len(lastRefreshFam.GetMetric()) > 0 {
		ms.lastRefreshAt = uint64(lastRefreshFam.GetMetric()[0].GetGauge().GetValue())
	}
}

func (ms *metrics) withRefreshes(metricsFamilies *map[string]*dto.MetricFamily) {
	ms.cyclesByResult = map[string]uint64{}
	getCounterVecPerLabel(
		(*metricsFamilies)["sap_refresh_cycles_total"].GetMetric(),
		"result",
		&ms.cyclesByResult)

	durationFam := (*metricsFamilies)["sap_refresh_duration_seconds"]
	if durationFam == nil || len(durationFam.GetMetric()) == 0 {
		return
	}
	h := durationFam.GetMetric()[0].GetHistogram()
	c := h.GetSampleCount()
	td := h.GetSampleSum()
	var ad float64
	if c != 0 {
		ad = td / float64(c)
	}
	ms.refresh = refreshStats{
		counter:       c,
		totalDuration: td,
		avgDuration:   ad,
	}
}

func (ms *metrics) withRequests(metricsFamilies *map[string]*dto.MetricFamily) {
	ms.requestsByHandler = map[string]uint64{}
	getCounterVecPerLabel(
		(*metricsFamilies)["sap_http_requests_total"].GetMetric(),
		"handler",
		&ms.requestsByHandler)
}

func (ms *metrics) withMemStats(metricsFamilies *map[string]*dto.MetricFamily) {
	if sysBytesMetric := (*metricsFamilies)["go_memstats_sys_bytes"]; sysBytesMetric != nil {
		ms.memstats.sysBytes = uint64(*sysBytesMetric.GetMetric()[0].GetGauge().Value)
	}
	if heapAllocMetric := (*metricsFamilies)["go_memstats_heap_alloc_bytes"]; heapAllocMetric != nil {
		ms.memstats.heapAllocBytes = uint64(*heapAllocMetric.GetMetric()[0].GetGauge().Value)
	}
	if heapIdleMetric := (*metricsFamilies)["go_memstats_heap_idle_bytes"]; heapIdleMetric != nil {
		ms.memstats.heapIdleBytes = uint64(*heapIdleMetric.GetMetric()[0].GetGauge().Value)
	}
	if heapInUseMetric := (*metricsFamilies)["go_memstats_heap_inuse_bytes"]; heapInUseMetric != nil {
		ms.memstats.heapInUseBytes = uint64(*heapInUseMetric.GetMetric()[0].GetGauge().Value)
	}
	if stackInUseMetric := (*metricsFamilies)["go_memstats_stack_inuse_bytes"]; stackInUseMetric != nil {
		ms.memstats.stackInUseBytes = uint64(*stackInUseMetric.GetMetric()[0].GetGauge().Value)
	}
}

func byteCountBinary(b uint64) (string, float64) {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b), float64(b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	v := float64(b) / float64(div)
	return fmt.Sprintf("%.1f %cB", v, "kMGTPE"[exp]), v
}
