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

package server

import (
	"expvar"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codenotary/sap/pkg/logger"
	"github.com/codenotary/sap/pkg/runner"
)

// MetricsCollection sapd Prometheus metrics collection
type MetricsCollection struct {
	UptimeCounter      prometheus.CounterFunc
	CachedObjectsGauge prometheus.GaugeFunc

	RefreshCounters           *prometheus.CounterVec
	RefreshDurationHistogram  prometheus.Histogram
	LastRefreshCompletedGauge prometheus.Gauge
	HTTPRequestCounters       *prometheus.CounterVec
}

var metricsNamespace = "sap"

// WithUptimeCounter ...
func (mc *MetricsCollection) WithUptimeCounter(f func() float64) {
	mc.UptimeCounter = promauto.NewCounterFunc(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "uptime_hours",
			Help:      "Provider server uptime in hours.",
		},
		f,
	)
}

// WithCachedObjectsGauge ...
func (mc *MetricsCollection) WithCachedObjectsGauge(f func() float64) {
	mc.CachedObjectsGauge = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cached_objects",
			Help:      "Number of objects currently held in the cache.",
		},
		f,
	)
}

// UpdateRefreshMetrics records the outcome of one refresh cycle.
func (mc *MetricsCollection) UpdateRefreshMetrics(result string, duration time.Duration, completedAt time.Time) {
	mc.RefreshCounters.WithLabelValues(result).Inc()
	mc.RefreshDurationHistogram.Observe(duration.Seconds())
	if result == runner.ResultOK {
		mc.LastRefreshCompletedGauge.Set(float64(completedAt.Unix()))
	}
}

// UpdateHTTPMetrics counts one handled request per endpoint.
func (mc *MetricsCollection) UpdateHTTPMetrics(handler string) {
	mc.HTTPRequestCounters.WithLabelValues(handler).Inc()
}

// Metrics sapd Prometheus metrics collection
var Metrics = MetricsCollection{
	RefreshCounters: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "refresh_cycles_total",
			Help:      "Number of refresh cycles per result.",
		},
		[]string{"result"},
	),
	RefreshDurationHistogram: promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "refresh_duration_seconds",
			Help:      "Time spent fetching and caching the data set.",
			Buckets:   prometheus.DefBuckets,
		},
	),
	LastRefreshCompletedGauge: promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_refresh_completed_unix_seconds",
			Help:      "Timestamp at which the last refresh completed successfully.",
		},
	),
	HTTPRequestCounters: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Number of handled HTTP requests per endpoint.",
		},
		[]string{"handler"},
	),
}

// StartMetrics listens and serves the HTTP metrics server in a new goroutine.
// The server is then returned and can be stopped using Close().
func StartMetrics(
	addr string,
	l logger.Logger,
	withPProf bool,
	cachedObjects func() float64,
	uptimeCounter func() float64,
) *http.Server {
	Metrics.WithCachedObjectsGauge(cachedObjects)
	Metrics.WithUptimeCounter(uptimeCounter)
	// expvar package adds a handler in to the default HTTP server (which has to be started explicitly),
	// and serves up the metrics at the /debug/vars endpoint.
	// Here we're registering both expvar and promhttp handlers in our custom server.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/vars", expvar.Handler())
	if withPProf {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil {
			if err == http.ErrServerClosed {
				l.Debugf("Metrics http server closed")
			} else {
				l.Errorf("Metrics error: %s", err)
			}

		}
	}()

	return server
}
