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

// Package statstest supplies a sapd metrics reply captured from a running
// provider, for tests which decode or render statistics.
package statstest

// StatsResponse ...
var StatsResponse = []byte(`# HELP go_gc_duration_seconds A summary of the pause duration of garbage collection cycles.
# TYPE go_gc_duration_seconds summary
go_gc_duration_seconds{quantile="0"} 2.9036e-05
go_gc_duration_seconds{quantile="0.25"} 4.1943e-05
go_gc_duration_seconds{quantile="0.5"} 6.2056e-05
go_gc_duration_seconds{quantile="0.75"} 0.000137749
go_gc_duration_seconds{quantile="1"} 0.000573344
go_gc_duration_seconds_sum 0.003529463
go_gc_duration_seconds_count 31
# HELP go_goroutines Number of goroutines that currently exist.
# TYPE go_goroutines gauge
go_goroutines 14
# HELP go_memstats_heap_alloc_bytes Number of heap bytes allocated and still in use.
# TYPE go_memstats_heap_alloc_bytes gauge
go_memstats_heap_alloc_bytes 1.199424e+07
# HELP go_memstats_heap_idle_bytes Number of heap bytes waiting to be used.
# TYPE go_memstats_heap_idle_bytes gauge
go_memstats_heap_idle_bytes 5.0159616e+07
# HELP go_memstats_heap_inuse_bytes Number of heap bytes that are in use.
# TYPE go_memstats_heap_inuse_bytes gauge
go_memstats_heap_inuse_bytes 1.5900672e+07
# HELP go_memstats_stack_inuse_bytes Number of bytes in use by the stack allocator.
# TYPE go_memstats_stack_inuse_bytes gauge
go_memstats_stack_inuse_bytes 1.114112e+06
# HELP go_memstats_sys_bytes Number of bytes obtained from system.
# TYPE go_memstats_sys_bytes gauge
go_memstats_sys_bytes 7.5580424e+07
# HELP process_cpu_seconds_total Total user and system CPU time spent in seconds.
# TYPE process_cpu_seconds_total counter
process_cpu_seconds_total 42.17
# HELP process_resident_memory_bytes Resident memory size in bytes.
# TYPE process_resident_memory_bytes gauge
process_resident_memory_bytes 4.9123328e+07
# HELP promhttp_metric_handler_requests_total Total number of scrapes by HTTP status code.
# TYPE promhttp_metric_handler_requests_total counter
promhttp_metric_handler_requests_total{code="200"} 213
promhttp_metric_handler_requests_total{code="500"} 0
promhttp_metric_handler_requests_total{code="503"} 0
# HELP sap_cached_objects Number of objects currently held in the cache.
# TYPE sap_cached_objects gauge
sap_cached_objects 1500
# HELP sap_http_requests_total Number of handled HTTP requests per endpoint.
# TYPE sap_http_requests_total counter
sap_http_requests_total{handler="all_data"} 42
sap_http_requests_total{handler="health"} 1041
sap_http_requests_total{handler="hello"} 7
sap_http_requests_total{handler="refresh"} 2
sap_http_requests_total{handler="root"} 5
sap_http_requests_total{handler="status"} 12
# HELP sap_last_refresh_completed_unix_seconds Timestamp at which the last refresh completed successfully.
# TYPE sap_last_refresh_completed_unix_seconds gauge
sap_last_refresh_completed_unix_seconds 1.654267587e+09
# HELP sap_refresh_cycles_total Number of refresh cycles per result.
# TYPE sap_refresh_cycles_total counter
sap_refresh_cycles_total{result="error"} 3
sap_refresh_cycles_total{result="ok"} 1589
sap_refresh_cycles_total{result="timeout"} 1
# HELP sap_refresh_duration_seconds Time spent fetching and caching the data set.
# TYPE sap_refresh_duration_seconds histogram
sap_refresh_duration_seconds_bucket{le="0.005"} 0
sap_refresh_duration_seconds_bucket{le="0.01"} 0
sap_refresh_duration_seconds_bucket{le="0.025"} 2
sap_refresh_duration_seconds_bucket{le="0.05"} 35
sap_refresh_duration_seconds_bucket{le="0.1"} 388
sap_refresh_duration_seconds_bucket{le="0.25"} 1273
sap_refresh_duration_seconds_bucket{le="0.5"} 1570
sap_refresh_duration_seconds_bucket{le="1"} 1589
sap_refresh_duration_seconds_bucket{le="2.5"} 1592
sap_refresh_duration_seconds_bucket{le="5"} 1593
sap_refresh_duration_seconds_bucket{le="10"} 1593
sap_refresh_duration_seconds_bucket{le="+Inf"} 1593
sap_refresh_duration_seconds_sum 310.74069366299996
sap_refresh_duration_seconds_count 1593
# HELP sap_uptime_hours Provider server uptime in hours.
# TYPE sap_uptime_hours counter
sap_uptime_hours 26.91688888888889
`)
