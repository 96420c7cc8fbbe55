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
package queries

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codenotary/sap/pkg/client"
	"github.com/codenotary/sap/pkg/logger"
	"github.com/codenotary/sap/pkg/server"
	"github.com/codenotary/sap/pkg/source"
	"github.com/codenotary/sap/test/performance-test-suite/pkg/benchmarks"
)

type Config struct {
	Workers        int
	Objects        int
	RequestTimeout time.Duration
}

var DefaultConfig = Config{
	Workers:        30,
	Objects:        1000,
	RequestTimeout: 30 * time.Second,
}

// queryFn runs one request against the provider and reports how many
// objects came back with it.
type queryFn func(ctx context.Context, c client.SAPClient) (int64, error)

type benchmark struct {
	name  string
	cfg   Config
	query queryFn

	reqSoFar  int64
	objSoFar  int64
	startTime time.Time

	lastProbeReqSoFar int64
	lastProbeObjSoFar int64
	lastProbeTime     time.Time

	m sync.Mutex

	hw      *benchmarks.HWStatsGatherer
	srv     *server.SAPServer
	dir     string
	clients []client.SAPClient
}

type Result struct {
	ReqTotal int64               `json:"reqTotal"`
	ObjTotal int64               `json:"objTotal"`
	Reqs     float64             `json:"reqs"`
	Objs     float64             `json:"objs"`
	ReqsInst float64             `json:"reqsInstant,omitempty"`
	ObjsInst float64             `json:"objsInstant,omitempty"`
	HWStats  *benchmarks.HWStats `json:"hwStats,omitempty"`
}

func (r *Result) String() string {
	s := fmt.Sprintf(
		"REQ: %d, OBJ: %d, REQ/s: %.2f, OBJ/s: %.2f",
		r.ReqTotal,
		r.ObjTotal,
		r.Reqs,
		r.Objs,
	)
	if r.ReqsInst != 0.0 || r.ObjsInst != 0.0 {
		s += fmt.Sprintf(
			", REQ/s instant: %.2f, OBJ/s instant: %.2f",
			r.ReqsInst,
			r.ObjsInst,
		)
	}
	return s
}

// NewAllDataBenchmark measures full data set reads per second.
func NewAllDataBenchmark(cfg Config) benchmarks.Benchmark {
	return &benchmark{
		name: "Read all_data/s",
		cfg:  cfg,
		query: func(ctx context.Context, c client.SAPClient) (int64, error) {
			objects, err := c.AllData(ctx)
			if err != nil {
				return 0, err
			}
			return int64(len(objects)), nil
		},
	}
}

// NewHealthBenchmark measures health checks per second. Health replies
// carry no objects, so only the request counters move.
func NewHealthBenchmark(cfg Config) benchmarks.Benchmark {
	return &benchmark{
		name: "Health checks/s",
		cfg:  cfg,
		query: func(ctx context.Context, c client.SAPClient) (int64, error) {
			if _, err := c.Health(ctx); err != nil {
				return 0, err
			}
			return 0, nil
		},
	}
}

func (b *benchmark) Name() string {
	return b.name
}

// Warmup starts an embedded provider serving the demo data set and
// connects one client per worker. It returns once the provider answers
// health checks, so Run starts against a populated cache.
func (b *benchmark) Warmup() error {
	dir, err := os.MkdirTemp("", "sapload")
	if err != nil {
		return err
	}
	b.dir = dir

	options := server.
		DefaultOptions().
		WithDir(b.dir).
		WithAddress("127.0.0.1").
		WithPort(0).
		WithMetricsServer(false).
		WithRefreshInterval(time.Hour).
		WithRequireInitialFetch(true).
		WithProviderName("sapload provider")

	b.srv = server.DefaultServer()
	b.srv.WithOptions(options).
		WithSource(source.NewDemo(b.cfg.Objects)).
		WithLogger(logger.NewMemoryLoggerWithLevel(logger.LogDebug))

	if err := b.srv.Initialize(); err != nil {
		return err
	}

	go func() { _ = b.srv.Start() }()

	url := "http://" + b.srv.Addr()

	probe, err := client.NewSAPClient(client.DefaultOptions().
		WithServerURL(url).
		WithHealthCheckRetries(10))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := probe.WaitForHealthCheck(ctx); err != nil {
		return err
	}

	b.clients = []client.SAPClient{}
	for i := 0; i < b.cfg.Workers; i++ {
		c, err := client.NewSAPClient(client.DefaultOptions().
			WithServerURL(url).
			WithRequestTimeout(b.cfg.RequestTimeout))
		if err != nil {
			return err
		}
		b.clients = append(b.clients, c)
	}

	return nil
}

func (b *benchmark) Cleanup() error {
	var err error
	if b.srv != nil {
		err = b.srv.Stop()
	}
	if b.dir != "" {
		os.RemoveAll(b.dir)
	}
	return err
}

func (b *benchmark) Run(duration time.Duration) (interface{}, error) {
	wg := sync.WaitGroup{}

	done := make(chan bool)
	errChan := make(chan error, 1)

	if hw, err := benchmarks.NewHWStatsGatherer(); err == nil {
		b.hw = hw
	}

	b.startTime = time.Now()
	b.lastProbeTime = b.startTime

	for i := range b.clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			client := b.clients[i]

			for {

				select {
				case <-done:
					return
				default:
				}

				objects, err := b.query(context.Background(), client)

				if err != nil {
					select {
					case errChan <- err:
					default:
					}
					return
				}

				atomic.AddInt64(&b.reqSoFar, 1)
				atomic.AddInt64(&b.objSoFar, objects)
			}

		}(i)
	}

	select {
	case err := <-errChan:
		// Finish with error
		close(done)
		wg.Wait()
		return nil, err

	case <-time.After(duration):
		// Finish after given duration
		close(done)
		wg.Wait()
	}

	return b.genResults(false), nil
}

func (b *benchmark) Probe() interface{} {
	return b.genResults(true)
}

func (b *benchmark) genResults(asProbe bool) interface{} {

	reqSoFar := atomic.LoadInt64(&b.reqSoFar)
	objSoFar := atomic.LoadInt64(&b.objSoFar)

	now := time.Now()

	d := now.Sub(b.startTime)

	res := &Result{
		ReqTotal: reqSoFar,
		ObjTotal: objSoFar,
		Reqs:     float64(reqSoFar) * float64(time.Second) / float64(d),
		Objs:     float64(objSoFar) * float64(time.Second) / float64(d),
	}

	if asProbe {

		b.m.Lock()
		defer b.m.Unlock()

		dSinceLastProbe := now.Sub(b.lastProbeTime)

		res.ReqsInst = float64(reqSoFar-b.lastProbeReqSoFar) * float64(time.Second) / float64(dSinceLastProbe)
		res.ObjsInst = float64(objSoFar-b.lastProbeObjSoFar) * float64(time.Second) / float64(dSinceLastProbe)

		b.lastProbeReqSoFar = reqSoFar
		b.lastProbeObjSoFar = objSoFar
		b.lastProbeTime = now

	} else if b.hw != nil {
		if stats, err := b.hw.GetHWStats(); err == nil {
			res.HWStats = stats
		}
	}

	return res
}
