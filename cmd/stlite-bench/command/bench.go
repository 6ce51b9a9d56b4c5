/*
Copyright 2025 The stlite-go Authors. All rights reserved.

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
package command

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/xid"
	"github.com/schollz/progressbar/v2"

	"github.com/bojuzhang/stlite-go/logger"
	"github.com/bojuzhang/stlite-go/mergeheap"
	"github.com/bojuzhang/stlite-go/metrics"
	"github.com/bojuzhang/stlite-go/vector"
)

type opSamples struct {
	name    string
	samples *vector.Vector[time.Duration]
}

func runBench(opts *Options, log logger.Logger) error {
	runID := xid.New().String()

	if opts.MetricsServer {
		addr := fmt.Sprintf(":%d", opts.MetricsServerPort)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		go func() {
			log.Infof("serving metrics at %s/metrics", addr)

			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Errorf("metrics server: %v", err)
			}
		}()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	log.Infof("run %s: %d heaps, %d ops, seed %d", runID, opts.Heaps, opts.Ops, seed)

	heaps := make([]*mergeheap.Heap[int], opts.Heaps)

	for i := range heaps {
		h, err := mergeheap.New(mergeheap.DefaultOptions[int]().
			WithComparator(mergeheap.NaturalLess[int]()).
			WithMetrics(metrics.NewPrometheusHeapMetrics(fmt.Sprintf("%s-%d", runID, i))))
		if err != nil {
			return err
		}

		heaps[i] = h
	}

	pushLat, err := vector.New[time.Duration](opts.Ops)
	if err != nil {
		return err
	}

	popLat, err := vector.New[time.Duration](opts.Ops)
	if err != nil {
		return err
	}

	mergeLat, err := vector.New[time.Duration](0)
	if err != nil {
		return err
	}

	bar := progressbar.New(opts.Ops)

	pushes, pops, merges := 0, 0, 0

	for i := 0; i < opts.Ops; i++ {
		h := heaps[rnd.Intn(len(heaps))]

		if rnd.Intn(10) < 7 || h.IsEmpty() {
			start := time.Now()

			if err := h.Push(rnd.Intn(opts.MaxValue)); err != nil {
				return err
			}

			pushLat.Append(time.Since(start))
			pushes++
		} else {
			start := time.Now()

			if _, err := h.Pop(); err != nil {
				return err
			}

			popLat.Append(time.Since(start))
			pops++
		}

		if opts.MergeEvery > 0 && (i+1)%opts.MergeEvery == 0 && len(heaps) > 1 {
			dst := heaps[rnd.Intn(len(heaps))]
			src := heaps[rnd.Intn(len(heaps))]

			if dst != src {
				start := time.Now()

				if err := dst.Merge(src); err != nil {
					return err
				}

				mergeLat.Append(time.Since(start))
				merges++
			}
		}

		bar.Add(1)
	}

	fmt.Println()

	// funnel everything into a single heap and drain it, checking the
	// heap-order and element-count invariants on the way out
	final := heaps[0]

	for _, h := range heaps[1:] {
		if err := final.Merge(h); err != nil {
			return err
		}
	}

	remaining := final.Len()
	if remaining != pushes-pops {
		return fmt.Errorf("element count mismatch: %d remaining, %d expected", remaining, pushes-pops)
	}

	if !final.IsEmpty() {
		prev, err := final.Pop()
		if err != nil {
			return err
		}

		for !final.IsEmpty() {
			v, err := final.Pop()
			if err != nil {
				return err
			}

			if v > prev {
				return fmt.Errorf("heap order violated: %d popped after %d", v, prev)
			}

			prev = v
		}
	}

	log.Infof("run %s: drained %d elements in order", runID, remaining)

	color.New(color.FgGreen, color.Bold).
		Printf("run %s completed: %d pushes, %d pops, %d merges\n", runID, pushes, pops, merges)

	return renderSummary(os.Stdout, []opSamples{
		{name: "push", samples: pushLat},
		{name: "pop", samples: popLat},
		{name: "merge", samples: mergeLat},
	})
}

func renderSummary(out io.Writer, rows []opSamples) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Op", "Count", "Avg", "Max"})

	for _, r := range rows {
		var total, slowest time.Duration

		err := r.samples.Apply(func(i int, d time.Duration) error {
			total += d
			if d > slowest {
				slowest = d
			}
			return nil
		})
		if err != nil {
			return err
		}

		avg := time.Duration(0)
		if r.samples.Len() > 0 {
			avg = total / time.Duration(r.samples.Len())
		}

		table.Append([]string{r.name, strconv.Itoa(r.samples.Len()), avg.String(), slowest.String()})
	}

	table.Render()

	return nil
}
