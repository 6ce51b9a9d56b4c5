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
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HeapMetrics collects operational counters of a single mergeable heap.
type HeapMetrics interface {
	SetEntries(n int)
	IncPushes()
	IncPops()
	IncMerges()
	IncComparatorFailures()
}

var (
	metricsHeapEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "stlite_mergeheap_entries",
		Help: "Current number of elements held by the heap",
	}, []string{"heap_id"})

	metricsHeapPushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stlite_mergeheap_pushes_total",
		Help: "Total number of successful push operations",
	}, []string{"heap_id"})

	metricsHeapPops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stlite_mergeheap_pops_total",
		Help: "Total number of successful pop operations",
	}, []string{"heap_id"})

	metricsHeapMerges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stlite_mergeheap_merges_total",
		Help: "Total number of successful merge operations",
	}, []string{"heap_id"})

	metricsHeapComparatorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stlite_mergeheap_comparator_failures_total",
		Help: "Total number of operations aborted by a failing comparator",
	}, []string{"heap_id"})
)

var _ HeapMetrics = &prometheusHeapMetrics{}

type prometheusHeapMetrics struct {
	heapID string
}

func NewPrometheusHeapMetrics(heapID string) HeapMetrics {
	return &prometheusHeapMetrics{
		heapID: heapID,
	}
}

func (m *prometheusHeapMetrics) SetEntries(n int) {
	metricsHeapEntries.WithLabelValues(m.heapID).Set(float64(n))
}

func (m *prometheusHeapMetrics) IncPushes() {
	metricsHeapPushes.WithLabelValues(m.heapID).Inc()
}

func (m *prometheusHeapMetrics) IncPops() {
	metricsHeapPops.WithLabelValues(m.heapID).Inc()
}

func (m *prometheusHeapMetrics) IncMerges() {
	metricsHeapMerges.WithLabelValues(m.heapID).Inc()
}

func (m *prometheusHeapMetrics) IncComparatorFailures() {
	metricsHeapComparatorFailures.WithLabelValues(m.heapID).Inc()
}

var _ HeapMetrics = &nopHeapMetrics{}

type nopHeapMetrics struct{}

// NewNopHeapMetrics returns a collector discarding every observation.
func NewNopHeapMetrics() HeapMetrics {
	return &nopHeapMetrics{}
}

func (m *nopHeapMetrics) SetEntries(n int)       {}
func (m *nopHeapMetrics) IncPushes()             {}
func (m *nopHeapMetrics) IncPops()               {}
func (m *nopHeapMetrics) IncMerges()             {}
func (m *nopHeapMetrics) IncComparatorFailures() {}
