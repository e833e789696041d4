// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package memmetrics exports mem.Allocator statistics as Prometheus metrics.
package memmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Goodwine/go-xmldoc/mem"
)

// Collector reads an Allocator's counters on every scrape.
type Collector struct {
	alloc *mem.Allocator

	live     *prometheus.Desc
	peak     *prometheus.Desc
	allocs   *prometheus.Desc
	reallocs *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a Collector for alloc. Metric names are prefixed with namespace when it is
// not empty.
func NewCollector(alloc *mem.Allocator, namespace string) *Collector {
	name := func(n string) string {
		return prometheus.BuildFQName(namespace, "mem", n)
	}
	return &Collector{
		alloc:    alloc,
		live:     prometheus.NewDesc(name("live_bytes"), "Bytes currently allocated.", nil, nil),
		peak:     prometheus.NewDesc(name("peak_bytes"), "Highest number of bytes allocated at once.", nil, nil),
		allocs:   prometheus.NewDesc(name("allocs_total"), "Successful allocations.", nil, nil),
		reallocs: prometheus.NewDesc(name("reallocs_total"), "Successful reallocations.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.live
	ch <- c.peak
	ch <- c.allocs
	ch <- c.reallocs
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.alloc.Stats()
	ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(s.Mem))
	ch <- prometheus.MustNewConstMetric(c.peak, prometheus.GaugeValue, float64(s.MemMax))
	ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue, float64(s.Allocs))
	ch <- prometheus.MustNewConstMetric(c.reallocs, prometheus.CounterValue, float64(s.Reallocs))
}
