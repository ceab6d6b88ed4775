// Copyright (c) 2018 OysterPack, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics centralizes prometheus metric registration.
// Metrics are registered against a package level Registry and cached along with their opts.
// Re-registering a metric with the same opts returns the cached metric. Re-registering a
// metric name with different opts is considered a programming bug and triggers a panic.
package metrics

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/oysterpack/looper.go/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct{}

var logger = logging.NewPackageLogger(metrics{})

var (
	mutex sync.RWMutex

	// Registry is the global registry
	Registry = NewRegistry(true)

	countersMap = map[string]*Counter{}
	gaugesMap   = map[string]*Gauge{}
)

// Counter pairs the registered prometheus counter with the opts it was registered with
type Counter struct {
	prometheus.Counter
	*prometheus.CounterOpts
}

// Gauge pairs the registered prometheus gauge with the opts it was registered with
type Gauge struct {
	prometheus.Gauge
	*prometheus.GaugeOpts
}

// NewRegistry creates a new registry.
// If collectProcessMetrics = true, then the prometheus GoCollector and ProcessCollector are registered.
func NewRegistry(collectProcessMetrics bool) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	if collectProcessMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return registry
}

// ResetRegistry resets the prometheus Registry and clears all cached metrics.
// Its purpose is to support testing.
func ResetRegistry() {
	mutex.Lock()
	defer mutex.Unlock()
	Registry = NewRegistry(true)
	countersMap = map[string]*Counter{}
	gaugesMap = map[string]*Gauge{}
}

// GetOrMustRegisterCounter first checks if a counter with the same name is already registered.
// If the counter is already registered, and was registered with the same opts, then the cached counter is returned.
// If the counter is already registered, and was registered with different opts, then a panic is triggered.
// If no such counter exists, then it is registered and cached along with its opts.
func GetOrMustRegisterCounter(opts *prometheus.CounterOpts) prometheus.Counter {
	const FUNC = "GetOrMustRegisterCounter"
	mutex.Lock()
	defer mutex.Unlock()
	name := CounterFQName(opts)
	if counter := countersMap[name]; counter != nil {
		if reflect.DeepEqual(*opts, *counter.CounterOpts) {
			return counter
		}
		logger.Panic().Str(logging.FUNC, FUNC).
			Str("registered", fmt.Sprintf("%v", *counter.CounterOpts)).
			Str("dup", fmt.Sprintf("%v", *opts)).
			Msg("counter is already registered with different opts")
	}

	counter := &Counter{prometheus.NewCounter(*opts), opts}
	Registry.MustRegister(counter.Counter)
	countersMap[name] = counter
	return counter
}

// GetOrMustRegisterGauge follows the same contract as GetOrMustRegisterCounter, for gauges.
func GetOrMustRegisterGauge(opts *prometheus.GaugeOpts) prometheus.Gauge {
	const FUNC = "GetOrMustRegisterGauge"
	mutex.Lock()
	defer mutex.Unlock()
	name := GaugeFQName(opts)
	if gauge := gaugesMap[name]; gauge != nil {
		if reflect.DeepEqual(*opts, *gauge.GaugeOpts) {
			return gauge
		}
		logger.Panic().Str(logging.FUNC, FUNC).
			Str("registered", fmt.Sprintf("%v", *gauge.GaugeOpts)).
			Str("dup", fmt.Sprintf("%v", *opts)).
			Msg("gauge is already registered with different opts")
	}

	gauge := &Gauge{prometheus.NewGauge(*opts), opts}
	Registry.MustRegister(gauge.Gauge)
	gaugesMap[name] = gauge
	return gauge
}

// CounterNames returns the names of all registered counters
func CounterNames() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	names := make([]string, 0, len(countersMap))
	for name := range countersMap {
		names = append(names, name)
	}
	return names
}

// GaugeNames returns the names of all registered gauges
func GaugeNames() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	names := make([]string, 0, len(gaugesMap))
	for name := range gaugesMap {
		names = append(names, name)
	}
	return names
}

// CounterFQName returns the fully qualified metric name for the counter opts
func CounterFQName(opts *prometheus.CounterOpts) string {
	return prometheus.BuildFQName(opts.Namespace, opts.Subsystem, opts.Name)
}

// GaugeFQName returns the fully qualified metric name for the gauge opts
func GaugeFQName(opts *prometheus.GaugeOpts) string {
	return prometheus.BuildFQName(opts.Namespace, opts.Subsystem, opts.Name)
}
