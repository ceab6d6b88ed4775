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

package supervisor

import "github.com/prometheus/client_golang/prometheus"

// metric opts
var (
	LoopsSpawnedCounterOpts = &prometheus.CounterOpts{
		Namespace: "oysterpack",
		Subsystem: "supervisor",
		Name:      "loops_spawned_total",
		Help:      "The number of service loops that have been spawned",
	}

	LoopsCompletedCounterOpts = &prometheus.CounterOpts{
		Namespace: "oysterpack",
		Subsystem: "supervisor",
		Name:      "loops_completed_total",
		Help:      "The number of service loops that have completed",
	}

	LoopsRunningGaugeOpts = &prometheus.GaugeOpts{
		Namespace: "oysterpack",
		Subsystem: "supervisor",
		Name:      "loops_running",
		Help:      "The number of service loops that are currently running",
	}
)
