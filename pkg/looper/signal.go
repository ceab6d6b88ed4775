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

package looper

import "sync/atomic"

// signal is the cancellation flag shared by a spawned loop and all of its Canceller values.
// It only ever transitions from not-requested to requested. Each spawned loop gets its own
// signal instance - there is no process wide state.
type signal struct {
	cancelRequested atomic.Bool
}

func (s *signal) request() {
	s.cancelRequested.Store(true)
}

func (s *signal) requested() bool {
	return s.cancelRequested.Load()
}

// Canceller is the capability to request the cancellation of a running service loop.
//
// Cancellers are created via Handle.Canceller. A Canceller is a value - copying it yields an
// independent handle that shares the same underlying signal, and discarding a copy has no
// effect on the signal or on other copies. Any number of Cancellers may be used concurrently
// from any goroutine.
type Canceller struct {
	sig *signal
}

// Cancel requests that the service loop stop at the next opportunity.
//
// Cancel is idempotent - requesting cancellation any number of times, from one goroutine or
// many concurrently, has the same effect as requesting it once. It never blocks and has no
// failure mode.
//
// Note that Cancel will *not* interrupt a Step that is currently executing. The loop will
// observe the request through its Checkpoint on its own schedule.
func (c Canceller) Cancel() {
	c.sig.request()
}

// Cancelled returns true if cancellation has been requested. It never blocks.
func (c Canceller) Cancelled() bool {
	return c.sig.requested()
}

// Checkpoint is the loop's read-only view of its cancellation signal. It is handed to every
// Step invocation and exposes the query only - the loop body cannot request cancellation
// through it.
type Checkpoint struct {
	sig *signal
	lc  *lifecycle
}

// Cancelled returns true if cancellation has been requested.
//
// A request made at any point before this check - even before the loop ran its first step -
// is observed. The first observation transitions the loop's lifecycle from Running to
// CancelObserved.
func (c Checkpoint) Cancelled() bool {
	if !c.sig.requested() {
		return false
	}
	if c.lc != nil {
		c.lc.cancelObserved()
	}
	return true
}
