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

import (
	"sync/atomic"
	"time"

	"github.com/nats-io/nuid"
	"github.com/oysterpack/looper.go/pkg/commons"
	"github.com/oysterpack/looper.go/pkg/logging"
)

type looper struct{}

var logger = logging.NewPackageLogger(looper{})

// InstanceID uniquely identifies a spawned loop instance
type InstanceID string

// Handle is a handle to a running service loop.
//
// Use it to obtain Canceller values (Canceller), to wait for the loop to terminate (Wait), or
// to observe its lifecycle without consuming the outcome (Done, State). Handles are created by
// Spawn - the zero value is not usable.
type Handle[T any] struct {
	instanceID InstanceID

	sig *signal
	lc  *lifecycle

	// closed by the worker goroutine after the outcome fields below are set, which is what
	// publishes them to the waiter
	done   chan struct{}
	result T
	err    error

	joined atomic.Bool
}

// Spawn launches the loop's step sequence on a new goroutine and returns a Handle to it.
//
// The loop starts with a fresh cancellation signal, scoped to this execution only. The signal
// exists independently of loop progress - a cancellation requested immediately after Spawn
// returns, before the first step has executed, is observed by the loop's first Checkpoint
// query.
func Spawn[T any](loop Loop[T]) *Handle[T] {
	if loop == nil {
		panic("loop is required")
	}
	h := &Handle[T]{
		instanceID: InstanceID(nuid.Next()),
		sig:        &signal{},
		done:       make(chan struct{}),
	}

	svcLog := logger.With().
		Str(logging.NAME, string(commons.ObjectTypeName(loop))).
		Str(logging.ID, string(h.instanceID)).
		Logger()
	h.lc = newLifecycle(svcLog)
	svcLog.Info().Dict(logging.EVENT, SPAWNED.Dict()).Msg("")

	go h.drive(loop)
	return h
}

// drive runs on the worker goroutine. It repeatedly invokes Step until a stop outcome is
// produced, finalizes the outcome exactly once, and then closes the done channel.
func (h *Handle[T]) drive(loop Loop[T]) {
	defer close(h.done)
	defer func() {
		if p := recover(); p != nil {
			var zero T
			h.result, h.err = zero, &PanicError{Panic: p, Message: "Loop.Step()"}
		}
		h.lc.completed()
	}()

	ctl := Checkpoint{sig: h.sig, lc: h.lc}
	for {
		result, state, err := loop.Step(ctl)
		if err != nil {
			h.err = err
			return
		}
		if state == Break {
			h.result = result
			return
		}
	}
}

// InstanceID returns the unique id assigned to this loop execution
func (h *Handle[T]) InstanceID() InstanceID {
	return h.instanceID
}

// Canceller returns a new Canceller referencing this loop's cancellation signal.
//
// It may be called any number of times, from any goroutine, at any point in the handle's
// lifetime. This can be handy if you want one goroutine to wait for the service loop to exit
// while another watches for exit signals.
func (h *Handle[T]) Canceller() Canceller {
	return Canceller{sig: h.sig}
}

// Cancel requests that the service loop stop at the next opportunity - see Canceller.Cancel.
func (h *Handle[T]) Cancel() {
	h.sig.request()
}

// Cancelled returns true if cancellation has been requested.
func (h *Handle[T]) Cancelled() bool {
	return h.sig.requested()
}

// State returns the current lifecycle state along with when it was entered.
func (h *Handle[T]) State() (State, time.Time) {
	return h.lc.State()
}

// Done returns a channel that is closed once the loop's outcome is finalized. It does not
// consume the outcome - use it to layer timeouts or select over multiple loops, then call
// Wait to collect the result.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Wait blocks the calling goroutine until the loop's step sequence has stopped, and returns
// its terminal outcome :
//   - the loop's result, if it stopped via Break
//   - the loop's error, unchanged, if a step reported one
//   - a *PanicError, if a panic escaped a step
//
// The outcome is transferred exactly once. Wait may only be invoked once per Handle - any
// subsequent call does not block and returns an *IllegalStateError.
func (h *Handle[T]) Wait() (T, error) {
	if !h.joined.CompareAndSwap(false, true) {
		var zero T
		state, _ := h.lc.State()
		return zero, &IllegalStateError{
			State:   state,
			Message: "Handle.Wait() may only be invoked once",
		}
	}
	<-h.done
	return h.result, h.err
}
