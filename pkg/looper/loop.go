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

// LoopState indicates whether the service loop should continue accepting new work.
type LoopState int

const (
	// Continue accepting more work.
	Continue LoopState = iota
	// Break out of the loop and return.
	Break
)

func (s LoopState) String() string {
	switch s {
	case Continue:
		return "Continue"
	case Break:
		return "Break"
	default:
		return "UNKNOWN"
	}
}

// Loop is the contract a cancellable service must satisfy. It emulates a loop like :
//
//	for {
//		// fetch some work
//		// do some work that might error
//	}
//
// but where the loop can be cancelled - after the current piece of work is processed, no more
// work is handled and the loop returns.
//
// T is the loop's terminal result type. Loops that have no meaningful result use struct{}.
//
// Contract obligation on implementers : cancellation is cooperative. The system offers no
// preemption - if timely shutdown is required, then Step must check ctl.Cancelled() at some
// bounded cadence of its own choosing and return Break when it reports true. A Step may block
// arbitrarily long on the loop's own work; no timeout is imposed on it.
type Loop[T any] interface {
	// Step is invoked repeatedly, once per iteration of the service loop.
	//
	// ctl is the loop's read-only view of its cancellation signal.
	//
	// Returning (_, Continue, nil) keeps the loop going.
	// Returning (result, Break, nil) stops the loop with result as its terminal value.
	// Returning a non-nil err stops the loop with that exact error - it is handed back from
	// Wait unchanged. result is ignored unless the step returns (Break, nil).
	//
	// If Step panics, the loop stops and the panic surfaces from Wait as a *PanicError.
	Step(ctl Checkpoint) (result T, state LoopState, err error)
}

// LoopFunc is an adapter that allows an ordinary function to be used as a Loop.
type LoopFunc[T any] func(ctl Checkpoint) (T, LoopState, error)

// Step invokes the function
func (f LoopFunc[T]) Step(ctl Checkpoint) (T, LoopState, error) {
	return f(ctl)
}

// Run drives the loop's step sequence on the calling goroutine, blocking it until a step
// returns Break or an error. The loop cannot be cancelled - the Checkpoint handed to each
// step never reports cancelled. Use Spawn for a cancellable loop.
//
// A panic escaping a Step is converted to a *PanicError, the same as for a spawned loop.
func Run[T any](loop Loop[T]) (result T, err error) {
	if loop == nil {
		panic("loop is required")
	}
	defer func() {
		if p := recover(); p != nil {
			var zero T
			result, err = zero, &PanicError{Panic: p, Message: "Loop.Step()"}
		}
	}()
	ctl := Checkpoint{sig: &signal{}}
	for {
		r, state, err := loop.Step(ctl)
		if err != nil {
			var zero T
			return zero, err
		}
		if state == Break {
			return r, nil
		}
	}
}
