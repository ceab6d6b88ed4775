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

// Package looper turns a long-running service loop into a cancellable unit of work.
//
// A service implements the Loop interface, i.e., it performs its work one Step at a time.
// Spawn runs the step sequence on a new goroutine and returns a Handle. The Handle hands out
// Canceller values, which may be freely copied and shared across goroutines - any of them can
// request cancellation. Wait blocks until the loop has fully exited and returns its terminal
// result or error.
//
//		service := NewService()
//
//		// start the service loop on a new goroutine
//		h := looper.Spawn(service)
//
//		// get a handle that allows cancelling the service loop
//		exit := h.Canceller()
//
//		// spin up a goroutine that will handle exit signals
//		go func() {
//			// this might catch SIGINT from the user, wait for a particular packet, or for
//			// any other condition that signals that the service should exit cleanly.
//			<-time.After(time.Second)
//
//			// tell the service loop to exit at the first opportunity
//			exit.Cancel()
//		}()
//
//		// block until the service loop exits or errors
//		result, err := h.Wait()
//
// Design Principles
//  1. Cancellation is cooperative, never preemptive. Requesting cancellation does not interrupt
//     a Step that is executing - the loop observes the request through its Checkpoint on its own
//     schedule. How often a Step checks is entirely up to the loop author.
//  2. Concurrency safe. The only shared state is the cancellation signal (one atomic flag) and
//     the one-shot completion transfer. Cancel / Cancelled / Wait may be invoked from any
//     goroutine at any time, including before the loop has run its first step.
//  3. The core is purely a transport for loop outcomes. A loop-reported error is handed back
//     from Wait unchanged - it is never logged, retried, or wrapped. Only panics escaping a
//     Step are converted, into *PanicError, so that callers can tell "the loop told me it
//     failed" apart from "the loop crashed".
package looper
