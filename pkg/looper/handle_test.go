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

package looper_test

import (
	"errors"
	"testing"

	"github.com/oysterpack/looper.go/pkg/looper"
	"go.uber.org/goleak"
)

// TestMain verifies that no spawned loop goroutine outlives its test.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingLoop continues until it has stepped n times, then breaks with the step count.
type countingLoop struct {
	n     int
	steps int
}

func (l *countingLoop) Step(ctl looper.Checkpoint) (int, looper.LoopState, error) {
	l.steps++
	if l.steps == l.n {
		return l.steps, looper.Break, nil
	}
	return 0, looper.Continue, nil
}

// failingLoop fails on its n-th step.
type failingLoop struct {
	n     int
	err   error
	steps int
}

func (l *failingLoop) Step(ctl looper.Checkpoint) (struct{}, looper.LoopState, error) {
	l.steps++
	if l.steps == l.n {
		return struct{}{}, looper.Break, l.err
	}
	return struct{}{}, looper.Continue, nil
}

// gatedLoop holds each step on its gate channel, then breaks if cancellation was requested.
type gatedLoop struct {
	gate  chan struct{}
	steps int
}

func (l *gatedLoop) Step(ctl looper.Checkpoint) (int, looper.LoopState, error) {
	<-l.gate
	l.steps++
	if ctl.Cancelled() {
		return l.steps, looper.Break, nil
	}
	return 0, looper.Continue, nil
}

func TestHandle_NaturalCompletion(t *testing.T) {
	h := looper.Spawn(&countingLoop{n: 100})

	// no Canceller request is ever made
	steps, err := h.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if steps != 100 {
		t.Errorf("the loop's result should be handed back verbatim : %v", steps)
	}
	if state, _ := h.State(); !state.Completed() {
		t.Errorf("the loop should have completed : %v", state)
	}
	if h.Cancelled() {
		t.Error("cancellation was never requested")
	}
}

func TestHandle_FailurePropagation(t *testing.T) {
	failure := errors.New("work exhausted")
	h := looper.Spawn(&failingLoop{n: 3, err: failure})

	if _, err := h.Wait(); err != failure {
		t.Errorf("the loop's error should be handed back unchanged : %v", err)
	}
}

func TestHandle_EarlyCancellation(t *testing.T) {
	loop := &gatedLoop{gate: make(chan struct{}, 1)}
	h := looper.Spawn(loop)

	// request cancellation before the loop has executed its first step
	h.Canceller().Cancel()
	loop.gate <- struct{}{}

	steps, err := h.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if steps != 1 {
		t.Errorf("the first step should have observed the request : steps = %v", steps)
	}
}

// observingLoop pauses after it has observed the cancellation request, so that the test can
// inspect the lifecycle state mid-flight.
type observingLoop struct {
	gate     chan struct{}
	observed chan struct{}
	resume   chan struct{}
}

func (l *observingLoop) Step(ctl looper.Checkpoint) (struct{}, looper.LoopState, error) {
	<-l.gate
	if ctl.Cancelled() {
		close(l.observed)
		<-l.resume
		return struct{}{}, looper.Break, nil
	}
	return struct{}{}, looper.Continue, nil
}

func TestHandle_CancelObservedState(t *testing.T) {
	loop := &observingLoop{
		gate:     make(chan struct{}, 1),
		observed: make(chan struct{}),
		resume:   make(chan struct{}),
	}
	h := looper.Spawn(loop)

	if state, _ := h.State(); !state.Running() {
		t.Errorf("the loop should be running : %v", state)
	}

	h.Cancel()
	loop.gate <- struct{}{}
	<-loop.observed

	if state, _ := h.State(); !state.CancelObserved() {
		t.Errorf("the loop should have observed the cancellation : %v", state)
	}

	close(loop.resume)
	if _, err := h.Wait(); err != nil {
		t.Fatal(err)
	}
	if state, _ := h.State(); !state.Completed() {
		t.Errorf("the loop should have completed : %v", state)
	}
}

func TestHandle_ExecutionFailure(t *testing.T) {
	boom := "boom"
	h := looper.Spawn(looper.LoopFunc[struct{}](func(ctl looper.Checkpoint) (struct{}, looper.LoopState, error) {
		panic(boom)
	}))

	_, err := h.Wait()
	panicErr := &looper.PanicError{}
	if !errors.As(err, &panicErr) {
		t.Fatalf("a panic escaping a step should surface as *PanicError : %T : %v", err, err)
	}
	if panicErr.Panic != boom {
		t.Errorf("the panic value should be preserved : %v", panicErr.Panic)
	}
}

func TestHandle_WaitMayOnlyBeInvokedOnce(t *testing.T) {
	h := looper.Spawn(&countingLoop{n: 1})

	if _, err := h.Wait(); err != nil {
		t.Fatal(err)
	}

	_, err := h.Wait()
	if err == nil {
		t.Fatal("a second Wait should be rejected")
	}
	illegalState := &looper.IllegalStateError{}
	if !errors.As(err, &illegalState) {
		t.Errorf("the error type should be *looper.IllegalStateError, but was %T", err)
	}
}

func TestHandle_Done(t *testing.T) {
	loop := &gatedLoop{gate: make(chan struct{})}
	h := looper.Spawn(loop)

	select {
	case <-h.Done():
		t.Error("the loop has not stopped yet")
	default:
	}

	h.Cancel()
	close(loop.gate)
	<-h.Done()

	if _, err := h.Wait(); err != nil {
		t.Error(err)
	}
}

func TestHandle_InstanceID(t *testing.T) {
	h1 := looper.Spawn(&countingLoop{n: 1})
	h2 := looper.Spawn(&countingLoop{n: 1})

	if h1.InstanceID() == "" || h1.InstanceID() == h2.InstanceID() {
		t.Errorf("each execution should get its own instance id : %v : %v", h1.InstanceID(), h2.InstanceID())
	}

	if _, err := h1.Wait(); err != nil {
		t.Error(err)
	}
	if _, err := h2.Wait(); err != nil {
		t.Error(err)
	}
}
