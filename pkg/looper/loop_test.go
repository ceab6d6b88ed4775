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
	"io"
	"net"
	"testing"
	"time"

	"github.com/oysterpack/looper.go/pkg/looper"
)

func TestRun_NaturalCompletion(t *testing.T) {
	result, err := looper.Run[int](&countingLoop{n: 10})
	if err != nil {
		t.Fatal(err)
	}
	if result != 10 {
		t.Errorf("the loop's result should be handed back verbatim : %v", result)
	}
}

func TestRun_FailurePropagation(t *testing.T) {
	failure := errors.New("work exhausted")
	if _, err := looper.Run[struct{}](&failingLoop{n: 3, err: failure}); err != failure {
		t.Errorf("the loop's error should be handed back unchanged : %v", err)
	}
}

func TestRun_ExecutionFailure(t *testing.T) {
	_, err := looper.Run(looper.LoopFunc[struct{}](func(ctl looper.Checkpoint) (struct{}, looper.LoopState, error) {
		panic("boom")
	}))
	panicErr := &looper.PanicError{}
	if !errors.As(err, &panicErr) {
		t.Errorf("a panic escaping a step should surface as *PanicError : %T : %v", err, err)
	}
}

func TestRun_CheckpointNeverReportsCancelled(t *testing.T) {
	steps := 0
	result, err := looper.Run(looper.LoopFunc[int](func(ctl looper.Checkpoint) (int, looper.LoopState, error) {
		if ctl.Cancelled() {
			return 0, looper.Break, errors.New("the checkpoint must never report cancelled")
		}
		steps++
		if steps == 5 {
			return steps, looper.Break, nil
		}
		return 0, looper.Continue, nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if result != 5 {
		t.Errorf("unexpected result : %v", result)
	}
}

// helloService is a classic server accept loop turned into a cancellable loop : each step
// accepts one connection, greets it, and then checks for cancellation before accepting the
// next one.
type helloService struct {
	listener net.Listener
	served   int
}

func newHelloService(t *testing.T) *helloService {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	return &helloService{listener: listener}
}

func (s *helloService) addr() string {
	return s.listener.Addr().String()
}

func (s *helloService) Step(ctl looper.Checkpoint) (int, looper.LoopState, error) {
	if ctl.Cancelled() {
		return s.served, looper.Break, nil
	}
	conn, err := s.listener.Accept()
	if err != nil {
		return 0, looper.Break, err
	}
	if _, err := conn.Write([]byte("hello!")); err != nil {
		conn.Close()
		return 0, looper.Break, err
	}
	conn.Close()
	s.served++
	return 0, looper.Continue, nil
}

func connectAssert(t *testing.T, addr string) {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	greeting, err := io.ReadAll(conn)
	if err != nil {
		t.Fatal(err)
	}
	if string(greeting) != "hello!" {
		t.Fatalf("unexpected greeting : %q", greeting)
	}
}

func TestHelloService_ServesUntilCancelled(t *testing.T) {
	service := newHelloService(t)
	defer service.listener.Close()

	h := looper.Spawn[int](service)
	exit := h.Canceller()

	connectAssert(t, service.addr())
	connectAssert(t, service.addr())

	exit.Cancel()

	// cancellation will not terminate the accept the loop may currently be blocked in - this
	// connection wakes it up so that the next checkpoint query can stop the loop. Whether the
	// connection is greeted depends on whether the loop had already observed the request.
	if conn, err := net.Dial("tcp", service.addr()); err == nil {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		io.ReadAll(conn)
		conn.Close()
	}

	served, err := h.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if served < 2 {
		t.Errorf("at least the 2 pre-cancellation connections should have been served : %v", served)
	}
}
