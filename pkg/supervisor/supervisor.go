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

// Package supervisor manages sets of spawned service loops as a unit.
//
// A Supervisor registers every loop spawned through it and watches each one. Killing the
// supervisor requests cancellation of all loops that are still running; Wait blocks until all
// of them have exited. The supervisor does not consume loop outcomes - each Handle's Wait
// remains available to whoever spawned the loop.
//
// Loops are tracked with prometheus metrics (spawned / completed counters, running gauge) and
// their registration is logged.
package supervisor

import (
	"sync"
	"time"

	"github.com/nats-io/nuid"
	"github.com/oysterpack/looper.go/pkg/logging"
	"github.com/oysterpack/looper.go/pkg/looper"
	"github.com/oysterpack/looper.go/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gopkg.in/tomb.v2"
)

type supervisor struct{}

var logger = logging.NewPackageLogger(supervisor{})

// Process is the non-generic view of a spawned loop tracked by a Supervisor.
// Every looper.Handle satisfies it.
type Process interface {
	InstanceID() looper.InstanceID

	Canceller() looper.Canceller

	State() (looper.State, time.Time)

	Done() <-chan struct{}
}

// Supervisor manages a set of spawned service loops.
// Use New to create Supervisor instances.
type Supervisor struct {
	t tomb.Tomb

	desc *Descriptor
	id   looper.InstanceID

	logger zerolog.Logger

	mutex     sync.RWMutex
	processes map[looper.InstanceID]Process

	loopsSpawned   prometheus.Counter
	loopsCompleted prometheus.Counter
	loopsRunning   prometheus.Gauge
}

// New creates a new Supervisor described by desc.
//
// The supervisor is alive until it is killed. Killing it requests cancellation of every loop
// that is still registered.
func New(desc *Descriptor) *Supervisor {
	if desc == nil {
		panic(ErrDescriptorNil)
	}
	s := &Supervisor{
		desc:      desc,
		id:        looper.InstanceID(nuid.Next()),
		processes: make(map[looper.InstanceID]Process),

		loopsSpawned:   metrics.GetOrMustRegisterCounter(LoopsSpawnedCounterOpts),
		loopsCompleted: metrics.GetOrMustRegisterCounter(LoopsCompletedCounterOpts),
		loopsRunning:   metrics.GetOrMustRegisterGauge(LoopsRunningGaugeOpts),
	}
	s.logger = logger.With().
		Str(logging.NAME, desc.ID()).
		Str(logging.ID, string(s.id)).
		Logger()

	// The reaper keeps the tomb alive until the supervisor is killed, and then requests
	// cancellation of every registered loop. It holds the registration mutex while doing so,
	// which also guarantees that the tomb cannot die while a spawn is in flight.
	s.t.Go(func() error {
		<-s.t.Dying()
		s.cancelAll()
		return nil
	})

	s.logger.Info().Dict(logging.EVENT, SUPERVISOR_STARTED.Dict()).Msg("")
	return s
}

// Go spawns the loop via looper.Spawn, registers it with the supervisor, and returns its
// Handle. The outcome stays with the returned Handle - the supervisor only tracks the loop's
// lifetime.
//
// If the supervisor has been killed, then no loop is spawned and ErrSupervisorNotAlive is
// returned.
func Go[T any](s *Supervisor, loop looper.Loop[T]) (*looper.Handle[T], error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.t.Alive() {
		return nil, ErrSupervisorNotAlive
	}

	h := looper.Spawn(loop)
	s.processes[h.InstanceID()] = h
	s.loopsSpawned.Inc()
	s.loopsRunning.Inc()
	s.logger.Info().
		Dict(logging.EVENT, LOOP_REGISTERED.Dict()).
		Str(logging.ID, string(h.InstanceID())).
		Msg("")

	s.t.Go(func() error {
		select {
		case <-h.Done():
		case <-s.t.Dying():
			h.Canceller().Cancel()
			<-h.Done()
		}
		s.unregister(h.InstanceID())
		return nil
	})

	return h, nil
}

// Descriptor returns the descriptor the supervisor was created with
func (s *Supervisor) Descriptor() *Descriptor {
	return s.desc
}

// InstanceID returns the unique id assigned to this supervisor instance
func (s *Supervisor) InstanceID() looper.InstanceID {
	return s.id
}

// Alive returns true until the supervisor is killed
func (s *Supervisor) Alive() bool {
	return s.t.Alive()
}

// Dying returns a channel that is closed when the supervisor is killed
func (s *Supervisor) Dying() <-chan struct{} {
	return s.t.Dying()
}

// Kill requests cancellation of all registered loops and marks the supervisor as dying.
// Kill is idempotent and returns immediately - use Wait to block until all loops have exited.
func (s *Supervisor) Kill() {
	// the mutex serializes concurrent Kill calls so that SUPERVISOR_KILLED is logged exactly once
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.t.Alive() {
		s.logger.Info().Dict(logging.EVENT, SUPERVISOR_KILLED.Dict()).Msg("")
	}
	s.t.Kill(nil)
}

// Wait blocks until the supervisor has been killed and all registered loops have exited.
// Loops that run to natural completion are unregistered, but the supervisor stays alive and
// keeps accepting new loops - use Kill (or Shutdown) to release Wait.
func (s *Supervisor) Wait() error {
	return s.t.Wait()
}

// Shutdown invokes Kill followed by Wait
func (s *Supervisor) Shutdown() error {
	s.Kill()
	return s.Wait()
}

// Process looks up a registered loop by its instance id.
// Loops are unregistered once they exit.
func (s *Supervisor) Process(id looper.InstanceID) Process {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.processes[id]
}

// RunningLoops returns the instance ids of all loops that are still registered
func (s *Supervisor) RunningLoops() []looper.InstanceID {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	ids := make([]looper.InstanceID, 0, len(s.processes))
	for id := range s.processes {
		ids = append(ids, id)
	}
	return ids
}

func (s *Supervisor) cancelAll() {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, p := range s.processes {
		p.Canceller().Cancel()
	}
}

func (s *Supervisor) unregister(id looper.InstanceID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.processes, id)
	s.loopsCompleted.Inc()
	s.loopsRunning.Dec()
	s.logger.Info().
		Dict(logging.EVENT, LOOP_UNREGISTERED.Dict()).
		Str(logging.ID, string(id)).
		Msg("")
}
