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
	"fmt"
	"sort"
)

// State is a simple high-level summary of where the spawned loop is in its lifecycle
type State int

// Possible State values
// Normal loop life cycle : Running -> Completed
// If the loop observes a cancellation request and decides to stop cooperatively, then it passes
// through CancelObserved on its way to Completed. A loop may also complete directly from Running
// via natural success or via an error, without ever consulting the signal.
// The ordering of the State enum is defined such that if there is a state transition from A -> B then A < B.
const (
	// The loop's step sequence is executing.
	Running State = iota
	// The loop checked its Checkpoint, saw that cancellation was requested, and is stopping cooperatively.
	CancelObserved
	// The loop's step sequence has stopped and its outcome is finalized. Terminal state.
	Completed
)

func (s State) Running() bool { return s == Running }

func (s State) CancelObserved() bool { return s == CancelObserved }

func (s State) Completed() bool { return s == Completed }

func (s State) ValidTransitions() (states States) {
	switch s {
	case Running:
		states = []State{CancelObserved, Completed}
	case CancelObserved:
		states = []State{Completed}
	case Completed:
	default:
		panic(fmt.Sprintf("Unknown State : %v", s))
	}
	return
}

func (s State) ValidTransition(to State) bool {
	for _, validState := range s.ValidTransitions() {
		if validState == to {
			return true
		}
	}
	return false
}

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case CancelObserved:
		return "CancelObserved"
	case Completed:
		return "Completed"
	default:
		panic(fmt.Sprintf("UNKNOWN STATE : %d", s))
	}
}

// States implements sort.Interface
type States []State

func (a States) Len() int           { return len(a) }
func (a States) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a States) Less(i, j int) bool { return a[i] < a[j] }

var AllStates States = []State{Running, CancelObserved, Completed}

func (a States) Equals(b States) bool {
	if a == nil && b == nil {
		return true
	}

	if len(a) != len(b) {
		return false
	}

	sort.Sort(a)
	sort.Sort(b)

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
