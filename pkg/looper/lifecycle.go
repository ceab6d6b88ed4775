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
	"sync"
	"time"

	"github.com/oysterpack/looper.go/pkg/logging"
	"github.com/rs/zerolog"
)

// lifecycle manages the spawned loop's state in a concurrent safe manner.
// Each state transition is logged as a STATE_CHANGED event.
type lifecycle struct {
	lock      sync.RWMutex
	state     State
	timestamp time.Time

	logger zerolog.Logger
}

func newLifecycle(logger zerolog.Logger) *lifecycle {
	return &lifecycle{
		state:     Running,
		timestamp: time.Now(),
		logger:    logger,
	}
}

func (lc *lifecycle) String() string {
	state, timestamp := lc.State()
	return fmt.Sprintf("State:%v, Timestamp:%v", state, timestamp)
}

func (lc *lifecycle) State() (State, time.Time) {
	lc.lock.RLock()
	defer lc.lock.RUnlock()
	return lc.state, lc.timestamp
}

// setState transitions to the specified state.
// If the current state already matches, then false is returned.
// An invalid transition leaves the state untouched and returns false - the state machine only
// moves forward.
func (lc *lifecycle) setState(state State) bool {
	lc.lock.Lock()
	defer lc.lock.Unlock()
	if lc.state == state || !lc.state.ValidTransition(state) {
		return false
	}
	lc.state = state
	lc.timestamp = time.Now()
	lc.logger.Info().
		Dict(logging.EVENT, STATE_CHANGED.Dict()).
		Str(logging.STATE, state.String()).
		Msg("")
	return true
}

// cancelObserved records that the loop consulted its Checkpoint and saw the cancellation request.
func (lc *lifecycle) cancelObserved() bool {
	return lc.setState(CancelObserved)
}

// completed finalizes the lifecycle. Completed is terminal.
func (lc *lifecycle) completed() bool {
	return lc.setState(Completed)
}
