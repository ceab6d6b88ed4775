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

import (
	"errors"
	"fmt"
)

// ErrorID is a unique error id, used for tracking and traceability purposes
type ErrorID uint64

// Err pairs an error with its unique id
type Err struct {
	ErrorID ErrorID
	Err     error
}

func (a *Err) Error() string {
	return fmt.Sprintf("%x : %v", uint64(a.ErrorID), a.Err)
}

func (a *Err) Unwrap() error {
	return a.Err
}

var (
	// ErrSupervisorNotAlive is returned when spawning is attempted on a supervisor that has been killed
	ErrSupervisorNotAlive = &Err{ErrorID: ErrorID(0xb2f4a19c6d88e310), Err: errors.New("Supervisor is not alive")}
	// ErrDescriptorNil is returned when a supervisor is created without a descriptor
	ErrDescriptorNil = &Err{ErrorID: ErrorID(0x8c1e54d9a07bf2c4), Err: errors.New("Descriptor is nil")}
)
