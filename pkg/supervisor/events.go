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

import "github.com/oysterpack/looper.go/pkg/logging"

// package log events
var (
	SUPERVISOR_STARTED = logging.Event{Id: 10, Name: "SUPERVISOR_STARTED"}
	SUPERVISOR_KILLED  = logging.Event{Id: 11, Name: "SUPERVISOR_KILLED"}
	LOOP_REGISTERED    = logging.Event{Id: 12, Name: "LOOP_REGISTERED"}
	LOOP_UNREGISTERED  = logging.Event{Id: 13, Name: "LOOP_UNREGISTERED"}
)
