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

import "github.com/oysterpack/looper.go/pkg/logging"

// package log events
var (
	SPAWNED       = logging.Event{Id: 1, Name: "SPAWNED"}
	STATE_CHANGED = logging.Event{Id: 2, Name: "STATE_CHANGED"}
)
