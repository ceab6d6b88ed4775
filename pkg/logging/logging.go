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

package logging

import (
	"reflect"
	"time"

	"github.com/oysterpack/looper.go/pkg/commons"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger fields
const (
	PACKAGE = "pkg"
	TYPE    = "type"
	FUNC    = "func"
	NAME    = "name"
	EVENT   = "event"
	ID      = "id"
	STATE   = "state"
)

// Event refers to something interesting that happened in the application, e.g., a lifecycle state change.
// Events are assigned a unique id and logged with a human readable name.
type Event struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

// Dict returns the event as a zerolog sub-dictionary, logged under the EVENT field
func (e Event) Dict() *zerolog.Event {
	return zerolog.Dict().Int(ID, e.Id).Str(NAME, e.Name)
}

// Level is the parsed zerolog log level
type Level string

// log levels, as they appear in the log event JSON
const (
	DEBUG Level = "debug"
	INFO  Level = "info"
	WARN  Level = "warn"
	ERROR Level = "error"
)

// LogEvent is used to parse logged events back from their JSON form
type LogEvent struct {
	Time    time.Time           `json:"time"`
	Level   Level               `json:"level"`
	Package commons.PackagePath `json:"pkg"`
	Type    commons.TypeName    `json:"type"`
	Event   *Event              `json:"event"`
	Message string              `json:"message"`
}

// NewTypeLogger returns a new logger with pkg={pkg}, type={type}
// where {pkg} is o's package path and {type} is o's type name
// o must be a struct - the pattern is to use an empty struct
func NewTypeLogger(o interface{}) zerolog.Logger {
	t, err := commons.Struct(reflect.TypeOf(o))
	if err != nil {
		panic("NewTypeLogger can only be created for a struct")
	}
	return log.With().
		Str(PACKAGE, string(commons.TypePackage(t))).
		Str(TYPE, string(commons.ObjectTypeName(o))).
		Logger()
}

// NewPackageLogger returns a new logger with pkg={pkg}
// where {pkg} is o's package path
// o must be a struct - the pattern is to use an empty struct
func NewPackageLogger(o interface{}) zerolog.Logger {
	t, err := commons.Struct(reflect.TypeOf(o))
	if err != nil {
		panic("NewPackageLogger can only be created for a struct")
	}
	return log.With().Str(PACKAGE, string(commons.TypePackage(t))).Logger()
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
