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

package commons

import (
	"fmt"
	"reflect"
)

// PackagePath represents a go package path
type PackagePath string

// TypeName represents a go type name
type TypeName string

// StructType represents a struct type
type StructType reflect.Type

// ObjectPackage returns the package that the specified object belongs to
func ObjectPackage(o interface{}) PackagePath {
	return TypePackage(reflect.TypeOf(o))
}

// TypePackage returns the package path for the specified type.
// Pointer types are dereferenced.
func TypePackage(t reflect.Type) PackagePath {
	switch {
	case t.Kind() == reflect.Ptr:
		return TypePackage(t.Elem())
	default:
		return PackagePath(t.PkgPath())
	}
}

// ObjectTypeName returns the name of the object's type.
// Pointer types are dereferenced.
func ObjectTypeName(o interface{}) TypeName {
	return typeName(reflect.TypeOf(o))
}

func typeName(t reflect.Type) TypeName {
	switch {
	case t.Kind() == reflect.Ptr:
		return typeName(t.Elem())
	default:
		return TypeName(t.Name())
	}
}

// Struct will check that t is either a struct or a struct pointer.
// If it is a struct pointer, then the struct that is pointed to is returned.
// If it is not a struct, then an error is returned describing the actual type.
func Struct(t reflect.Type) (StructType, error) {
	switch t.Kind() {
	case reflect.Struct:
		return t, nil
	case reflect.Ptr:
		return Struct(t.Elem())
	default:
		return nil, fmt.Errorf("not a struct (package: %v, name: %v, kind: %v)", t.PkgPath(), t.Name(), t.Kind())
	}
}
