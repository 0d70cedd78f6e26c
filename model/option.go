// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import "fmt"

// Option holds a value that may be absent.  OpenStreetMap metadata is
// frequently missing, and a zero version or user id is not the same thing as
// an unknown one.
//
// The zero Option is absent.
type Option[T any] struct {
	val T
	ok  bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{val: v, ok: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.val, o.ok
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// OrElse returns the value if present, d otherwise.
func (o Option[T]) OrElse(d T) T {
	if o.ok {
		return o.val
	}

	return d
}

func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}

	return fmt.Sprintf("Some(%v)", o.val)
}
