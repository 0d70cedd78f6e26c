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

import (
	"iter"
	"maps"

	"m4o.io/osmobj/intern"
)

// Tags is the unordered key=value description of an object.  Keys are
// unique.  The zero Tags is empty and ready to use.
type Tags struct {
	m map[string]string
}

// Len returns the number of tags.
func (t *Tags) Len() int {
	return len(t.m)
}

// Get returns the value of key and whether key is present.
func (t *Tags) Get(key string) (string, bool) {
	v, ok := t.m[key]

	return v, ok
}

// Set inserts or overwrites key with value, interning both.
func (t *Tags) Set(strs intern.Interner, key, value string) {
	if t.m == nil {
		t.m = make(map[string]string)
	}

	// assigning to an existing string key replaces the stored key as well,
	// so the key is interned even when it is already present
	t.m[strs.Intern(key)] = strs.Intern(value)
}

// Delete removes key.  Removing an absent key does nothing.
func (t *Tags) Delete(key string) {
	delete(t.m, key)
}

// All iterates over the tags in no particular order.
func (t *Tags) All() iter.Seq2[string, string] {
	return maps.All(t.m)
}

// Equal reports whether t and o hold the same set of tags.
func (t *Tags) Equal(o *Tags) bool {
	return maps.Equal(t.m, o.m)
}

// Map returns a copy of the tags as a plain map.
func (t *Tags) Map() map[string]string {
	m := make(map[string]string, len(t.m))
	maps.Copy(m, t.m)

	return m
}
