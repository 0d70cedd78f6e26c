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

package encoder

import (
	"cmp"
	"fmt"
	"slices"
)

// Strings collects the strings of a block, counting how often each is used.
type Strings struct {
	counts map[string]int
}

// Table maps the strings of a block to their index in the string table.
type Table struct {
	tbl     map[string]int32
	strings []string
}

func NewStrings() *Strings {
	return &Strings{counts: make(map[string]int)}
}

func (s *Strings) Add(value string) {
	s.counts[value]++
}

// CalcTable orders the strings by descending frequency, then alphabetically,
// so that the most used strings get the shortest varints.
func (s *Strings) CalcTable() *Table {
	// Index 0 is used by pb.DenseNodes to delimit tags and is never assigned,
	// not even to the empty string.
	strings := make([]string, 1, len(s.counts)+1)

	for k := range s.counts {
		strings = append(strings, k)
	}

	slices.SortFunc(strings[1:], func(a, b string) int {
		if c := cmp.Compare(s.counts[b], s.counts[a]); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	tbl := make(map[string]int32, len(strings))
	for i, k := range strings[1:] {
		tbl[k] = int32(i + 1)
	}

	return &Table{
		tbl:     tbl,
		strings: strings,
	}
}

// IndexOf returns the index of value.  value must have been added to the
// Strings the table was calculated from.
func (t *Table) IndexOf(value string) int32 {
	index, ok := t.tbl[value]
	if !ok {
		panic(fmt.Sprintf("string %q missing from table", value))
	}

	return index
}

func (t *Table) AsArray() []string {
	return t.strings
}
