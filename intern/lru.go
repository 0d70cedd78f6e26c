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

package intern

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultLRUSize is the number of strings an LRU holds when no size is given.
const DefaultLRUSize = 1 << 16

// LRU is a bounded, goroutine-safe Interner.  Only the most recently used
// strings are kept in the table; an evicted string is still valid wherever it
// is held, it is simply no longer shared with later occurrences.
type LRU struct {
	cache   *lru.Cache[string, string]
	lookups atomic.Int64
	hits    atomic.Int64
}

var _ Interner = (*LRU)(nil)

// NewLRU creates an LRU holding at most size strings.
func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		size = DefaultLRUSize
	}

	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("unable to create intern cache: %w", err)
	}

	return &LRU{cache: cache}, nil
}

// Intern returns the canonical copy of s.
func (l *LRU) Intern(s string) string {
	l.lookups.Add(1)

	if c, ok := l.cache.Get(s); ok {
		l.hits.Add(1)

		return c
	}

	// another goroutine may have added s since the Get above
	if prev, ok, _ := l.cache.PeekOrAdd(s, s); ok {
		l.hits.Add(1)

		return prev
	}

	return s
}

// Len returns the number of strings currently held.
func (l *LRU) Len() int {
	return l.cache.Len()
}

// Stats returns the cache's counters.
func (l *LRU) Stats() Stats {
	return Stats{Distinct: l.cache.Len(), Lookups: l.lookups.Load(), Hits: l.hits.Load()}
}
