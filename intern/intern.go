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

// Package intern deduplicates the strings that OpenStreetMap data repeats
// across millions of objects: tag keys, tag values, user names and member
// roles.
//
// An Interner returns a canonical copy of its argument.  Every holder of the
// canonical copy shares one backing array, which the garbage collector frees
// once the last holder, the interning table included, is gone.
//
// The Default interner holds its strings weakly.  Shared, Pool and LRU hold
// them strongly, until Reset or eviction, and keep Stats.
package intern

import (
	"sync"
	"sync/atomic"
	"unique"
)

// Interner maps equal strings onto one shared copy.
type Interner interface {
	// Intern returns the canonical copy of s.
	Intern(s string) string
}

// Counter is implemented by Interners that keep Stats.
type Counter interface {
	Stats() Stats
}

// Stats reports how effective an interning table has been.
type Stats struct {
	Distinct int   // number of distinct strings held
	Lookups  int64 // number of calls to Intern
	Hits     int64 // calls that found an existing copy
}

// Unique is a goroutine-safe Interner backed by the runtime's unique
// package.  Its entries are weak: once nothing references an entry the
// garbage collector removes it, and a later Intern of the same string makes
// a new canonical copy.
type Unique struct{}

var _ Interner = Unique{}

// Intern returns the canonical copy of s.
func (Unique) Intern(s string) string {
	return unique.Make(s).Value()
}

// Shared is a goroutine-safe Interner.  Strings stay in the table until
// Reset is called.
type Shared struct {
	tbl      sync.Map
	distinct atomic.Int64
	lookups  atomic.Int64
	hits     atomic.Int64
}

var _ Interner = (*Shared)(nil)

// NewShared creates an empty Shared table.
func NewShared() *Shared {
	return &Shared{}
}

// Intern returns the canonical copy of s.
func (t *Shared) Intern(s string) string {
	t.lookups.Add(1)

	if c, ok := t.tbl.Load(s); ok {
		t.hits.Add(1)

		return c.(string)
	}

	c, loaded := t.tbl.LoadOrStore(s, s)
	if loaded {
		t.hits.Add(1)
	} else {
		t.distinct.Add(1)
	}

	return c.(string)
}

// Len returns the number of distinct strings in the table.
func (t *Shared) Len() int {
	return int(t.distinct.Load())
}

// Stats returns the table's counters.
func (t *Shared) Stats() Stats {
	return Stats{Distinct: t.Len(), Lookups: t.lookups.Load(), Hits: t.hits.Load()}
}

// Reset drops every string held by the table.  Must not race with Intern.
func (t *Shared) Reset() {
	t.tbl.Clear()
	t.distinct.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
}

// Default returns the process wide goroutine-safe Interner.  It never
// keeps a string alive that no record holds.
func Default() Interner {
	return Unique{}
}

// Pool is an interning table for a single object graph.  It must only be
// used from one goroutine at a time; wrap it with Locked to share it.
type Pool struct {
	tbl     map[string]string
	lookups int64
	hits    int64
}

var _ Interner = (*Pool)(nil)

// NewPool creates an empty Pool.
func NewPool() *Pool {
	return &Pool{tbl: make(map[string]string)}
}

// Intern returns the canonical copy of s, adding s to the pool if it has not
// been seen before.
func (p *Pool) Intern(s string) string {
	p.lookups++

	if c, ok := p.tbl[s]; ok {
		p.hits++

		return c
	}

	if p.tbl == nil {
		p.tbl = make(map[string]string)
	}

	p.tbl[s] = s

	return s
}

// Len returns the number of distinct strings in the pool.
func (p *Pool) Len() int {
	return len(p.tbl)
}

// Stats returns the pool's counters.
func (p *Pool) Stats() Stats {
	return Stats{Distinct: len(p.tbl), Lookups: p.lookups, Hits: p.hits}
}

// Reset drops every string held by the pool.  Records that already hold
// canonical copies keep them.
func (p *Pool) Reset() {
	clear(p.tbl)
	p.lookups = 0
	p.hits = 0
}

type locked struct {
	mu sync.Mutex
	in Interner
}

// Locked serializes access to in, making any Interner goroutine-safe.
func Locked(in Interner) Interner {
	return &locked{in: in}
}

func (l *locked) Intern(s string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.in.Intern(s)
}

// Stats returns the counters of the wrapped Interner, or zero Stats if it
// keeps none.
func (l *locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.in.(Counter); ok {
		return c.Stats()
	}

	return Stats{}
}
