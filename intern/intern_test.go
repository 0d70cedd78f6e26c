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

package intern_test

import (
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmobj/intern"
)

// sameBacking reports whether a and b share one backing array.
func sameBacking(a, b string) bool {
	return len(a) == len(b) && unsafe.StringData(a) == unsafe.StringData(b)
}

// fresh builds a copy of s that does not share memory with s.
func fresh(s string) string {
	return strings.Clone(s)
}

func TestInterners(t *testing.T) {
	lruInterner, err := intern.NewLRU(16)
	require.NoError(t, err)

	test_cases := []struct {
		name string
		in   intern.Interner
	}{
		{"pool", intern.NewPool()},
		{"shared", intern.NewShared()},
		{"default", intern.Default()},
		{"unique", intern.Unique{}},
		{"lru", lruInterner},
		{"locked", intern.Locked(intern.NewPool())},
	}

	// weak entries may be collected between two calls
	defer debug.SetGCPercent(debug.SetGCPercent(-1))

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.in.Intern(fresh("highway"))
			b := tc.in.Intern(fresh("highway"))
			c := tc.in.Intern(fresh("name"))

			assert.Equal(t, "highway", a)
			assert.True(t, sameBacking(a, b), "equal strings must share storage")
			assert.False(t, sameBacking(a, c))
			assert.Equal(t, "", tc.in.Intern(""))
		})
	}
}

func TestPoolStats(t *testing.T) {
	p := intern.NewPool()

	for _, s := range []string{"highway", "name", "highway", "highway", "name"} {
		p.Intern(fresh(s))
	}

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, intern.Stats{Distinct: 2, Lookups: 5, Hits: 3}, p.Stats())

	p.Reset()
	assert.Equal(t, intern.Stats{}, p.Stats())
}

func TestSharedStats(t *testing.T) {
	s := intern.NewShared()

	for _, v := range []string{"oneway", "yes", "oneway", "no", "yes"} {
		s.Intern(fresh(v))
	}

	assert.Equal(t, intern.Stats{Distinct: 3, Lookups: 5, Hits: 2}, s.Stats())

	s.Reset()
	assert.Equal(t, 0, s.Len())
}

func TestZeroPool(t *testing.T) {
	var p intern.Pool

	a := p.Intern(fresh("building"))
	b := p.Intern(fresh("building"))

	assert.True(t, sameBacking(a, b))
	assert.Equal(t, 1, p.Len())
}

func TestLRUEvicts(t *testing.T) {
	l, err := intern.NewLRU(2)
	require.NoError(t, err)

	first := l.Intern(fresh("a"))
	l.Intern(fresh("b"))
	l.Intern(fresh("c"))

	assert.Equal(t, 2, l.Len())

	// "a" was evicted, so a new copy becomes canonical
	again := l.Intern(fresh("a"))
	assert.Equal(t, "a", again)
	assert.False(t, sameBacking(first, again))
}

func TestLRUDefaultSize(t *testing.T) {
	l, err := intern.NewLRU(0)
	require.NoError(t, err)

	l.Intern("x")
	assert.Equal(t, intern.Stats{Distinct: 1, Lookups: 1}, l.Stats())
}

func TestLockedConcurrent(t *testing.T) {
	p := intern.NewPool()
	in := intern.Locked(p)

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 1000; j++ {
				in.Intern(fresh("surface"))
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, intern.Stats{Distinct: 1, Lookups: 8000, Hits: 7999}, p.Stats())
}

func TestLockedStats(t *testing.T) {
	in := intern.Locked(intern.NewPool())
	in.Intern("a")
	in.Intern(fresh("a"))

	c, ok := in.(intern.Counter)
	assert.True(t, ok)
	assert.Equal(t, intern.Stats{Distinct: 1, Lookups: 2, Hits: 1}, c.Stats())

	bare := intern.Locked(nopInterner{})
	assert.Equal(t, intern.Stats{}, bare.(intern.Counter).Stats())
}

type nopInterner struct{}

func (nopInterner) Intern(s string) string { return s }

func heapAlloc() uint64 {
	var ms runtime.MemStats

	runtime.ReadMemStats(&ms)

	return ms.HeapAlloc
}

func TestDefaultReleasesStrings(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates tens of megabytes")
	}

	const (
		count = 10_000
		size  = 4 << 10
	)

	runtime.GC()
	base := heapAlloc()

	held := make([]string, count)
	for i := range held {
		b := make([]byte, size)
		copy(b, strconv.Itoa(i))
		held[i] = intern.Default().Intern(string(b))
	}

	assert.Greater(t, heapAlloc(), base+count*size/2)

	held = nil

	assert.Eventually(t, func() bool {
		runtime.GC()

		return heapAlloc() < base+count*size/4
	}, 10*time.Second, 20*time.Millisecond)
}

func TestSharedKeepsStrings(t *testing.T) {
	s := intern.NewShared()

	for i := range 100 {
		s.Intern(strconv.Itoa(i))
	}

	runtime.GC()

	assert.Equal(t, 100, s.Len())
}
