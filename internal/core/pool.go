// Copyright 2017-25 the original author or authors.
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

// Package core holds small pieces shared by the decoder and the encoder.
package core

import (
	"bytes"
	"sync"
)

// largest buffer that is returned to the pool
const maxPooledCap = 64 << 20

var pool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// PooledBuffer is a bytes.Buffer borrowed from a pool.  Close returns it.
type PooledBuffer struct {
	*bytes.Buffer
}

// NewPooledBuffer borrows an empty buffer from the pool.
func NewPooledBuffer() *PooledBuffer {
	buf, _ := pool.Get().(*bytes.Buffer)
	buf.Reset()

	return &PooledBuffer{Buffer: buf}
}

// Close returns the buffer to the pool.  The buffer, and any slice obtained
// from Bytes, must not be used afterwards.
func (b *PooledBuffer) Close() {
	if b.Buffer == nil {
		return
	}

	if b.Cap() <= maxPooledCap {
		pool.Put(b.Buffer)
	}

	b.Buffer = nil
}
