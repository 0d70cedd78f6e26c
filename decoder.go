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

// Package osmobj reads and writes OpenStreetMap PBF files as model.Object
// values.
package osmobj

import (
	"context"
	"fmt"
	"io"
	"iter"
	"sync"

	"github.com/destel/rill"

	"m4o.io/osmobj/internal/decoder"
	"m4o.io/osmobj/model"
)

// Decoder reads and decodes OpenStreetMap PBF data from an input stream.
type Decoder struct {
	Header model.Header

	objects <-chan rill.Try[[]model.Object]
	cancel  context.CancelFunc
	close   sync.Once
}

// NewDecoder returns a new decoder, configured with options, that reads from
// reader.  The decoder is initialized with the OSM header; decoding of the
// remaining blobs starts in the background right away.
func NewDecoder(ctx context.Context, reader io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg := defaultDecoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	hdr, err := decoder.LoadHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("unable to load header: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	f := model.NewFactory(cfg.interner)

	blobs := rill.FromSeq2(decoder.GenerateBlobReader(ctx, reader))
	batches := rill.Batch(blobs, cfg.protoBatchSize, -1)
	objects := rill.OrderedFlatMap(batches, int(cfg.nCPU), decoder.DecodeBatch(f, cfg.protoBufferSize))

	return &Decoder{
		Header:  hdr,
		objects: objects,
		cancel:  cancel,
	}, nil
}

// Decode returns the next batch of objects, in file order.  The end of the
// input stream is reported by an io.EOF error.
func (d *Decoder) Decode() ([]model.Object, error) {
	t, ok := <-d.objects
	if !ok {
		return nil, io.EOF
	}

	return t.Value, t.Error
}

// Objects iterates over the remaining objects one at a time.  Iteration
// stops after the first error.
func (d *Decoder) Objects() iter.Seq2[model.Object, error] {
	return func(yield func(model.Object, error) bool) {
		for {
			objects, err := d.Decode()
			if err == io.EOF {
				return
			}

			if err != nil {
				yield(model.Object{}, err)

				return
			}

			for _, o := range objects {
				if !yield(o, nil) {
					return
				}
			}
		}
	}
}

// Close will cancel the background decoding pipeline.  It is safe to call
// Close more than once.
func (d *Decoder) Close() {
	d.close.Do(func() {
		d.cancel()
		rill.DrainNB(d.objects)
	})
}
