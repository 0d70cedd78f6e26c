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

package osmobj

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/destel/rill"

	"m4o.io/osmobj/internal/encoder"
	"m4o.io/osmobj/model"
)

// number of goroutines draining the pipeline's outputs
const numConsumers = 2

// Encoder encodes objects as OpenStreetMap PBF data to an output stream.
//
// Blocks are written to a temporary file as they are encoded.  On Close the
// header, whose bounding box covers every node written, is written to the
// output followed by the content of the temporary file.
type Encoder struct {
	Header model.Header

	objects chan<- []model.Object

	cfg  *encoderOptions
	wrtr io.Writer

	mu     sync.RWMutex
	closed bool

	errMu   sync.Mutex
	err     error
	deleted bool

	completed sync.WaitGroup

	close    sync.Once
	closeErr error
}

// NewEncoder returns a new encoder, configured with options, that writes to
// wrtr.
func NewEncoder(wrtr io.Writer, opts ...EncoderOption) (*Encoder, error) {
	cfg := defaultEncoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := initializeTempStore(&cfg); err != nil {
		return nil, err
	}

	e := &Encoder{
		Header: model.Header{
			BoundingBox:                      model.InitialBoundingBox(),
			RequiredFeatures:                 cfg.requiredFeatures,
			OptionalFeatures:                 cfg.optionalFeatures,
			WritingProgram:                   cfg.writingProgram,
			Source:                           cfg.source,
			OsmosisReplicationTimestamp:      cfg.osmosisReplicationTimestamp,
			OsmosisReplicationSequenceNumber: cfg.osmosisReplicationSequenceNumber,
			OsmosisReplicationBaseURL:        cfg.osmosisReplicationBaseURL,
		},

		cfg:  &cfg,
		wrtr: wrtr,
	}

	objects := make(chan []model.Object)

	e.objects = objects

	n := int(cfg.nCPU)

	coalesced := encoder.Coalesce(objects, encoder.ObjectLimit)
	inspected, extents := encoder.ExtractBoundingBoxes(coalesced)
	encoded := rill.OrderedMap(inspected, n, encoder.EncodeBatch)
	packed := rill.OrderedMap(encoded, n, encoder.GenerateBatchPacker(cfg.compression))
	statuses := encoder.SavePacked(cfg.tmp, packed)

	// Close() waits for both consumers before writing the header
	e.completed.Add(numConsumers)

	go e.consumeExtents(extents)
	go e.consumeStatuses(statuses)

	return e, nil
}

// Encode queues an object for encoding.
func (e *Encoder) Encode(o model.Object) error {
	return e.EncodeBatch([]model.Object{o})
}

// EncodeBatch queues objects for encoding.  Objects of each kind are written
// in the order they are queued.  The objects must not be modified until
// Close returns.
func (e *Encoder) EncodeBatch(objects []model.Object) error {
	for i, o := range objects {
		if !o.Valid() {
			return fmt.Errorf("%w: zero object at %d", ErrInvalidObject, i)
		}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return ErrEncoderClosed
	}

	if err := e.failure(); err != nil {
		return err
	}

	if len(objects) > 0 {
		e.objects <- slices.Clone(objects)
	}

	return nil
}

// Close flushes the pipeline, writes the header and the encoded blocks to
// the output and removes the temporary store.  It returns the first error
// met while encoding.  Later calls return the same result.
func (e *Encoder) Close() error {
	e.close.Do(func() {
		e.mu.Lock()
		e.closed = true
		close(e.objects)
		e.mu.Unlock()

		e.completed.Wait()

		err := e.failure()
		if err == nil {
			err = e.writeHeaderAndBody()
		}

		if rerr := e.cfg.removeTempStore(); rerr != nil {
			slog.Error("error removing temp store", "error", rerr)
		}

		e.closeErr = err
	})

	return e.closeErr
}

func (e *Encoder) failure() error {
	e.errMu.Lock()
	defer e.errMu.Unlock()

	return e.err
}

func (e *Encoder) fail(err error) {
	e.errMu.Lock()
	defer e.errMu.Unlock()

	if e.err == nil {
		e.err = err
	}
}

func (e *Encoder) consumeExtents(extents <-chan rill.Try[encoder.Extent]) {
	defer e.completed.Done()

	for ext := range extents {
		if ext.Error != nil {
			continue
		}

		e.Header.BoundingBox.ExpandWithBoundingBox(ext.Value.BoundingBox)

		if ext.Value.Deleted {
			e.errMu.Lock()
			e.deleted = true
			e.errMu.Unlock()
		}
	}
}

func (e *Encoder) consumeStatuses(statuses <-chan rill.Try[struct{}]) {
	defer e.completed.Done()

	for status := range statuses {
		if status.Error != nil {
			slog.Error("unable to encode block", "error", status.Error)
			e.fail(status.Error)
		}
	}
}

// features returns the required features of the header: the schema and
// dense nodes always, history when a tombstone was written.
func (e *Encoder) features() []string {
	features := []string{FeatureOsmSchema, FeatureDenseNodes}

	if e.deleted {
		features = append(features, FeatureHistoricalInformation)
	}

	for _, f := range e.Header.RequiredFeatures {
		if !slices.Contains(features, f) {
			features = append(features, f)
		}
	}

	return features
}

func (e *Encoder) writeHeaderAndBody() error {
	tmp := e.cfg.tmp

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("cannot sync blocks: %w", err)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("cannot seek to beginning of temporary file: %w", err)
	}

	e.Header.RequiredFeatures = e.features()

	if err := encoder.SaveHeader(e.wrtr, e.Header, e.cfg.compression); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	if _, err := io.Copy(e.wrtr, tmp); err != nil {
		return fmt.Errorf("error copying blocks: %w", err)
	}

	return nil
}
