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
	"io"

	"github.com/destel/rill"

	"m4o.io/osmobj/internal/pb"
	"m4o.io/osmobj/model"
)

// Extent summarises a batch for the file header.
type Extent struct {
	// BoundingBox covers every positioned node of the batch.
	BoundingBox *model.BoundingBox

	// Deleted is set when the batch holds at least one tombstone.
	Deleted bool
}

// Coalesce splits the incoming objects by kind and regroups them into
// batches of at most size objects of a single kind.
func Coalesce(in <-chan []model.Object, size int) <-chan rill.Try[[]model.Object] {
	nch := make(chan rill.Try[model.Object])
	wch := make(chan rill.Try[model.Object])
	rch := make(chan rill.Try[model.Object])

	go func() {
		defer close(nch)
		defer close(wch)
		defer close(rch)

		for objects := range in {
			for _, o := range objects {
				switch o.Type() {
				case model.NODE:
					nch <- rill.Wrap(o, nil)
				case model.WAY:
					wch <- rill.Wrap(o, nil)
				case model.RELATION:
					rch <- rill.Wrap(o, nil)
				}
			}
		}
	}()

	return rill.Merge(
		rill.Batch(nch, size, -1),
		rill.Batch(wch, size, -1),
		rill.Batch(rch, size, -1),
	)
}

// ExtractBoundingBoxes passes the batches through unchanged while sending
// the Extent of each batch down the second channel.
func ExtractBoundingBoxes(
	in <-chan rill.Try[[]model.Object],
) (
	<-chan rill.Try[[]model.Object],
	<-chan rill.Try[Extent],
) {
	och := make(chan rill.Try[[]model.Object])
	ech := make(chan rill.Try[Extent])

	go func() {
		defer close(och)
		defer close(ech)

		for objects := range in {
			och <- objects

			ext := Extent{BoundingBox: model.InitialBoundingBox()}

			for _, o := range objects.Value {
				ext.Deleted = ext.Deleted || o.Deleted()

				if n, ok := o.AsNode(); ok {
					if p, ok := n.LatLon().Get(); ok {
						ext.BoundingBox.ExpandWithLatLon(p)
					}
				}
			}

			ech <- rill.Wrap(ext, nil)
		}
	}()

	return och, ech
}

// EncodeBatch converts a batch of objects of a single kind into a primitive
// block.
func EncodeBatch(batch []model.Object) (*pb.PrimitiveBlock, error) {
	bc, err := newBlockContext(batch)
	if err != nil {
		return nil, err
	}

	return bc.extractPrimitiveBlock()
}

// SavePacked writes every packed blob to w, reporting the outcome of each.
// It keeps draining ch after a failure.
func SavePacked(w io.Writer, ch <-chan rill.Try[[]byte]) <-chan rill.Try[struct{}] {
	out := make(chan rill.Try[struct{}])

	go func() {
		defer close(out)

		for buf := range ch {
			out <- rill.Wrap(struct{}{}, SaveBlock(w, buf))
		}
	}()

	return out
}

func GenerateBatchPacker(c BlobCompression) func(block *pb.PrimitiveBlock) ([]byte, error) {
	return func(block *pb.PrimitiveBlock) ([]byte, error) {
		return Pack(block, c)
	}
}
