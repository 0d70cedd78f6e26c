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

package decoder

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/destel/rill"

	"m4o.io/osmobj/internal/core"
	"m4o.io/osmobj/internal/pb"
	"m4o.io/osmobj/model"
)

// Blob types of fileformat.proto.
const (
	OSMHeaderType = "OSMHeader"
	OSMDataType   = "OSMData"
)

// Size limits of fileformat.proto.
const (
	MaxBlobHeaderSize = 64 * 1024
	MaxBlobSize       = 32 * 1024 * 1024
)

var (
	ErrUnexpectedBlobType = errors.New("unexpected blob type")
	ErrBlobTooLarge       = errors.New("blob exceeds maximum size")
)

// GenerateBlobReader creates an iterator that returns primitive blobs read
// off of the reader.  Blobs of unknown type are skipped.
func GenerateBlobReader(ctx context.Context, reader io.Reader) iter.Seq2[*pb.Blob, error] {
	return func(yield func(enc *pb.Blob, err error) bool) {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			h, blob, err := readBlob(reader)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Error("unable to read blob", "error", err)
					yield(nil, err)
				}

				return
			}

			if h.GetType() != OSMDataType {
				slog.Warn("skipping blob", "type", h.GetType())

				continue
			}

			if !yield(blob, nil) {
				return
			}
		}
	}
}

// DecodeBatch returns a function that unpacks a batch of primitive blobs and
// parses them into objects built by f, which are subsequently sent down the
// out channel.  Batches are decoded concurrently, so f's Interner must be
// safe for concurrent use.  bufferSize is the initial capacity of the buffer
// blobs are uncompressed into.
func DecodeBatch(f *model.Factory, bufferSize int) func(array []*pb.Blob) <-chan rill.Try[[]model.Object] {
	return func(array []*pb.Blob) <-chan rill.Try[[]model.Object] {
		ch := make(chan rill.Try[[]model.Object])

		go func() {
			defer close(ch)

			buf := core.NewPooledBuffer()
			defer buf.Close()

			if bufferSize > buf.Cap() {
				buf.Grow(bufferSize)
			}

			for _, blob := range array {
				buf.Reset()

				unpacked, err := unpack(buf, blob)
				if err != nil {
					slog.Error("unable to unpack blob", "error", err)
					ch <- rill.Try[[]model.Object]{Error: err}

					return
				}

				objects, err := parsePrimitiveBlock(f, unpacked)
				if err != nil {
					slog.Error("unable to parse block", "error", err)
					ch <- rill.Try[[]model.Object]{Error: err}

					return
				}

				ch <- rill.Try[[]model.Object]{Value: objects}
			}
		}()

		return ch
	}
}

// readBlob reads a PBF blob, and the header describing it, from the rdr.
// A clean end of input is reported as io.EOF.
func readBlob(rdr io.Reader) (*pb.BlobHeader, *pb.Blob, error) {
	h, err := readBlobHeader(rdr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, io.EOF
		}

		return nil, nil, fmt.Errorf("error reading blob header: %w", err)
	}

	b, err := readBlobData(rdr, h.GetDatasize())
	if err != nil {
		return nil, nil, fmt.Errorf("error reading blob: %w", err)
	}

	return h, b, nil
}

// readBlobHeader unmarshals a header from an array of protobuf encoded bytes.
// The header is used when decoding blobs into OSM objects.
func readBlobHeader(rdr io.Reader) (*pb.BlobHeader, error) {
	var size uint32

	if err := binary.Read(rdr, binary.BigEndian, &size); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("error reading blob header size: %w", err)
	}

	if size > MaxBlobHeaderSize {
		return nil, fmt.Errorf("%w: header of %d bytes", ErrBlobTooLarge, size)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	if n, err := io.CopyN(buf, rdr, int64(size)); err != nil {
		return nil, fmt.Errorf("error reading blob header: expected %d bytes, got %d: %w", size, n, unexpected(err))
	}

	header := &pb.BlobHeader{}

	if err := pb.Unmarshal(buf.Bytes(), header); err != nil {
		return nil, fmt.Errorf("error unmarshalling blob header: %w", err)
	}

	return header, nil
}

// readBlobData unmarshals a blob from an array of protobuf encoded bytes.  The
// blob still needs to be decoded into OSM objects.
func readBlobData(rdr io.Reader, size int32) (*pb.Blob, error) {
	if size < 0 || size > MaxBlobSize {
		return nil, fmt.Errorf("%w: blob of %d bytes", ErrBlobTooLarge, size)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	if n, err := io.CopyN(buf, rdr, int64(size)); err != nil {
		return nil, fmt.Errorf("expected %d bytes, got %d: %w", size, n, unexpected(err))
	}

	blob := &pb.Blob{}

	if err := pb.Unmarshal(buf.Bytes(), blob); err != nil {
		return nil, fmt.Errorf("error unmarshalling blob: %w", err)
	}

	return blob, nil
}

// unexpected converts io.EOF into io.ErrUnexpectedEOF, as running out of
// input in the middle of a blob is not a clean end of file.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}

	return err
}
