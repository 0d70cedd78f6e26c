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

package decoder

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"

	"m4o.io/osmobj/internal/core"
	"m4o.io/osmobj/internal/pb"
)

var ErrUnknownCompressionType = errors.New("unknown blob compression type")

// unpack uncompresses the blob.  The returned slice aliases buf for
// compressed blobs.
//
// This method is not "buried" within the readBlob function so that decompression
// of blobs can be performed concurrently.
func unpack(buf *core.PooledBuffer, blob *pb.Blob) ([]byte, error) {
	var factory func(blob *pb.Blob) (io.ReadCloser, error)

	switch blob.GetData().(type) {
	case *pb.Blob_Raw:
		return blob.GetRaw(), nil
	case *pb.Blob_ZlibData:
		factory = func(b *pb.Blob) (io.ReadCloser, error) {
			return zlib.NewReader(bytes.NewReader(b.GetZlibData()))
		}
	case *pb.Blob_LzmaData:
		factory = func(b *pb.Blob) (io.ReadCloser, error) {
			r, err := lzma.NewReader(bytes.NewReader(b.GetLzmaData()))

			return io.NopCloser(r), err
		}
	case *pb.Blob_Lz4Data:
		factory = func(b *pb.Blob) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(bytes.NewReader(b.GetLz4Data()))), nil
		}
	case *pb.Blob_ZstdData:
		factory = func(b *pb.Blob) (io.ReadCloser, error) {
			d, err := zstd.NewReader(bytes.NewReader(b.GetZstdData()), zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	default:
		return nil, ErrUnknownCompressionType
	}

	rawSize := blob.GetRawSize()
	if rawSize < 0 || rawSize > MaxBlobSize {
		return nil, fmt.Errorf("%w: raw size of %d bytes", ErrBlobTooLarge, rawSize)
	}

	rawBufferSize := int(rawSize) + bytes.MinRead
	if rawBufferSize > buf.Cap() {
		buf.Grow(rawBufferSize)
	}

	rdr, err := factory(blob)
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}
	defer rdr.Close()

	if n, err := buf.ReadFrom(io.LimitReader(rdr, MaxBlobSize+1)); err != nil {
		return nil, fmt.Errorf("unpacker read error: %w", err)
	} else if blob.RawSize != nil && n != int64(rawSize) {
		return nil, fmt.Errorf("raw blob data size %d but expected %d", n, rawSize)
	}

	return buf.Bytes(), nil
}
