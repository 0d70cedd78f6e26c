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
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz/lzma"
	"google.golang.org/protobuf/proto"

	"m4o.io/osmobj/internal/pb"
)

func TestPack(t *testing.T) {
	msg := &pb.HeaderBlock{
		RequiredFeatures: []string{"OsmSchema-V0.6", "DenseNodes"},
		Writingprogram:   proto.String("osmobj"),
	}

	raw, err := pb.Marshal(msg)
	require.NoError(t, err)

	test_cases := []struct {
		compression BlobCompression
		unpack      func(blob *pb.Blob) (io.Reader, error)
	}{
		{RAW, func(blob *pb.Blob) (io.Reader, error) {
			return bytes.NewReader(blob.GetRaw()), nil
		}},
		{ZLIB, func(blob *pb.Blob) (io.Reader, error) {
			return zlib.NewReader(bytes.NewReader(blob.GetZlibData()))
		}},
		{LZMA, func(blob *pb.Blob) (io.Reader, error) {
			return lzma.NewReader(bytes.NewReader(blob.GetLzmaData()))
		}},
		{LZ4, func(blob *pb.Blob) (io.Reader, error) {
			return lz4.NewReader(bytes.NewReader(blob.GetLz4Data())), nil
		}},
		{ZSTD, func(blob *pb.Blob) (io.Reader, error) {
			return zstd.NewReader(bytes.NewReader(blob.GetZstdData()))
		}},
	}

	for _, tc := range test_cases {
		t.Run(tc.compression.String(), func(t *testing.T) {
			bb, err := Pack(msg, tc.compression)
			require.NoError(t, err)

			blob := &pb.Blob{}
			require.NoError(t, pb.Unmarshal(bb, blob))

			if tc.compression == RAW {
				assert.Nil(t, blob.RawSize)
			} else {
				assert.Equal(t, int32(len(raw)), blob.GetRawSize())
			}

			r, err := tc.unpack(blob)
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)

			assert.Equal(t, raw, got)
		})
	}
}

func TestPack_UnknownCompression(t *testing.T) {
	_, err := Pack(&pb.HeaderBlock{}, BlobCompression(42))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestParseBlobCompression(t *testing.T) {
	test_cases := []struct {
		in   string
		want BlobCompression
	}{
		{"raw", RAW},
		{"Zlib", ZLIB},
		{"LZMA", LZMA},
		{"lz4", LZ4},
		{"zstd", ZSTD},
	}

	for _, tc := range test_cases {
		t.Run(tc.in, func(t *testing.T) {
			c, err := ParseBlobCompression(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c)
		})
	}

	_, err := ParseBlobCompression("snappy")
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.Equal(t, "BlobCompression(9)", BlobCompression(9).String())
}
