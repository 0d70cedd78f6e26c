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

// Package packers compresses the contents of PBF blobs, one constructor per
// compression kind.
package packers

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"

	"m4o.io/osmobj/internal/pb"
)

// Packer compresses what is written to it.  The packed data is only
// complete after Close.
type Packer struct {
	io.WriteCloser

	buf  bytes.Buffer
	save func(blob *pb.Blob, data []byte)
}

func newPacker(
	wrap func(w io.Writer) (io.WriteCloser, error),
	save func(blob *pb.Blob, data []byte),
) (*Packer, error) {
	p := &Packer{save: save}

	w, err := wrap(&p.buf)
	if err != nil {
		return nil, err
	}

	p.WriteCloser = w

	return p, nil
}

// SaveTo stores the packed data in the matching data field of blob.
func (p *Packer) SaveTo(blob *pb.Blob) {
	p.save(blob, p.buf.Bytes())
}

type nopCloserWriter struct {
	io.Writer
}

func (nopCloserWriter) Close() error {
	return nil
}

// NewRaw creates a Packer that stores data uncompressed.
func NewRaw() *Packer {
	p, _ := newPacker(
		func(w io.Writer) (io.WriteCloser, error) { return nopCloserWriter{w}, nil },
		func(blob *pb.Blob, data []byte) { blob.Data = &pb.Blob_Raw{Raw: data} })

	return p
}

// NewZlib creates a zlib Packer.
func NewZlib() *Packer {
	p, _ := newPacker(
		func(w io.Writer) (io.WriteCloser, error) { return zlib.NewWriter(w), nil },
		func(blob *pb.Blob, data []byte) { blob.Data = &pb.Blob_ZlibData{ZlibData: data} })

	return p
}

// NewLzma creates an lzma Packer.
func NewLzma() (*Packer, error) {
	return newPacker(
		func(w io.Writer) (io.WriteCloser, error) {
			lw, err := lzma.NewWriter(w)
			if err != nil {
				return nil, fmt.Errorf("could not create lzma writer: %w", err)
			}

			return lw, nil
		},
		func(blob *pb.Blob, data []byte) { blob.Data = &pb.Blob_LzmaData{LzmaData: data} })
}

// NewLz4 creates an lz4 Packer.
func NewLz4() *Packer {
	p, _ := newPacker(
		func(w io.Writer) (io.WriteCloser, error) { return lz4.NewWriter(w), nil },
		func(blob *pb.Blob, data []byte) { blob.Data = &pb.Blob_Lz4Data{Lz4Data: data} })

	return p
}

// NewZstd creates a zstd Packer whose encoder runs on a single goroutine.
func NewZstd() (*Packer, error) {
	return newPacker(
		func(w io.Writer) (io.WriteCloser, error) {
			zw, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
			if err != nil {
				return nil, fmt.Errorf("could not create zstd writer: %w", err)
			}

			return zw, nil
		},
		func(blob *pb.Blob, data []byte) { blob.Data = &pb.Blob_ZstdData{ZstdData: data} })
}
