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
	"os"
	"path/filepath"
	"time"

	"m4o.io/osmobj/internal/decoder"
	"m4o.io/osmobj/internal/encoder"
)

// BlobCompression selects how blobs are packed.
type BlobCompression = encoder.BlobCompression

// Blob compressions understood by the encoder.
const (
	RAW  = encoder.RAW
	ZLIB = encoder.ZLIB
	LZMA = encoder.LZMA
	LZ4  = encoder.LZ4
	ZSTD = encoder.ZSTD
)

// Features a data file may require of its reader.
const (
	FeatureOsmSchema             = decoder.FeatureOsmSchema
	FeatureDenseNodes            = decoder.FeatureDenseNodes
	FeatureHistoricalInformation = decoder.FeatureHistoricalInformation
)

const (
	DefaultBlobCompression = encoder.ZLIB

	tempFileName = "objects.pbf"
)

// ParseBlobCompression converts a name such as "zstd", in any case, into a
// BlobCompression.
func ParseBlobCompression(s string) (BlobCompression, error) {
	return encoder.ParseBlobCompression(s)
}

// encoderOptions provides optional configuration parameters for Encoder construction.
type encoderOptions struct {
	compression encoder.BlobCompression
	nCPU        uint16 // the number of CPUs to use for background processing

	store     string
	ownsStore bool
	tmp       *os.File

	requiredFeatures                 []string
	optionalFeatures                 []string
	writingProgram                   string
	source                           string
	osmosisReplicationTimestamp      time.Time
	osmosisReplicationSequenceNumber int64
	osmosisReplicationBaseURL        string
}

// EncoderOption configures how we set up the encoder.
type EncoderOption func(*encoderOptions)

// WithCompression specifies the compression algorithm to use when encoding
// PBF blobs.  The default is ZLIB.
func WithCompression(compression BlobCompression) EncoderOption {
	return func(o *encoderOptions) {
		o.compression = compression
	}
}

// WithEncoderNCpus lets you set the number of CPUs used to encode and pack
// blocks.  0 keeps the default.
func WithEncoderNCpus(n uint16) EncoderOption {
	return func(o *encoderOptions) {
		if n > 0 {
			o.nCPU = n
		}
	}
}

// WithStorePath lets you specify the directory objects are temporarily stored
// in.  The directory must exist.
func WithStorePath(path string) EncoderOption {
	return func(o *encoderOptions) {
		o.store = path
	}
}

// WithRequiredFeatures sets the required features of the PBF header.
func WithRequiredFeatures(features ...string) EncoderOption {
	return func(o *encoderOptions) {
		o.requiredFeatures = append(o.requiredFeatures, features...)
	}
}

// WithOptionalFeatures sets the optional features of the PBF header.
func WithOptionalFeatures(features ...string) EncoderOption {
	return func(o *encoderOptions) {
		o.optionalFeatures = append(o.optionalFeatures, features...)
	}
}

// WithWritingProgram sets the writing program of the PBF header.
func WithWritingProgram(program string) EncoderOption {
	return func(o *encoderOptions) {
		o.writingProgram = program
	}
}

// WithSource sets the source of the PBF header.
func WithSource(source string) EncoderOption {
	return func(o *encoderOptions) {
		o.source = source
	}
}

// WithOsmosisReplicationTimestamp sets the Osmosis replication timestamp of
// the PBF header.
func WithOsmosisReplicationTimestamp(timestamp time.Time) EncoderOption {
	return func(o *encoderOptions) {
		o.osmosisReplicationTimestamp = timestamp
	}
}

// WithOsmosisReplicationSequenceNumber sets the Osmosis replication sequence
// number of the PBF header.
func WithOsmosisReplicationSequenceNumber(sequenceNumber int64) EncoderOption {
	return func(o *encoderOptions) {
		o.osmosisReplicationSequenceNumber = sequenceNumber
	}
}

// WithOsmosisReplicationBaseURL sets the Osmosis replication base URL of the
// PBF header.
func WithOsmosisReplicationBaseURL(url string) EncoderOption {
	return func(o *encoderOptions) {
		o.osmosisReplicationBaseURL = url
	}
}

// defaultEncoderConfig provides a default configuration for encoders.
var defaultEncoderConfig = encoderOptions{
	compression: DefaultBlobCompression,
	nCPU:        DefaultNCpu(),
}

// initializeTempStore creates the temporary file that objects are stored in
// before being copied, after the header, to the io.Writer passed to the encoder.
func initializeTempStore(o *encoderOptions) error {
	if o.store == "" {
		tmpdir, err := os.MkdirTemp("", "osmobj")
		if err != nil {
			return fmt.Errorf("%w: cannot create temporary directory: %w", ErrCreateTempFile, err)
		}

		o.store = tmpdir
		o.ownsStore = true
	}

	name := filepath.Join(o.store, tempFileName)

	tmp, err := os.Create(name)
	if err != nil {
		o.removeTempStore()

		return fmt.Errorf("%w: %s: %w", ErrCreateTempFile, name, err)
	}

	o.tmp = tmp

	return nil
}

// removeTempStore closes and removes whatever initializeTempStore created.
func (o *encoderOptions) removeTempStore() error {
	var err error

	if o.tmp != nil {
		_ = o.tmp.Close()
		err = os.Remove(o.tmp.Name())
		o.tmp = nil
	}

	if o.ownsStore {
		err = os.RemoveAll(o.store)
		o.ownsStore = false
	}

	return err
}
