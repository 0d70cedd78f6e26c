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
	"errors"

	"m4o.io/osmobj/internal/decoder"
	"m4o.io/osmobj/internal/encoder"
)

var (
	// ErrUnsupportedFeature is returned when a file requires a feature this
	// package cannot read.
	ErrUnsupportedFeature = decoder.ErrUnsupportedFeature

	// ErrUnknownCompressionType is returned for blobs packed in an unknown way.
	ErrUnknownCompressionType = decoder.ErrUnknownCompressionType

	// ErrUnexpectedBlobType is returned when a file does not start with an
	// OSMHeader blob.
	ErrUnexpectedBlobType = decoder.ErrUnexpectedBlobType

	// ErrInvalidBlock is returned for malformed primitive blocks.
	ErrInvalidBlock = decoder.ErrInvalidBlock

	// ErrUnknownCompression is returned by ParseBlobCompression.
	ErrUnknownCompression = encoder.ErrUnknownCompression

	// ErrInvalidObject is returned for the zero Object and for objects the
	// file format cannot hold as they are.
	ErrInvalidObject = encoder.ErrInvalidObject

	ErrCreateTempFile = errors.New("cannot create temporary file")
	ErrEncoderClosed  = errors.New("encoder is closed")
)
