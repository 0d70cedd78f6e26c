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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownCompression = errors.New("unknown compression")

// BlobCompression is an enumeration of the ways a PBF blob can be packed.
type BlobCompression int

const (
	RAW BlobCompression = iota
	ZLIB
	LZMA
	LZ4
	ZSTD
)

var compressionNames = [...]string{RAW: "raw", ZLIB: "zlib", LZMA: "lzma", LZ4: "lz4", ZSTD: "zstd"}

func (c BlobCompression) String() string {
	if c < RAW || c > ZSTD {
		return "BlobCompression(" + strconv.Itoa(int(c)) + ")"
	}

	return compressionNames[c]
}

// ParseBlobCompression converts a name such as "zstd", in any case, into a
// BlobCompression.
func ParseBlobCompression(s string) (BlobCompression, error) {
	for c, name := range compressionNames {
		if strings.EqualFold(s, name) {
			return BlobCompression(c), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
}
