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
	"encoding/binary"
	"fmt"
	"io"

	"github.com/destel/rill"
	"google.golang.org/protobuf/proto"

	"m4o.io/osmobj/internal/pb"
)

// Blob types of fileformat.proto.
const (
	OSMHeaderType = "OSMHeader"
	OSMDataType   = "OSMData"
)

// SaveBlock writes a packed OSMData blob, preceded by its blob header.
func SaveBlock(w io.Writer, bb rill.Try[[]byte]) error {
	if bb.Error != nil {
		return bb.Error
	}

	return writeBlob(w, OSMDataType, bb.Value)
}

// writeBlob writes the blob header describing the packed blob bb, and then
// bb itself, to the wrtr.
func writeBlob(wrtr io.Writer, blobType string, bb []byte) error {
	hdr := &pb.BlobHeader{
		Type:     proto.String(blobType),
		Datasize: proto.Int32(int32(len(bb))),
	}

	hb, err := pb.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("could not marshal blob header: %w", err)
	}

	if err = binary.Write(wrtr, binary.BigEndian, uint32(len(hb))); err != nil {
		return fmt.Errorf("could not write header size: %w", err)
	}

	if _, err = wrtr.Write(hb); err != nil {
		return fmt.Errorf("could not write blob header: %w", err)
	}

	if _, err = wrtr.Write(bb); err != nil {
		return fmt.Errorf("could not write blob data: %w", err)
	}

	return nil
}
