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

package pb

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// BlobHeader precedes every Blob in a PBF file.
type BlobHeader struct {
	Type      *string
	Indexdata []byte
	Datasize  *int32
}

func (x *BlobHeader) GetType() string {
	if x != nil && x.Type != nil {
		return *x.Type
	}

	return ""
}

func (x *BlobHeader) GetIndexdata() []byte {
	if x != nil {
		return x.Indexdata
	}

	return nil
}

func (x *BlobHeader) GetDatasize() int32 {
	if x != nil && x.Datasize != nil {
		return *x.Datasize
	}

	return 0
}

func (x *BlobHeader) appendWire(b []byte) []byte {
	if x.Type != nil {
		b = appendString(b, 1, *x.Type)
	}

	if x.Indexdata != nil {
		b = appendBytes(b, 2, x.Indexdata)
	}

	if x.Datasize != nil {
		b = appendVarint(b, 3, encInt32(*x.Datasize))
	}

	return b
}

func (x *BlobHeader) unmarshalWire(b []byte) error {
	*x = BlobHeader{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(typ, b)
			x.Type = &v

			return n, err
		case 2:
			v, n, err := consumeBytes(typ, b)
			x.Indexdata = v

			return n, err
		case 3:
			v, n, err := consumeVarint(typ, b)
			x.Datasize = ptr(decInt32(v))

			return n, err
		}

		return 0, nil
	})
}

// Blob holds the possibly compressed contents of a HeaderBlock or a
// PrimitiveBlock.
type Blob struct {
	RawSize *int32

	// Types that are valid to be assigned to Data:
	//
	//	*Blob_Raw
	//	*Blob_ZlibData
	//	*Blob_LzmaData
	//	*Blob_Lz4Data
	//	*Blob_ZstdData
	Data isBlob_Data
}

type isBlob_Data interface {
	isBlob_Data()
}

type Blob_Raw struct {
	Raw []byte
}

type Blob_ZlibData struct {
	ZlibData []byte
}

type Blob_LzmaData struct {
	LzmaData []byte
}

type Blob_Lz4Data struct {
	Lz4Data []byte
}

type Blob_ZstdData struct {
	ZstdData []byte
}

func (*Blob_Raw) isBlob_Data()      {}
func (*Blob_ZlibData) isBlob_Data() {}
func (*Blob_LzmaData) isBlob_Data() {}
func (*Blob_Lz4Data) isBlob_Data()  {}
func (*Blob_ZstdData) isBlob_Data() {}

func (x *Blob) GetRawSize() int32 {
	if x != nil && x.RawSize != nil {
		return *x.RawSize
	}

	return 0
}

func (x *Blob) GetData() isBlob_Data {
	if x != nil {
		return x.Data
	}

	return nil
}

func (x *Blob) GetRaw() []byte {
	if d, ok := x.GetData().(*Blob_Raw); ok {
		return d.Raw
	}

	return nil
}

func (x *Blob) GetZlibData() []byte {
	if d, ok := x.GetData().(*Blob_ZlibData); ok {
		return d.ZlibData
	}

	return nil
}

func (x *Blob) GetLzmaData() []byte {
	if d, ok := x.GetData().(*Blob_LzmaData); ok {
		return d.LzmaData
	}

	return nil
}

func (x *Blob) GetLz4Data() []byte {
	if d, ok := x.GetData().(*Blob_Lz4Data); ok {
		return d.Lz4Data
	}

	return nil
}

func (x *Blob) GetZstdData() []byte {
	if d, ok := x.GetData().(*Blob_ZstdData); ok {
		return d.ZstdData
	}

	return nil
}

func (x *Blob) appendWire(b []byte) []byte {
	switch d := x.Data.(type) {
	case *Blob_Raw:
		b = appendBytes(b, 1, d.Raw)
	case *Blob_ZlibData:
		b = appendBytes(b, 3, d.ZlibData)
	case *Blob_LzmaData:
		b = appendBytes(b, 4, d.LzmaData)
	case *Blob_Lz4Data:
		b = appendBytes(b, 6, d.Lz4Data)
	case *Blob_ZstdData:
		b = appendBytes(b, 7, d.ZstdData)
	}

	if x.RawSize != nil {
		b = appendVarint(b, 2, encInt32(*x.RawSize))
	}

	return b
}

func (x *Blob) unmarshalWire(b []byte) error {
	*x = Blob{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 2 {
			v, n, err := consumeVarint(typ, b)
			x.RawSize = ptr(decInt32(v))

			return n, err
		}

		var wrap func([]byte) isBlob_Data

		switch num {
		case 1:
			wrap = func(v []byte) isBlob_Data { return &Blob_Raw{Raw: v} }
		case 3:
			wrap = func(v []byte) isBlob_Data { return &Blob_ZlibData{ZlibData: v} }
		case 4:
			wrap = func(v []byte) isBlob_Data { return &Blob_LzmaData{LzmaData: v} }
		case 6:
			wrap = func(v []byte) isBlob_Data { return &Blob_Lz4Data{Lz4Data: v} }
		case 7:
			wrap = func(v []byte) isBlob_Data { return &Blob_ZstdData{ZstdData: v} }
		default:
			return 0, nil
		}

		v, n, err := consumeBytes(typ, b)
		if err != nil {
			return 0, err
		}

		x.Data = wrap(v)

		return n, nil
	})
}
