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

// Package pb holds the OpenStreetMap PBF messages of fileformat.proto and
// osmformat.proto.  The accessors follow the shape of generated protobuf code
// so the codec reads like any other protobuf client.
package pb

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrWireType is returned when a known field is encoded with an unexpected
// wire type.
var ErrWireType = errors.New("unexpected wire type")

// Message is implemented by every message of this package.
type Message interface {
	appendWire(b []byte) []byte
	unmarshalWire(b []byte) error
}

// Marshal returns the wire encoding of m.
func Marshal(m Message) ([]byte, error) {
	return m.appendWire(nil), nil
}

// Unmarshal parses the wire encoding b into m, replacing its contents.
func Unmarshal(b []byte, m Message) error {
	return m.unmarshalWire(b)
}

// fieldFunc consumes the value of one field and reports the number of bytes
// it used.  Returning 0 marks the field as unknown so that it is skipped.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

// walk calls fn for every field of the message encoded in b.
func walk(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}

		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}

		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
		}

		b = b[n:]
	}

	return nil
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, ErrWireType
	}

	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}

	return v, n, nil
}

// consumeBytes returns a copy of a length delimited value.
func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	v, n, err := consumeView(typ, b)
	if err != nil {
		return nil, 0, err
	}

	return append([]byte{}, v...), n, nil
}

// consumeView returns a length delimited value without copying it.
func consumeView(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, ErrWireType
	}

	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}

	return v, n, nil
}

func consumeString(typ protowire.Type, b []byte) (string, int, error) {
	v, n, err := consumeView(typ, b)
	if err != nil {
		return "", 0, err
	}

	return string(v), n, nil
}

func consumeMessage(typ protowire.Type, b []byte, m Message) (int, error) {
	v, n, err := consumeView(typ, b)
	if err != nil {
		return 0, err
	}

	return n, m.unmarshalWire(v)
}

// consumeRepeated appends one element, or a packed run of elements, of a
// repeated varint field to dst.
func consumeRepeated[T any](typ protowire.Type, b []byte, dst *[]T, dec func(uint64) T) (int, error) {
	switch typ {
	case protowire.VarintType:
		v, n, err := consumeVarint(typ, b)
		if err != nil {
			return 0, err
		}

		*dst = append(*dst, dec(v))

		return n, nil
	case protowire.BytesType:
		packed, n, err := consumeView(typ, b)
		if err != nil {
			return 0, err
		}

		for len(packed) > 0 {
			v, m := protowire.ConsumeVarint(packed)
			if m < 0 {
				return 0, protowire.ParseError(m)
			}

			*dst = append(*dst, dec(v))
			packed = packed[m:]
		}

		return n, nil
	default:
		return 0, ErrWireType
	}
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)

	return protowire.AppendVarint(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendString(b, v)
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	return appendBytes(b, num, m.appendWire(nil))
}

// appendPacked writes vs as a packed repeated field.  Empty fields are
// omitted.
func appendPacked[T any](b []byte, num protowire.Number, vs []T, enc func(T) uint64) []byte {
	if len(vs) == 0 {
		return b
	}

	size := 0
	for _, v := range vs {
		size += protowire.SizeVarint(enc(v))
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(size))

	for _, v := range vs {
		b = protowire.AppendVarint(b, enc(v))
	}

	return b
}

// scalar codecs

func encInt32(v int32) uint64   { return uint64(int64(v)) }
func encInt64(v int64) uint64   { return uint64(v) }
func encUint32(v uint32) uint64 { return uint64(v) }
func encSint32(v int32) uint64  { return protowire.EncodeZigZag(int64(v)) }
func encSint64(v int64) uint64  { return protowire.EncodeZigZag(v) }
func encBool(v bool) uint64     { return protowire.EncodeBool(v) }

func decInt32(v uint64) int32   { return int32(v) }
func decInt64(v uint64) int64   { return int64(v) }
func decUint32(v uint64) uint32 { return uint32(v) }
func decSint32(v uint64) int32  { return int32(protowire.DecodeZigZag(v & 0xffffffff)) }
func decSint64(v uint64) int64  { return protowire.DecodeZigZag(v) }
func decBool(v uint64) bool     { return protowire.DecodeBool(v) }

func ptr[T any](v T) *T { return &v }
