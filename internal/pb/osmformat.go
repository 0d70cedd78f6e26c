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
	"strconv"

	"google.golang.org/protobuf/encoding/protowire"
)

// Default values declared by osmformat.proto.
const (
	Default_PrimitiveBlock_Granularity     = int32(100)
	Default_PrimitiveBlock_DateGranularity = int32(1000)
	Default_Info_Version                   = int32(-1)
)

// HeaderBlock is the contents of the OSMHeader blob.
type HeaderBlock struct {
	Bbox                             *HeaderBBox
	RequiredFeatures                 []string
	OptionalFeatures                 []string
	Writingprogram                   *string
	Source                           *string
	OsmosisReplicationTimestamp      *int64
	OsmosisReplicationSequenceNumber *int64
	OsmosisReplicationBaseUrl        *string
}

func (x *HeaderBlock) GetBbox() *HeaderBBox {
	if x != nil {
		return x.Bbox
	}

	return nil
}

func (x *HeaderBlock) GetRequiredFeatures() []string {
	if x != nil {
		return x.RequiredFeatures
	}

	return nil
}

func (x *HeaderBlock) GetOptionalFeatures() []string {
	if x != nil {
		return x.OptionalFeatures
	}

	return nil
}

func (x *HeaderBlock) GetWritingprogram() string {
	if x != nil && x.Writingprogram != nil {
		return *x.Writingprogram
	}

	return ""
}

func (x *HeaderBlock) GetSource() string {
	if x != nil && x.Source != nil {
		return *x.Source
	}

	return ""
}

func (x *HeaderBlock) GetOsmosisReplicationTimestamp() int64 {
	if x != nil && x.OsmosisReplicationTimestamp != nil {
		return *x.OsmosisReplicationTimestamp
	}

	return 0
}

func (x *HeaderBlock) GetOsmosisReplicationSequenceNumber() int64 {
	if x != nil && x.OsmosisReplicationSequenceNumber != nil {
		return *x.OsmosisReplicationSequenceNumber
	}

	return 0
}

func (x *HeaderBlock) GetOsmosisReplicationBaseUrl() string {
	if x != nil && x.OsmosisReplicationBaseUrl != nil {
		return *x.OsmosisReplicationBaseUrl
	}

	return ""
}

func (x *HeaderBlock) appendWire(b []byte) []byte {
	if x.Bbox != nil {
		b = appendMessage(b, 1, x.Bbox)
	}

	for _, f := range x.RequiredFeatures {
		b = appendString(b, 4, f)
	}

	for _, f := range x.OptionalFeatures {
		b = appendString(b, 5, f)
	}

	if x.Writingprogram != nil {
		b = appendString(b, 16, *x.Writingprogram)
	}

	if x.Source != nil {
		b = appendString(b, 17, *x.Source)
	}

	if x.OsmosisReplicationTimestamp != nil {
		b = appendVarint(b, 32, encInt64(*x.OsmosisReplicationTimestamp))
	}

	if x.OsmosisReplicationSequenceNumber != nil {
		b = appendVarint(b, 33, encInt64(*x.OsmosisReplicationSequenceNumber))
	}

	if x.OsmosisReplicationBaseUrl != nil {
		b = appendString(b, 34, *x.OsmosisReplicationBaseUrl)
	}

	return b
}

func (x *HeaderBlock) unmarshalWire(b []byte) error {
	*x = HeaderBlock{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			x.Bbox = &HeaderBBox{}

			return consumeMessage(typ, b, x.Bbox)
		case 4, 5:
			v, n, err := consumeString(typ, b)
			if num == 4 {
				x.RequiredFeatures = append(x.RequiredFeatures, v)
			} else {
				x.OptionalFeatures = append(x.OptionalFeatures, v)
			}

			return n, err
		case 16:
			v, n, err := consumeString(typ, b)
			x.Writingprogram = &v

			return n, err
		case 17:
			v, n, err := consumeString(typ, b)
			x.Source = &v

			return n, err
		case 32:
			v, n, err := consumeVarint(typ, b)
			x.OsmosisReplicationTimestamp = ptr(decInt64(v))

			return n, err
		case 33:
			v, n, err := consumeVarint(typ, b)
			x.OsmosisReplicationSequenceNumber = ptr(decInt64(v))

			return n, err
		case 34:
			v, n, err := consumeString(typ, b)
			x.OsmosisReplicationBaseUrl = &v

			return n, err
		}

		return 0, nil
	})
}

// HeaderBBox is a bounding box in nanodegrees.
type HeaderBBox struct {
	Left   *int64
	Right  *int64
	Top    *int64
	Bottom *int64
}

func (x *HeaderBBox) GetLeft() int64   { return deref(x, func(x *HeaderBBox) *int64 { return x.Left }) }
func (x *HeaderBBox) GetRight() int64  { return deref(x, func(x *HeaderBBox) *int64 { return x.Right }) }
func (x *HeaderBBox) GetTop() int64    { return deref(x, func(x *HeaderBBox) *int64 { return x.Top }) }
func (x *HeaderBBox) GetBottom() int64 { return deref(x, func(x *HeaderBBox) *int64 { return x.Bottom }) }

func (x *HeaderBBox) appendWire(b []byte) []byte {
	for i, v := range []*int64{x.Left, x.Right, x.Top, x.Bottom} {
		if v != nil {
			b = appendVarint(b, protowire.Number(i+1), encSint64(*v))
		}
	}

	return b
}

func (x *HeaderBBox) unmarshalWire(b []byte) error {
	*x = HeaderBBox{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		var dst **int64

		switch num {
		case 1:
			dst = &x.Left
		case 2:
			dst = &x.Right
		case 3:
			dst = &x.Top
		case 4:
			dst = &x.Bottom
		default:
			return 0, nil
		}

		v, n, err := consumeVarint(typ, b)
		*dst = ptr(decSint64(v))

		return n, err
	})
}

// PrimitiveBlock is the contents of an OSMData blob.
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     *int32
	LatOffset       *int64
	LonOffset       *int64
	DateGranularity *int32
}

func (x *PrimitiveBlock) GetStringtable() *StringTable {
	if x != nil {
		return x.Stringtable
	}

	return nil
}

func (x *PrimitiveBlock) GetPrimitivegroup() []*PrimitiveGroup {
	if x != nil {
		return x.Primitivegroup
	}

	return nil
}

func (x *PrimitiveBlock) GetGranularity() int32 {
	if x != nil && x.Granularity != nil {
		return *x.Granularity
	}

	return Default_PrimitiveBlock_Granularity
}

func (x *PrimitiveBlock) GetLatOffset() int64 {
	return deref(x, func(x *PrimitiveBlock) *int64 { return x.LatOffset })
}

func (x *PrimitiveBlock) GetLonOffset() int64 {
	return deref(x, func(x *PrimitiveBlock) *int64 { return x.LonOffset })
}

func (x *PrimitiveBlock) GetDateGranularity() int32 {
	if x != nil && x.DateGranularity != nil {
		return *x.DateGranularity
	}

	return Default_PrimitiveBlock_DateGranularity
}

func (x *PrimitiveBlock) appendWire(b []byte) []byte {
	if x.Stringtable != nil {
		b = appendMessage(b, 1, x.Stringtable)
	}

	for _, pg := range x.Primitivegroup {
		b = appendMessage(b, 2, pg)
	}

	if x.Granularity != nil {
		b = appendVarint(b, 17, encInt32(*x.Granularity))
	}

	if x.DateGranularity != nil {
		b = appendVarint(b, 18, encInt32(*x.DateGranularity))
	}

	if x.LatOffset != nil {
		b = appendVarint(b, 19, encInt64(*x.LatOffset))
	}

	if x.LonOffset != nil {
		b = appendVarint(b, 20, encInt64(*x.LonOffset))
	}

	return b
}

func (x *PrimitiveBlock) unmarshalWire(b []byte) error {
	*x = PrimitiveBlock{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			x.Stringtable = &StringTable{}

			return consumeMessage(typ, b, x.Stringtable)
		case 2:
			pg := &PrimitiveGroup{}
			x.Primitivegroup = append(x.Primitivegroup, pg)

			return consumeMessage(typ, b, pg)
		case 17, 18:
			v, n, err := consumeVarint(typ, b)
			if num == 17 {
				x.Granularity = ptr(decInt32(v))
			} else {
				x.DateGranularity = ptr(decInt32(v))
			}

			return n, err
		case 19, 20:
			v, n, err := consumeVarint(typ, b)
			if num == 19 {
				x.LatOffset = ptr(decInt64(v))
			} else {
				x.LonOffset = ptr(decInt64(v))
			}

			return n, err
		}

		return 0, nil
	})
}

// PrimitiveGroup holds objects of a single kind.
type PrimitiveGroup struct {
	Nodes     []*Node
	Dense     *DenseNodes
	Ways      []*Way
	Relations []*Relation
}

func (x *PrimitiveGroup) GetNodes() []*Node {
	if x != nil {
		return x.Nodes
	}

	return nil
}

func (x *PrimitiveGroup) GetDense() *DenseNodes {
	if x != nil {
		return x.Dense
	}

	return nil
}

func (x *PrimitiveGroup) GetWays() []*Way {
	if x != nil {
		return x.Ways
	}

	return nil
}

func (x *PrimitiveGroup) GetRelations() []*Relation {
	if x != nil {
		return x.Relations
	}

	return nil
}

func (x *PrimitiveGroup) appendWire(b []byte) []byte {
	for _, n := range x.Nodes {
		b = appendMessage(b, 1, n)
	}

	if x.Dense != nil {
		b = appendMessage(b, 2, x.Dense)
	}

	for _, w := range x.Ways {
		b = appendMessage(b, 3, w)
	}

	for _, r := range x.Relations {
		b = appendMessage(b, 4, r)
	}

	return b
}

func (x *PrimitiveGroup) unmarshalWire(b []byte) error {
	*x = PrimitiveGroup{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			n := &Node{}
			x.Nodes = append(x.Nodes, n)

			return consumeMessage(typ, b, n)
		case 2:
			x.Dense = &DenseNodes{}

			return consumeMessage(typ, b, x.Dense)
		case 3:
			w := &Way{}
			x.Ways = append(x.Ways, w)

			return consumeMessage(typ, b, w)
		case 4:
			r := &Relation{}
			x.Relations = append(x.Relations, r)

			return consumeMessage(typ, b, r)
		}

		return 0, nil
	})
}

// StringTable holds the strings referenced by index from a PrimitiveBlock.
// Index 0 is reserved as a delimiter.
type StringTable struct {
	S []string
}

func (x *StringTable) GetS() []string {
	if x != nil {
		return x.S
	}

	return nil
}

func (x *StringTable) appendWire(b []byte) []byte {
	for _, s := range x.S {
		b = appendString(b, 1, s)
	}

	return b
}

func (x *StringTable) unmarshalWire(b []byte) error {
	*x = StringTable{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}

		v, n, err := consumeString(typ, b)
		x.S = append(x.S, v)

		return n, err
	})
}

// Info is the optional metadata of a non dense object.
type Info struct {
	Version   *int32
	Timestamp *int64
	Changeset *int64
	Uid       *int32
	UserSid   *uint32
	Visible   *bool
}

func (x *Info) GetVersion() int32 {
	if x != nil && x.Version != nil {
		return *x.Version
	}

	return Default_Info_Version
}

func (x *Info) GetTimestamp() int64 {
	return deref(x, func(x *Info) *int64 { return x.Timestamp })
}

func (x *Info) GetChangeset() int64 {
	return deref(x, func(x *Info) *int64 { return x.Changeset })
}

func (x *Info) GetUid() int32 {
	return deref(x, func(x *Info) *int32 { return x.Uid })
}

func (x *Info) GetUserSid() uint32 {
	return deref(x, func(x *Info) *uint32 { return x.UserSid })
}

func (x *Info) GetVisible() bool {
	return deref(x, func(x *Info) *bool { return x.Visible })
}

func (x *Info) appendWire(b []byte) []byte {
	if x.Version != nil {
		b = appendVarint(b, 1, encInt32(*x.Version))
	}

	if x.Timestamp != nil {
		b = appendVarint(b, 2, encInt64(*x.Timestamp))
	}

	if x.Changeset != nil {
		b = appendVarint(b, 3, encInt64(*x.Changeset))
	}

	if x.Uid != nil {
		b = appendVarint(b, 4, encInt32(*x.Uid))
	}

	if x.UserSid != nil {
		b = appendVarint(b, 5, encUint32(*x.UserSid))
	}

	if x.Visible != nil {
		b = appendVarint(b, 6, encBool(*x.Visible))
	}

	return b
}

func (x *Info) unmarshalWire(b []byte) error {
	*x = Info{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num < 1 || num > 6 {
			return 0, nil
		}

		v, n, err := consumeVarint(typ, b)
		if err != nil {
			return 0, err
		}

		switch num {
		case 1:
			x.Version = ptr(decInt32(v))
		case 2:
			x.Timestamp = ptr(decInt64(v))
		case 3:
			x.Changeset = ptr(decInt64(v))
		case 4:
			x.Uid = ptr(decInt32(v))
		case 5:
			x.UserSid = ptr(decUint32(v))
		case 6:
			x.Visible = ptr(decBool(v))
		}

		return n, nil
	})
}

// DenseInfo is the column oriented, delta coded metadata of DenseNodes.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64
	Changeset []int64
	Uid       []int32
	UserSid   []int32
	Visible   []bool
}

func (x *DenseInfo) GetVersion() []int32 {
	if x != nil {
		return x.Version
	}

	return nil
}

func (x *DenseInfo) GetTimestamp() []int64 {
	if x != nil {
		return x.Timestamp
	}

	return nil
}

func (x *DenseInfo) GetChangeset() []int64 {
	if x != nil {
		return x.Changeset
	}

	return nil
}

func (x *DenseInfo) GetUid() []int32 {
	if x != nil {
		return x.Uid
	}

	return nil
}

func (x *DenseInfo) GetUserSid() []int32 {
	if x != nil {
		return x.UserSid
	}

	return nil
}

func (x *DenseInfo) GetVisible() []bool {
	if x != nil {
		return x.Visible
	}

	return nil
}

func (x *DenseInfo) appendWire(b []byte) []byte {
	b = appendPacked(b, 1, x.Version, encInt32)
	b = appendPacked(b, 2, x.Timestamp, encSint64)
	b = appendPacked(b, 3, x.Changeset, encSint64)
	b = appendPacked(b, 4, x.Uid, encSint32)
	b = appendPacked(b, 5, x.UserSid, encSint32)
	b = appendPacked(b, 6, x.Visible, encBool)

	return b
}

func (x *DenseInfo) unmarshalWire(b []byte) error {
	*x = DenseInfo{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeRepeated(typ, b, &x.Version, decInt32)
		case 2:
			return consumeRepeated(typ, b, &x.Timestamp, decSint64)
		case 3:
			return consumeRepeated(typ, b, &x.Changeset, decSint64)
		case 4:
			return consumeRepeated(typ, b, &x.Uid, decSint32)
		case 5:
			return consumeRepeated(typ, b, &x.UserSid, decSint32)
		case 6:
			return consumeRepeated(typ, b, &x.Visible, decBool)
		}

		return 0, nil
	})
}

// Node is a node stored on its own rather than in DenseNodes.
type Node struct {
	Id   *int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  *int64
	Lon  *int64
}

func (x *Node) GetId() int64 { return deref(x, func(x *Node) *int64 { return x.Id }) }

func (x *Node) GetKeys() []uint32 {
	if x != nil {
		return x.Keys
	}

	return nil
}

func (x *Node) GetVals() []uint32 {
	if x != nil {
		return x.Vals
	}

	return nil
}

func (x *Node) GetInfo() *Info {
	if x != nil {
		return x.Info
	}

	return nil
}

func (x *Node) GetLat() int64 { return deref(x, func(x *Node) *int64 { return x.Lat }) }
func (x *Node) GetLon() int64 { return deref(x, func(x *Node) *int64 { return x.Lon }) }

func (x *Node) appendWire(b []byte) []byte {
	if x.Id != nil {
		b = appendVarint(b, 1, encSint64(*x.Id))
	}

	b = appendPacked(b, 2, x.Keys, encUint32)
	b = appendPacked(b, 3, x.Vals, encUint32)

	if x.Info != nil {
		b = appendMessage(b, 4, x.Info)
	}

	if x.Lat != nil {
		b = appendVarint(b, 8, encSint64(*x.Lat))
	}

	if x.Lon != nil {
		b = appendVarint(b, 9, encSint64(*x.Lon))
	}

	return b
}

func (x *Node) unmarshalWire(b []byte) error {
	*x = Node{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1, 8, 9:
			v, n, err := consumeVarint(typ, b)
			switch num {
			case 1:
				x.Id = ptr(decSint64(v))
			case 8:
				x.Lat = ptr(decSint64(v))
			case 9:
				x.Lon = ptr(decSint64(v))
			}

			return n, err
		case 2:
			return consumeRepeated(typ, b, &x.Keys, decUint32)
		case 3:
			return consumeRepeated(typ, b, &x.Vals, decUint32)
		case 4:
			x.Info = &Info{}

			return consumeMessage(typ, b, x.Info)
		}

		return 0, nil
	})
}

// DenseNodes is the column oriented, delta coded form of a run of nodes.
type DenseNodes struct {
	Id        []int64
	Denseinfo *DenseInfo
	Lat       []int64
	Lon       []int64
	KeysVals  []int32
}

func (x *DenseNodes) GetId() []int64 {
	if x != nil {
		return x.Id
	}

	return nil
}

func (x *DenseNodes) GetDenseinfo() *DenseInfo {
	if x != nil {
		return x.Denseinfo
	}

	return nil
}

func (x *DenseNodes) GetLat() []int64 {
	if x != nil {
		return x.Lat
	}

	return nil
}

func (x *DenseNodes) GetLon() []int64 {
	if x != nil {
		return x.Lon
	}

	return nil
}

func (x *DenseNodes) GetKeysVals() []int32 {
	if x != nil {
		return x.KeysVals
	}

	return nil
}

func (x *DenseNodes) appendWire(b []byte) []byte {
	b = appendPacked(b, 1, x.Id, encSint64)

	if x.Denseinfo != nil {
		b = appendMessage(b, 5, x.Denseinfo)
	}

	b = appendPacked(b, 8, x.Lat, encSint64)
	b = appendPacked(b, 9, x.Lon, encSint64)
	b = appendPacked(b, 10, x.KeysVals, encInt32)

	return b
}

func (x *DenseNodes) unmarshalWire(b []byte) error {
	*x = DenseNodes{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeRepeated(typ, b, &x.Id, decSint64)
		case 5:
			x.Denseinfo = &DenseInfo{}

			return consumeMessage(typ, b, x.Denseinfo)
		case 8:
			return consumeRepeated(typ, b, &x.Lat, decSint64)
		case 9:
			return consumeRepeated(typ, b, &x.Lon, decSint64)
		case 10:
			return consumeRepeated(typ, b, &x.KeysVals, decInt32)
		}

		return 0, nil
	})
}

// Way holds its node references delta coded.
type Way struct {
	Id   *int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64
}

func (x *Way) GetId() int64 { return deref(x, func(x *Way) *int64 { return x.Id }) }

func (x *Way) GetKeys() []uint32 {
	if x != nil {
		return x.Keys
	}

	return nil
}

func (x *Way) GetVals() []uint32 {
	if x != nil {
		return x.Vals
	}

	return nil
}

func (x *Way) GetInfo() *Info {
	if x != nil {
		return x.Info
	}

	return nil
}

func (x *Way) GetRefs() []int64 {
	if x != nil {
		return x.Refs
	}

	return nil
}

func (x *Way) appendWire(b []byte) []byte {
	if x.Id != nil {
		b = appendVarint(b, 1, encInt64(*x.Id))
	}

	b = appendPacked(b, 2, x.Keys, encUint32)
	b = appendPacked(b, 3, x.Vals, encUint32)

	if x.Info != nil {
		b = appendMessage(b, 4, x.Info)
	}

	b = appendPacked(b, 8, x.Refs, encSint64)

	return b
}

func (x *Way) unmarshalWire(b []byte) error {
	*x = Way{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(typ, b)
			x.Id = ptr(decInt64(v))

			return n, err
		case 2:
			return consumeRepeated(typ, b, &x.Keys, decUint32)
		case 3:
			return consumeRepeated(typ, b, &x.Vals, decUint32)
		case 4:
			x.Info = &Info{}

			return consumeMessage(typ, b, x.Info)
		case 8:
			return consumeRepeated(typ, b, &x.Refs, decSint64)
		}

		return 0, nil
	})
}

// Relation_MemberType is the kind of a relation member.
type Relation_MemberType int32

const (
	Relation_NODE     Relation_MemberType = 0
	Relation_WAY      Relation_MemberType = 1
	Relation_RELATION Relation_MemberType = 2
)

var relationMemberTypeNames = map[Relation_MemberType]string{
	Relation_NODE:     "NODE",
	Relation_WAY:      "WAY",
	Relation_RELATION: "RELATION",
}

func (x Relation_MemberType) String() string {
	if s, ok := relationMemberTypeNames[x]; ok {
		return s
	}

	return strconv.Itoa(int(x))
}

// Relation holds its members as three parallel columns.
type Relation struct {
	Id       *int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSid []int32
	Memids   []int64
	Types    []Relation_MemberType
}

func (x *Relation) GetId() int64 { return deref(x, func(x *Relation) *int64 { return x.Id }) }

func (x *Relation) GetKeys() []uint32 {
	if x != nil {
		return x.Keys
	}

	return nil
}

func (x *Relation) GetVals() []uint32 {
	if x != nil {
		return x.Vals
	}

	return nil
}

func (x *Relation) GetInfo() *Info {
	if x != nil {
		return x.Info
	}

	return nil
}

func (x *Relation) GetRolesSid() []int32 {
	if x != nil {
		return x.RolesSid
	}

	return nil
}

func (x *Relation) GetMemids() []int64 {
	if x != nil {
		return x.Memids
	}

	return nil
}

func (x *Relation) GetTypes() []Relation_MemberType {
	if x != nil {
		return x.Types
	}

	return nil
}

func (x *Relation) appendWire(b []byte) []byte {
	if x.Id != nil {
		b = appendVarint(b, 1, encInt64(*x.Id))
	}

	b = appendPacked(b, 2, x.Keys, encUint32)
	b = appendPacked(b, 3, x.Vals, encUint32)

	if x.Info != nil {
		b = appendMessage(b, 4, x.Info)
	}

	b = appendPacked(b, 8, x.RolesSid, encInt32)
	b = appendPacked(b, 9, x.Memids, encSint64)
	b = appendPacked(b, 10, x.Types, func(t Relation_MemberType) uint64 { return encInt32(int32(t)) })

	return b
}

func (x *Relation) unmarshalWire(b []byte) error {
	*x = Relation{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(typ, b)
			x.Id = ptr(decInt64(v))

			return n, err
		case 2:
			return consumeRepeated(typ, b, &x.Keys, decUint32)
		case 3:
			return consumeRepeated(typ, b, &x.Vals, decUint32)
		case 4:
			x.Info = &Info{}

			return consumeMessage(typ, b, x.Info)
		case 8:
			return consumeRepeated(typ, b, &x.RolesSid, decInt32)
		case 9:
			return consumeRepeated(typ, b, &x.Memids, decSint64)
		case 10:
			return consumeRepeated(typ, b, &x.Types, func(v uint64) Relation_MemberType {
				return Relation_MemberType(decInt32(v))
			})
		}

		return 0, nil
	})
}

// deref returns the value of an optional field, or its zero value when the
// message or the field is unset.
func deref[M any, T any](x *M, field func(*M) *T) T {
	var zero T

	if x == nil {
		return zero
	}

	if p := field(x); p != nil {
		return *p
	}

	return zero
}
