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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
)

func TestPrimitiveBlockRoundTrip(t *testing.T) {
	in := &PrimitiveBlock{
		Stringtable: &StringTable{S: []string{"", "highway", "outer", "residential"}},
		Primitivegroup: []*PrimitiveGroup{
			{
				Dense: &DenseNodes{
					Id:  []int64{10, 1, -3},
					Lat: []int64{515073219, -12, 7},
					Lon: []int64{-1276474, 3, 0},
					Denseinfo: &DenseInfo{
						Version:   []int32{1, 0, -1},
						Timestamp: []int64{1644784822, 5, -2},
						Changeset: []int64{100, 0, 0},
						Uid:       []int32{-1, 5, 0},
						UserSid:   []int32{0, 2, -1},
						Visible:   []bool{true, false, true},
					},
					KeysVals: []int32{1, 3, 0, 0, 0},
				},
			},
			{
				Ways: []*Way{{
					Id:   proto.Int64(7),
					Keys: []uint32{1},
					Vals: []uint32{3},
					Refs: []int64{1, 1, 0, 1},
					Info: &Info{Version: proto.Int32(2), Visible: proto.Bool(false)},
				}},
			},
			{
				Relations: []*Relation{{
					Id:       proto.Int64(9),
					RolesSid: []int32{2, 0},
					Memids:   []int64{10, -3},
					Types:    []Relation_MemberType{Relation_WAY, Relation_RELATION},
				}},
			},
		},
		Granularity:     proto.Int32(100),
		DateGranularity: proto.Int32(1000),
		LatOffset:       proto.Int64(-5),
	}

	b, err := Marshal(in)
	require.NoError(t, err)

	out := &PrimitiveBlock{}
	require.NoError(t, Unmarshal(b, out))

	assert.Equal(t, in, out)
	assert.Equal(t, int64(0), out.GetLonOffset())
	assert.Equal(t, "RELATION", out.GetPrimitivegroup()[2].GetRelations()[0].GetTypes()[1].String())
}

func TestDefaults(t *testing.T) {
	var blk *PrimitiveBlock

	assert.Equal(t, int32(100), blk.GetGranularity())
	assert.Equal(t, int32(1000), (&PrimitiveBlock{}).GetDateGranularity())
	assert.Equal(t, int32(-1), (&Info{}).GetVersion())
	assert.Nil(t, blk.GetStringtable().GetS())
	assert.False(t, (*Info)(nil).GetVisible())
}

func TestUnpackedRepeated(t *testing.T) {
	var b []byte
	for _, ref := range []int64{3, -1, 2} {
		b = protowire.AppendTag(b, 8, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(ref))
	}

	w := &Way{}
	require.NoError(t, Unmarshal(b, w))

	assert.Equal(t, []int64{3, -1, 2}, w.GetRefs())
}

func TestUnknownFieldsSkipped(t *testing.T) {
	b := protowire.AppendTag(nil, 99, protowire.BytesType)
	b = protowire.AppendString(b, "ignored")
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "OSMData")
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)

	h := &BlobHeader{}
	require.NoError(t, Unmarshal(b, h))

	assert.Equal(t, "OSMData", h.GetType())
	assert.Equal(t, int32(42), h.GetDatasize())
}

func TestWrongWireType(t *testing.T) {
	b := protowire.AppendTag(nil, 3, protowire.BytesType)
	b = protowire.AppendString(b, "42")

	err := Unmarshal(b, &BlobHeader{})
	assert.ErrorIs(t, err, ErrWireType)
}

func TestTruncated(t *testing.T) {
	b, err := Marshal(&BlobHeader{Type: proto.String("OSMHeader"), Datasize: proto.Int32(300)})
	require.NoError(t, err)

	assert.Error(t, Unmarshal(b[:len(b)-1], &BlobHeader{}))
}

func TestBlobData(t *testing.T) {
	in := &Blob{RawSize: proto.Int32(3), Data: &Blob_ZstdData{ZstdData: []byte{1, 2, 3}}}

	b, err := Marshal(in)
	require.NoError(t, err)

	out := &Blob{}
	require.NoError(t, Unmarshal(b, out))

	assert.Equal(t, []byte{1, 2, 3}, out.GetZstdData())
	assert.Nil(t, out.GetRaw())
	assert.Equal(t, int32(3), out.GetRawSize())

	b[len(b)-3] = 9
	assert.Equal(t, []byte{1, 2, 3}, out.GetZstdData())
}
