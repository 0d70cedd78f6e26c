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
	"math"
	"slices"
	"time"

	"golang.org/x/exp/constraints"
	"google.golang.org/protobuf/proto"

	"m4o.io/osmobj/internal/pb"
	"m4o.io/osmobj/model"
)

const (
	DateGranularityMs = 1000
	Granularity       = 100
	LatOffset         = 0
	LonOffset         = 0

	// ObjectLimit is the max number of objects in a pb.PrimitiveBlock.
	// Certain programs (e.g. osmosis 0.38) limit the number of objects in
	// each block to 8000 when writing PBF format.
	ObjectLimit = 8000
)

var (
	ErrMixedBatch    = errors.New("batch holds more than one kind of object")
	ErrInvalidObject = errors.New("invalid object")
)

type blockContext struct {
	table   *Table
	objects []model.Object
}

func newBlockContext(objects []model.Object) (*blockContext, error) {
	strings := NewStrings()

	for _, o := range objects {
		if err := checkEncodable(o); err != nil {
			return nil, err
		}

		extractTagsAndUser(strings, o)

		if r, ok := o.AsRelation(); ok {
			if err := extractMemberRoles(strings, r); err != nil {
				return nil, err
			}
		}
	}

	return &blockContext{
		table:   strings.CalcTable(),
		objects: objects,
	}, nil
}

func (bc *blockContext) extractPrimitiveBlock() (*pb.PrimitiveBlock, error) {
	pg := &pb.PrimitiveGroup{}

	if len(bc.objects) > 0 {
		typ := bc.objects[0].Type()
		for _, o := range bc.objects {
			if o.Type() != typ {
				return nil, fmt.Errorf("%w: %v and %v", ErrMixedBatch, typ, o.Type())
			}
		}

		var err error

		switch typ {
		case model.NODE:
			pg.Dense = bc.extractDenseNodes()
		case model.WAY:
			pg.Ways = bc.extractWays()
		case model.RELATION:
			pg.Relations, err = bc.extractRelations()
		}

		if err != nil {
			return nil, err
		}
	}

	b := &pb.PrimitiveBlock{
		Stringtable: &pb.StringTable{
			S: bc.table.AsArray(),
		},
		Primitivegroup:  []*pb.PrimitiveGroup{pg},
		Granularity:     proto.Int32(Granularity),
		LatOffset:       proto.Int64(LatOffset),
		LonOffset:       proto.Int64(LonOffset),
		DateGranularity: proto.Int32(DateGranularityMs),
	}

	return b, nil
}

// extractDenseNodes encodes the nodes.  Absent metadata is written with the
// values the decoder reads as absent: version and uid -1, timestamp,
// changeset and user 0.  A node without a position is written at 0, 0.
func (bc *blockContext) extractDenseNodes() *pb.DenseNodes {
	n := len(bc.objects)

	ids := make([]int64, 0, n)

	lats := make([]int64, 0, n)
	lons := make([]int64, 0, n)

	versions := make([]int32, 0, n)
	uids := make([]int32, 0, n)
	ts := make([]int64, 0, n)
	cs := make([]int64, 0, n)
	usids := make([]int32, 0, n)
	visible := make([]bool, 0, n)
	deleted := false

	keyValIDs := make([]int32, 0)

	for _, o := range bc.objects {
		node, ok := o.AsNode()
		if !ok {
			continue
		}

		ids = append(ids, int64(node.ID()))

		p, _ := node.LatLon().Get()
		lats = append(lats, model.ToCoordinate(LatOffset, Granularity, p.Lat.Degrees()))
		lons = append(lons, model.ToCoordinate(LonOffset, Granularity, p.Lon.Degrees()))

		versions = append(versions, optionalInt32(node.Version(), -1))
		uids = append(uids, optionalInt32(node.UID(), -1))
		cs = append(cs, int64(node.Changeset().OrElse(0)))

		if t, ok := node.Timestamp().Get(); ok {
			ts = append(ts, fromTimestamp(DateGranularityMs, t))
		} else {
			ts = append(ts, 0)
		}

		if u, ok := node.User().Get(); ok {
			usids = append(usids, bc.table.IndexOf(u))
		} else {
			usids = append(usids, 0)
		}

		visible = append(visible, !node.Deleted())
		deleted = deleted || node.Deleted()

		kIDs, vIDs := calcTagIDs(node, bc.table)
		for i, k := range kIDs {
			keyValIDs = append(keyValIDs, int32(k), int32(vIDs[i]))
		}

		keyValIDs = append(keyValIDs, 0)
	}

	dn := &pb.DenseNodes{
		Id: calcDeltas(ids),
		Denseinfo: &pb.DenseInfo{
			Version:   versions,
			Timestamp: calcDeltas(ts),
			Changeset: calcDeltas(cs),
			Uid:       calcDeltas(uids),
			UserSid:   calcDeltas(usids),
		},
		Lat:      calcDeltas(lats),
		Lon:      calcDeltas(lons),
		KeysVals: keyValIDs,
	}

	if deleted {
		dn.Denseinfo.Visible = visible
	}

	return dn
}

func (bc *blockContext) extractWays() []*pb.Way {
	var ways []*pb.Way

	for _, o := range bc.objects {
		w, ok := o.AsWay()
		if !ok {
			continue
		}

		refs := make([]int64, w.NumNodes())
		for i, r := range w.Nodes() {
			refs[i] = int64(r)
		}

		keyIDs, valIDs := calcTagIDs(w, bc.table)

		ways = append(ways, &pb.Way{
			Id:   proto.Int64(int64(w.ID())),
			Keys: keyIDs,
			Vals: valIDs,
			Info: toInfoPb(w, bc.table),
			Refs: calcDeltas(refs),
		})
	}

	return ways
}

func (bc *blockContext) extractRelations() ([]*pb.Relation, error) {
	var relations []*pb.Relation

	for _, o := range bc.objects {
		r, ok := o.AsRelation()
		if !ok {
			continue
		}

		keyIDs, valIDs := calcTagIDs(r, bc.table)
		memids := make([]int64, 0, r.NumMembers())
		roleids := make([]int32, 0, r.NumMembers())
		types := make([]pb.Relation_MemberType, 0, r.NumMembers())

		for m, err := range r.Members() {
			if err != nil {
				return nil, fmt.Errorf("relation %d: %w", r.ID(), err)
			}

			memids = append(memids, int64(m.ID))
			roleids = append(roleids, bc.table.IndexOf(m.Role))
			types = append(types, pb.Relation_MemberType(m.Type))
		}

		relations = append(relations, &pb.Relation{
			Id:       proto.Int64(int64(r.ID())),
			Keys:     keyIDs,
			Vals:     valIDs,
			Info:     toInfoPb(r, bc.table),
			RolesSid: roleids,
			Memids:   calcDeltas(memids),
			Types:    types,
		})
	}

	return relations, nil
}

// checkEncodable rejects objects whose data the wire format would silently
// change: a live node without a position, which would read back at 0, 0,
// and a version or uid beyond the signed 32 bit range of the wire.
func checkEncodable(o model.Object) error {
	if n, ok := o.AsNode(); ok && !n.Deleted() && !n.LatLon().IsSome() {
		return fmt.Errorf("%w: %v has no position", ErrInvalidObject, o)
	}

	if v, ok := o.Version().Get(); ok && v > math.MaxInt32 {
		return fmt.Errorf("%w: %v has version %d", ErrInvalidObject, o, v)
	}

	if uid, ok := o.UID().Get(); ok && uid > math.MaxInt32 {
		return fmt.Errorf("%w: %v has uid %d", ErrInvalidObject, o, uid)
	}

	return nil
}

func extractMemberRoles(strings *Strings, r *model.Relation) error {
	for m, err := range r.Members() {
		if err != nil {
			return fmt.Errorf("relation %d: %w", r.ID(), err)
		}

		strings.Add(m.Role)
	}

	return nil
}

func extractTagsAndUser(strings *Strings, b model.Base) {
	for k, v := range b.Tags() {
		strings.Add(k)
		strings.Add(v)
	}

	if u, ok := b.User().Get(); ok {
		strings.Add(u)
	}
}

// calcDeltas calculates the delta-encoding of the values.
func calcDeltas[T interface {
	constraints.Integer | constraints.Float
}](values []T) []T {
	prev := T(0)
	deltas := make([]T, len(values))

	for i, id := range values {
		deltas[i] = id - prev
		prev = id
	}

	return deltas
}

// calcTagIDs returns the string indexes of the tags of b, ordered by key.
func calcTagIDs(b model.Base, table *Table) (keyIDs []uint32, valIDs []uint32) {
	keys := make([]string, 0, b.NumTags())

	for k := range b.Tags() {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		v, _ := b.Tag(k)
		keyIDs = append(keyIDs, uint32(table.IndexOf(k)))
		valIDs = append(valIDs, uint32(table.IndexOf(v)))
	}

	return keyIDs, valIDs
}

// toInfoPb encodes the metadata of b, leaving absent fields unset.  Visible
// is only written for tombstones.
func toInfoPb(b model.Base, table *Table) *pb.Info {
	info := &pb.Info{}
	empty := true

	if v, ok := b.Version().Get(); ok {
		info.Version = proto.Int32(int32(v))
		empty = false
	}

	if t, ok := b.Timestamp().Get(); ok {
		info.Timestamp = proto.Int64(fromTimestamp(DateGranularityMs, t))
		empty = false
	}

	if c, ok := b.Changeset().Get(); ok {
		info.Changeset = proto.Int64(int64(c))
		empty = false
	}

	if uid, ok := b.UID().Get(); ok {
		info.Uid = proto.Int32(int32(uid))
		empty = false
	}

	if u, ok := b.User().Get(); ok {
		info.UserSid = proto.Uint32(uint32(table.IndexOf(u)))
		empty = false
	}

	if b.Deleted() {
		info.Visible = proto.Bool(false)
		empty = false
	}

	if empty {
		return nil
	}

	return info
}

func optionalInt32(o model.Option[uint32], absent int32) int32 {
	if v, ok := o.Get(); ok {
		return int32(v)
	}

	return absent
}

// fromTimestamp converts a UTC timestamp of type Time to a timestamp with a
// specific granularity, in units of milliseconds.
func fromTimestamp(granularity int32, timestamp time.Time) int64 {
	millis := timestamp.UnixMilli()

	return millis / int64(granularity)
}
