// Copyright 2017-25 the original author or authors.
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

package decoder

import (
	"errors"
	"fmt"
	"math"
	"time"

	"m4o.io/osmobj/internal/pb"
	"m4o.io/osmobj/model"
)

var ErrInvalidBlock = errors.New("invalid primitive block")

func parsePrimitiveBlock(f *model.Factory, buf []byte) ([]model.Object, error) {
	blk := &pb.PrimitiveBlock{}
	if err := pb.Unmarshal(buf, blk); err != nil {
		return nil, fmt.Errorf("unable to unmarshal primitive block: %w", err)
	}

	c := newBlockContext(f, blk)

	objects := make([]model.Object, 0)
	for _, pg := range blk.GetPrimitivegroup() {
		var err error

		if objects, err = c.decodeNodes(objects, pg.GetNodes()); err != nil {
			return nil, err
		}

		if objects, err = c.decodeDenseNodes(objects, pg.GetDense()); err != nil {
			return nil, err
		}

		if objects, err = c.decodeWays(objects, pg.GetWays()); err != nil {
			return nil, err
		}

		if objects, err = c.decodeRelations(objects, pg.GetRelations()); err != nil {
			return nil, err
		}
	}

	return objects, nil
}

type blockContext struct {
	factory         *model.Factory
	strings         []string
	granularity     int32
	latOffset       int64
	lonOffset       int64
	dateGranularity int32
}

func newBlockContext(f *model.Factory, blk *pb.PrimitiveBlock) *blockContext {
	return &blockContext{
		factory:         f,
		strings:         blk.GetStringtable().GetS(),
		granularity:     blk.GetGranularity(),
		latOffset:       blk.GetLatOffset(),
		lonOffset:       blk.GetLonOffset(),
		dateGranularity: blk.GetDateGranularity(),
	}
}

func (c *blockContext) str(sid int64) (string, error) {
	if sid < 0 || sid >= int64(len(c.strings)) {
		return "", fmt.Errorf("%w: string index %d out of range [0, %d)", ErrInvalidBlock, sid, len(c.strings))
	}

	return c.strings[sid], nil
}

func (c *blockContext) latLon(lat, lon int64) model.LatLon {
	return model.NewLatLon(
		model.ToDegrees(c.latOffset, c.granularity, lat),
		model.ToDegrees(c.lonOffset, c.granularity, lon),
	)
}

func (c *blockContext) decodeNodes(objects []model.Object, nodes []*pb.Node) ([]model.Object, error) {
	for _, node := range nodes {
		n := c.factory.NewNode(model.ID(node.GetId()))

		if err := c.decodeTags(&n.Meta, node.GetKeys(), node.GetVals()); err != nil {
			return nil, err
		}

		if err := c.decodeInfo(&n.Meta, node.GetInfo()); err != nil {
			return nil, err
		}

		if !n.Deleted() {
			n.SetLatLon(model.Some(c.latLon(node.GetLat(), node.GetLon())))
		}

		objects = append(objects, model.NodeObject(n))
	}

	return objects, nil
}

func (c *blockContext) decodeDenseNodes(objects []model.Object, nodes *pb.DenseNodes) ([]model.Object, error) {
	ids := nodes.GetId()
	lats := nodes.GetLat()
	lons := nodes.GetLon()

	if len(lats) != len(ids) || len(lons) != len(ids) {
		return nil, fmt.Errorf("%w: %d dense ids but %d lats and %d lons", ErrInvalidBlock, len(ids), len(lats), len(lons))
	}

	tic := c.newTagsContext(nodes.GetKeysVals())

	dic, err := c.newDenseInfoContext(nodes.GetDenseinfo(), len(ids))
	if err != nil {
		return nil, err
	}

	var id, lat, lon int64
	for i := range ids {
		id += ids[i]
		lat += lats[i]
		lon += lons[i]

		n := c.factory.NewNode(model.ID(id))

		if err := tic.decodeTags(&n.Meta); err != nil {
			return nil, err
		}

		if err := dic.decodeInfo(&n.Meta, i); err != nil {
			return nil, err
		}

		if !n.Deleted() {
			n.SetLatLon(model.Some(c.latLon(lat, lon)))
		}

		objects = append(objects, model.NodeObject(n))
	}

	return objects, nil
}

func (c *blockContext) decodeWays(objects []model.Object, ways []*pb.Way) ([]model.Object, error) {
	for _, way := range ways {
		w := c.factory.NewWay(model.ID(way.GetId()))

		if err := c.decodeTags(&w.Meta, way.GetKeys(), way.GetVals()); err != nil {
			return nil, err
		}

		if err := c.decodeInfo(&w.Meta, way.GetInfo()); err != nil {
			return nil, err
		}

		refs := way.GetRefs()
		nodeIDs := make([]model.ID, len(refs))

		var nodeID int64

		for j, delta := range refs {
			nodeID = delta + nodeID
			nodeIDs[j] = model.ID(nodeID)
		}

		w.SetNodes(nodeIDs)

		objects = append(objects, model.WayObject(w))
	}

	return objects, nil
}

func (c *blockContext) decodeRelations(objects []model.Object, relations []*pb.Relation) ([]model.Object, error) {
	for _, relation := range relations {
		r := c.factory.NewRelation(model.ID(relation.GetId()))

		if err := c.decodeTags(&r.Meta, relation.GetKeys(), relation.GetVals()); err != nil {
			return nil, err
		}

		if err := c.decodeInfo(&r.Meta, relation.GetInfo()); err != nil {
			return nil, err
		}

		if err := c.decodeMembers(r, relation); err != nil {
			return nil, err
		}

		objects = append(objects, model.RelationObject(r))
	}

	return objects, nil
}

func (c *blockContext) decodeMembers(r *model.Relation, relation *pb.Relation) error {
	memids := relation.GetMemids()
	memtypes := relation.GetTypes()
	memroles := relation.GetRolesSid()

	if len(memtypes) != len(memids) || len(memroles) != len(memids) {
		return fmt.Errorf("%w: relation %d has %d member ids, %d types and %d roles",
			ErrInvalidBlock, relation.GetId(), len(memids), len(memtypes), len(memroles))
	}

	var memid int64

	for i := range memids {
		memid = memids[i] + memid

		t, err := decodeMemberType(memtypes[i])
		if err != nil {
			return fmt.Errorf("relation %d: %w", relation.GetId(), err)
		}

		role, err := c.str(int64(memroles[i]))
		if err != nil {
			return err
		}

		r.AddMember(t, model.ID(memid), role)
	}

	return nil
}

func (c *blockContext) decodeTags(m *model.Meta, keyIDs, valIDs []uint32) error {
	if len(keyIDs) != len(valIDs) {
		return fmt.Errorf("%w: %d keys but %d values", ErrInvalidBlock, len(keyIDs), len(valIDs))
	}

	for i, keyID := range keyIDs {
		k, err := c.str(int64(keyID))
		if err != nil {
			return err
		}

		v, err := c.str(int64(valIDs[i]))
		if err != nil {
			return err
		}

		m.SetTag(k, v)
	}

	return nil
}

// decodeInfo copies the metadata present in info onto m.  Unset fields,
// a version of -1, a changeset or timestamp of 0, a negative uid and a user
// string index of 0 are absent.
func (c *blockContext) decodeInfo(m *model.Meta, info *pb.Info) error {
	if info == nil {
		return nil
	}

	m.SetVersion(toVersion(info.GetVersion()))
	m.SetChangeset(toChangeset(info.GetChangeset()))

	if ts := info.GetTimestamp(); ts != 0 {
		m.SetTimestamp(model.Some(toTimestamp(c.dateGranularity, ts)))
	}

	if info.Uid != nil {
		m.SetUID(toUID(info.GetUid()))
	}

	if sid := info.GetUserSid(); sid != 0 {
		user, err := c.str(int64(sid))
		if err != nil {
			return err
		}

		m.SetUser(model.Some(user))
	}

	if info.Visible != nil {
		m.SetDeleted(!info.GetVisible())
	}

	return nil
}

func (c *blockContext) newDenseInfoContext(di *pb.DenseInfo, n int) (*denseInfoContext, error) {
	dic := &denseInfoContext{
		blockContext: c,
		versions:     di.GetVersion(),
		uids:         di.GetUid(),
		timestamps:   di.GetTimestamp(),
		changesets:   di.GetChangeset(),
		userSids:     di.GetUserSid(),
		visibilities: di.GetVisible(),
	}

	for _, l := range []int{
		len(dic.versions), len(dic.uids), len(dic.timestamps),
		len(dic.changesets), len(dic.userSids), len(dic.visibilities),
	} {
		if l != 0 && l != n {
			return nil, fmt.Errorf("%w: dense info column of %d entries for %d nodes", ErrInvalidBlock, l, n)
		}
	}

	return dic, nil
}

type denseInfoContext struct {
	*blockContext

	version   int32
	timestamp int64
	changeset int64
	uid       int32
	userSid   int32

	versions     []int32
	uids         []int32
	timestamps   []int64
	changesets   []int64
	userSids     []int32
	visibilities []bool
}

// decodeInfo applies the i-th entry of each present column.  The columns
// other than version and visible are delta coded.
func (dic *denseInfoContext) decodeInfo(m *model.Meta, i int) error {
	if len(dic.versions) != 0 {
		dic.version = dic.versions[i]
		m.SetVersion(toVersion(dic.version))
	}

	if len(dic.timestamps) != 0 {
		dic.timestamp += dic.timestamps[i]
		if dic.timestamp != 0 {
			m.SetTimestamp(model.Some(toTimestamp(dic.dateGranularity, dic.timestamp)))
		}
	}

	if len(dic.changesets) != 0 {
		dic.changeset += dic.changesets[i]
		m.SetChangeset(toChangeset(dic.changeset))
	}

	if len(dic.uids) != 0 {
		dic.uid += dic.uids[i]
		m.SetUID(toUID(dic.uid))
	}

	if len(dic.userSids) != 0 {
		dic.userSid += dic.userSids[i]
		if dic.userSid != 0 {
			user, err := dic.str(int64(dic.userSid))
			if err != nil {
				return err
			}

			m.SetUser(model.Some(user))
		}
	}

	if len(dic.visibilities) != 0 {
		m.SetDeleted(!dic.visibilities[i])
	}

	return nil
}

type tagsContext struct {
	*blockContext

	i       int
	keyVals []int32
}

func (c *blockContext) newTagsContext(keyVals []int32) *tagsContext {
	return &tagsContext{blockContext: c, keyVals: keyVals}
}

// decodeTags reads the next run of key, value string indexes, which is
// terminated by a 0.  Empty keyVals means that no node has tags.
func (tic *tagsContext) decodeTags(m *model.Meta) error {
	if len(tic.keyVals) == 0 {
		return nil
	}

	i := tic.i

	for {
		if i >= len(tic.keyVals) {
			return fmt.Errorf("%w: unterminated dense tags", ErrInvalidBlock)
		}

		if tic.keyVals[i] == 0 {
			break
		}

		if i+1 >= len(tic.keyVals) {
			return fmt.Errorf("%w: dense tag key without value", ErrInvalidBlock)
		}

		k, err := tic.str(int64(tic.keyVals[i]))
		if err != nil {
			return err
		}

		v, err := tic.str(int64(tic.keyVals[i+1]))
		if err != nil {
			return err
		}

		m.SetTag(k, v)

		i += 2
	}

	tic.i = i + 1

	return nil
}

// decodeMemberType converts protobuf enum Relation_MemberType to an
// ObjectType.
func decodeMemberType(mt pb.Relation_MemberType) (model.ObjectType, error) {
	t := model.ObjectType(mt)
	if !t.Valid() {
		return 0, fmt.Errorf("%w: %v", model.ErrInvalidMemberType, mt)
	}

	return t, nil
}

func toVersion(v int32) model.Option[uint32] {
	if v < 0 {
		return model.None[uint32]()
	}

	return model.Some(uint32(v))
}

func toChangeset(c int64) model.Option[uint32] {
	if c <= 0 || c > math.MaxUint32 {
		return model.None[uint32]()
	}

	return model.Some(uint32(c))
}

func toUID(uid int32) model.Option[uint32] {
	if uid < 0 {
		return model.None[uint32]()
	}

	return model.Some(uint32(uid))
}

// toTimestamp converts a timestamp with a specific granularity, in units of
// milliseconds, to a UTC timestamp of type Time.
func toTimestamp(granularity int32, timestamp int64) time.Time {
	return time.UnixMilli(timestamp * int64(granularity)).UTC()
}
