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

package model

import (
	"iter"
	"slices"
	"time"
)

// record is implemented only by *Node, *Way and *Relation.
type record interface {
	meta() *Meta
}

// Object holds exactly one node, way or relation and exposes the Base
// capabilities of whichever it holds.  Objects are created with NodeObject,
// WayObject or RelationObject; the zero Object is not valid.
//
// An Object is a small value that refers to its record, so copies of an
// Object share the record.
type Object struct {
	typ ObjectType
	rec record
}

var _ Base = Object{}

// NodeObject wraps n.  It panics if n is nil.
func NodeObject(n *Node) Object {
	if n == nil {
		panic("model: nil node")
	}

	return Object{typ: NODE, rec: n}
}

// WayObject wraps w.  It panics if w is nil.
func WayObject(w *Way) Object {
	if w == nil {
		panic("model: nil way")
	}

	return Object{typ: WAY, rec: w}
}

// RelationObject wraps r.  It panics if r is nil.
func RelationObject(r *Relation) Object {
	if r == nil {
		panic("model: nil relation")
	}

	return Object{typ: RELATION, rec: r}
}

// m resolves the shared metadata of the held record.
func (o Object) m() *Meta {
	switch o.typ {
	case NODE:
		return &o.rec.(*Node).Meta
	case WAY:
		return &o.rec.(*Way).Meta
	case RELATION:
		return &o.rec.(*Relation).Meta
	}

	panic("model: invalid object type " + o.typ.String())
}

// Valid reports whether o holds a record.  The zero Object does not.
func (o Object) Valid() bool { return o.rec != nil }

// Type returns the kind of the held record.  It is meaningless for an
// invalid Object.
func (o Object) Type() ObjectType { return o.typ }

// Key returns the identity of the held record.
func (o Object) Key() Key { return Key{Type: o.typ, ID: o.m().id} }

// AsNode returns the held node, or false if the Object holds another kind.
func (o Object) AsNode() (*Node, bool) {
	if o.typ != NODE {
		return nil, false
	}

	n, ok := o.rec.(*Node)

	return n, ok
}

// AsWay returns the held way, or false if the Object holds another kind.
func (o Object) AsWay() (*Way, bool) {
	if o.typ != WAY {
		return nil, false
	}

	w, ok := o.rec.(*Way)

	return w, ok
}

// AsRelation returns the held relation, or false if the Object holds another
// kind.
func (o Object) AsRelation() (*Relation, bool) {
	if o.typ != RELATION {
		return nil, false
	}

	r, ok := o.rec.(*Relation)

	return r, ok
}

func (o Object) ID() ID      { return o.m().ID() }
func (o Object) SetID(id ID) { o.m().SetID(id) }

func (o Object) Version() Option[uint32]     { return o.m().Version() }
func (o Object) SetVersion(v Option[uint32]) { o.m().SetVersion(v) }

func (o Object) Deleted() bool           { return o.m().Deleted() }
func (o Object) SetDeleted(deleted bool) { o.m().SetDeleted(deleted) }

func (o Object) Changeset() Option[uint32]     { return o.m().Changeset() }
func (o Object) SetChangeset(c Option[uint32]) { o.m().SetChangeset(c) }

func (o Object) Timestamp() Option[time.Time]      { return o.m().Timestamp() }
func (o Object) SetTimestamp(ts Option[time.Time]) { o.m().SetTimestamp(ts) }

func (o Object) UID() Option[uint32]       { return o.m().UID() }
func (o Object) SetUID(uid Option[uint32]) { o.m().SetUID(uid) }

func (o Object) User() Option[string]        { return o.m().User() }
func (o Object) SetUser(user Option[string]) { o.m().SetUser(user) }

func (o Object) Tags() iter.Seq2[string, string] { return o.m().Tags() }
func (o Object) NumTags() int                    { return o.m().NumTags() }
func (o Object) Tag(key string) (string, bool)   { return o.m().Tag(key) }
func (o Object) SetTag(key, value string)        { o.m().SetTag(key, value) }
func (o Object) UnsetTag(key string)             { o.m().UnsetTag(key) }

// Equal reports whether o and other hold the same kind of record with equal
// metadata, the same set of tags, and the same payload.  Node and member
// order is significant, tag order is not.  An invalid Object equals
// nothing.
func (o Object) Equal(other Object) bool {
	if !o.Valid() || !other.Valid() {
		return false
	}

	if o.typ != other.typ || !o.m().equal(other.m()) {
		return false
	}

	switch o.typ {
	case NODE:
		return o.rec.(*Node).latLon == other.rec.(*Node).latLon
	case WAY:
		return slices.Equal(o.rec.(*Way).nodes, other.rec.(*Way).nodes)
	case RELATION:
		return slices.Equal(o.rec.(*Relation).members, other.rec.(*Relation).members)
	}

	return false
}

func (o Object) String() string {
	if !o.Valid() {
		return "<invalid>"
	}

	return o.Key().String()
}
