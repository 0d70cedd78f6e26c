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
	"time"

	"m4o.io/osmobj/intern"
)

// Base is the capability set shared by every kind of object.  It is
// implemented by *Node, *Way and *Relation, through their embedded Meta, and
// by Object.
type Base interface {
	ID() ID
	SetID(id ID)

	Version() Option[uint32]
	SetVersion(v Option[uint32])

	Deleted() bool
	SetDeleted(deleted bool)

	Changeset() Option[uint32]
	SetChangeset(c Option[uint32])

	Timestamp() Option[time.Time]
	SetTimestamp(ts Option[time.Time])

	UID() Option[uint32]
	SetUID(uid Option[uint32])

	User() Option[string]
	SetUser(user Option[string])

	Tags() iter.Seq2[string, string]
	NumTags() int
	Tag(key string) (string, bool)
	SetTag(key, value string)
	UnsetTag(key string)
}

// Meta holds the metadata common to nodes, ways and relations.  A deleted
// object keeps all of its metadata; Deleted only marks it as a tombstone.
type Meta struct {
	id        ID
	version   Option[uint32]
	deleted   bool
	changeset Option[uint32]
	timestamp Option[time.Time]
	uid       Option[uint32]
	user      Option[string]
	tags      Tags

	strs intern.Interner
}

var _ Base = (*Meta)(nil)

func (m *Meta) interner() intern.Interner {
	if m.strs == nil {
		m.strs = intern.Default()
	}

	return m.strs
}

func (m *Meta) ID() ID        { return m.id }
func (m *Meta) SetID(id ID)   { m.id = id }
func (m *Meta) Deleted() bool { return m.deleted }

func (m *Meta) SetDeleted(deleted bool) { m.deleted = deleted }

// Version is the edit version of the object.
func (m *Meta) Version() Option[uint32]     { return m.version }
func (m *Meta) SetVersion(v Option[uint32]) { m.version = v }

// Changeset is the changeset in which the object was last edited.
func (m *Meta) Changeset() Option[uint32]     { return m.changeset }
func (m *Meta) SetChangeset(c Option[uint32]) { m.changeset = c }

func (m *Meta) Timestamp() Option[time.Time]      { return m.timestamp }
func (m *Meta) SetTimestamp(ts Option[time.Time]) { m.timestamp = ts }

// UID is the id of the user who last edited the object.
func (m *Meta) UID() Option[uint32]       { return m.uid }
func (m *Meta) SetUID(uid Option[uint32]) { m.uid = uid }

// User is the display name of the user who last edited the object.
func (m *Meta) User() Option[string] { return m.user }

// SetUser sets the display name, interning it.
func (m *Meta) SetUser(user Option[string]) {
	if u, ok := user.Get(); ok {
		user = Some(m.interner().Intern(u))
	}

	m.user = user
}

// Tags iterates over the object's tags in no particular order.
func (m *Meta) Tags() iter.Seq2[string, string] { return m.tags.All() }

func (m *Meta) NumTags() int { return m.tags.Len() }

// Tag returns the value of key and whether the object carries key.
func (m *Meta) Tag(key string) (string, bool) { return m.tags.Get(key) }

// SetTag inserts or overwrites a tag.
func (m *Meta) SetTag(key, value string) { m.tags.Set(m.interner(), key, value) }

// UnsetTag removes a tag, if present.
func (m *Meta) UnsetTag(key string) { m.tags.Delete(key) }

// equal compares metadata and tags, ignoring the interner.
func (m *Meta) equal(o *Meta) bool {
	return m.id == o.id &&
		m.version == o.version &&
		m.deleted == o.deleted &&
		m.changeset == o.changeset &&
		equalTimestamps(m.timestamp, o.timestamp) &&
		m.uid == o.uid &&
		m.user == o.user &&
		m.tags.Equal(&o.tags)
}

func equalTimestamps(a, b Option[time.Time]) bool {
	at, aok := a.Get()
	bt, bok := b.Get()

	return aok == bok && at.Equal(bt)
}
