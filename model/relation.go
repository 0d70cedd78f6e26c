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

package model

import (
	"fmt"
	"iter"
)

// Member is an entry of a relation: a reference to another object together
// with the role that object plays in the relation.
type Member struct {
	Type ObjectType
	ID   ID
	Role string
}

func (m Member) String() string {
	return fmt.Sprintf("%s%d@%q", string(m.Type.Tag()), m.ID, m.Role)
}

// member is the stored form of a Member, keeping the kind as its one byte
// tag.
type member struct {
	tag  byte
	id   ID
	role string
}

func (m member) decode() (Member, error) {
	t, err := ParseMemberTag(m.tag)
	if err != nil {
		return Member{}, err
	}

	return Member{Type: t, ID: m.id, Role: m.role}, nil
}

// Relation is an ordered list of members.
type Relation struct {
	Meta

	members []member
}

var _ Base = (*Relation)(nil)

// NewRelation creates a relation whose strings are shared through
// intern.Default().
func NewRelation(id ID) *Relation {
	return &Relation{Meta: Meta{id: id}}
}

func (r *Relation) meta() *Meta { return &r.Meta }

// Members iterates over the members in order.  A member stored with an
// unrecognised kind yields an error wrapping ErrInvalidMemberType in its
// place and iteration continues.
func (r *Relation) Members() iter.Seq2[Member, error] {
	return func(yield func(Member, error) bool) {
		for _, m := range r.members {
			if !yield(m.decode()) {
				return
			}
		}
	}
}

// NumMembers returns the number of members.
func (r *Relation) NumMembers() int { return len(r.members) }

// Member returns the i-th member.  The boolean is false if i is out of range.
func (r *Relation) Member(i int) (Member, bool, error) {
	if i < 0 || i >= len(r.members) {
		return Member{}, false, nil
	}

	m, err := r.members[i].decode()

	return m, true, err
}

// AddMember appends a member, interning its role.
func (r *Relation) AddMember(t ObjectType, id ID, role string) {
	r.AddMemberTag(t.Tag(), id, role)
}

// AddMemberTag appends a member given the kind's one byte tag.  The tag is
// stored as is; an unknown tag is reported when the member is read.
func (r *Relation) AddMemberTag(tag byte, id ID, role string) {
	r.members = append(r.members, member{tag: tag, id: id, role: r.interner().Intern(role)})
}

// SetMembers replaces all members.
func (r *Relation) SetMembers(members []Member) {
	r.members = make([]member, 0, len(members))
	for _, m := range members {
		r.AddMember(m.Type, m.ID, m.Role)
	}
}
