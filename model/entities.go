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

// Package model is the in-memory object model for OpenStreetMap data: nodes,
// ways and relations behind the single closed variant Object.
//
// Records share their tag keys, tag values, user names and member roles
// through an intern.Interner so that datasets with many millions of objects
// hold each distinct string once.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidMemberType is returned when a relation member's kind is not one
// of node, way or relation.
var ErrInvalidMemberType = errors.New("invalid member type")

// ID is the primary key of an object.  IDs are only unique within one
// ObjectType; see Key.
type ID int64

// ObjectType is an enumeration of OSM object kinds.
type ObjectType int32

const (
	// NODE denotes a node.
	NODE ObjectType = iota

	// WAY denotes a way.
	WAY

	// RELATION denotes a relation.
	RELATION
)

var objectTypeNames = [...]string{NODE: "node", WAY: "way", RELATION: "relation"}

// compact single byte tags used to store relation members
const (
	nodeTag     byte = 'n'
	wayTag      byte = 'w'
	relationTag byte = 'r'
)

// Valid reports whether t is one of NODE, WAY or RELATION.
func (t ObjectType) Valid() bool {
	return NODE <= t && t <= RELATION
}

func (t ObjectType) String() string {
	if !t.Valid() {
		return "ObjectType(" + strconv.Itoa(int(t)) + ")"
	}

	return objectTypeNames[t]
}

// Tag returns the compact single byte form of t: 'n', 'w' or 'r'.
func (t ObjectType) Tag() byte {
	switch t {
	case NODE:
		return nodeTag
	case WAY:
		return wayTag
	case RELATION:
		return relationTag
	default:
		return 0
	}
}

// ParseMemberTag decodes the compact single byte form of an ObjectType.
func ParseMemberTag(c byte) (ObjectType, error) {
	switch c {
	case nodeTag:
		return NODE, nil
	case wayTag:
		return WAY, nil
	case relationTag:
		return RELATION, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMemberType, c)
	}
}

// ParseObjectType decodes "node", "way" or "relation", or their single
// letter abbreviations, ignoring case.
func ParseObjectType(s string) (ObjectType, error) {
	switch strings.ToLower(s) {
	case "node", "n":
		return NODE, nil
	case "way", "w":
		return WAY, nil
	case "relation", "r":
		return RELATION, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMemberType, s)
	}
}

// Key is the identity of an object: its kind and its ID.
type Key struct {
	Type ObjectType
	ID   ID
}

func (k Key) String() string {
	return string(k.Type.Tag()) + strconv.FormatInt(int64(k.ID), 10)
}
