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
	"slices"

	"m4o.io/osmobj/intern"
)

// Node represents a specific point on the earth's surface defined by its
// latitude and longitude.  A node may lack a position, e.g. when it is a
// deleted placeholder.
type Node struct {
	Meta

	latLon Option[LatLon]
}

var _ Base = (*Node)(nil)

// NewNode creates a node whose strings are shared through intern.Default().
func NewNode(id ID) *Node {
	return &Node{Meta: Meta{id: id}}
}

func (n *Node) meta() *Meta { return &n.Meta }

// LatLon returns the position of the node, if known.
func (n *Node) LatLon() Option[LatLon] { return n.latLon }

// SetLatLon sets or clears the position of the node.
func (n *Node) SetLatLon(p Option[LatLon]) { n.latLon = p }

// Way is an ordered list of node references.  The list may be empty and may
// contain duplicates; neither is validated here.
type Way struct {
	Meta

	nodes []ID
}

var _ Base = (*Way)(nil)

// NewWay creates a way whose strings are shared through intern.Default().
func NewWay(id ID) *Way {
	return &Way{Meta: Meta{id: id}}
}

func (w *Way) meta() *Meta { return &w.Meta }

// Nodes returns the node references in order.  The slice is the way's own
// storage and must not be modified.
func (w *Way) Nodes() []ID { return w.nodes }

// NumNodes returns the number of node references.
func (w *Way) NumNodes() int { return len(w.nodes) }

// Node returns the i-th node reference, or false if i is out of range.
func (w *Way) Node(i int) (ID, bool) {
	if i < 0 || i >= len(w.nodes) {
		return 0, false
	}

	return w.nodes[i], true
}

// SetNodes replaces the node references with a copy of ids.
func (w *Way) SetNodes(ids []ID) { w.nodes = slices.Clone(ids) }

// AppendNode adds a node reference to the end of the way.
func (w *Way) AppendNode(id ID) { w.nodes = append(w.nodes, id) }

// Factory creates records that share strings through one Interner, typically
// one per object graph.
type Factory struct {
	strs intern.Interner
}

// NewFactory creates a Factory backed by strs; nil means intern.Default().
func NewFactory(strs intern.Interner) *Factory {
	if strs == nil {
		strs = intern.Default()
	}

	return &Factory{strs: strs}
}

// Interner returns the factory's Interner.
func (f *Factory) Interner() intern.Interner { return f.strs }

// NewNode creates a node bound to the factory's Interner.
func (f *Factory) NewNode(id ID) *Node {
	return &Node{Meta: Meta{id: id, strs: f.strs}}
}

// NewWay creates a way bound to the factory's Interner.
func (f *Factory) NewWay(id ID) *Way {
	return &Way{Meta: Meta{id: id, strs: f.strs}}
}

// NewRelation creates a relation bound to the factory's Interner.
func (f *Factory) NewRelation(id ID) *Relation {
	return &Relation{Meta: Meta{id: id, strs: f.strs}}
}
