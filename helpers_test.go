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

package osmobj_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"m4o.io/osmobj"
	"m4o.io/osmobj/model"
)

var epoch = time.Date(2024, 3, 9, 12, 30, 15, 0, time.UTC)

// sampleObjects returns a small data set holding every kind of object,
// with and without metadata.
func sampleObjects() []model.Object {
	var objects []model.Object

	for i := range 5 {
		n := model.NewNode(model.ID(100 + i))
		n.SetLatLon(model.Some(model.NewLatLon(51.5073219+model.Degrees(i)/100, -0.1276474-model.Degrees(i)/100)))

		if i%2 == 0 {
			n.SetVersion(model.Some(uint32(i + 1)))
			n.SetChangeset(model.Some(uint32(4000 + i)))
			n.SetTimestamp(model.Some(epoch.Add(time.Duration(i) * time.Hour)))
			n.SetUID(model.Some(uint32(7)))
			n.SetUser(model.Some("mapper"))
			n.SetTag("amenity", "cafe")
		}

		objects = append(objects, model.NodeObject(n))
	}

	w := model.NewWay(200)
	w.SetNodes([]model.ID{100, 101, 102, 100})
	w.SetTag("highway", "residential")
	w.SetTag("name", "Baker Street")
	w.SetVersion(model.Some(uint32(3)))
	w.SetUser(model.Some("mapper"))
	objects = append(objects, model.WayObject(w))

	w = model.NewWay(201)
	w.SetNodes([]model.ID{103, 104})
	objects = append(objects, model.WayObject(w))

	r := model.NewRelation(300)
	r.AddMember(model.WAY, 200, "outer")
	r.AddMember(model.NODE, 103, "")
	r.AddMember(model.RELATION, 301, "subarea")
	r.SetTag("type", "multipolygon")
	r.SetTimestamp(model.Some(epoch))
	objects = append(objects, model.RelationObject(r))

	return objects
}

// tombstones returns deleted objects of every kind.
func tombstones() []model.Object {
	n := model.NewNode(900)
	n.SetDeleted(true)
	n.SetVersion(model.Some(uint32(4)))
	n.SetChangeset(model.Some(uint32(12)))

	w := model.NewWay(901)
	w.SetDeleted(true)
	w.SetVersion(model.Some(uint32(2)))

	r := model.NewRelation(902)
	r.SetDeleted(true)

	return []model.Object{model.NodeObject(n), model.WayObject(w), model.RelationObject(r)}
}

func encodeAll(t testing.TB, objects []model.Object, opts ...osmobj.EncoderOption) []byte {
	t.Helper()

	var buf bytes.Buffer

	enc, err := osmobj.NewEncoder(&buf, opts...)
	require.NoError(t, err)

	require.NoError(t, enc.EncodeBatch(objects))
	require.NoError(t, enc.Close())

	return buf.Bytes()
}

func decodeAll(t testing.TB, data []byte, opts ...osmobj.DecoderOption) (model.Header, []model.Object) {
	t.Helper()

	dec, err := osmobj.NewDecoder(context.Background(), bytes.NewReader(data), opts...)
	require.NoError(t, err)

	defer dec.Close()

	var objects []model.Object

	for o, err := range dec.Objects() {
		require.NoError(t, err)

		objects = append(objects, o)
	}

	return dec.Header, objects
}

// byType splits objects per kind, keeping their relative order.
func byType(objects []model.Object) map[model.ObjectType][]model.Object {
	m := make(map[model.ObjectType][]model.Object)

	for _, o := range objects {
		m[o.Type()] = append(m[o.Type()], o)
	}

	return m
}
