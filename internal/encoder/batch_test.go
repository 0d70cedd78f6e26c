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
	"testing"

	"github.com/destel/rill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmobj/model"
)

func TestCoalesce(t *testing.T) {
	in := make(chan []model.Object)

	go func() {
		defer close(in)

		for i := range 5 {
			in <- []model.Object{
				model.NodeObject(model.NewNode(model.ID(i))),
				model.WayObject(model.NewWay(model.ID(i))),
			}
		}

		in <- []model.Object{model.RelationObject(model.NewRelation(1))}
	}()

	counts := make(map[model.ObjectType]int)
	ids := make(map[model.ObjectType][]model.ID)

	for batch := range Coalesce(in, 2) {
		require.NoError(t, batch.Error)
		require.NotEmpty(t, batch.Value)
		assert.LessOrEqual(t, len(batch.Value), 2)

		typ := batch.Value[0].Type()
		for _, o := range batch.Value {
			assert.Equal(t, typ, o.Type())
			ids[typ] = append(ids[typ], o.ID())
		}

		counts[typ] += len(batch.Value)
	}

	assert.Equal(t, map[model.ObjectType]int{model.NODE: 5, model.WAY: 5, model.RELATION: 1}, counts)
	assert.Equal(t, []model.ID{0, 1, 2, 3, 4}, ids[model.NODE])
}

func TestExtractBoundingBoxes(t *testing.T) {
	n1 := model.NewNode(1)
	n1.SetLatLon(model.Some(model.NewLatLon(10, 20)))

	n2 := model.NewNode(2)
	n2.SetLatLon(model.Some(model.NewLatLon(-5, 30)))

	n3 := model.NewNode(3)
	n3.SetDeleted(true)

	in := make(chan rill.Try[[]model.Object], 2)
	in <- rill.Wrap([]model.Object{model.NodeObject(n1), model.NodeObject(n2)}, nil)
	in <- rill.Wrap([]model.Object{model.NodeObject(n3)}, nil)
	close(in)

	out, extents := ExtractBoundingBoxes(in)

	var exts []Extent

	done := make(chan struct{})

	go func() {
		defer close(done)

		for e := range extents {
			exts = append(exts, e.Value)
		}
	}()

	var batches int
	for range out {
		batches++
	}

	<-done

	assert.Equal(t, 2, batches)
	require.Len(t, exts, 2)

	expected := &model.BoundingBox{Top: 10, Left: 20, Bottom: -5, Right: 30}
	assert.True(t, expected.EqualWithin(exts[0].BoundingBox, model.E7), "bbox %s", exts[0].BoundingBox)
	assert.False(t, exts[0].Deleted)

	assert.True(t, exts[1].BoundingBox.Empty())
	assert.True(t, exts[1].Deleted)
}
