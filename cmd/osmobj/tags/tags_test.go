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

package tags

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmobj"
	"m4o.io/osmobj/intern"
	"m4o.io/osmobj/model"
)

func sampleFile(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer

	enc, err := osmobj.NewEncoder(&buf, osmobj.WithCompression(osmobj.LZ4))
	require.NoError(t, err)

	var objects []model.Object

	for i := range 4 {
		n := model.NewNode(model.ID(i + 1))
		n.SetLatLon(model.Some(model.NewLatLon(1, 1)))
		n.SetTag("highway", "crossing")

		if i%2 == 0 {
			n.SetTag("crossing", "zebra")
		}

		objects = append(objects, model.NodeObject(n))
	}

	w := model.NewWay(10)
	w.SetTag("highway", "residential")
	w.SetTag("name", "Baker Street")
	objects = append(objects, model.WayObject(w))

	require.NoError(t, enc.EncodeBatch(objects))
	require.NoError(t, enc.Close())

	return buf.Bytes()
}

func TestRunTags(t *testing.T) {
	data := sampleFile(t)

	test_cases := []struct {
		name    string
		filter  model.Option[model.ObjectType]
		objects int64
		keys    []keyCount
	}{
		{
			"all",
			model.None[model.ObjectType](),
			5,
			[]keyCount{{"highway", 5}, {"crossing", 2}, {"name", 1}},
		},
		{
			"ways",
			model.Some(model.WAY),
			1,
			[]keyCount{{"highway", 1}, {"name", 1}},
		},
		{
			"relations",
			model.Some(model.RELATION),
			0,
			[]keyCount{},
		},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			pool := intern.NewPool()
			strs := intern.Locked(pool)

			r, err := runTags(context.Background(), bytes.NewReader(data), tc.filter, strs, osmobj.WithInterner(strs))
			require.NoError(t, err)

			assert.Equal(t, tc.objects, r.Objects)
			assert.Equal(t, tc.keys, r.Keys)
			assert.True(t, r.HasStats)
			assert.Equal(t, pool.Len(), r.Stats.Distinct)
			assert.Positive(t, r.Stats.Hits)
		})
	}
}

func TestRenderTxt(t *testing.T) {
	r := &report{
		Objects: 12345,
		Keys:    []keyCount{{"highway", 1000}, {"name", 10}, {"surface", 1}},
		Stats:   intern.Stats{Distinct: 4, Lookups: 10, Hits: 6},

		HasStats: true,
	}

	buf := &bytes.Buffer{}

	saved := out

	defer func() { out = saved }()

	out = buf

	renderTxt(r, 2, true)

	assert.Equal(t, "Objects: 12,345\n"+
		"highway                          1,000\n"+
		"name                             10\n"+
		"Interned: 4 distinct strings, 10 lookups, 60% shared\n", buf.String())
}
