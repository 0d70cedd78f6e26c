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

package cat

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmobj"
	"m4o.io/osmobj/internal/config"
	"m4o.io/osmobj/model"
)

func TestRunCat(t *testing.T) {
	var src bytes.Buffer

	enc, err := osmobj.NewEncoder(&src,
		osmobj.WithCompression(osmobj.RAW),
		osmobj.WithSource("survey"),
		osmobj.WithOptionalFeatures("Sort.Type_then_ID"))
	require.NoError(t, err)

	n := model.NewNode(1)
	n.SetLatLon(model.Some(model.NewLatLon(10, 10)))
	n.SetTag("name", "here")

	r := model.NewRelation(2)
	r.AddMember(model.NODE, 1, "label")

	require.NoError(t, enc.EncodeBatch([]model.Object{model.NodeObject(n), model.RelationObject(r)}))
	require.NoError(t, enc.Close())

	var dst bytes.Buffer

	count, err := runCat(context.Background(), bytes.NewReader(src.Bytes()), &dst,
		&config.Config{Compression: "lzma", Interner: "pool"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	d, err := osmobj.NewDecoder(context.Background(), &dst)
	require.NoError(t, err)

	defer d.Close()

	assert.Equal(t, "osmobj", d.Header.WritingProgram)
	assert.Equal(t, "survey", d.Header.Source)
	assert.Equal(t, []string{"Sort.Type_then_ID"}, d.Header.OptionalFeatures)

	got := make(map[model.Key]model.Object)

	for o, err := range d.Objects() {
		require.NoError(t, err)

		got[o.Key()] = o
	}

	require.Len(t, got, 2)
	assert.True(t, model.NodeObject(n).Equal(got[model.Key{Type: model.NODE, ID: 1}]))
	assert.True(t, model.RelationObject(r).Equal(got[model.Key{Type: model.RELATION, ID: 2}]))
}

func TestRunCat_BadCompression(t *testing.T) {
	_, err := runCat(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, &config.Config{Compression: "rar"})
	assert.ErrorIs(t, err, osmobj.ErrUnknownCompression)
}
