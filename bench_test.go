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
	"io"
	"os"
	"runtime/trace"
	"strconv"
	"testing"

	"m4o.io/osmobj"
	"m4o.io/osmobj/model"
)

// benchObjects builds a data set shaped like a city extract: mostly nodes,
// a tenth as many ways and a few relations.
func benchObjects(nodes int) []model.Object {
	objects := make([]model.Object, 0, nodes+nodes/10+nodes/100)

	for i := range nodes {
		n := model.NewNode(model.ID(i + 1))
		n.SetLatLon(model.Some(model.NewLatLon(51+model.Degrees(i%1000)/1000, model.Degrees(i%2000)/1000-1)))
		n.SetVersion(model.Some(uint32(1 + i%5)))

		if i%7 == 0 {
			n.SetTag("highway", "crossing")
		}

		objects = append(objects, model.NodeObject(n))
	}

	for i := range nodes / 10 {
		w := model.NewWay(model.ID(i + 1))
		for j := range 10 {
			w.AppendNode(model.ID(i*10 + j + 1))
		}

		w.SetTag("highway", "residential")
		objects = append(objects, model.WayObject(w))
	}

	for i := range nodes / 100 {
		r := model.NewRelation(model.ID(i + 1))
		r.AddMember(model.WAY, model.ID(i*10+1), "outer")
		r.AddMember(model.WAY, model.ID(i*10+2), "inner")
		r.SetTag("type", "multipolygon")
		objects = append(objects, model.RelationObject(r))
	}

	return objects
}

func BenchmarkDecode(b *testing.B) {
	data := encodeAll(b, benchObjects(200_000))

	t, err := strconv.ParseBool(os.Getenv("PBF_TRACE"))
	if err == nil && t {
		f, e := os.Create("trace.out")
		if e != nil {
			b.Errorf("Error opening trace file: %v", e)
		} else {
			defer f.Close()
			_ = trace.Start(f)
			defer trace.Stop()
		}
	}

	pbs, _ := strconv.Atoi(os.Getenv("PBF_PROTO_BUFFER_SIZE"))
	ncpu, _ := strconv.Atoi(os.Getenv("PBF_NCPU"))

	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		decoder, err := osmobj.NewDecoder(context.Background(), bytes.NewReader(data),
			osmobj.WithProtoBufferSize(pbs),
			osmobj.WithNCpus(uint16(ncpu)))
		if err != nil {
			b.Fatal(err)
		}

		for {
			if _, err := decoder.Decode(); err == io.EOF {
				break
			} else if err != nil {
				b.Fatal(err)
			}
		}

		decoder.Close()
	}
}

func BenchmarkEncode(b *testing.B) {
	objects := benchObjects(200_000)

	for n := 0; n < b.N; n++ {
		encodeAll(b, objects, osmobj.WithCompression(osmobj.ZSTD))
	}
}
