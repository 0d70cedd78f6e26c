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

package model_test

import (
	"fmt"
	"log"

	"m4o.io/osmobj/model"
)

func ExampleObject_AsRelation() {
	r := model.NewRelation(10)
	r.AddMember(model.WAY, 2, "outer")
	r.AddMember(model.WAY, 3, "inner")

	o := model.RelationObject(r)

	if rel, ok := o.AsRelation(); ok {
		for m, err := range rel.Members() {
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println(o, m)
		}
	}
	// Output:
	// r10 w2@"outer"
	// r10 w3@"inner"
}
