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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/osmobj/model"
)

func TestDegreesAngle(t *testing.T) {
	assert.True(t, model.Angle(0.78539816).EqualWithin(model.Degrees(45.0).Angle(), model.E7))
}

func TestDegreesE7(t *testing.T) {
	d := model.Degrees(53.123456789)

	assert.Equal(t, int32(531234568), d.E7())
	assert.Equal(t, int32(-531234568), (-d).E7())
}

func TestLatLon(t *testing.T) {
	test_cases := []struct {
		name  string
		lat   model.Degrees
		lon   model.Degrees
		valid bool
	}{
		{"origin", 0, 0, true},
		{"london", 51.5073219, -0.1276474, true},
		{"north pole", 90, 180, true},
		{"south pole", -90, -180, true},
		{"lat out of range", 90.0000001, 0, false},
		{"lon out of range", 0, -180.0000001, false},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			p := model.NewLatLon(tc.lat, tc.lon)

			assert.Equal(t, tc.valid, p.Valid())
			assert.True(t, tc.lat.EqualWithin(p.Lat.Degrees(), model.E7))
			assert.True(t, tc.lon.EqualWithin(p.Lon.Degrees(), model.E7))
		})
	}
}

func TestLatLonString(t *testing.T) {
	assert.Equal(t, "(51.5073219, -0.1276474)", model.NewLatLon(51.5073219, -0.1276474).String())
}

func TestLatLonLatLng(t *testing.T) {
	ll := model.NewLatLon(45, -90).LatLng()

	assert.InDelta(t, 45.0, ll.Lat.Degrees(), 1e-9)
	assert.InDelta(t, -90.0, ll.Lng.Degrees(), 1e-9)
}

func TestToCoordinate(t *testing.T) {
	d := model.Degrees(51.5073219)
	c := model.ToCoordinate(0, 100, d)

	assert.Equal(t, int64(515073219), c)
	assert.True(t, d.EqualWithin(model.ToDegrees(0, 100, c), model.E7))
}

func TestDegreesParse(t *testing.T) {
	d, err := model.ParseDegrees("53.123450")
	if err != nil {
		t.Error(err)
	}

	assert.True(t, model.Degrees(53.123450).EqualWithin(d, model.E5))

	_, err = model.ParseDegrees("abc")
	if err == nil {
		t.Error("Parsing should have failed")
	}
}

func TestDegreesEqualWithin(t *testing.T) {
	assert.True(t, model.Degrees(53.123450).EqualWithin(model.Degrees(53.123454), model.E5))
	assert.False(t, model.Degrees(53.123450).EqualWithin(model.Degrees(53.123455), model.E5))
}

func TestDegreesString(t *testing.T) {
	assert.Equal(t, "53° 7' 24.42\"", model.Degrees(53.123450).String())
}
