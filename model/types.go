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
	"math"
	"strconv"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	coordinatesPerDegree = 1e-9
)

// Degrees is the decimal degree representation of a longitude or latitude.
type Degrees float64

// Angle represents a 1D angle in radians.
type Angle s1.Angle

// Epsilon is an enumeration of precisions that can be used when comparing Degrees.
type Epsilon float64

// Degrees units.
const (
	Degree           Degrees = 1
	radiansPerPi             = 180
	Radian                   = (radiansPerPi / math.Pi) * Degree
	MinutesPerDegree         = 60
	SecondsPerDegree         = 3600

	E5 Epsilon = 1e-5
	E6 Epsilon = 1e-6
	E7 Epsilon = 1e-7
	E9 Epsilon = 1e-9

	// TenMillionths is the number of Lat or Lon units in one degree.
	TenMillionths = 10_000_000

	Half = 0.5
)

// Angle returns the equivalent s1.Angle.
func (d Degrees) Angle() Angle { return Angle(float64(d) * float64(s1.Degree)) }

func (d Degrees) String() string {
	var sign string
	if d < 0 {
		sign = "-"
	}

	val := math.Abs(float64(d))
	degrees := int(math.Floor(val))
	minutes := int(math.Floor(MinutesPerDegree * (val - float64(degrees))))
	seconds := SecondsPerDegree * (val - float64(degrees) - (float64(minutes) / MinutesPerDegree))

	return fmt.Sprintf("%s%d° %d' %s\"", sign, degrees, minutes, ftoa(seconds))
}

func (d Degrees) MarshalJSON() ([]byte, error) {
	return []byte(ftoa(float64(d))), nil
}

// EqualWithin checks if two degrees are within a specific epsilon.
func (d Degrees) EqualWithin(o Degrees, eps Epsilon) bool {
	return round(float64(d)/float64(eps))-round(float64(o)/float64(eps)) == 0
}

// EqualWithin checks if two angles are within a specific epsilon.
func (d Angle) EqualWithin(o Angle, eps Epsilon) bool {
	return round(float64(d)/float64(eps))-round(float64(o)/float64(eps)) == 0
}

// E7 returns the angle in ten millionths of degrees.
func (d Degrees) E7() int32 { return int32(round(float64(d * TenMillionths))) }

// Coordinate returns the angle in nanodegrees.
func (d Degrees) Coordinate() int64 { return round(float64(d) / coordinatesPerDegree) }

// ToDegrees converts a coordinate into Degrees, given the offset and
// granularity of the coordinate.
func ToDegrees(offset int64, granularity int32, coordinate int64) Degrees {
	return coordinatesPerDegree * Degrees(offset+(int64(granularity)*coordinate))
}

// ToCoordinate is the inverse of ToDegrees.
func ToCoordinate(offset int64, granularity int32, d Degrees) int64 {
	return round(float64(d.Coordinate()-offset) / float64(granularity))
}

// round returns the value rounded to nearest.
// This does not match C++ exactly for the case of x.5.
func round(val float64) int64 {
	if val < 0 {
		return int64(val - Half)
	}

	return int64(val + Half)
}

// ParseDegrees converts a string to a Degrees instance.
func ParseDegrees(s string) (Degrees, error) {
	u, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return Degrees(u), nil
}

// ftoa formats f with at most nine decimals and no trailing zeros.
func ftoa(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e9)/1e9, 'f', -1, 64)
}

// Lat is a latitude in ten millionths of a degree, the precision of the
// OpenStreetMap API.
type Lat int32

// Lon is a longitude in ten millionths of a degree.
type Lon int32

// Validity ranges of Lat and Lon.
const (
	MaxLatitude  Lat = 90 * TenMillionths
	MinLatitude  Lat = -90 * TenMillionths
	MaxLongitude Lon = 180 * TenMillionths
	MinLongitude Lon = -180 * TenMillionths
)

// LatFromDegrees converts d to the nearest Lat.
func LatFromDegrees(d Degrees) Lat { return Lat(d.E7()) }

// LonFromDegrees converts d to the nearest Lon.
func LonFromDegrees(d Degrees) Lon { return Lon(d.E7()) }

// Degrees returns the latitude in decimal degrees.
func (l Lat) Degrees() Degrees { return Degrees(l) / TenMillionths }

// Valid reports whether the latitude lies within [-90, 90] degrees.
func (l Lat) Valid() bool { return MinLatitude <= l && l <= MaxLatitude }

// Degrees returns the longitude in decimal degrees.
func (l Lon) Degrees() Degrees { return Degrees(l) / TenMillionths }

// Valid reports whether the longitude lies within [-180, 180] degrees.
func (l Lon) Valid() bool { return MinLongitude <= l && l <= MaxLongitude }

// LatLon is the position of a node.
type LatLon struct {
	Lat Lat
	Lon Lon
}

// NewLatLon converts a position given in decimal degrees.
func NewLatLon(lat, lon Degrees) LatLon {
	return LatLon{Lat: LatFromDegrees(lat), Lon: LonFromDegrees(lon)}
}

// Valid reports whether both halves of the position are in range.
func (p LatLon) Valid() bool { return p.Lat.Valid() && p.Lon.Valid() }

// LatLng returns the equivalent s2.LatLng.
func (p LatLon) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(float64(p.Lat.Degrees()), float64(p.Lon.Degrees()))
}

func (p LatLon) String() string {
	return fmt.Sprintf("(%s, %s)", ftoa(float64(p.Lat.Degrees())), ftoa(float64(p.Lon.Degrees())))
}
