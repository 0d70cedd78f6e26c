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

package decoder

import (
	"errors"
	"fmt"
	"io"
	"time"

	"m4o.io/osmobj/internal/core"
	"m4o.io/osmobj/internal/pb"
	"m4o.io/osmobj/model"
)

// Features a data file may require of its reader.
const (
	FeatureOsmSchema             = "OsmSchema-V0.6"
	FeatureDenseNodes            = "DenseNodes"
	FeatureHistoricalInformation = "HistoricalInformation"
)

var ErrUnsupportedFeature = errors.New("unsupported required feature")

var supportedFeatures = map[string]struct{}{
	FeatureOsmSchema:             {},
	FeatureDenseNodes:            {},
	FeatureHistoricalInformation: {},
}

// LoadHeader reads the OSMHeader blob that starts every PBF file.
func LoadHeader(reader io.Reader) (model.Header, error) {
	h, b, err := readBlob(reader)
	if err != nil {
		return model.Header{}, err
	}

	if h.GetType() != OSMHeaderType {
		return model.Header{}, fmt.Errorf("%w: expected %s but got %q", ErrUnexpectedBlobType, OSMHeaderType, h.GetType())
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	unpacked, err := unpack(buf, b)
	if err != nil {
		return model.Header{}, fmt.Errorf("unable to unpack header: %w", err)
	}

	hb := &pb.HeaderBlock{}
	if err := pb.Unmarshal(unpacked, hb); err != nil {
		return model.Header{}, fmt.Errorf("unable to unmarshal header: %w", err)
	}

	for _, f := range hb.GetRequiredFeatures() {
		if _, ok := supportedFeatures[f]; !ok {
			return model.Header{}, fmt.Errorf("%w: %s", ErrUnsupportedFeature, f)
		}
	}

	return toHeader(hb), nil
}

func toHeader(hb *pb.HeaderBlock) model.Header {
	header := model.Header{
		RequiredFeatures:                 hb.GetRequiredFeatures(),
		OptionalFeatures:                 hb.GetOptionalFeatures(),
		WritingProgram:                   hb.GetWritingprogram(),
		Source:                           hb.GetSource(),
		OsmosisReplicationBaseURL:        hb.GetOsmosisReplicationBaseUrl(),
		OsmosisReplicationSequenceNumber: hb.GetOsmosisReplicationSequenceNumber(),
	}

	if bbox := hb.GetBbox(); bbox != nil {
		header.BoundingBox = &model.BoundingBox{
			Left:   model.ToDegrees(0, 1, bbox.GetLeft()),
			Right:  model.ToDegrees(0, 1, bbox.GetRight()),
			Top:    model.ToDegrees(0, 1, bbox.GetTop()),
			Bottom: model.ToDegrees(0, 1, bbox.GetBottom()),
		}
	}

	if hb.OsmosisReplicationTimestamp != nil {
		header.OsmosisReplicationTimestamp = time.Unix(hb.GetOsmosisReplicationTimestamp(), 0).UTC()
	}

	return header
}
