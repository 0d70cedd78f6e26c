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

// Package config loads the optional TOML configuration file of the osmobj
// command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"m4o.io/osmobj"
	"m4o.io/osmobj/intern"
)

// Interner kinds.
const (
	InternerUnique = "unique"
	InternerShared = "shared"
	InternerLRU    = "lru"
	InternerPool   = "pool"
)

var ErrUnknownInterner = errors.New("unknown interner")

// Config holds the decoding settings of the command.  Zero values select
// the library defaults.
type Config struct {
	CPU         uint16 `toml:"cpu"`
	BatchSize   int    `toml:"batch_size"`
	BufferSize  int    `toml:"buffer_size"`
	Interner    string `toml:"interner"`
	LRUSize     int    `toml:"lru_size"`
	Compression string `toml:"compression"`
}

// Load reads the configuration at path.  An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// NewInterner creates the Interner selected by the configuration.  Every
// kind is safe for concurrent use.
func (c *Config) NewInterner() (intern.Interner, error) {
	switch strings.ToLower(c.Interner) {
	case "", InternerUnique:
		return intern.Default(), nil
	case InternerShared:
		return intern.NewShared(), nil
	case InternerLRU:
		return intern.NewLRU(c.LRUSize)
	case InternerPool:
		return intern.Locked(intern.NewPool()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInterner, c.Interner)
	}
}

// DecoderOptions converts the configuration into decoder options, using in
// for interning.
func (c *Config) DecoderOptions(in intern.Interner) []osmobj.DecoderOption {
	return []osmobj.DecoderOption{
		osmobj.WithNCpus(c.CPU),
		osmobj.WithProtoBatchSize(c.BatchSize),
		osmobj.WithProtoBufferSize(c.BufferSize),
		osmobj.WithInterner(in),
	}
}

// BlobCompression returns the configured compression, or the encoder
// default.
func (c *Config) BlobCompression() (osmobj.BlobCompression, error) {
	if c.Compression == "" {
		return osmobj.DefaultBlobCompression, nil
	}

	return osmobj.ParseBlobCompression(c.Compression)
}
