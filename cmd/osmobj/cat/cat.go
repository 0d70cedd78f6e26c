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

// Package cat implements the cat command, which decodes an OSM file and
// encodes its objects again, possibly with another blob compression.
package cat

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"m4o.io/osmobj"
	"m4o.io/osmobj/cmd/osmobj/cli"
	"m4o.io/osmobj/internal/config"
)

const writingProgram = "osmobj"

var output *os.File

func init() {
	cli.RootCmd.AddCommand(catCmd)

	flags := catCmd.Flags()
	flags.VarP(cli.NewWriterValue(os.Stdout, &output, "file"), "output", "o", "file to write to")
	flags.String("compression", "", "blob compression: raw, zlib, lzma, lz4 or zstd")
}

var catCmd = &cobra.Command{
	Use:   "cat [<OSM file>]",
	Short: "Re-encode an OSM file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		cfg := *cli.Config

		if flags.Changed("compression") {
			name, err := flags.GetString("compression")
			if err != nil {
				return err
			}

			cfg.Compression = name
		}

		in, err := cli.OpenInput(args)
		if err != nil {
			return err
		}

		n, err := runCat(cmd.Context(), in, output, &cfg)

		if cerr := in.Close(); err == nil {
			err = cerr
		}

		if output != os.Stdout {
			if cerr := output.Close(); err == nil {
				err = cerr
			}
		}

		if err != nil {
			return err
		}

		slog.Debug("objects written", "count", n)

		return nil
	},
}

// runCat copies every object of in to out, keeping the header of in.  It
// returns the number of objects copied.
func runCat(ctx context.Context, in io.Reader, out io.Writer, cfg *config.Config) (int64, error) {
	compression, err := cfg.BlobCompression()
	if err != nil {
		return 0, err
	}

	strs, err := cfg.NewInterner()
	if err != nil {
		return 0, err
	}

	d, err := osmobj.NewDecoder(ctx, in, cfg.DecoderOptions(strs)...)
	if err != nil {
		return 0, err
	}
	defer d.Close()

	hdr := d.Header

	e, err := osmobj.NewEncoder(out,
		osmobj.WithCompression(compression),
		osmobj.WithEncoderNCpus(cfg.CPU),
		osmobj.WithRequiredFeatures(hdr.RequiredFeatures...),
		osmobj.WithOptionalFeatures(hdr.OptionalFeatures...),
		osmobj.WithWritingProgram(writingProgram),
		osmobj.WithSource(hdr.Source),
		osmobj.WithOsmosisReplicationTimestamp(hdr.OsmosisReplicationTimestamp),
		osmobj.WithOsmosisReplicationSequenceNumber(hdr.OsmosisReplicationSequenceNumber),
		osmobj.WithOsmosisReplicationBaseURL(hdr.OsmosisReplicationBaseURL))
	if err != nil {
		return 0, err
	}

	var n int64

	for {
		objects, err := d.Decode()
		if err == io.EOF {
			break
		}

		if err == nil {
			err = e.EncodeBatch(objects)
		}

		if err != nil {
			_ = e.Close()

			return n, err
		}

		n += int64(len(objects))
	}

	return n, e.Close()
}
