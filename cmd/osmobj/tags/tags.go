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

// Package tags implements the tags command, which reports the most used tag
// keys of an OSM file.
package tags

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	humanize "github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"m4o.io/osmobj"
	"m4o.io/osmobj/cmd/osmobj/cli"
	"m4o.io/osmobj/intern"
	"m4o.io/osmobj/model"
)

var out io.Writer = os.Stdout

type keyCount struct {
	Key   string
	Count int64
}

type report struct {
	Objects int64
	Keys    []keyCount

	Stats    intern.Stats
	HasStats bool
}

func init() {
	cli.RootCmd.AddCommand(tagsCmd)

	flags := tagsCmd.Flags()
	flags.IntP("limit", "l", 20, "number of keys to list, 0 for all")
	flags.StringP("type", "t", "", "only count objects of this type (node, way or relation)")
	flags.Bool("no-color", false, "disable colored output")
}

var tagsCmd = &cobra.Command{
	Use:   "tags [<OSM file>]",
	Short: "List the most used tag keys of an OSM file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		limit, err := flags.GetInt("limit")
		if err != nil {
			return err
		}

		noColor, err := flags.GetBool("no-color")
		if err != nil {
			return err
		}

		typ, err := flags.GetString("type")
		if err != nil {
			return err
		}

		filter := model.None[model.ObjectType]()

		if typ != "" {
			t, err := model.ParseObjectType(typ)
			if err != nil {
				return err
			}

			filter = model.Some(t)
		}

		strs, err := cli.Config.NewInterner()
		if err != nil {
			return err
		}

		in, err := cli.OpenInput(args)
		if err != nil {
			return err
		}

		r, err := runTags(cmd.Context(), in, filter, strs, cli.Config.DecoderOptions(strs)...)

		if cerr := in.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			return err
		}

		renderTxt(r, limit, noColor)

		return nil
	},
}

// runTags counts the tag keys of the objects in in that pass filter.  strs
// must be the Interner the decoder options intern with.
func runTags(
	ctx context.Context,
	in io.Reader,
	filter model.Option[model.ObjectType],
	strs intern.Interner,
	opts ...osmobj.DecoderOption,
) (*report, error) {
	d, err := osmobj.NewDecoder(ctx, in, opts...)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	counts := make(map[string]int64)
	r := &report{}

	for o, err := range d.Objects() {
		if err != nil {
			return nil, err
		}

		if t, ok := filter.Get(); ok && o.Type() != t {
			continue
		}

		r.Objects++

		for k := range o.Tags() {
			counts[k]++
		}
	}

	r.Keys = make([]keyCount, 0, len(counts))
	for k, n := range counts {
		r.Keys = append(r.Keys, keyCount{Key: k, Count: n})
	}

	slices.SortFunc(r.Keys, func(a, b keyCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Key, b.Key)
	})

	if c, ok := strs.(intern.Counter); ok {
		r.Stats = c.Stats()
		r.HasStats = true
	}

	return r, nil
}

func renderTxt(r *report, limit int, noColor bool) {
	keyColor := color.New(color.FgCyan)
	statsColor := color.New(color.FgYellow)

	if noColor {
		keyColor.DisableColor()
		statsColor.DisableColor()
	}

	keys := r.Keys
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	fmt.Fprintf(out, "Objects: %s\n", humanize.Comma(r.Objects))

	for _, k := range keys {
		keyColor.Fprintf(out, "%-32s", k.Key)
		fmt.Fprintf(out, " %s\n", humanize.Comma(k.Count))
	}

	if r.HasStats {
		ratio := 0.0
		if r.Stats.Lookups > 0 {
			ratio = 100 * float64(r.Stats.Hits) / float64(r.Stats.Lookups)
		}

		statsColor.Fprintf(out, "Interned: %s distinct strings, %s lookups, %s%% shared\n",
			humanize.Comma(int64(r.Stats.Distinct)),
			humanize.Comma(r.Stats.Lookups),
			humanize.FtoaWithDigits(ratio, 1))
	}
}
