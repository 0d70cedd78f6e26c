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

// Package cli holds the root command of osmobj and the plumbing its
// sub-commands share.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"m4o.io/osmobj/internal/config"
)

var (
	configPath string
	verbose    bool
	noProgress bool

	// Config is loaded from --config before any sub-command runs.
	Config = &config.Config{}
)

// RootCmd is the osmobj command that every sub-command registers with.
var RootCmd = &cobra.Command{
	Use:           "osmobj",
	Short:         "Inspect and re-encode OpenStreetMap PBF files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		Config = cfg

		slog.Debug("configuration loaded", "path", configPath, "config", *cfg)

		return nil
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "TOML configuration file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	flags.BoolVar(&noProgress, "no-progress", false, "never draw a progress bar")
}

// Execute runs the root command, logging the error that ended it.
func Execute() error {
	if err := RootCmd.Execute(); err != nil {
		slog.Error("osmobj failed", "error", err)

		return err
	}

	return nil
}

// OpenInput opens the file named by the first argument, or standard input
// if there is none.  Files are tracked with a progress bar when stderr is a
// terminal.
func OpenInput(args []string) (io.ReadCloser, error) {
	f := os.Stdin

	if len(args) > 0 {
		var err error

		if f, err = os.Open(args[0]); err != nil {
			return nil, err
		}
	}

	return trackInput(f, progressOutput())
}
