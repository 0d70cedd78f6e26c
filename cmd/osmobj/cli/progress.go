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

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	pb "gopkg.in/cheggaaa/pb.v1"
)

const barWidth = 79

// trackedInput reads an input file while a progress bar on out reports how
// many of its bytes the decoder has consumed.
type trackedInput struct {
	io.Reader
	f   *os.File
	bar *pb.ProgressBar
	out *barWriter
}

// barWriter forwards the bar's output until it is muted, so the final
// redraw of Finish never reaches the terminal.
type barWriter struct {
	w     io.Writer
	muted atomic.Bool
}

func (b *barWriter) Write(p []byte) (int, error) {
	if b.muted.Load() {
		return len(p), nil
	}

	return b.w.Write(p)
}

// progressOutput returns where progress bars are drawn, or nil when they
// are disabled or stderr is not a terminal.
func progressOutput() io.Writer {
	if noProgress || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}

	return os.Stderr
}

// trackInput wraps f with a progress bar drawn on out, labelled with the
// file's base name.  Standard input, a nil out and files of unknown size
// are returned untracked.
func trackInput(f *os.File, out io.Writer) (io.ReadCloser, error) {
	if f == os.Stdin || out == nil {
		return f, nil
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	if !fi.Mode().IsRegular() {
		return f, nil
	}

	bar := pb.New64(fi.Size()).
		SetUnits(pb.U_BYTES_DEC).
		SetMaxWidth(barWidth).
		Prefix(filepath.Base(f.Name()) + " ")
	w := &barWriter{w: out}

	bar.ShowSpeed = true
	bar.Output = w
	bar.Start()

	return &trackedInput{
		Reader: bar.NewProxyReader(f),
		f:      f,
		bar:    bar,
		out:    w,
	}, nil
}

// Close stops the bar, erases its line and closes the file.
func (t *trackedInput) Close() error {
	t.out.muted.Store(true)
	t.bar.Finish()

	fmt.Fprint(t.out.w, "\033[2K\r")

	return t.f.Close()
}
