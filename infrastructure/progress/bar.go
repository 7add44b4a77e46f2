// Package progress renders batch progress on an interactive terminal.
package progress

import (
	"fmt"
	"io"
	"os"

	"video2audio/domain/audio"

	"github.com/cheggaaa/pb"
	"github.com/mattn/go-isatty"
)

// Bar implements conversion.Progress with a cheggaaa/pb progress bar
type Bar struct {
	out    io.Writer
	bar    *pb.ProgressBar
	failed int
}

// NewBar creates a progress bar writing to out
func NewBar(out io.Writer) *Bar {
	return &Bar{out: out}
}

// Start draws an empty bar for total jobs
func (b *Bar) Start(total int) {
	b.failed = 0
	b.bar = pb.New(total)
	b.bar.Output = b.out
	b.bar.ShowSpeed = false
	b.bar.ManualUpdate = true
	b.bar.Prefix("Converting ")
	b.bar.Start()
	b.bar.Update()
}

// Advance moves the bar by one finished job
func (b *Bar) Advance(result audio.BatchResult) {
	if b.bar == nil {
		return
	}
	if !result.Succeeded {
		b.failed++
		b.bar.Postfix(fmt.Sprintf(" %d failed", b.failed))
	}
	b.bar.Increment()
	b.bar.Update()
}

// Finish draws the final state and moves to a new line
func (b *Bar) Finish() {
	if b.bar == nil {
		return
	}
	b.bar.Finish()
}

// IsTerminal reports whether w is a file attached to an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
