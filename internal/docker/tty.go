package docker

import (
	"io"

	"github.com/docker/cli/cli/streams"
	"github.com/moby/term"
)

// TTY reports on the local terminal the same way the docker CLI does, so the
// wrapper requests a container TTY only when docker itself would accept one.
type TTY struct {
	in  *streams.In
	out *streams.Out
}

// NewTTY creates a TTY probe over the given streams.
func NewTTY(in io.ReadCloser, out io.Writer) TTY {
	return TTY{
		in:  streams.NewIn(in),
		out: streams.NewOut(out),
	}
}

// StdTTY creates a TTY probe over the process's standard streams.
func StdTTY() TTY {
	stdin, stdout, _ := term.StdStreams()
	return NewTTY(stdin, stdout)
}

// StdinIsTerminal reports whether stdin is attached to a terminal.
func (t TTY) StdinIsTerminal() bool {
	return t.in.IsTerminal()
}

// Size returns the height and width of the terminal attached to stdout.
// Both are zero when stdout is not a terminal.
func (t TTY) Size() (height, width uint) {
	if !t.out.IsTerminal() {
		return 0, 0
	}
	return t.out.GetTtySize()
}
