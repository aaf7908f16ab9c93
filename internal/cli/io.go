package cli

import (
	"fmt"
	"io"
	"slices"
)

// IO carries a command's stdout and stderr and collects warnings.
//
// A warning does not stop a command: the change it describes has already
// been made. Warnings are written to stderr before the first line of
// stdout and again by [IO.Finish], so they survive `| head` and `| tail`,
// and any warning turns the exit code into 1.
type IO struct {
	out    io.Writer
	errOut io.Writer

	warnings []string
	shown    bool
}

// NewIO returns an IO writing to out and errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn records a warning made of what happened and what to do about it.
// Repeats of the same warning are kept once.
func (o *IO) Warn(issue, action string) {
	w := issue + ": " + action
	if slices.Contains(o.warnings, w) {
		return
	}

	o.warnings = append(o.warnings, w)
}

// Println writes a line to stdout.
func (o *IO) Println(a ...any) {
	o.showWarnings()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted text to stdout.
func (o *IO) Printf(format string, a ...any) {
	o.showWarnings()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes a line to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Error reports err on stderr in the "error: ..." form.
func (o *IO) Error(err error) {
	o.ErrPrintln("error:", err)
}

// Finish repeats the warnings and returns the exit code.
func (o *IO) Finish() int {
	o.showWarnings()

	if len(o.warnings) == 0 {
		return 0
	}

	o.printWarnings()

	return 1
}

func (o *IO) showWarnings() {
	if o.shown || len(o.warnings) == 0 {
		return
	}

	o.shown = true
	o.printWarnings()
}

func (o *IO) printWarnings() {
	for _, w := range o.warnings {
		o.ErrPrintln("warning:", w)
	}
}
