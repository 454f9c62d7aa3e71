package cli

import (
	"fmt"
	"io"
	"os"
)

// Output is the human-readable progress channel for classification and
// rollback. It is advisory only; the manifest is the durable record. The
// writer is injectable so tests can capture what a run printed.
type Output struct {
	w io.Writer
}

// NewOutput creates an Output writing to w. A nil writer defaults to stdout.
func NewOutput(w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{w: w}
}

// Successf prints a styled success line.
func (o *Output) Successf(format string, args ...any) {
	fmt.Fprintln(o.w, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Warningf prints a styled warning line.
func (o *Output) Warningf(format string, args ...any) {
	fmt.Fprintln(o.w, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints a styled error line.
func (o *Output) Errorf(format string, args ...any) {
	fmt.Fprintln(o.w, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Infof prints a styled informational line.
func (o *Output) Infof(format string, args ...any) {
	fmt.Fprintln(o.w, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

// Previewf prints a dry-run preview line.
func (o *Output) Previewf(format string, args ...any) {
	fmt.Fprintln(o.w, SubtleStyle.Render("[DRY RUN] "+fmt.Sprintf(format, args...)))
}

// Plainf prints an unstyled line.
func (o *Output) Plainf(format string, args ...any) {
	fmt.Fprintf(o.w, format+"\n", args...)
}
