// Package console writes styled report text to a terminal or a plain stream.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// RuleWidth is the width of the separator printed between report sections.
const RuleWidth = 40

// Console is the session's output stream. In plain mode every escape
// sequence is removed before writing.
type Console struct {
	out   io.Writer
	plain bool
	err   error
}

// New creates a console writing to out.
func New(out io.Writer, plain bool) *Console {
	return &Console{out: out, plain: plain}
}

// Plain reports whether styling is stripped.
func (c *Console) Plain() bool {
	return c.plain
}

// Err returns the first write error, if any.
func (c *Console) Err() error {
	return c.err
}

// Print writes s as-is.
func (c *Console) Print(s string) {
	if c.err != nil {
		return
	}
	if c.plain {
		s = ansi.Strip(s)
	}
	_, c.err = io.WriteString(c.out, s)
}

// Println writes s followed by a newline.
func (c *Console) Println(s string) {
	c.Print(s + "\n")
}

// Printf formats and writes a line.
func (c *Console) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (c *Console) Blank() {
	c.Print("\n")
}

// Rule writes the section separator.
func (c *Console) Rule() {
	c.Println(styles.SeparatorStyle.Render(strings.Repeat("-", RuleWidth)))
}

// Error writes an error message.
func (c *Console) Error(msg string) {
	c.Println(styles.ErrorTextStyle.Render(msg))
}

// Warn writes a warning message.
func (c *Console) Warn(msg string) {
	c.Println(styles.WarningTextStyle.Render(msg))
}
