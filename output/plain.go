package output

import (
	"strings"

	"github.com/jschaf/citeproc/style"
)

// plainWriter discards all formatting and display structure, keeping only
// text and affixes - the baseline format every other writer's output
// should reduce to once markup is stripped.
type plainWriter struct {
	b strings.Builder
}

func newPlainWriter() *plainWriter {
	return &plainWriter{}
}

func (w *plainWriter) Text(text string, _ style.Formatting) { w.b.WriteString(text) }
func (w *plainWriter) Affix(s string)                       { w.b.WriteString(s) }
func (w *plainWriter) OpenFormat(style.Formatting)          {}
func (w *plainWriter) CloseFormat(style.Formatting)         {}
func (w *plainWriter) OpenDisplay(style.DisplayMode)        {}
func (w *plainWriter) CloseDisplay(style.DisplayMode)       {}

// Link discards url entirely, same as OpenFormat discards formatting: plain
// text has no representation for a hyperlink, only the visible text.
func (w *plainWriter) Link(text, _ string, _ style.Formatting) { w.b.WriteString(text) }

func (w *plainWriter) String() string { return w.b.String() }
