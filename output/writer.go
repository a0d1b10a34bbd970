// Package output serializes a rendered IR tree to a final string, per
// spec.md §6.5: plain text, HTML, and RTF, each applying format stacking
// (bold/italic/small-caps/super/sub/underline), display modes
// (block/left-margin/right-inline/indent), and literal affixes as it walks
// the tree. The tree-walking interface mirrors the teacher's
// render.ExprRenderer (an io.Writer-based visitor over a closed sum-type
// tree with per-variant dispatch and functional-option overrides); here the
// tree is an *ir.Arena instead of bibtex's ast.Expr.
package output

import (
	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/style"
)

// Format selects which Writer NewWriter constructs.
type Format int

const (
	FormatPlain Format = iota
	FormatHTML
	FormatRTF
)

// Writer accumulates one serialized rendering. Implementations are not
// expected to be reused across renders; construct a fresh one per cite or
// bibliography entry via NewWriter.
type Writer interface {
	// Text appends one already-resolved text run, wrapped in whatever
	// inline formatting f specifies (bold/italic/small-caps/underline/
	// super/subscript).
	Text(text string, f style.Formatting)
	// Affix appends a literal prefix/suffix or delimiter string verbatim.
	// Affixes carry no formatting of their own.
	Affix(s string)
	// OpenFormat/CloseFormat bracket a whole cs:group's worth of content in
	// shared formatting, distinct from the per-edge formatting Text
	// applies to a single leaf run.
	OpenFormat(f style.Formatting)
	CloseFormat(f style.Formatting)
	// OpenDisplay/CloseDisplay bracket a block-level display region
	// (cs:group/cs:text's @display attribute).
	OpenDisplay(d style.DisplayMode)
	CloseDisplay(d style.DisplayMode)
	// Link appends text as a hyperlink to url (spec.md §6.5's "hyperlinked"
	// requirement), wrapped in the same inline formatting Text would apply.
	Link(text, url string, f style.Formatting)
	// String returns the accumulated output.
	String() string
}

// Option configures a Writer built by NewWriter. Only FormatHTML currently
// reads any options; RTF and plain text writers ignore options that don't
// apply to them.
type Option func(*htmlWriter)

// WithBoldTag selects the HTML element FontWeightBold wraps text in -
// spec.md §6.5's "HTML (with optional <b> vs <strong> variant)". Defaults
// to "b".
func WithBoldTag(tag string) Option {
	return func(w *htmlWriter) { w.boldTag = tag }
}

// NewWriter constructs the Writer for format.
func NewWriter(format Format, opts ...Option) Writer {
	switch format {
	case FormatHTML:
		return newHTMLWriter(opts...)
	case FormatRTF:
		return newRTFWriter()
	default:
		return newPlainWriter()
	}
}

// WriteTree walks the subtree rooted at id and writes every edge it
// contains to w, in render order, honoring each cs:group/cs:layout node's
// delimiter, affixes, formatting, and display mode. This is spec.md §6.5's
// "ingest(inline-markup string → inline tree)" step, operating directly on
// the already-built IR arena rather than re-parsing a markup string, since
// the arena already is that tree.
func WriteTree(w Writer, arena *ir.Arena, id ir.NodeID) {
	writeNode(w, arena, id)
}

func writeNode(w Writer, arena *ir.Arena, id ir.NodeID) {
	n := arena.Get(id)
	switch n.Kind {
	case ir.KindRendered:
		writeEdge(w, n.Rendered)
	case ir.KindName:
		if n.Name != nil {
			writeEdge(w, n.Name.Rendered)
		}
	case ir.KindYearSuffix:
		if n.YearSuffix != nil && n.YearSuffix.Filled {
			w.Text(n.YearSuffix.Content, style.Formatting{})
		}
	case ir.KindConditionalDisamb:
		if n.Conditional != nil {
			writeNode(w, arena, n.Conditional.Body)
		}
	case ir.KindNameCounter:
		// Count-only node; spec.md §4.6 uses it for cs:choose conditions,
		// never for display.
	case ir.KindSeq:
		writeSeq(w, arena, n.Seq)
	}
}

func writeEdge(w Writer, e *ir.Edge) {
	if e == nil {
		return
	}
	if e.Affixes.Prefix != "" {
		w.Affix(e.Affixes.Prefix)
	}
	switch {
	case e.URL != "":
		w.Link(e.Text, e.URL, e.Formatting)
	case e.Text != "":
		w.Text(e.Text, e.Formatting)
	}
	if e.Affixes.Suffix != "" {
		w.Affix(e.Affixes.Suffix)
	}
}

func writeSeq(w Writer, arena *ir.Arena, s *ir.Seq) {
	if s == nil {
		return
	}
	if s.Display != style.DisplayNone {
		w.OpenDisplay(s.Display)
		defer w.CloseDisplay(s.Display)
	}
	hasFormat := s.Formatting != (style.Formatting{})
	if hasFormat {
		w.OpenFormat(s.Formatting)
		defer w.CloseFormat(s.Formatting)
	}
	if s.Affixes.Prefix != "" {
		w.Affix(s.Affixes.Prefix)
	}
	for i, c := range s.Children {
		if i > 0 && s.Delimiter != "" {
			w.Affix(string(s.Delimiter))
		}
		writeNode(w, arena, c)
	}
	if s.Affixes.Suffix != "" {
		w.Affix(s.Affixes.Suffix)
	}
}
