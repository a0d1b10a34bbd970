// Package cluster is cluster ordering, cite-position inference, and
// cluster/bibliography assembly (component H): it derives each cite's
// eval.Position and citation-number from its place in the document, and
// renders whole clusters and bibliography entries from per-cite IR
// (spec.md §4.10, §4.11). cluster depends on disamb, eval, ir, locale,
// reference, and style.
package cluster

import "github.com/jschaf/citeproc/reference"

// Cluster is one citation occurrence in the document: an ordered list of
// cites rendered together (e.g. "(Smith 1999; Doe 2001)"), plus, for
// note-based styles, the footnote/endnote number it falls in — spec.md
// §4.10's "Note nn non-decreasing" ordering constraint is the caller's
// responsibility; this package trusts the order clusters are given in.
type Cluster struct {
	ID    string
	Cites []*reference.Cite
	// NoteNumber is the footnote/endnote this cluster falls in, for
	// note-based styles; zero for in-text styles, where cite adjacency
	// alone determines ibid/subsequent status.
	NoteNumber int
}
