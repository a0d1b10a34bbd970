// Package eval is the evaluator (component D) and name/date renderer
// (component E): it interprets a style.Element tree against a
// reference.Reference inside a CiteContext, producing an ir.Node tree.
// eval depends on style, reference, locale, and ir; disamb and cluster
// depend on eval.
package eval

import (
	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/locale"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

// Position is the cite's position relative to other cites of the same
// reference in the document, computed by cluster ordering (component H)
// and threaded into the CiteContext as an already-known input (spec.md
// §4.3 lists "position (computed elsewhere)" among CiteContext's fields).
type Position int

const (
	PositionFirst Position = iota
	PositionIbid
	PositionIbidWithLocator
	PositionSubsequent
	PositionNearNote
	PositionFarNote
)

// DisambPass tags which disambiguation widening step, if any, produced
// this evaluation: DisambPassNone for a first-pass render, otherwise the ratchet
// step disamb (component F) requested.
type DisambPass int

const (
	DisambPassNone DisambPass = iota
	DisambPassAddNames
	DisambPassAddGivenName
	DisambPassAddYearSuffix
)

// CiteContext bundles everything an element's evaluation rule needs,
// mirroring spec.md §4.3's field list.
type CiteContext struct {
	Reference *reference.Reference
	Cite      *reference.Cite
	Style     *style.Style
	Locale    *locale.Locale

	Position Position
	// CitationNumber is the reference's number in order of first citation
	// across the document's clusters, the value cs:number
	// variable="citation-number" reads.
	CitationNumber int
	// BibNumber mirrors CitationNumber but is only set when rendering a
	// bibliography entry rather than an in-text cite, matching the
	// distinction disamb's cs:context condition needs.
	BibNumber      int
	InBibliography bool

	DisambPass DisambPass
	// SortKeyOverride redirects variable lookups during sort-key
	// evaluation to strip formatting the way spec.md §4.10's "authoritative
	// bibliography order" requires a plain-text comparison key.
	SortKeyOverride bool

	// YearSuffix is the already-resolved "a"/"b"/... suffix for this
	// reference, filled in by component H once year-suffix allocation has
	// run; empty before that.
	YearSuffix string

	// NamesInheritance carries cs:names[@name]/[@et-al]/[@label] config a
	// parent element (e.g. a macro expanding cs:names without its own
	// cs:name child) passes down to a nested <names> block that omits it,
	// per CSL's name-config inheritance rule.
	NamesInheritance *style.Name
}

// Arena is the per-cite IR arena this evaluation appends nodes to. Kept
// separate from CiteContext so disambiguation can clone just the arena
// (ir.Arena.Clone) while reusing the same context for a re-render pass.
type Arena = ir.Arena
