// Package ir holds the intermediate representation a cite or bibliography
// entry is evaluated into: a tree of nodes, each pairing an IR variant
// with a GroupVars tag, stored in an index-based arena so the tree can be
// cheaply copied and walked without reference cycles (spec.md §3.5). ir
// depends only on style; eval, disamb, and cluster depend on ir.
package ir

import "github.com/jschaf/citeproc/style"

// NodeID indexes one node within an Arena. The zero value is never a
// valid id (Arena.New starts numbering at 1), so a zero NodeID can stand
// in for "no node" the way a nil pointer would in a reference-based tree.
type NodeID int

// GroupVars tracks, for a node produced while evaluating inside a
// cs:group, whether that node's content came from a variable lookup and
// whether the lookup actually resolved - the signal a surrounding Group
// uses to decide whether to suppress itself (spec.md §3.5, GLOSSARY).
type GroupVars int

const (
	// GroupVarsPlain: this node's content did not depend on any variable
	// (e.g. a literal cs:text value="...").
	GroupVarsPlain GroupVars = iota
	// GroupVarsImportant: a variable lookup was attempted and resolved to
	// a non-empty value.
	GroupVarsImportant
	// GroupVarsMissing: a variable lookup was attempted and found nothing.
	GroupVarsMissing
	// GroupVarsUnresolvedPlain: a plain node nested inside a subtree that
	// itself carries unresolved variable state (disambiguation's
	// conditional rendering re-evaluates these once more information is
	// available).
	GroupVarsUnresolvedPlain
)

// Combine folds a child node's GroupVars into an accumulator the way
// cs:group's suppress-if-no-variables rule does: Important, once seen,
// can't be un-seen by a later Missing sibling; otherwise any Missing
// child makes the result Missing, and an all-Plain group stays Plain.
func (g GroupVars) Combine(other GroupVars) GroupVars {
	switch {
	case g == GroupVarsImportant || other == GroupVarsImportant:
		return GroupVarsImportant
	case g == GroupVarsMissing || other == GroupVarsMissing:
		return GroupVarsMissing
	case g == GroupVarsUnresolvedPlain || other == GroupVarsUnresolvedPlain:
		return GroupVarsUnresolvedPlain
	default:
		return GroupVarsPlain
	}
}

// ShouldSuppress reports whether a cs:group wrapping content tagged with g
// should render nothing: true when at least one variable-sourced child was
// looked up and none of them resolved, whatever plain children sit beside
// them (a group with no variable-sourced children at all never suppresses).
func (g GroupVars) ShouldSuppress() bool {
	return g == GroupVarsMissing
}

// Kind distinguishes the IR variants spec.md §3.5 lists.
type Kind int

const (
	KindRendered Kind = iota
	KindName
	KindConditionalDisamb
	KindYearSuffix
	KindNameCounter
	KindSeq
)

// Edge is one atomic, already-formatted unit of rendered content — the
// GLOSSARY's "atomic unit of rendered content (a formatted text run or a
// marker like year-suffix)". Disambiguation's DFA construction (component
// F) walks a reference's possible Edge streams; rendering walks the same
// Edge values to produce final output.
type Edge struct {
	// Text is the rendered run for a plain edge. Empty for marker edges.
	Text string
	// Formatting and Affixes are carried rather than baked into Text so an
	// output writer (plain/HTML/RTF) can apply them during serialization -
	// the "abstract writer interface" spec.md's Non-goals leave to a
	// separate output package.
	Formatting style.Formatting
	Affixes    style.Affixes
	// IsYearSuffixMarker tags an edge standing in for a not-yet-assigned
	// year-suffix slot, resolved once cluster-level year-suffix allocation
	// (component H) runs.
	IsYearSuffixMarker bool
	// IsAccessedMarker tags an edge whose content depends on whether the
	// reference was accessed (used by disambiguation to treat it as
	// variable content even though it isn't a name or date).
	IsAccessedMarker bool
	// URL, when non-empty, marks this edge as a hyperlink target (spec.md
	// §6.5): an output.Writer renders Text as a link to URL instead of
	// plain text. Set only for URL/DOI variable renders (eval/text.go).
	URL string
}

// Node is one arena-stored IR node: its variant-specific payload plus the
// GroupVars classification every node carries regardless of kind.
type Node struct {
	Kind Kind
	Vars GroupVars

	// KindRendered
	Rendered *Edge // nil means the node rendered nothing

	// KindName
	Name *NameIR

	// KindConditionalDisamb
	Conditional *ConditionalDisamb

	// KindYearSuffix
	YearSuffix *YearSuffix

	// KindNameCounter
	NameCounter *NameCounter

	// KindSeq
	Seq *Seq
}

// NameIR is the re-entrant subtree a <names> block evaluates to:
// disambiguation may re-render it in place as more of a reference's name
// list needs to be shown (spec.md GLOSSARY: "re-entrant during
// disambiguation").
type NameIR struct {
	// Rendered is the current best rendering of the names block, nil if
	// it produced nothing (e.g. an empty substitute).
	Rendered *Edge
	// Variables lists which name variables (author, editor, ...) fed this
	// node, so disambiguation knows which DisambName ratchets apply here.
	Variables []string
}

// ConditionalDisamb pairs a resolved cs:choose body with the choose
// element it came from, so disambiguation can re-walk the same branches
// if the condition inputs (position, locator, type, ...) ever change.
type ConditionalDisamb struct {
	Choose *style.Choose
	Body   NodeID
}

// YearSuffix is a hook for the as-yet-unassigned year-suffix slot plus
// whatever content (typically a single letter "a", "b", ...) cluster
// assembly fills in once year-suffix allocation runs.
type YearSuffix struct {
	Content string
	Filled  bool
}

// NameCounter counts how many names a <names> block would render,
// without rendering them — used by cs:choose conditions like
// cs:names[@form] paired with a count-based test in CSL-M styles.
type NameCounter struct {
	Count int
}

// Seq is a node with children: the IR counterpart of cs:group/cs:layout,
// carrying the same formatting/affixes/delimiter/text-case/display
// options the style element itself specified.
type Seq struct {
	Children   []NodeID
	Formatting style.Formatting
	Affixes    style.Affixes
	Delimiter  style.Delimiter
	TextCase   style.TextCase
	Display    style.DisplayMode
}

// Arena stores a cite or bibliography entry's IR tree as a flat, append-
// only slice indexed by NodeID, per spec.md §3.5's "IR trees are stored
// in an arena (index-based), so cheap copy and parallel traversal are
// possible without reference-graph loops."
type Arena struct {
	nodes []Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// New appends n to the arena and returns its id.
func (a *Arena) New(n Node) NodeID {
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes))
}

// Get returns the node at id. Panics on an out-of-range id, the same
// contract a slice index gives - a NodeID is only ever produced by this
// same Arena's New, so an invalid id is a programmer error, not a
// reportable one.
func (a *Arena) Get(id NodeID) *Node {
	return &a.nodes[id-1]
}

// Len returns how many nodes the arena holds.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Clone returns a shallow copy of the arena for disambiguation's
// repeated re-rendering passes: the node slice is copied, so replacing a
// node in the clone does not affect the original, but pointer payloads
// (Rendered, Name, Seq, ...) are shared with it.
func (a *Arena) Clone() *Arena {
	nodes := make([]Node, len(a.nodes))
	copy(nodes, a.nodes)
	return &Arena{nodes: nodes}
}
