// Package style holds the typed model of a parsed CSL style: the layout
// elements (Text, Number, Label, Date, Names, Group, Choose), the
// formatting vocabulary they share, and the top-level Style document that
// ties a citation layout, a bibliography layout, and a macro table
// together. style depends only on reference; eval and ir depend on style,
// never the reverse.
package style

import "github.com/jschaf/citeproc/reference"

// Class distinguishes author-date, numeric, note, and label styles, which
// differ in their default disambiguation and collapsing behavior (see
// spec.md §4.9).
type Class int

const (
	ClassAuthorDate Class = iota
	ClassNumeric
	ClassNote
	ClassLabel
	ClassInText
)

// SortKey is one level of a cs:sort's cs:key list: a variable or macro to
// sort by, and a direction.
type SortKey struct {
	Variable  reference.AnyVariable
	MacroName string
	Ascending bool
}

// Sort is cs:sort: a multi-key ordering applied to a citation's cites or a
// bibliography's entries before rendering.
type Sort struct {
	Keys []SortKey
}

// CiteDisambiguation are the cs:citation-level knobs controlling
// additional rendering passes when two cites would otherwise be
// indistinguishable (see spec.md §4.8).
type CiteDisambiguation struct {
	DisambiguateAddNames      bool
	DisambiguateAddGivenName  bool
	DisambiguateAddYearSuffix bool
	GivenNameDisambiguationRule string
}

// Citation is cs:citation: the layout used to render an in-text cite
// cluster, plus the options controlling collapsing and disambiguation.
type Citation struct {
	Layout              []Element
	LayoutDelimiter     Delimiter
	LayoutFormatting    Formatting
	LayoutAffixes       Affixes
	Sort                *Sort
	Disambiguation      CiteDisambiguation
	Collapse            CollapseMode
	CiteGroupDelimiter  Delimiter
	YearSuffixDelimiter Delimiter
	AfterCollapseDelimiter Delimiter
	NearNoteDistance    int
}

// CollapseMode controls how adjacent cites to the same reference in one
// cluster are merged (see spec.md §4.11).
type CollapseMode int

const (
	CollapseNone CollapseMode = iota
	CollapseCitationNumber
	CollapseYear
	CollapseYearSuffix
	CollapseYearSuffixRanged
)

// Bibliography is cs:bibliography: the layout used to render one
// reference list entry, plus sorting and hanging-indent options.
type Bibliography struct {
	Layout           []Element
	LayoutDelimiter  Delimiter
	LayoutFormatting Formatting
	LayoutAffixes    Affixes
	Sort             *Sort
	HangingIndent    bool
	SecondFieldAlign string
	LineSpacing      int
	EntrySpacing     int
	SubsequentAuthorSubstitute string
}

// Macro is a cs:macro definition: a named, reusable element sequence
// invoked from TextSource.Kind == TextSourceMacro.
type Macro struct {
	Name     string
	Elements []Element
}

// Style is the fully parsed document a cs:style root produces: its class,
// macro table, and the two (or three, counting a standalone in-text
// layout) top-level layouts eval renders from.
type Style struct {
	Class        Class
	Version      string
	DefaultLocale string
	Macros       map[string]Macro
	Citation     *Citation
	Bibliography *Bibliography
	// InText is cs:style/cs:citation[@et-al-min]'s sibling cs:info-less
	// in-text layout used by some author-date styles. Parse never sets it,
	// so it is always nil.
	InText *Citation
	// LocaleOverrides is the slot for <cs:locale> blocks embedded directly
	// in the style. Parse creates it empty and skips <cs:locale> children,
	// so embedded locale blocks are not read and take no part in locale
	// merging.
	LocaleOverrides map[string]Element
}

// Macro looks up a macro by name, returning ok=false if undefined — a
// style referencing an unknown macro is a StyleError raised at parse time,
// not at eval time, so callers after Parse can assume names resolve.
func (s *Style) Macro(name string) (Macro, bool) {
	m, ok := s.Macros[name]
	return m, ok
}
