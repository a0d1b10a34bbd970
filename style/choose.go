package style

import "github.com/jschaf/citeproc/reference"

// Match controls how a CondSet's individual Cond tests combine.
type Match int

const (
	MatchAll Match = iota
	MatchAny
	MatchNone
	MatchNand
)

// CondKind distinguishes the different tests a single Cond can perform.
type CondKind int

const (
	CondVariable CondKind = iota
	CondIsNumeric
	CondIsUncertainDate
	CondType
	CondPosition
	CondDisambiguate
	CondLocator
	CondContext
)

// PositionTest is the evaluated position a cs:position condition tests
// against; eval assigns the concrete cluster.Position the style requested
// at render time, this type is only the style-side vocabulary.
type PositionTest int

const (
	PositionTestFirst PositionTest = iota
	PositionTestIbid
	PositionTestIbidWithLocator
	PositionTestSubsequent
	PositionTestNearNote
)

// ContextTest distinguishes a citation layout from a bibliography layout,
// for cs:choose branches that render differently in each (CSL-M
// cs:context).
type ContextTest int

const (
	ContextTestCitation ContextTest = iota
	ContextTestBibliography
)

// Cond is one atomic test inside a cs:if or cs:else-if's CondSet. Exactly
// the fields relevant to Kind are populated; it mirrors the original's Cond
// enum (crates/csl/src/style/mod.rs) as a single kind-tagged struct rather
// than one Go type per variant, the same flattening bibtex/ast.go uses for
// Text/TextKind.
type Cond struct {
	Kind CondKind

	Variable     reference.AnyVariable // CondVariable, CondIsNumeric, CondIsUncertainDate
	EntryType    string                // CondType, a CSL type like "book"
	Position     PositionTest          // CondPosition
	LocatorType  reference.LocatorType // CondLocator
	Context      ContextTest           // CondContext
	Disambiguate bool                  // CondDisambiguate: the value to match, not a bool test
}

// CondSet is one cs:if or cs:else-if: a list of Conds and how they combine.
type CondSet struct {
	Match Match
	Conds []Cond
}

// IfThen is a single branch of cs:choose: conditions paired with the
// elements to render when they hold.
type IfThen struct {
	CondSet  CondSet
	Elements []Element
}

// Choose is cs:choose: an if, zero or more else-ifs, and an optional else,
// evaluated top to bottom with the first matching branch winning.
type Choose struct {
	If       IfThen
	ElseIfs  []IfThen
	Else     []Element
}
