package style

import "github.com/jschaf/citeproc/reference"

// Element is a tagged variant over the layout elements a style (or macro)
// body is built from: Text, Number, Label, Date, Names, Group, Choose. The
// marker-method pattern mirrors bibtex/ast.go's Expr/Decl tagged unions —
// idiomatic Go has no closed sum type, so an interface with a private
// method stands in for one.
type Element interface {
	elementNode()
}

func (*Text) elementNode()   {}
func (*Label) elementNode()  {}
func (*Number) elementNode() {}
func (*Names) elementNode()  {}
func (*Date) elementNode()   {}
func (*Group) elementNode()  {}
func (*Choose) elementNode() {}

// TextSourceKind distinguishes cs:text's four possible sources.
type TextSourceKind int

const (
	TextSourceMacro TextSourceKind = iota
	TextSourceValue
	TextSourceVariable
	TextSourceTerm
)

// TextSource is cs:text's source attribute: exactly one of a macro call, a
// literal value, a variable lookup, or a term lookup.
type TextSource struct {
	Kind TextSourceKind

	MacroName string                // TextSourceMacro
	Value     string                // TextSourceValue
	Variable  reference.AnyVariable // TextSourceVariable
	VarForm   VariableForm          // TextSourceVariable

	Term       string // TextSourceTerm
	TermPlural bool   // TextSourceTerm
}

// VariableForm selects the long or short rendering of a variable (e.g.
// title vs. title-short).
type VariableForm int

const (
	VariableFormLong VariableForm = iota
	VariableFormShort
)

// Text is cs:text.
type Text struct {
	Source       TextSource
	Formatting   Formatting
	Affixes      Affixes
	Quotes       bool
	StripPeriods bool
	TextCase     TextCase
	Display      DisplayMode
}

// Label is cs:label: renders a term describing a variable's unit, e.g.
// "p." before a page number.
type Label struct {
	Variable     reference.AnyVariable
	Form         VariableForm
	Plural       Plural
	Formatting   Formatting
	Affixes      Affixes
	StripPeriods bool
	TextCase     TextCase
}

// Number is cs:number: renders a number variable, optionally as an
// ordinal or roman numeral.
type Number struct {
	Variable   reference.NumberVariable
	Form       NumericForm
	Formatting Formatting
	Affixes    Affixes
	TextCase   TextCase
	Display    DisplayMode
}

// NumericForm controls how cs:number renders its value.
type NumericForm int

const (
	NumericFormNumeric NumericForm = iota
	NumericFormOrdinal
	NumericFormRoman
	NumericFormLongOrdinal
)

// Group is cs:group: a sequence of child elements joined by Delimiter, with
// the whole group suppressed if none of its "variable-sourced" children
// produced output (the GroupVars contract, see eval).
type Group struct {
	Elements   []Element
	Delimiter  Delimiter
	Formatting Formatting
	Affixes    Affixes
	Display    DisplayMode
	// IsParallel is a CSL-M extension (cs:group institution parallel
	// rendering); not evaluated by eval, kept for round-tripping.
	IsParallel bool
}
