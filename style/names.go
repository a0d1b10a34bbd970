package style

import "github.com/jschaf/citeproc/reference"

// NameForm controls whether a personal name renders as "long" (given +
// family) or "short" (family only).
type NameForm int

const (
	NameFormLong NameForm = iota
	NameFormShort
)

// NameAsSortOrder forces "Family, Given" ordering independent of locale.
type NameAsSortOrder int

const (
	NameAsSortOrderNone NameAsSortOrder = iota
	NameAsSortOrderFirst
	NameAsSortOrderAll
)

// DemoteNonDroppingParticle controls where a non-dropping particle (e.g.
// "van" in "van Gogh") sorts relative to the family name.
type DemoteNonDroppingParticle int

const (
	DemoteNonDroppingParticleNever DemoteNonDroppingParticle = iota
	DemoteNonDroppingParticleSortOnly
	DemoteNonDroppingParticleDisplayAndSort
)

// Initialize controls whether given names are reduced to initials.
type Initialize int

const (
	InitializeFalse Initialize = iota
	InitializeTrue
)

// NamePart is one cs:name-part: an override of formatting/text-case/affixes
// for either the given or family part of every rendered name.
type NamePart struct {
	IsFamily   bool // false means "given"
	Formatting Formatting
	Affixes    Affixes
	TextCase   TextCase
}

// Name is cs:name: the rendering options for a list of personal names —
// delimiters, et-al truncation, initialization, and sort order.
type Name struct {
	And                      Delimiter
	Delimiter                Delimiter
	DelimiterPrecedesEtAl    DelimiterPrecedes
	DelimiterPrecedesLast    DelimiterPrecedes
	EtAlMin                  int
	EtAlUseFirst             int
	EtAlUseLast              bool
	EtAlSubsequentMin        int
	EtAlSubsequentUseFirst   int
	Form                     NameForm
	Initialize               Initialize
	InitializeWith           string
	NameAsSortOrder          NameAsSortOrder
	SortSeparator            string
	DemoteNonDroppingParticle DemoteNonDroppingParticle
	Formatting               Formatting
	Affixes                  Affixes
	Parts                    []NamePart
}

// DelimiterPrecedes controls whether the list delimiter is inserted before
// the "et al." term or the final name, given the current count of names.
type DelimiterPrecedes int

const (
	DelimiterPrecedesContextual DelimiterPrecedes = iota
	DelimiterPrecedesAfterInvertedName
	DelimiterPrecedesAlways
	DelimiterPrecedesNever
)

// NameLabel is cs:label nested inside cs:names: renders a term for the
// names variable itself (e.g. "eds." after an editor list).
type NameLabel struct {
	Form         VariableForm
	Plural       Plural
	Formatting   Formatting
	Affixes      Affixes
	StripPeriods bool
	TextCase     TextCase
}

// Substitute is cs:substitute nested inside cs:names: the fallback
// elements to render, in order, when every listed name variable is empty.
type Substitute struct {
	Elements []Element
}

// Names is cs:names: renders one or more name variables (e.g. author,
// editor) as a delimited list, with optional et-al truncation, a trailing
// label, and a substitution fallback.
type Names struct {
	Variables  []reference.NameVariable
	Name       *Name
	Label      *NameLabel
	Substitute *Substitute
	Delimiter  Delimiter
	Formatting Formatting
	Affixes    Affixes
	Display    DisplayMode
}
