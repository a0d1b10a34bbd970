package style

// FontStyle is the cs:text/@font-style family of attributes.
type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
	FontStyleOblique
)

// FontVariant controls small-caps rendering.
type FontVariant int

const (
	FontVariantNormal FontVariant = iota
	FontVariantSmallCaps
)

// FontWeight controls bold/light rendering.
type FontWeight int

const (
	FontWeightNormal FontWeight = iota
	FontWeightBold
	FontWeightLight
)

// TextDecoration controls underline rendering.
type TextDecoration int

const (
	TextDecorationNone TextDecoration = iota
	TextDecorationUnderline
)

// VerticalAlignment controls superscript/subscript rendering.
type VerticalAlignment int

const (
	VerticalAlignmentBaseline VerticalAlignment = iota
	VerticalAlignmentSuperscript
	VerticalAlignmentSubscript
)

// Formatting is the set of inline text-formatting attributes any rendering
// element may carry. Every field is a pointer so "not set here" (inherit or
// default) is distinguishable from "explicitly set to the zero value".
type Formatting struct {
	FontStyle          *FontStyle
	FontVariant        *FontVariant
	FontWeight         *FontWeight
	TextDecoration     *TextDecoration
	VerticalAlignment  *VerticalAlignment
}

// OverrideWith returns a Formatting with every field of other that is set
// taking precedence over the corresponding field of f.
func (f Formatting) OverrideWith(other Formatting) Formatting {
	out := f
	if other.FontStyle != nil {
		out.FontStyle = other.FontStyle
	}
	if other.FontVariant != nil {
		out.FontVariant = other.FontVariant
	}
	if other.FontWeight != nil {
		out.FontWeight = other.FontWeight
	}
	if other.TextDecoration != nil {
		out.TextDecoration = other.TextDecoration
	}
	if other.VerticalAlignment != nil {
		out.VerticalAlignment = other.VerticalAlignment
	}
	return out
}

// Affixes are literal strings wrapped immediately around an element's
// rendered output.
type Affixes struct {
	Prefix string
	Suffix string
}

// IsEmpty reports whether neither affix is set.
func (a Affixes) IsEmpty() bool {
	return a.Prefix == "" && a.Suffix == ""
}

// DisplayMode places a rendered element in the bibliography's block layout
// (block / left-margin / right-inline / indent).
type DisplayMode int

const (
	DisplayNone DisplayMode = iota
	DisplayBlock
	DisplayLeftMargin
	DisplayRightInline
	DisplayIndent
)

// TextCase controls capitalization transforms applied to rendered text.
type TextCase int

const (
	TextCaseNone TextCase = iota
	TextCaseLowercase
	TextCaseUppercase
	TextCaseCapitalizeFirst
	TextCaseCapitalizeAll
	TextCaseSentence
	TextCaseTitle
)

// Delimiter joins the children of a group-like element.
type Delimiter string

// Plural controls whether a label is pluralized: contextual (based on the
// variable's value), always, or never.
type Plural int

const (
	PluralContextual Plural = iota
	PluralAlways
	PluralNever
)
