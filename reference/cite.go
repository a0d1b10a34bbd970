package reference

// Mode overrides how a cite's author is rendered, independent of the
// style's own author-rendering rules.
type Mode int

const (
	ModeNormal Mode = iota
	// ModeAuthorInText renders the author outside the cite's affixes, e.g.
	// "Smith (1999)" rather than "(Smith 1999)".
	ModeAuthorInText
	// ModeSuppressAuthor omits the author entirely, e.g. "(1999)".
	ModeSuppressAuthor
)

// LocatorType is the kind of a Locator, e.g. "page", "chapter", "volume".
// Kept as a string alias (as Field is in the bibtex front end) so unknown
// locator types round-trip rather than being rejected.
type LocatorType = string

// Standard CSL locator types.
const (
	LocatorBook      LocatorType = "book"
	LocatorChapter   LocatorType = "chapter"
	LocatorColumn    LocatorType = "column"
	LocatorFigure    LocatorType = "figure"
	LocatorFolio     LocatorType = "folio"
	LocatorIssue     LocatorType = "issue"
	LocatorLine      LocatorType = "line"
	LocatorNote      LocatorType = "note"
	LocatorPage      LocatorType = "page"
	LocatorParagraph LocatorType = "paragraph"
	LocatorPart      LocatorType = "part"
	LocatorSection   LocatorType = "section"
	LocatorSubVerbo  LocatorType = "sub-verbo"
	LocatorVerse     LocatorType = "verse"
	LocatorVolume    LocatorType = "volume"
)

// Locator is a single locator attached to a cite, like "p. 5-9".
type Locator struct {
	Type  LocatorType
	Value NumericValue
}

// Cite is one individual reference occurrence within a cluster.
type Cite struct {
	ID       string
	RefID    string
	Prefix   string
	Suffix   string
	Mode     Mode
	Locators []Locator

	// LocatorExtra and LocatorDate are CSL-M extensions for citations that
	// need a free-text locator annotation or a locator that is itself a
	// date (e.g. "s.v. 2020").
	LocatorExtra string
	LocatorDate  DateOrRange
}
