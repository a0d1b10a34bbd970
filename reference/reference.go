// Package reference holds the typed reference model a style is evaluated
// against: an opaque id, a CSL type, and a set of variables grouped by kind
// (ordinary text, number, name list, date). It imports no other package of
// this module; packages that use it depend on it, never the reverse.
package reference

// Variable is an ordinary, free-text CSL variable, like "title" or
// "publisher".
type Variable string

// Standard ordinary CSL variables. Not exhaustive — unknown keys in a
// reference's input are preserved under Reference.Ordinary and simply never
// matched by a style that doesn't reference them.
const (
	VarAbstract           Variable = "abstract"
	VarAnnote             Variable = "annote"
	VarArchive            Variable = "archive"
	VarArchiveLocation    Variable = "archive_location"
	VarArchivePlace       Variable = "archive-place"
	VarAuthority          Variable = "authority"
	VarCallNumber         Variable = "call-number"
	VarCitationLabel      Variable = "citation-label"
	VarCollectionTitle    Variable = "collection-title"
	VarContainerTitle     Variable = "container-title"
	VarContainerTitleShort Variable = "container-title-short"
	VarDimensions         Variable = "dimensions"
	VarDOI                Variable = "DOI"
	VarEvent              Variable = "event"
	VarEventPlace         Variable = "event-place"
	VarGenre              Variable = "genre"
	VarISBN               Variable = "ISBN"
	VarISSN               Variable = "ISSN"
	VarJurisdiction       Variable = "jurisdiction"
	VarKeyword            Variable = "keyword"
	VarMedium             Variable = "medium"
	VarNote               Variable = "note"
	VarOriginalPublisher  Variable = "original-publisher"
	VarOriginalPublisherPlace Variable = "original-publisher-place"
	VarOriginalTitle      Variable = "original-title"
	VarPublisher          Variable = "publisher"
	VarPublisherPlace     Variable = "publisher-place"
	VarReferences         Variable = "references"
	VarReviewedTitle      Variable = "reviewed-title"
	VarScale              Variable = "scale"
	VarSection            Variable = "section"
	VarSource             Variable = "source"
	VarStatus             Variable = "status"
	VarTitle              Variable = "title"
	VarTitleShort         Variable = "title-short"
	VarURL                Variable = "URL"
	VarVersion            Variable = "version"
	VarVolumeTitle        Variable = "volume-title"
	VarYearSuffix         Variable = "year-suffix"
)

// NumberVariable is a CSL variable whose value is expected to be numeric
// (an integer, a range like "5-9", or a comma list like "5, 7"), though any
// free-text fallback is accepted and IsNumeric reports whether it parsed.
type NumberVariable string

const (
	NumChapterNumber    NumberVariable = "chapter-number"
	NumCollectionNumber NumberVariable = "collection-number"
	NumEdition          NumberVariable = "edition"
	NumIssue            NumberVariable = "issue"
	NumNumber           NumberVariable = "number"
	NumNumberOfPages    NumberVariable = "number-of-pages"
	NumNumberOfVolumes  NumberVariable = "number-of-volumes"
	NumPage             NumberVariable = "page"
	NumPageFirst        NumberVariable = "page-first"
	NumVolume           NumberVariable = "volume"
	// NumLocator and NumCitationNumber are cite-context variables rather
	// than reference fields, but share the numeric representation.
	NumLocator         NumberVariable = "locator"
	NumCitationNumber  NumberVariable = "citation-number"
)

// NameVariable is a CSL variable whose value is a list of names.
type NameVariable string

const (
	NameAuthor             NameVariable = "author"
	NameCollectionEditor   NameVariable = "collection-editor"
	NameComposer           NameVariable = "composer"
	NameContainerAuthor    NameVariable = "container-author"
	NameDirector           NameVariable = "director"
	NameEditor             NameVariable = "editor"
	NameEditorialDirector  NameVariable = "editorial-director"
	NameIllustrator        NameVariable = "illustrator"
	NameInterviewer        NameVariable = "interviewer"
	NameOriginalAuthor     NameVariable = "original-author"
	NameRecipient          NameVariable = "recipient"
	NameReviewedAuthor     NameVariable = "reviewed-author"
	NameTranslator         NameVariable = "translator"
)

// DateVariable is a CSL variable whose value is a date or date range.
type DateVariable string

const (
	DateAccessed     DateVariable = "accessed"
	DateContainer    DateVariable = "container"
	DateEventDate    DateVariable = "event-date"
	DateIssued       DateVariable = "issued"
	DateOriginalDate DateVariable = "original-date"
	DateSubmitted    DateVariable = "submitted"
)

// AnyVariable is the sum of the four variable kinds, used by
// Reference.HasVariable to answer the variable-access contract uniformly
// regardless of kind. Exactly one of Variable, NumberVariable, NameVariable,
// or DateVariable implements it for any given value.
type AnyVariable interface {
	anyVariable()
}

func (Variable) anyVariable()       {}
func (NumberVariable) anyVariable() {}
func (NameVariable) anyVariable()   {}
func (DateVariable) anyVariable()   {}

// Reference is one bibliographic record: an opaque id, a CSL type (e.g.
// "book", "article-journal"), and its variables grouped by kind. Unknown
// ordinary input keys are kept in Ordinary rather than dropped.
type Reference struct {
	ID   string
	Type string

	Ordinary map[Variable]string
	Number   map[NumberVariable]NumericValue
	Names    map[NameVariable][]Name
	Dates    map[DateVariable]DateOrRange
}

// New returns an empty Reference ready to have its variable maps populated.
func New(id, cslType string) *Reference {
	return &Reference{
		ID:       id,
		Type:     cslType,
		Ordinary: make(map[Variable]string),
		Number:   make(map[NumberVariable]NumericValue),
		Names:    make(map[NameVariable][]Name),
		Dates:    make(map[DateVariable]DateOrRange),
	}
}

// HasVariable reports whether the reference supplies a non-empty value for
// v, regardless of its kind. Locator and citation-number are cite-context
// variables and are never present on a Reference itself, so they always
// report false here; callers needing those look them up on the CiteContext.
func (r *Reference) HasVariable(v AnyVariable) bool {
	switch t := v.(type) {
	case Variable:
		s, ok := r.Ordinary[t]
		return ok && s != ""
	case NumberVariable:
		n, ok := r.Number[t]
		return ok && !n.IsEmpty()
	case NameVariable:
		names, ok := r.Names[t]
		return ok && len(names) > 0
	case DateVariable:
		d, ok := r.Dates[t]
		return ok && !d.IsEmpty()
	default:
		return false
	}
}

// GetNames returns the name list for v, or nil if absent.
func (r *Reference) GetNames(v NameVariable) []Name {
	return r.Names[v]
}

// GetOrdinary returns the ordinary text value for v, or "" if absent.
func (r *Reference) GetOrdinary(v Variable) string {
	return r.Ordinary[v]
}

// numberVariables, nameVariables, and dateVariables list every constant of
// their kind so LookupVariable can classify a CSL variable name (as read
// from a style's variable="..." attribute) without the caller having to
// know which kind it belongs to.
var numberVariables = map[string]NumberVariable{
	string(NumChapterNumber): NumChapterNumber, string(NumCollectionNumber): NumCollectionNumber,
	string(NumEdition): NumEdition, string(NumIssue): NumIssue, string(NumNumber): NumNumber,
	string(NumNumberOfPages): NumNumberOfPages, string(NumNumberOfVolumes): NumNumberOfVolumes,
	string(NumPage): NumPage, string(NumPageFirst): NumPageFirst, string(NumVolume): NumVolume,
	string(NumLocator): NumLocator, string(NumCitationNumber): NumCitationNumber,
}

var nameVariables = map[string]NameVariable{
	string(NameAuthor): NameAuthor, string(NameCollectionEditor): NameCollectionEditor,
	string(NameComposer): NameComposer, string(NameContainerAuthor): NameContainerAuthor,
	string(NameDirector): NameDirector, string(NameEditor): NameEditor,
	string(NameEditorialDirector): NameEditorialDirector, string(NameIllustrator): NameIllustrator,
	string(NameInterviewer): NameInterviewer, string(NameOriginalAuthor): NameOriginalAuthor,
	string(NameRecipient): NameRecipient, string(NameReviewedAuthor): NameReviewedAuthor,
	string(NameTranslator): NameTranslator,
}

var dateVariables = map[string]DateVariable{
	string(DateAccessed): DateAccessed, string(DateContainer): DateContainer,
	string(DateEventDate): DateEventDate, string(DateIssued): DateIssued,
	string(DateOriginalDate): DateOriginalDate, string(DateSubmitted): DateSubmitted,
}

// LookupVariable classifies a CSL variable name into whichever of the four
// AnyVariable kinds defines it, falling back to a plain Variable (ordinary
// text) for anything unrecognized - CSL styles may reference
// publisher-supplied extension variables that never appear in the tables
// above.
func LookupVariable(name string) AnyVariable {
	if v, ok := numberVariables[name]; ok {
		return v
	}
	if v, ok := nameVariables[name]; ok {
		return v
	}
	if v, ok := dateVariables[name]; ok {
		return v
	}
	return Variable(name)
}
