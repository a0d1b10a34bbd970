package bibtex

import (
	"strings"

	"github.com/jschaf/citeproc/reference"
)

// entryTypeToCSL maps a BibTeX entry type to the nearest CSL type.
var entryTypeToCSL = map[EntryType]string{
	EntryArticle:       "article-journal",
	EntryBook:          "book",
	EntryBooklet:       "pamphlet",
	EntryInBook:        "chapter",
	EntryInCollection:  "chapter",
	EntryInProceedings: "paper-conference",
	EntryManual:        "book",
	EntryMastersThesis: "thesis",
	EntryMisc:          "document",
	EntryPhDThesis:     "thesis",
	EntryProceedings:   "book",
	EntryTechReport:    "report",
	EntryUnpublished:   "manuscript",
}

// ordinaryFieldToVar maps BibTeX tag names to CSL ordinary variables. Tags
// with no CSL counterpart (e.g. "key", "crossref") are left out and fall
// through ToReference's default case, which keeps them as a "bibtex-"
// prefixed ordinary variable so no information is silently dropped.
var ordinaryFieldToVar = map[Field]reference.Variable{
	FieldAddress:      reference.VarPublisherPlace,
	FieldAnnote:       reference.VarAnnote,
	FieldBookTitle:    reference.VarContainerTitle,
	FieldHowPublished: reference.VarMedium,
	FieldInstitution:  reference.VarPublisher,
	FieldJournal:      reference.VarContainerTitle,
	FieldNote:         reference.VarNote,
	FieldOrganization: reference.VarPublisher,
	FieldPublisher:    reference.VarPublisher,
	FieldSchool:       reference.VarPublisher,
	FieldSeries:       reference.VarCollectionTitle,
	FieldTitle:        reference.VarTitle,
}

var numberFieldToVar = map[Field]reference.NumberVariable{
	FieldChapter: reference.NumChapterNumber,
	FieldEdition: reference.NumEdition,
	FieldNumber:  reference.NumNumber,
	FieldPages:   reference.NumPage,
	FieldVolume:  reference.NumVolume,
}

// ToReference converts a resolved bibtex.Entry into a reference.Reference,
// joining the BibTeX and JSON ingestion paths onto the same typed model.
func ToReference(e Entry) *reference.Reference {
	cslType, ok := entryTypeToCSL[e.Type]
	if !ok {
		cslType = "document"
	}
	r := reference.New(e.Key, cslType)

	if len(e.Author) > 0 {
		r.Names[reference.NameAuthor] = toReferenceNames(e.Author, e.AuthorEtAl)
	}
	if len(e.Editor) > 0 {
		r.Names[reference.NameEditor] = toReferenceNames(e.Editor, e.EditorEtAl)
	}

	for field, val := range e.Tags {
		if val == "" {
			continue
		}
		switch field {
		case FieldYear:
			if year, ok := parseYear(val); ok {
				r.Dates[reference.DateIssued] = reference.NewSingleDate(reference.Date{Year: year})
			} else {
				r.Dates[reference.DateIssued] = reference.NewLiteralDate(val)
			}
		case FieldMonth:
			// Folded into the issued date by mergeYearMonth after the loop,
			// since Tags is a Go map and field order isn't guaranteed. A
			// month without a numeric year is not used.
			continue
		case EntryDOI:
			r.Ordinary[reference.VarDOI] = val
		default:
			if v, ok := ordinaryFieldToVar[field]; ok {
				r.Ordinary[v] = val
			} else if v, ok := numberFieldToVar[field]; ok {
				r.Number[v] = reference.NewNumericValue(val)
			} else {
				r.Ordinary[reference.Variable("bibtex-"+field)] = val
			}
		}
	}
	mergeYearMonth(r, e.Tags)

	return r
}

// mergeYearMonth folds a separate BibTeX "month" tag into the issued date,
// since CSL represents year+month as one date rather than two fields.
func mergeYearMonth(r *reference.Reference, tags map[Field]string) {
	month, ok := tags[FieldMonth]
	if !ok || month == "" {
		return
	}
	m := parseMonth(month)
	if m == 0 {
		return
	}
	d, ok := r.Dates[reference.DateIssued]
	if !ok || d.Kind != reference.DateKindSingle {
		return
	}
	d.Single.Month = m
	r.Dates[reference.DateIssued] = d
}

var monthAbbrevs = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

func parseMonth(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) >= 3 {
		s = s[:3]
	}
	return monthAbbrevs[s]
}

func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	n := 0
	if len(s) < 4 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func toReferenceNames(authors []Author, etAl bool) []reference.Name {
	names := make([]reference.Name, 0, len(authors)+1)
	for _, a := range authors {
		names = append(names, reference.Name{
			Family:              a.Last,
			Given:               a.First,
			NonDroppingParticle: a.Prefix,
			Suffix:              a.Suffix,
		})
	}
	if etAl {
		names = append(names, reference.Name{IsLiteral: true, Literal: "et al."})
	}
	return names
}
