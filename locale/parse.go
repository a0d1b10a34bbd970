package locale

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/jschaf/citeproc/style"
)

// ParseError is a malformed locale document, mirroring style.Error's
// shape for the sibling XML format.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

func errf(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

// Parse reads a cs:locale document (the same file a Fetcher returns for a
// given language) into a Locale. The root's xml:lang attribute, if
// present, becomes the returned Locale.Lang; a root-level locale file
// with no xml:lang is a *global* override and the caller is responsible
// for slotting it into the right link of the fallback chain (spec.md
// §4.2 - Parse itself doesn't know which Source it's being parsed for).
func Parse(xml []byte) (*Locale, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xml); err != nil {
		return nil, errf("%v", err)
	}
	root := doc.Root()
	if root == nil || localName(root.Tag) != "locale" {
		return nil, errf("root element is %q, want cs:locale", tagOf(root))
	}

	lang := Lang{}
	if s := root.SelectAttrValue("xml:lang", ""); s != "" {
		l, err := ParseLang(s)
		if err != nil {
			return nil, errf("invalid xml:lang %q: %v", s, err)
		}
		lang = l
	}
	l := New(lang)

	for _, child := range root.ChildElements() {
		switch localName(child.Tag) {
		case "style-options":
			parseStyleOptions(l, child)
		case "terms":
			parseTerms(l.Terms, child)
		case "date":
			form := child.SelectAttrValue("form", "numeric")
			key := DateFormKeyNumeric
			if form == "text" {
				key = DateFormKeyText
			}
			l.Dates[key] = DateFormat{
				Parts:     parseLocaleDateParts(child),
				Delimiter: style.Delimiter(child.SelectAttrValue("delimiter", "")),
			}
		}
	}
	return l, nil
}

func tagOf(el *etree.Element) string {
	if el == nil {
		return "(empty document)"
	}
	return el.Tag
}

func localName(tag string) string {
	if i := strings.IndexByte(tag, ':'); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

func parseStyleOptions(l *Locale, el *etree.Element) {
	if v := el.SelectAttrValue("limit-day-ordinals-to-day-1", ""); v != "" {
		l.SetOption("limit-day-ordinals-to-day-1", v == "true")
	}
	if v := el.SelectAttrValue("punctuation-in-quote", ""); v != "" {
		l.SetOption("punctuation-in-quote", v == "true")
	}
}

func parseTerms(t *Terms, el *etree.Element) {
	for _, term := range el.ChildElements() {
		if localName(term.Tag) != "term" {
			continue
		}
		name := term.SelectAttrValue("name", "")
		if name == "" {
			continue
		}
		form := parseTermForm(term.SelectAttrValue("form", "long"))

		single, multiple, ok := termValues(term)
		st := SimpleTerm{Singular: single, Plural: multiple}

		if gender := term.SelectAttrValue("gender", ""); gender != "" || isRoleTerm(name) {
			t.SetGendered(name, form, GenderedTerm{SimpleTerm: st, Gender: parseGender(gender)})
			t.SetSimple(name, form, st)
			continue
		}
		if !ok {
			continue
		}
		if isOrdinalTerm(name) {
			t.Ordinal = append(t.Ordinal, parseOrdinalTerm(name, term, st))
			continue
		}
		if name == "ordinal" || strings.HasPrefix(name, "long-ordinal-") {
			parseLongOrdinal(t, name, single)
			continue
		}
		t.SetSimple(name, form, st)
	}
}

// termValues reads a cs:term's text content, which is either a bare
// string (same value for singular and plural) or a pair of
// cs:single/cs:multiple children.
func termValues(term *etree.Element) (single, multiple string, ok bool) {
	var hasSingle, hasMultiple bool
	for _, child := range term.ChildElements() {
		switch localName(child.Tag) {
		case "single":
			single = strings.TrimSpace(child.Text())
			hasSingle = true
		case "multiple":
			multiple = strings.TrimSpace(child.Text())
			hasMultiple = true
		}
	}
	if hasSingle || hasMultiple {
		if !hasMultiple {
			multiple = single
		}
		return single, multiple, true
	}
	text := strings.TrimSpace(term.Text())
	return text, text, true
}

func parseTermForm(s string) TermForm {
	switch s {
	case "short":
		return TermFormShort
	case "verb":
		return TermFormVerb
	case "verb-short":
		return TermFormVerbShort
	case "symbol":
		return TermFormSymbol
	default:
		return TermFormLong
	}
}

func parseGender(s string) Gender {
	switch s {
	case "masculine":
		return GenderMasculine
	case "feminine":
		return GenderFeminine
	default:
		return GenderNeuter
	}
}

// roleTerms lists the CSL terms describing a contributor role (author,
// editor, translator, ...), the only simple terms that may additionally
// carry grammatical gender.
var roleTerms = map[string]bool{
	"author": true, "editor": true, "translator": true, "container-author": true,
	"collection-editor": true, "editorial-director": true, "illustrator": true,
	"interviewer": true, "original-author": true, "recipient": true,
	"reviewed-author": true, "director": true, "composer": true,
	"editortranslator": true,
}

func isRoleTerm(name string) bool { return roleTerms[name] }

func isOrdinalTerm(name string) bool {
	return name == "ordinal" || strings.HasPrefix(name, "ordinal-")
}

func parseOrdinalTerm(name string, term *etree.Element, st SimpleTerm) OrdinalTerm {
	ot := OrdinalTerm{SimpleTerm: st, Gender: parseGender(term.SelectAttrValue("gender-form", ""))}
	suffix := strings.TrimPrefix(name, "ordinal-")
	if suffix == name {
		// Bare "ordinal": the rest-bucket matched when no specific
		// MatchNumber applies.
		return ot
	}
	n := 0
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return ot
		}
		n = n*10 + int(r-'0')
	}
	ot.MatchNumber = n
	return ot
}

func parseLongOrdinal(t *Terms, name, value string) {
	n := 0
	switch name {
	case "ordinal":
		return
	default:
		suffix := strings.TrimPrefix(name, "long-ordinal-")
		for _, r := range suffix {
			if r < '0' || r > '9' {
				return
			}
			n = n*10 + int(r-'0')
		}
	}
	if n > 0 {
		t.LongOrdinal[n] = value
	}
}

func parseLocaleDateParts(el *etree.Element) []style.DatePart {
	var out []style.DatePart
	for _, child := range el.ChildElements() {
		if localName(child.Tag) != "date-part" {
			continue
		}
		form, err := style.ParseDatePartForm(child.SelectAttrValue("name", ""), child.SelectAttrValue("form", ""))
		if err != nil {
			continue
		}
		out = append(out, style.DatePart{
			Form:           form,
			RangeDelimiter: style.RangeDelimiter(child.SelectAttrValue("range-delimiter", "-")),
		})
	}
	return out
}
