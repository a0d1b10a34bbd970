package eval

import (
	"strconv"

	"github.com/jschaf/citeproc/reference"
)

// hasVariable implements spec.md §4.3's variable-access contract: true if
// the reference (or, for locator/citation-number, the cite context)
// supplies a non-empty value.
func hasVariable(ctx *CiteContext, v reference.AnyVariable) bool {
	if nv, ok := v.(reference.NumberVariable); ok {
		switch nv {
		case reference.NumLocator:
			return ctx.Cite != nil && len(ctx.Cite.Locators) > 0
		case reference.NumCitationNumber:
			return ctx.CitationNumber > 0
		}
	}
	return ctx.Reference != nil && ctx.Reference.HasVariable(v)
}

// isNumeric reports spec.md §4.3's is_numeric(v): true only for a number
// variable whose stored NumericValue actually parsed as numeric tokens.
func isNumeric(ctx *CiteContext, v reference.AnyVariable) bool {
	nv, ok := v.(reference.NumberVariable)
	if !ok {
		return false
	}
	val, ok := getNumber(ctx, nv)
	return ok && val.IsNumeric
}

// getOrdinary looks up an ordinary (free-text) variable.
func getOrdinary(ctx *CiteContext, v reference.Variable) (string, bool) {
	if ctx.Reference == nil {
		return "", false
	}
	s, ok := ctx.Reference.Ordinary[v]
	return s, ok && s != ""
}

// getNumber looks up a number variable, deriving "page-first" from the
// first numeric token of "page" per spec.md §4.3, and serving
// cite-context-only variables (locator, citation-number) from the
// CiteContext rather than the reference.
func getNumber(ctx *CiteContext, v reference.NumberVariable) (reference.NumericValue, bool) {
	switch v {
	case reference.NumLocator:
		if ctx.Cite == nil || len(ctx.Cite.Locators) == 0 {
			return reference.NumericValue{}, false
		}
		return ctx.Cite.Locators[0].Value, true
	case reference.NumCitationNumber:
		if ctx.CitationNumber <= 0 {
			return reference.NumericValue{}, false
		}
		return reference.NewNumericValue(strconv.Itoa(ctx.CitationNumber)), true
	case reference.NumPageFirst:
		page, ok := getNumber(ctx, reference.NumPage)
		if !ok || len(page.Nums) == 0 {
			return reference.NumericValue{}, false
		}
		return reference.NumericValue{Raw: strconv.Itoa(page.Nums[0]), IsNumeric: true, Nums: []int{page.Nums[0]}}, true
	}
	if ctx.Reference == nil {
		return reference.NumericValue{}, false
	}
	val, ok := ctx.Reference.Number[v]
	return val, ok && !val.IsEmpty()
}

// getNames looks up a name variable, reporting ok=false when the
// reference has no non-empty list for it. It is a plain lookup; the
// editor+translator collapse is applied by the names evaluator, not here.
func getNames(ctx *CiteContext, v reference.NameVariable) ([]reference.Name, bool) {
	if ctx.Reference == nil {
		return nil, false
	}
	names, ok := ctx.Reference.Names[v]
	return names, ok && len(names) > 0
}

// editorTranslatorCollapses reports whether editor and translator should
// render as one combined "editor & translator" role for this reference.
func editorTranslatorCollapses(ctx *CiteContext, hasEditorTranslatorTerm bool) bool {
	if !hasEditorTranslatorTerm {
		return false
	}
	editors, ok1 := getNames(ctx, reference.NameEditor)
	translators, ok2 := getNames(ctx, reference.NameTranslator)
	if !ok1 || !ok2 || len(editors) != len(translators) {
		return false
	}
	for i := range editors {
		if editors[i] != translators[i] {
			return false
		}
	}
	return true
}
