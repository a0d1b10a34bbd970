package eval

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/locale"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
	titleCaser = cases.Title(language.Und)
)

func evalText(ctx *CiteContext, arena *Arena, t *style.Text) (ir.NodeID, ir.GroupVars) {
	switch t.Source.Kind {
	case style.TextSourceValue:
		text := applyTextCase(t.Source.Value, t.TextCase)
		return rendered(arena, wrap(text, t.Affixes, t.Quotes, t.StripPeriods), ir.GroupVarsPlain, t.Formatting, style.Affixes{})

	case style.TextSourceVariable:
		return evalTextVariable(ctx, arena, t)

	case style.TextSourceTerm:
		term, ok := lookupSimpleTerm(ctx.Locale, t.Source.Term, locale.TermFormLong)
		if !ok {
			return emptyRendered(arena)
		}
		plural := locale.PluralFormSingular
		if t.Source.TermPlural {
			plural = locale.PluralFormPlural
		}
		text := applyTextCase(term.Get(plural), t.TextCase)
		return rendered(arena, wrap(text, t.Affixes, t.Quotes, t.StripPeriods), ir.GroupVarsPlain, t.Formatting, style.Affixes{})

	case style.TextSourceMacro:
		macro, ok := ctx.Style.Macro(t.Source.MacroName)
		if !ok {
			return emptyRendered(arena)
		}
		return EvalSeq(ctx, arena, macro.Elements, "", t.Formatting, t.Affixes, t.Display)

	default:
		return emptyRendered(arena)
	}
}

func evalTextVariable(ctx *CiteContext, arena *Arena, t *style.Text) (ir.NodeID, ir.GroupVars) {
	v, ok := t.Source.Variable.(reference.Variable)
	if !ok {
		return emptyRendered(arena)
	}
	if v == reference.VarYearSuffix {
		return evalYearSuffixVariable(ctx, arena, t)
	}
	val, present := getOrdinary(ctx, v)
	if !present && t.Source.VarForm == style.VariableFormShort {
		// "title-short falls back to title" (spec.md §4.4): retry the long
		// form's underlying variable if the explicit short variant is
		// unset. Short-form variables are modeled as a distinct Variable
		// constant (e.g. VarTitleShort) rather than a flag, so the fallback
		// variable name is the "-short" suffix stripped.
		if long, ok := strings.CutSuffix(string(v), "-short"); ok {
			val, present = getOrdinary(ctx, reference.Variable(long))
		}
	}
	if !present {
		return emptyRendered(arena)
	}
	text := applyTextCase(val, t.TextCase)
	wrapped := wrap(text, t.Affixes, t.Quotes, t.StripPeriods)
	if url, ok := linkTarget(v, val); ok {
		return renderedLink(arena, wrapped, url, ir.GroupVarsImportant, t.Formatting, style.Affixes{})
	}
	return rendered(arena, wrapped, ir.GroupVarsImportant, t.Formatting, style.Affixes{})
}

// linkTarget reports the hyperlink URL a URL/DOI variable's raw value
// resolves to (spec.md §6.5's "hyperlinked" output requirement). DOIs are
// bare identifiers (e.g. "10.1000/182"), not URLs themselves, so they're
// prefixed with the standard resolver; a URL variable's value is already a
// complete link.
func linkTarget(v reference.Variable, raw string) (string, bool) {
	switch v {
	case reference.VarURL:
		return raw, true
	case reference.VarDOI:
		return "https://doi.org/" + raw, true
	default:
		return "", false
	}
}

// evalYearSuffixVariable renders cs:text[variable="year-suffix"] as a
// KindYearSuffix marker node rather than plain text: before cluster
// assembly (component H) allocates suffixes, ctx.YearSuffix is empty and
// the marker stands in for "a year-suffix belongs here" so
// disambiguation's edge stream still reflects the slot's existence
// (spec.md §3.5's Edge.IsYearSuffixMarker). Once allocated, ctx.YearSuffix
// carries the resolved letter and the node renders it directly.
func evalYearSuffixVariable(ctx *CiteContext, arena *Arena, t *style.Text) (ir.NodeID, ir.GroupVars) {
	vars := ir.GroupVarsPlain
	if ctx.YearSuffix != "" {
		vars = ir.GroupVarsImportant
	}
	id := arena.New(ir.Node{
		Kind:       ir.KindYearSuffix,
		Vars:       vars,
		YearSuffix: &ir.YearSuffix{Content: ctx.YearSuffix, Filled: ctx.YearSuffix != ""},
	})
	return id, vars
}

func evalNumber(ctx *CiteContext, arena *Arena, n *style.Number) (ir.NodeID, ir.GroupVars) {
	val, ok := getNumber(ctx, n.Variable)
	if !ok {
		return emptyRendered(arena)
	}
	text := formatNumber(ctx.Locale, val, n.Form)
	text = applyTextCase(text, n.TextCase)
	return rendered(arena, n.Affixes.Prefix+text+n.Affixes.Suffix, ir.GroupVarsImportant, n.Formatting, style.Affixes{})
}

func formatNumber(loc *locale.Locale, val reference.NumericValue, form style.NumericForm) string {
	if !val.IsNumeric || form == style.NumericFormNumeric {
		return val.String()
	}
	parts := make([]string, len(val.Nums))
	for i, n := range val.Nums {
		switch form {
		case style.NumericFormOrdinal:
			parts[i] = strconv.Itoa(n) + ordinalSuffix(loc, n)
		case style.NumericFormLongOrdinal:
			if loc != nil && loc.Terms != nil {
				if s, ok := loc.Terms.LongOrdinal[n]; ok && n >= 1 && n <= 10 {
					parts[i] = s
					continue
				}
			}
			parts[i] = strconv.Itoa(n) + ordinalSuffix(loc, n)
		case style.NumericFormRoman:
			parts[i] = toRoman(n)
		default:
			parts[i] = strconv.Itoa(n)
		}
	}
	delim := val.Delimiter
	if delim == "" {
		delim = "-"
	}
	return strings.Join(parts, delim)
}

func ordinalSuffix(loc *locale.Locale, n int) string {
	if loc == nil || loc.Terms == nil {
		return ""
	}
	match := locale.OrdinalMatchLastDigit
	if loc.Options.LimitDayOrdinalsToDay1 {
		match = locale.OrdinalMatchWholeNumber
	}
	s, ok := loc.Terms.Ordinal(n, locale.GenderNeuter, match)
	if !ok {
		return ""
	}
	return s
}

var romanTable = []struct {
	Value  int
	Symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

func toRoman(n int) string {
	if n <= 0 || n > 3999 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.Value {
			b.WriteString(r.Symbol)
			n -= r.Value
		}
	}
	return b.String()
}

func evalLabel(ctx *CiteContext, arena *Arena, l *style.Label) (ir.NodeID, ir.GroupVars) {
	if !hasVariable(ctx, l.Variable) {
		return emptyRendered(arena)
	}
	plural := labelPlural(ctx, l)
	form := locale.TermFormLong
	if l.Form == style.VariableFormShort {
		form = locale.TermFormShort
	}
	term, ok := lookupSimpleTerm(ctx.Locale, string(variableName(l.Variable)), form)
	if !ok {
		return emptyRendered(arena)
	}
	p := locale.PluralFormSingular
	if plural {
		p = locale.PluralFormPlural
	}
	text := term.Get(p)
	if l.StripPeriods {
		text = strings.ReplaceAll(text, ".", "")
	}
	text = applyTextCase(text, l.TextCase)
	return rendered(arena, l.Affixes.Prefix+text+l.Affixes.Suffix, ir.GroupVarsImportant, l.Formatting, style.Affixes{})
}

func labelPlural(ctx *CiteContext, l *style.Label) bool {
	switch l.Plural {
	case style.PluralAlways:
		return true
	case style.PluralNever:
		return false
	default:
		return isPluralVariable(ctx, l.Variable)
	}
}

func isPluralVariable(ctx *CiteContext, v reference.AnyVariable) bool {
	switch t := v.(type) {
	case reference.NumberVariable:
		val, ok := getNumber(ctx, t)
		return ok && val.IsRange()
	case reference.NameVariable:
		names, ok := getNames(ctx, t)
		return ok && len(names) > 1
	default:
		return false
	}
}

func variableName(v reference.AnyVariable) string {
	switch t := v.(type) {
	case reference.Variable:
		return string(t)
	case reference.NumberVariable:
		return string(t)
	case reference.NameVariable:
		return string(t)
	case reference.DateVariable:
		return string(t)
	default:
		return ""
	}
}

func lookupSimpleTerm(loc *locale.Locale, name string, form locale.TermForm) (locale.SimpleTerm, bool) {
	if loc == nil || loc.Terms == nil {
		return locale.SimpleTerm{}, false
	}
	return loc.Terms.GetSimple(name, form)
}

func applyTextCase(s string, tc style.TextCase) string {
	if s == "" {
		return s
	}
	switch tc {
	case style.TextCaseLowercase:
		return lowerCaser.String(s)
	case style.TextCaseUppercase:
		return upperCaser.String(s)
	case style.TextCaseCapitalizeFirst:
		return capitalizeFirst(s)
	case style.TextCaseCapitalizeAll:
		return titleCaser.String(s)
	case style.TextCaseSentence:
		return capitalizeFirst(lowerCaser.String(s))
	case style.TextCaseTitle:
		return titleCaser.String(s)
	default:
		return s
	}
}

func capitalizeFirst(s string) string {
	r := []rune(s)
	r[0] = []rune(upperCaser.String(string(r[0])))[0]
	return string(r)
}

func wrap(text string, af style.Affixes, quotes, stripPeriods bool) string {
	if stripPeriods {
		text = strings.ReplaceAll(text, ".", "")
	}
	if quotes {
		text = "“" + text + "”"
	}
	return af.Prefix + text + af.Suffix
}
