package eval

import (
	"strconv"
	"strings"

	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/locale"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

// datePartRank orders Year > Month > Day for range rendering's "biggest
// differing part" rule (spec.md §4.5).
func datePartRank(d reference.Date, other reference.Date) int {
	switch {
	case d.Year != other.Year:
		return 0 // year
	case d.Month != other.Month:
		return 1 // month
	default:
		return 2 // day
	}
}

func evalDate(ctx *CiteContext, arena *Arena, d *style.Date) (ir.NodeID, ir.GroupVars) {
	switch {
	case d.Independent != nil:
		return evalIndependentDate(ctx, arena, d.Independent)
	case d.Localized != nil:
		return evalLocalizedDate(ctx, arena, d.Localized)
	default:
		return emptyRendered(arena)
	}
}

func evalIndependentDate(ctx *CiteContext, arena *Arena, d *style.IndependentDate) (ir.NodeID, ir.GroupVars) {
	val, ok := ctx.Reference.Dates[d.Variable]
	if !ctx.referenceHasDates() || !ok || val.IsEmpty() {
		return emptyRendered(arena)
	}
	text := renderDateOrRange(ctx.Locale, val, d.Parts, d.Delimiter)
	if text == "" {
		return emptyRendered(arena)
	}
	text = applyTextCase(text, d.TextCase)
	return rendered(arena, d.Affixes.Prefix+text+d.Affixes.Suffix, ir.GroupVarsImportant, d.Formatting, style.Affixes{})
}

func evalLocalizedDate(ctx *CiteContext, arena *Arena, d *style.LocalizedDate) (ir.NodeID, ir.GroupVars) {
	val, ok := ctx.Reference.Dates[d.Variable]
	if !ctx.referenceHasDates() || !ok || val.IsEmpty() {
		return emptyRendered(arena)
	}
	parts := mergeLocalizedParts(ctx.Locale, d)
	parts = truncateParts(parts, d.PartsSelector)
	delim := style.Delimiter(" ")
	if ctx.Locale != nil {
		if key := localeDateFormKey(d.Form); true {
			if df, ok := ctx.Locale.Dates[key]; ok {
				delim = df.Delimiter
			}
		}
	}
	text := renderDateOrRange(ctx.Locale, val, parts, delim)
	if text == "" {
		return emptyRendered(arena)
	}
	text = applyTextCase(text, d.TextCase)
	// Affixes on a localized date's local parts are suppressed to avoid
	// double-wrapping (spec.md §4.5); the cs:date element's own affixes
	// still apply.
	return rendered(arena, d.Affixes.Prefix+text+d.Affixes.Suffix, ir.GroupVarsImportant, d.Formatting, style.Affixes{})
}

func localeDateFormKey(f style.DateForm) locale.DateFormKey {
	if f == style.DateFormText {
		return locale.DateFormKeyText
	}
	return locale.DateFormKeyNumeric
}

// mergeLocalizedParts builds the effective date-part list for a localized
// date: the locale's template parts, with any style-local override
// (matched by Form) replacing the corresponding locale part's
// formatting/text-case/range-delimiter (spec.md §4.5).
func mergeLocalizedParts(loc *locale.Locale, d *style.LocalizedDate) []style.DatePart {
	var template []style.DatePart
	if loc != nil {
		if df, ok := loc.Dates[localeDateFormKey(d.Form)]; ok {
			template = df.Parts
		}
	}
	if len(template) == 0 {
		template = d.DateParts
	}
	overrides := make(map[style.DatePartForm]style.DatePart, len(d.DateParts))
	for _, p := range d.DateParts {
		overrides[p.Form] = p
	}
	out := make([]style.DatePart, len(template))
	for i, p := range template {
		if o, ok := overrides[p.Form]; ok {
			o.Affixes = p.Affixes // local-part affixes are ignored
			out[i] = o
		} else {
			out[i] = p
		}
	}
	return out
}

func truncateParts(parts []style.DatePart, sel style.DatePartsSelector) []style.DatePart {
	var out []style.DatePart
	for _, p := range parts {
		switch sel {
		case style.DatePartsYear:
			if isYearForm(p.Form) {
				out = append(out, p)
			}
		case style.DatePartsYearMonth:
			if isYearForm(p.Form) || isMonthForm(p.Form) {
				out = append(out, p)
			}
		default:
			out = append(out, p)
		}
	}
	return out
}

func isYearForm(f style.DatePartForm) bool {
	return f == style.DatePartFormYear || f == style.DatePartFormYearShort
}

func isMonthForm(f style.DatePartForm) bool {
	switch f {
	case style.DatePartFormMonthNumeric, style.DatePartFormMonthNumericLeadingZeros,
		style.DatePartFormMonthLong, style.DatePartFormMonthShort:
		return true
	default:
		return false
	}
}

// renderDateOrRange dispatches a DateOrRange to single-date or
// range-with-biggest-differing-part rendering.
func renderDateOrRange(loc *locale.Locale, val reference.DateOrRange, parts []style.DatePart, delim style.Delimiter) string {
	switch val.Kind {
	case reference.DateKindLiteral:
		return val.Literal
	case reference.DateKindRange:
		return renderDateRange(loc, val.RangeFrom, val.RangeTo, parts, delim)
	default:
		return renderSingleDate(loc, val.Single, parts, delim)
	}
}

func renderSingleDate(loc *locale.Locale, d reference.Date, parts []style.DatePart, delim style.Delimiter) string {
	var segs []string
	for _, p := range parts {
		if s := renderDatePart(loc, d, p); s != "" {
			segs = append(segs, p.Affixes.Prefix+s+p.Affixes.Suffix)
		}
	}
	return strings.Join(segs, string(delim))
}

// renderDateRange implements the "biggest differing part" elision rule:
// parts coarser than the first differing part (year, if month differs;
// year and month, if only day differs) are common to both ends and render
// once, on the left; the differing part and anything finer than it render
// on both ends (spec.md §4.5).
func renderDateRange(loc *locale.Locale, from, to reference.Date, parts []style.DatePart, delim style.Delimiter) string {
	if from == to {
		return renderSingleDate(loc, from, parts, delim)
	}
	diffRank := datePartRank(from, to)
	var left, right []string
	rangeDelim := "–"
	for _, p := range parts {
		if s := renderDatePart(loc, from, p); s != "" {
			left = append(left, s)
		}
		if datePartSegmentRank(p.Form) < diffRank {
			continue // coarser than the differing part: common, shown once on the left
		}
		if p.RangeDelimiter != "" {
			rangeDelim = string(p.RangeDelimiter)
		}
		if s := renderDatePart(loc, to, p); s != "" {
			right = append(right, s)
		}
	}
	return strings.Join(left, string(delim)) + rangeDelim + strings.Join(right, string(delim))
}

func datePartSegmentRank(f style.DatePartForm) int {
	switch {
	case isYearForm(f):
		return 0
	case isMonthForm(f):
		return 1
	default:
		return 2
	}
}

func renderDatePart(loc *locale.Locale, d reference.Date, p style.DatePart) string {
	switch p.Form {
	case style.DatePartFormYear:
		return formatYear(loc, d.Year, false)
	case style.DatePartFormYearShort:
		return formatYear(loc, d.Year, true)
	case style.DatePartFormMonthNumeric:
		if d.Month == 0 || d.Month > 12 {
			return ""
		}
		return strconv.Itoa(d.Month)
	case style.DatePartFormMonthNumericLeadingZeros:
		if d.Month == 0 || d.Month > 12 {
			return ""
		}
		return leadingZero(d.Month)
	case style.DatePartFormMonthLong:
		return monthTerm(loc, d.Month, locale.TermFormLong)
	case style.DatePartFormMonthShort:
		return monthTerm(loc, d.Month, locale.TermFormShort)
	case style.DatePartFormDayNumeric:
		if d.Day == 0 {
			return ""
		}
		return strconv.Itoa(d.Day)
	case style.DatePartFormDayNumericLeadingZeros:
		if d.Day == 0 {
			return ""
		}
		return leadingZero(d.Day)
	case style.DatePartFormDayOrdinal:
		if d.Day == 0 {
			return ""
		}
		return strconv.Itoa(d.Day) + ordinalSuffix(loc, d.Day)
	default:
		return ""
	}
}

func leadingZero(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// formatYear implements spec.md §4.5's year rendering: short form emits
// the last two zero-padded digits only for four-digit positive years;
// negative years append the BC term; years under 1000 append the AD term.
func formatYear(loc *locale.Locale, year int, short bool) string {
	if year == 0 {
		return ""
	}
	if short && year >= 1000 && year <= 9999 {
		return leadingZero(year % 100)
	}
	if year < 0 {
		return strconv.Itoa(-year) + " " + termOrDefault(loc, "bc", "BC")
	}
	if year < 1000 {
		return strconv.Itoa(year) + " " + termOrDefault(loc, "ad", "AD")
	}
	return strconv.Itoa(year)
}

func termOrDefault(loc *locale.Locale, name, def string) string {
	if t, ok := lookupSimpleTerm(loc, name, locale.TermFormLong); ok {
		return t.Get(locale.PluralFormSingular)
	}
	return def
}

func monthTerm(loc *locale.Locale, month int, form locale.TermForm) string {
	if month == 0 {
		return ""
	}
	if month >= reference.SeasonSpring && month <= reference.SeasonWinter {
		name := "season-0" + strconv.Itoa(month-reference.SeasonSpring+1)
		if t, ok := lookupSimpleTerm(loc, name, form); ok {
			return t.Get(locale.PluralFormSingular)
		}
		return ""
	}
	if month < 1 || month > 12 {
		return ""
	}
	name := "month-" + leadingZero(month)
	if t, ok := lookupSimpleTerm(loc, name, form); ok {
		return t.Get(locale.PluralFormSingular)
	}
	return ""
}

func (ctx *CiteContext) referenceHasDates() bool {
	return ctx.Reference != nil && ctx.Reference.Dates != nil
}
