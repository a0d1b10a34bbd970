package locale

import "github.com/jschaf/citeproc/style"

// DateFormat is one of a locale's two date templates (numeric or text
// form), consulted by style.LocalizedDate when the style itself doesn't
// override a part's attributes (spec.md §4.5).
type DateFormat struct {
	Parts     []style.DatePart
	Delimiter style.Delimiter
}

// Options is the locale's style-options block, collapsed to concrete
// values with CSL defaults - spec.md §4.2's locale_options(lang).
type Options struct {
	LimitDayOrdinalsToDay1 bool
	PunctuationInQuote     bool
}

// Locale is one language's merged term, date, and option tables. Any
// field may be the zero value to mean "not set by this particular
// locale", which is what makes Merge's "most specific non-empty wins"
// rule well-defined: Merge is applied link-by-link down a fallback chain,
// not as a single flattening pass.
type Locale struct {
	Lang    Lang
	Terms   *Terms
	Dates   map[DateFormKey]DateFormat
	Options Options
	// optionsSet tracks which Options fields this locale link actually set,
	// since Options itself has no zero-value-means-absent encoding (unlike
	// Terms, which uses presence in a map).
	optionsSet map[string]bool
}

// DateFormKey selects one of the two localized date templates.
type DateFormKey int

const (
	DateFormKeyNumeric DateFormKey = iota
	DateFormKeyText
)

// New returns an empty Locale for lang, ready to be filled in by a parser
// or merged into.
func New(lang Lang) *Locale {
	return &Locale{
		Lang:       lang,
		Terms:      newTerms(),
		Dates:      make(map[DateFormKey]DateFormat),
		optionsSet: make(map[string]bool),
	}
}

// SetOption records an explicitly-set style option so Merge can tell it
// apart from a locale link that simply never mentioned it.
func (l *Locale) SetOption(name string, value bool) {
	l.optionsSet[name] = true
	switch name {
	case "limit-day-ordinals-to-day-1":
		l.Options.LimitDayOrdinalsToDay1 = value
	case "punctuation-in-quote":
		l.Options.PunctuationInQuote = value
	}
}

// Merge folds more (a less-specific fallback link, per spec.md §4.2's
// "merges in reverse order") into l's copy, returning the result. Simple
// and gendered terms merge key-by-key, the most specific (earlier-applied)
// non-empty entry winning; ordinal terms are replaced wholesale rather
// than merged element-wise whenever either side defines any (the
// invariant spec.md §3.2 calls out explicitly, since a style author who
// overrides one ordinal form almost always means to override the whole
// table, not create a partial Frankentable).
func (l *Locale) Merge(more *Locale) *Locale {
	out := New(l.Lang)
	if more != nil {
		mergeTermsInto(out.Terms, more.Terms)
		for k, v := range more.Dates {
			out.Dates[k] = v
		}
		out.Options = more.Options
		for k := range more.optionsSet {
			out.optionsSet[k] = true
		}
	}
	mergeTermsInto(out.Terms, l.Terms)
	for k, v := range l.Dates {
		out.Dates[k] = v
	}
	for k := range l.optionsSet {
		if l.optionsSet[k] {
			out.optionsSet[k] = true
			applyOption(&out.Options, k, optionValue(&l.Options, k))
		}
	}
	return out
}

func mergeTermsInto(dst, src *Terms) {
	if src == nil {
		return
	}
	for k, v := range src.Simple {
		dst.Simple[k] = v
	}
	for k, v := range src.Gendered {
		dst.Gendered[k] = v
	}
	for k, v := range src.LongOrdinal {
		dst.LongOrdinal[k] = v
	}
	if len(src.Ordinal) > 0 {
		dst.Ordinal = src.Ordinal
	}
}

func applyOption(o *Options, name string, value bool) {
	switch name {
	case "limit-day-ordinals-to-day-1":
		o.LimitDayOrdinalsToDay1 = value
	case "punctuation-in-quote":
		o.PunctuationInQuote = value
	}
}

func optionValue(o *Options, name string) bool {
	switch name {
	case "limit-day-ordinals-to-day-1":
		return o.LimitDayOrdinalsToDay1
	case "punctuation-in-quote":
		return o.PunctuationInQuote
	default:
		return false
	}
}

// MergeChain merges a sequence of locales already resolved from a
// FallbackChain, most specific first, implementing spec.md §4.2's
// merged_locale(lang) end to end. A nil entry (an unresolved link, e.g. no
// inline override or a fetch failure) is skipped rather than erroring -
// spec.md §6.7 requires a LocaleFetchError to degrade to an empty locale
// for that link, not abort the merge.
func MergeChain(lang Lang, locales ...*Locale) *Locale {
	result := New(lang)
	// Walk from least to most specific so the earlier (more specific)
	// locale's Merge call, which treats its receiver as higher-priority
	// than its argument, ends up winning.
	for i := len(locales) - 1; i >= 0; i-- {
		if locales[i] == nil {
			continue
		}
		result = locales[i].Merge(result)
	}
	return result
}
